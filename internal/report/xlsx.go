package report

import (
	"fmt"
	"io"
	"reflect"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/felipelastra26/lumin-payroll-calculator/internal/payroll"
)

const (
	summarySheet  = "Summary"
	servicesSheet = "Services"
)

// WriteXLSX writes a workbook with a Summary sheet (one row per employee)
// and a Services sheet (one row per service line).
func WriteXLSX(w io.Writer, res *payroll.Result) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return fmt.Errorf("naming summary sheet: %w", err)
	}
	if err := writeRows(f, summarySheet, EmployeeRows(res)); err != nil {
		return err
	}

	if _, err := f.NewSheet(servicesSheet); err != nil {
		return fmt.Errorf("creating services sheet: %w", err)
	}
	if err := writeRows(f, servicesSheet, ServiceRows(res)); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

// writeRows writes a header from the csv tags of T followed by one row per
// item. Fields tagged xlsx:"number" become numeric cells with two decimals.
func writeRows[T any](f *excelize.File, sheet string, items []T) error {
	typ := reflect.TypeOf((*T)(nil)).Elem()
	header := make([]any, typ.NumField())
	for i := range header {
		header[i] = typ.Field(i).Tag.Get("csv")
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("writing %s header: %w", sheet, err)
	}
	for n, item := range items {
		v := reflect.ValueOf(item)
		row := make([]any, v.NumField())
		for i := range row {
			row[i] = cellValue(typ.Field(i), v.Field(i))
		}
		cell, err := excelize.CoordinatesToCellName(1, n+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("writing %s row %d: %w", sheet, n+2, err)
		}
	}
	if len(items) == 0 {
		return nil
	}

	style, err := f.NewStyle(&excelize.Style{NumFmt: 2})
	if err != nil {
		return fmt.Errorf("creating number style: %w", err)
	}
	for i := 0; i < typ.NumField(); i++ {
		if typ.Field(i).Tag.Get("xlsx") != "number" {
			continue
		}
		top, err := excelize.CoordinatesToCellName(i+1, 2)
		if err != nil {
			return err
		}
		bottom, err := excelize.CoordinatesToCellName(i+1, len(items)+1)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, top, bottom, style); err != nil {
			return fmt.Errorf("styling %s column %s: %w", sheet, header[i], err)
		}
	}
	return nil
}

func cellValue(field reflect.StructField, v reflect.Value) any {
	s, ok := v.Interface().(string)
	if !ok || field.Tag.Get("xlsx") != "number" {
		return v.Interface()
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return s
	}
	return d.InexactFloat64()
}
