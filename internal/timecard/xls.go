package timecard

import (
	"bytes"
	"fmt"
	"io"

	"github.com/extrame/xls"
)

// XLSReader reads legacy BIFF (.xls) workbooks.
type XLSReader struct{}

// Format returns the file extension handled.
func (x *XLSReader) Format() string { return "xls" }

// Read decodes every sheet.
func (x *XLSReader) Read(r io.Reader) (*Workbook, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading xls: %w", err)
	}
	book, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, fmt.Errorf("opening xls: %w", err)
	}

	wb := &Workbook{}
	for i := 0; i < book.NumSheets(); i++ {
		ws := book.GetSheet(i)
		if ws == nil {
			continue
		}
		sheet := Sheet{Name: ws.Name}
		for n := 0; n <= int(ws.MaxRow); n++ {
			row := ws.Row(n)
			if row == nil {
				sheet.Rows = append(sheet.Rows, nil)
				continue
			}
			cells := make([]string, row.LastCol())
			for c := range cells {
				cells[c] = row.Col(c)
			}
			sheet.Rows = append(sheet.Rows, cells)
		}
		wb.Sheets = append(wb.Sheets, sheet)
	}
	return wb, nil
}
