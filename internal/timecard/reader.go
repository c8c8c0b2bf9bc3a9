package timecard

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Sheet is one worksheet as a grid of cell text. Numeric cells keep their
// raw value, so dates and times appear as spreadsheet serials.
type Sheet struct {
	Name string
	Rows [][]string
}

// Workbook is an ordered list of sheets.
type Workbook struct {
	FileName string
	Sheets   []Sheet
}

// Reader decodes a workbook format.
type Reader interface {
	Read(r io.Reader) (*Workbook, error)
	Format() string
}

// Registry holds readers keyed by file extension.
type Registry struct {
	readers map[string]Reader
}

// NewRegistry creates an empty reader registry.
func NewRegistry() *Registry {
	return &Registry{readers: make(map[string]Reader)}
}

// Register adds a reader. Panics on duplicate format.
func (r *Registry) Register(rd Reader) {
	key := strings.ToLower(rd.Format())
	if _, ok := r.readers[key]; ok {
		panic("duplicate reader format: " + key)
	}
	r.readers[key] = rd
}

// Get returns the reader for format ("xlsx", ".xlsx", "XLS", ...), or nil.
func (r *Registry) Get(format string) Reader {
	return r.readers[strings.TrimPrefix(strings.ToLower(format), ".")]
}

// Formats returns the registered formats in sorted order.
func (r *Registry) Formats() []string {
	out := make([]string, 0, len(r.readers))
	for k := range r.readers {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// DefaultRegistry returns a registry with all built-in readers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&XLSXReader{})
	r.Register(&XLSReader{})
	return r
}

// ReadFile opens path and decodes it with the reader for its extension.
func (r *Registry) ReadFile(path string) (*Workbook, error) {
	ext := filepath.Ext(path)
	rd := r.Get(ext)
	if rd == nil {
		return nil, fmt.Errorf("unsupported timecard format %q (want one of %s)", ext, strings.Join(r.Formats(), ", "))
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening timecard: %w", err)
	}
	defer f.Close()

	wb, err := rd.Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", filepath.Base(path), err)
	}
	wb.FileName = filepath.Base(path)
	return wb, nil
}

// FileInfo describes a workbook in the import directory.
type FileInfo struct {
	Name    string
	Path    string
	Size    int64
	ModTime time.Time
}

// importDir is the subdirectory for uploaded timecards.
const importDir = "import"

// Scan returns the workbooks in <root>/import/ that r can read, newest first.
func (r *Registry) Scan(root string) ([]FileInfo, error) {
	dir := filepath.Join(root, importDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading import dir: %w", err)
	}

	var files []FileInfo
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), "~$") {
			continue
		}
		if r.Get(filepath.Ext(e.Name())) == nil {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		files = append(files, FileInfo{
			Name:    e.Name(),
			Path:    filepath.Join(dir, e.Name()),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}
	sort.SliceStable(files, func(i, j int) bool {
		if !files[i].ModTime.Equal(files[j].ModTime) {
			return files[i].ModTime.After(files[j].ModTime)
		}
		return files[i].Name > files[j].Name
	})
	return files, nil
}

// archiveDir holds timecards that have been paid.
const archiveDir = "import/processed"

// Archive moves path into <root>/import/processed/ so Scan no longer offers it.
// An existing file of the same name is replaced.
func Archive(root, path string) (string, error) {
	dstDir := filepath.Join(root, archiveDir)
	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return "", fmt.Errorf("creating processed dir: %w", err)
	}
	dst := filepath.Join(dstDir, filepath.Base(path))
	if err := os.Rename(path, dst); err != nil {
		return "", fmt.Errorf("archiving %s: %w", filepath.Base(path), err)
	}
	return dst, nil
}
