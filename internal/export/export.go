// Package export writes a table of rows to spreadsheet and document files.
package export

import "fmt"

// Table is the header and rows of a list as displayed on screen.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// Format is a supported export file type.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatPDF  Format = "pdf"
)

// ParseFormat accepts "xlsx" and "pdf".
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatXLSX, FormatPDF:
		return Format(s), nil
	}
	return "", fmt.Errorf("export: unsupported format %q", s)
}

// ContentType is the MIME type served with the file.
func (f Format) ContentType() string {
	if f == FormatPDF {
		return "application/pdf"
	}
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// FileName returns base with the format extension.
func (f Format) FileName(base string) string {
	return base + "." + string(f)
}

// Write renders t in format f.
func Write(f Format, t Table) ([]byte, error) {
	switch f {
	case FormatXLSX:
		return Spreadsheet(t)
	case FormatPDF:
		return Document(t)
	}
	return nil, fmt.Errorf("export: unsupported format %q", f)
}
