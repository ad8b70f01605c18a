package export

import (
	"bytes"
	_ "embed"
	"fmt"

	"github.com/go-pdf/fpdf"
)

const (
	pageMargin  = 10.0
	rowHeight   = 7.0
	titleHeight = 10.0
	fontSize    = 9.0
	fontFamily  = "DejaVu"
)

// The core PDF fonts only cover cp1252; the embedded TrueType font prints
// names in any script the font has glyphs for. Text is laid out left to
// right without shaping.
var (
	//go:embed fonts/DejaVuSansCondensed.ttf
	regularFont []byte
	//go:embed fonts/DejaVuSansCondensed-Bold.ttf
	boldFont []byte
)

// Document writes t as a landscape A4 document holding one table. Rows flow
// onto as many pages as needed and the header row is repeated on each page.
func Document(t Table) ([]byte, error) {
	return document(t, true)
}

func document(t Table, compress bool) ([]byte, error) {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetCompression(compress)
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(false, pageMargin)
	pdf.AddUTF8FontFromBytes(fontFamily, "", regularFont)
	pdf.AddUTF8FontFromBytes(fontFamily, "B", boldFont)

	pageWidth, pageHeight := pdf.GetPageSize()
	usable := pageWidth - 2*pageMargin
	widths := columnWidths(pdf, t, usable)

	header := func() {
		pdf.SetFont(fontFamily, "B", fontSize)
		pdf.SetFillColor(230, 243, 255)
		for i, h := range t.Headers {
			pdf.CellFormat(widths[i], rowHeight, h, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont(fontFamily, "", fontSize)
	}

	pdf.AddPage()
	if t.Title != "" {
		pdf.SetFont(fontFamily, "B", 14)
		pdf.CellFormat(usable, titleHeight, t.Title, "", 1, "L", false, 0, "")
	}
	header()

	for _, row := range t.Rows {
		if pdf.GetY()+rowHeight > pageHeight-pageMargin {
			pdf.AddPage()
			header()
		}
		for i := range t.Headers {
			value := ""
			if i < len(row) {
				value = row[i]
			}
			pdf.CellFormat(widths[i], rowHeight, fit(pdf, value, widths[i]), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("failed to render document: %w", err)
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to write document: %w", err)
	}
	return buf.Bytes(), nil
}

// columnWidths shares the usable width proportionally to the widest value
// of every column.
func columnWidths(pdf *fpdf.Fpdf, t Table, usable float64) []float64 {
	n := len(t.Headers)
	if n == 0 {
		return nil
	}

	pdf.SetFont(fontFamily, "B", fontSize)
	natural := make([]float64, n)
	total := 0.0
	for i, h := range t.Headers {
		natural[i] = pdf.GetStringWidth(h) + 4
	}
	pdf.SetFont(fontFamily, "", fontSize)
	for _, row := range t.Rows {
		for i := 0; i < n && i < len(row); i++ {
			natural[i] = max(natural[i], pdf.GetStringWidth(row[i])+4)
		}
	}
	for _, w := range natural {
		total += w
	}

	widths := make([]float64, n)
	for i, w := range natural {
		widths[i] = usable * w / total
	}
	return widths
}

// fit truncates s with an ellipsis so it prints inside width. Cuts fall on
// rune boundaries.
func fit(pdf *fpdf.Fpdf, s string, width float64) string {
	limit := width - 2
	if pdf.GetStringWidth(s) <= limit {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && pdf.GetStringWidth(string(r)+"...") > limit {
		r = r[:len(r)-1]
	}
	return string(r) + "..."
}
