package render

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/go-pdf/fpdf"
	"go.uber.org/zap"

	"p9e.in/ascomp/models"
)

// canvas is the part of *fpdf.Fpdf the direct renderer draws with.
type canvas interface {
	AddPage()
	SetFont(family, style string, size float64)
	SetFillColor(r, g, b int)
	SetXY(x, y float64)
	GetY() float64
	Rect(x, y, w, h float64, style string)
	CellFormat(w, h float64, txt, border string, ln int, align string, fill bool, link int, linkStr string)
	MultiCell(w, h float64, txt, border, align string, fill bool)
	GetStringWidth(s string) float64
	RegisterImageOptionsReader(name string, opts fpdf.ImageOptions, r io.Reader) *fpdf.ImageInfoType
	ImageOptions(name string, x, y, w, h float64, flow bool, opts fpdf.ImageOptions, link int, linkStr string)
	Output(w io.Writer) error
	Error() error
}

// Drawing constants in mm.
const (
	fontFamily   = "Helvetica"
	fontSize     = 8.0
	lineHeight   = 4.0
	minRowHeight = 5.0
	cellPadding  = 1.0
	titleHeight  = 7.0
	signatureW   = 60.0
	signatureH   = 25.0
	signatureY   = 255.0
)

// DirectRenderer draws the layout with fpdf. It needs no browser.
type DirectRenderer struct {
	Log *zap.Logger
}

func (d *DirectRenderer) Name() string { return "direct" }

// Render draws report. Context cancellation is checked between pages.
func (d *DirectRenderer) Render(ctx context.Context, report *models.ASCOMPReport) ([]byte, error) {
	if report == nil {
		report = &models.ASCOMPReport{}
	}
	doc := BuildDocument(report)
	logSignatureErrors(d.Log, doc, report.ReportNumber)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(Margin, Margin, Margin)
	pdf.SetAutoPageBreak(false, Margin)
	pdf.SetTitle(doc.Title, true)

	var buf bytes.Buffer
	if err := drawDocument(ctx, pdf, pdf.UnicodeTranslatorFromDescriptor(""), doc, &buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}
	return buf.Bytes(), nil
}

type drawer struct {
	c  canvas
	tr func(string) string
	y  float64
}

func drawDocument(ctx context.Context, c canvas, tr func(string) string, doc *Document, w io.Writer) error {
	d := &drawer{c: c, tr: tr}
	for i, page := range doc.Pages {
		if err := ctx.Err(); err != nil {
			return err
		}
		d.newPage()
		if i == 0 {
			d.title(doc.Title, 13)
			d.title(doc.Subtitle, 9)
		}
		for _, b := range page.Blocks {
			d.block(b)
		}
		if i == len(doc.Pages)-1 {
			d.signatures(doc.Signatures)
		}
	}
	if err := c.Error(); err != nil {
		return err
	}
	return c.Output(w)
}

func (d *drawer) newPage() {
	d.c.AddPage()
	d.y = Margin
}

func (d *drawer) ensure(h float64) {
	if d.y+h > PageHeight-Margin {
		d.newPage()
	}
}

func (d *drawer) title(text string, size float64) {
	d.c.SetFont(fontFamily, "B", size)
	d.c.SetXY(Margin, d.y)
	d.c.CellFormat(ContentWidth, titleHeight, d.tr(text), "", 1, "C", false, 0, "")
	d.y += titleHeight
}

func (d *drawer) block(b Block) {
	d.ensure(titleHeight + minRowHeight)
	d.c.SetFont(fontFamily, "B", fontSize+0.5)
	d.c.SetXY(Margin, d.y+1)
	d.c.CellFormat(ContentWidth, lineHeight+1, d.tr(b.Title), "", 1, "L", false, 0, "")
	d.y += titleHeight - 1

	top := d.y
	bottom := d.y
	x := Margin
	gap := 0.0
	if n := len(b.Tables); n > 1 {
		total := 0.0
		for _, t := range b.Tables {
			total += t.Width()
		}
		gap = (ContentWidth - total) / float64(n-1)
	}
	for _, t := range b.Tables {
		d.y = top
		d.table(x, t)
		if d.y > bottom {
			bottom = d.y
		}
		x += t.Width() + gap
	}
	d.y = bottom
}

func (d *drawer) table(x float64, t Table) {
	for _, row := range t.Rows {
		h := d.rowHeight(t, row)
		d.ensure(h)
		cx := x
		col := 0
		for _, cell := range row {
			w := spanWidth(t.Widths, col, cell.Columns())
			d.cell(cx, d.y, w, h, cell)
			cx += w
			col += cell.Columns()
		}
		d.y += h
	}
}

func spanWidth(widths []float64, from, span int) float64 {
	w := 0.0
	for i := from; i < from+span && i < len(widths); i++ {
		w += widths[i]
	}
	return w
}

func (d *drawer) rowHeight(t Table, row Row) float64 {
	h := minRowHeight
	col := 0
	for _, cell := range row {
		w := spanWidth(t.Widths, col, cell.Columns())
		col += cell.Columns()
		d.setCellFont(cell)
		if ch := float64(d.lineCount(d.tr(cell.Text), w-2*cellPadding))*lineHeight + cellPadding; ch > h {
			h = ch
		}
	}
	return h
}

// lineCount is how many lines text wraps to at width w in the current
// font. text is already in the font's code page, so it is measured with
// GetStringWidth, which reads it byte by byte.
func (d *drawer) lineCount(text string, w float64) int {
	if w <= 0 {
		return 1
	}
	space := d.c.GetStringWidth(" ")
	n := 0
	for _, para := range strings.Split(text, "\n") {
		n++
		cur := 0.0
		for _, word := range strings.Fields(para) {
			ww := d.c.GetStringWidth(word)
			switch {
			case cur == 0:
				cur = ww
			case cur+space+ww <= w:
				cur += space + ww
			default:
				n++
				cur = ww
			}
			// a word wider than the cell is broken across lines
			for cur > w {
				n++
				cur -= w
			}
		}
	}
	return n
}

func (d *drawer) setCellFont(cell Cell) {
	if cell.Header {
		d.c.SetFont(fontFamily, "B", fontSize)
	} else {
		d.c.SetFont(fontFamily, "", fontSize)
	}
}

func (d *drawer) cell(x, y, w, h float64, cell Cell) {
	style := "D"
	if cell.Header {
		d.c.SetFillColor(230, 230, 230)
		style = "FD"
	}
	d.c.Rect(x, y, w, h, style)

	d.setCellFont(cell)
	lines := d.lineCount(d.tr(cell.Text), w-2*cellPadding)
	align := "L"
	if cell.Center {
		align = "C"
	}
	d.c.SetXY(x, y+(h-float64(lines)*lineHeight)/2)
	d.c.MultiCell(w, lineHeight, d.tr(cell.Text), "", align, false)
}

// signatures places the signature images at fixed positions at the foot of
// the page, client on the left and engineer on the right. Missing or
// unreadable signatures leave the box empty.
func (d *drawer) signatures(sigs []Signature) {
	y := signatureY
	if d.y+2 > y {
		y = d.y + 2
	}
	if y+signatureH > PageHeight-Margin {
		d.newPage()
		y = Margin
	}
	for i, s := range sigs {
		x := Margin
		if i > 0 {
			x = PageWidth - Margin - signatureW
		}
		d.c.Rect(x, y, signatureW, signatureH, "D")
		if len(s.Image) == 0 {
			continue
		}
		name := fmt.Sprintf("signature-%d", i)
		info := d.c.RegisterImageOptionsReader(name, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(s.Image))
		if info == nil {
			continue
		}
		w, h := fit(info.Width(), info.Height(), signatureW-2, signatureH-2)
		d.c.ImageOptions(name, x+(signatureW-w)/2, y+(signatureH-h)/2, w, h, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	}
	d.y = y + signatureH
}

func fit(w, h, maxW, maxH float64) (float64, float64) {
	if w <= 0 || h <= 0 {
		return maxW, maxH
	}
	scale := maxW / w
	if s := maxH / h; s < scale {
		scale = s
	}
	return w * scale, h * scale
}
