// Package render lays an ASCOMP report out as the two-page paper form and
// prints it to PDF.
//
// BuildDocument produces one layout that both renderers draw: the browser
// renderer prints it through HTML and headless Chrome, the direct renderer
// draws the same tables with fpdf. Neither renderer reads report fields on
// its own.
package render

import (
	"fmt"

	"p9e.in/ascomp/models"
	"p9e.in/ascomp/pkg/catalog"
	"p9e.in/ascomp/utils"
)

// Page geometry in millimetres (A4 portrait, 10mm margins).
const (
	PageWidth    = 210.0
	PageHeight   = 297.0
	Margin       = 10.0
	ContentWidth = PageWidth - 2*Margin
)

// Cell is one table cell.
type Cell struct {
	Text   string
	Header bool
	Span   int // columns covered; 0 and 1 mean one
	Center bool
}

// Columns is the number of grid columns the cell covers.
func (c Cell) Columns() int {
	if c.Span < 1 {
		return 1
	}
	return c.Span
}

type Row []Cell

// Table is a bordered grid. Widths are column widths in mm.
type Table struct {
	Widths []float64
	Rows   []Row
}

// Width is the table's total width in mm.
func (t Table) Width() float64 {
	w := 0.0
	for _, c := range t.Widths {
		w += c
	}
	return w
}

// Block is a titled band of one or more tables placed side by side.
type Block struct {
	Title  string
	Tables []Table
}

// Page is one printed page.
type Page struct {
	Blocks []Block
}

// Signature is one signature box printed at the foot of the last page.
type Signature struct {
	Label string
	Image []byte // scaled PNG, nil when there is nothing to draw
	Err   error  // set when the stored signature could not be decoded
}

// Document is the full printable layout of one report.
type Document struct {
	Title      string
	Subtitle   string
	Pages      []Page
	Signatures []Signature
}

// Column widths taken from the paper form.
var (
	pairWidths      = []float64{40, 55, 40, 55}
	checklistWidths = []float64{95, 60, 35}
	matrixWidths    = []float64{38, 38, 38, 38, 38}
	screenWidths    = []float64{47.5, 47.5, 47.5, 47.5}
	evalWidths      = []float64{150, 40}
	cieWidths       = []float64{30, 20, 20, 20}
	airWidths       = []float64{55, 35}
)

type resolver struct {
	data map[string]interface{}
}

func (r resolver) field(path string) string {
	f, ok := catalog.FieldByPath(path)
	if !ok {
		return catalog.Resolve(r.data, path, "")
	}
	return catalog.ResolveAs(r.data, path, "", f.Format)
}

func (r resolver) label(path string) string {
	if f, ok := catalog.FieldByPath(path); ok {
		return f.Label
	}
	return path
}

// pairs lays out label/value pairs two per row. An empty path, or a last
// path without a partner, makes the value span the rest of the row.
func (r resolver) pairs(paths ...string) Table {
	t := Table{Widths: pairWidths}
	for i := 0; i < len(paths); i += 2 {
		row := Row{{Text: r.label(paths[i]), Header: true}, {Text: r.field(paths[i])}}
		if i+1 < len(paths) && paths[i+1] != "" {
			row = append(row, Cell{Text: r.label(paths[i+1]), Header: true}, Cell{Text: r.field(paths[i+1])})
		} else {
			row[1].Span = 3
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// BuildDocument lays out report. A missing or empty field never fails the
// layout; it prints as an empty cell, and checklist cells fall back to the
// catalog defaults.
func BuildDocument(report *models.ASCOMPReport) *Document {
	if report == nil {
		report = &models.ASCOMPReport{}
	}
	data, err := catalog.ToMap(report)
	if err != nil {
		data = nil
	}
	r := resolver{data: data}

	doc := &Document{
		Title:    "ASCOMP Preventive Maintenance Report",
		Subtitle: "Projector Service Checklist",
	}
	doc.Pages = []Page{
		{Blocks: []Block{
			{Title: "Site Details", Tables: []Table{r.pairs(
				"reportNumber", "date",
				"cinemaName", "location",
				"address", "",
				"contactDetails", "screenNumber",
			)}},
			{Title: "Equipment", Tables: []Table{r.pairs(
				"projectorModel", "serialNumber",
				"projectorRunningHours", "softwareVersion",
				"contentPlayingServer",
			)}},
			{Title: "Checklist", Tables: []Table{r.checklist()}},
		}},
		{Blocks: []Block{
			{Title: "Lamp and Power", Tables: []Table{r.pairs(
				"lampInfo.makeModel", "lampInfo.totalRunningHours",
				"lampInfo.currentRunningHours", "voltageParameters.pVsN",
				"voltageParameters.pVsE", "voltageParameters.nVsE",
				"flMeasurements.before", "flMeasurements.after",
			)}},
			{Title: "Software Version", Tables: []Table{r.softwareMatrix()}},
			{Title: "Screen Information", Tables: []Table{r.screen()}},
			{Title: "Image Evaluation", Tables: []Table{r.imageEvaluation()}},
			{Title: "CIE Color Accuracy and Air Pollution Level", Tables: []Table{r.cie(), r.air()}},
			{Title: "Engineer", Tables: []Table{r.pairs(
				"engineer.name", "engineer.phone",
				"engineer.email", "",
				"replacementRequired", "followUpRequired",
				"remarks",
			)}},
			{Title: "Signatures", Tables: []Table{{
				Widths: []float64{95, 95},
				Rows: []Row{
					{{Text: "Client Signature", Header: true}, {Text: "Engineer Signature", Header: true}},
					{{Text: r.field("clientSignedBy")}, {Text: r.field("engineer.name")}},
				},
			}}},
		}},
	}
	doc.Signatures = []Signature{
		signature("Client Signature", report.ClientSignature),
		signature("Engineer Signature", report.EngineerSignature),
	}
	return doc
}

func signature(label, encoded string) Signature {
	img, err := DecodeSignature(encoded)
	return Signature{Label: label, Image: img, Err: err}
}

func (r resolver) checklist() Table {
	t := Table{Widths: checklistWidths, Rows: []Row{{
		{Text: "Description", Header: true},
		{Text: "Status", Header: true},
		{Text: "YES/NO/OK", Header: true, Center: true},
	}}}
	for _, s := range catalog.Sections() {
		t.Rows = append(t.Rows, Row{{Text: s.Label, Header: true, Span: 3}})
		for _, it := range s.Items {
			t.Rows = append(t.Rows, Row{
				{Text: it.Label},
				{Text: catalog.Resolve(r.data, s.StatusPath(it), catalog.DefaultStatus)},
				{Text: catalog.Resolve(r.data, s.ResultPath(it), catalog.DefaultYesNoOk), Center: true},
			})
		}
	}
	return t
}

func (r resolver) softwareMatrix() Table {
	t := Table{Widths: matrixWidths, Rows: []Row{{
		{Text: "", Header: true},
		{Text: "MCGD", Header: true, Center: true},
		{Text: "fL", Header: true, Center: true},
		{Text: "x", Header: true, Center: true},
		{Text: "y", Header: true, Center: true},
	}}}
	for _, ch := range []struct{ key, label string }{
		{"w2k4k", "W2K/4K"}, {"r2k4k", "R2K/4K"}, {"g2k4k", "G2K/4K"},
	} {
		row := Row{{Text: ch.label, Header: true}}
		for _, col := range []string{"mcgd", "fl", "x", "y"} {
			row = append(row, Cell{Text: r.field("softwareVersions." + ch.key + "." + col), Center: true})
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

func (r resolver) screen() Table {
	t := Table{Widths: screenWidths, Rows: []Row{{
		{Text: "", Header: true},
		{Text: "Height", Header: true, Center: true},
		{Text: "Width", Header: true, Center: true},
		{Text: "Gain", Header: true, Center: true},
	}}}
	for _, kind := range []struct{ key, label string }{{"scope", "Scope"}, {"flat", "Flat"}} {
		row := Row{{Text: kind.label, Header: true}}
		for _, col := range []string{"height", "width", "gain"} {
			row = append(row, Cell{Text: r.field("screenInfo." + kind.key + "." + col), Center: true})
		}
		t.Rows = append(t.Rows, row)
	}
	t.Rows = append(t.Rows,
		Row{{Text: r.label("screenInfo.screenMake"), Header: true}, {Text: r.field("screenInfo.screenMake"), Span: 3}},
		Row{{Text: r.label("screenInfo.throwDistance"), Header: true}, {Text: r.field("screenInfo.throwDistance"), Span: 3}},
	)
	return t
}

var imageEvaluationPaths = []string{
	"imageEvaluation.focusBoresite",
	"imageEvaluation.integratorPosition",
	"imageEvaluation.spotOnScreen",
	"imageEvaluation.screenCropping",
	"imageEvaluation.convergenceChecked",
	"imageEvaluation.channelsChecked",
	"imageEvaluation.pixelDefects",
	"imageEvaluation.imageVibration",
	"imageEvaluation.liteLoc",
}

func (r resolver) imageEvaluation() Table {
	t := Table{Widths: evalWidths, Rows: []Row{{
		{Text: "Description", Header: true},
		{Text: "Yes/No", Header: true, Center: true},
	}}}
	for _, p := range imageEvaluationPaths {
		t.Rows = append(t.Rows, Row{{Text: r.label(p)}, {Text: r.field(p), Center: true}})
	}
	return t
}

func (r resolver) cie() Table {
	t := Table{Widths: cieWidths, Rows: []Row{{
		{Text: "Test Pattern", Header: true},
		{Text: "x", Header: true, Center: true},
		{Text: "y", Header: true, Center: true},
		{Text: "fL", Header: true, Center: true},
	}}}
	for _, c := range []struct{ key, label string }{
		{"white", "White"}, {"red", "Red"}, {"green", "Green"}, {"blue", "Blue"},
	} {
		base := "cieColorAccuracy." + c.key + "."
		t.Rows = append(t.Rows, Row{
			{Text: c.label, Header: true},
			{Text: r.field(base + "x"), Center: true},
			{Text: r.field(base + "y"), Center: true},
			{Text: r.field(base + "fl"), Center: true},
		})
	}
	return t
}

var airPaths = []string{
	"airPollutionLevel.hcho",
	"airPollutionLevel.tvoc",
	"airPollutionLevel.pm1",
	"airPollutionLevel.pm25",
	"airPollutionLevel.pm10",
	"airPollutionLevel.temperature",
	"airPollutionLevel.humidity",
}

func (r resolver) air() Table {
	t := Table{Widths: airWidths, Rows: []Row{{
		{Text: "Parameter", Header: true},
		{Text: "Reading", Header: true, Center: true},
	}}}
	for _, p := range airPaths {
		t.Rows = append(t.Rows, Row{{Text: r.label(p)}, {Text: r.field(p), Center: true}})
	}
	return t
}

// Filename is the download name for a report's PDF:
// ASCOMP_{reportNumber}_{cinemaName}.pdf with both parts made filename safe.
func Filename(report *models.ASCOMPReport) string {
	return fmt.Sprintf("ASCOMP_%s_%s.pdf",
		utils.SanitizeFilename(report.ReportNumber),
		utils.SanitizeFilename(report.CinemaName))
}
