// Package render draws assembled records as SVG heatmaps.
package render

import (
	"bytes"

	"github.com/adnsv/srw/xml"
	"gonum.org/v1/gonum/mat"

	"github.com/ukaji3/heatgrid-go/pkg/heatgrid/models"
	"github.com/ukaji3/heatgrid-go/pkg/heatgrid/output"
)

const svgNamespace = "http://www.w3.org/2000/svg"

// Render draws every sheet of wb, each grid preceded by an h3 heading with the
// sheet name, in workbook order.
func Render(wb *models.Workbook, opts Options) string {
	var bb bytes.Buffer
	for _, sheet := range wb.Sheets() {
		writeSheet(&bb, sheet.Name, sheet.Records, opts)
	}
	return bb.String()
}

// RenderSheet draws a single sheet with its heading.
func RenderSheet(name string, records []models.Record, opts Options) string {
	var bb bytes.Buffer
	writeSheet(&bb, name, records, opts)
	return bb.String()
}

// RenderJSON decodes interchange text and renders it. Text that cannot be
// decoded renders as an empty workbook.
func RenderJSON(data []byte, opts Options) string {
	return Render(output.FromJSONLenient(data), opts)
}

func writeSheet(bb *bytes.Buffer, name string, records []models.Record, opts Options) {
	h := xml.NewWriter(bb, xml.WriterConfig{Indent: xml.Indent2Spaces})
	h.OTag("h3").Write(name).CTag()

	writeGrid(bb, Aggregate(records), opts)
}

// writeGrid emits one rect per matrix cell. A nil matrix yields an empty, zero-sized canvas.
func writeGrid(bb *bytes.Buffer, m *mat.Dense, opts Options) {
	cell := opts.cellSize()

	rows, cols := 0, 0
	if m != nil {
		rows, cols = m.Dims()
	}
	width, height := cols*cell, rows*cell
	if opts.LegacyCanvas {
		width, height = LegacyCanvasSize, LegacyCanvasSize
	}

	x := xml.NewWriter(bb, xml.WriterConfig{Indent: xml.Indent2Spaces})
	x.OTag("svg")
	x.Attr("width", width)
	x.Attr("height", height)
	x.Attr("xmlns", svgNamespace)

	if m != nil {
		lo, hi := Bounds(m)
		for i := 0; i < rows; i++ {
			for j := 0; j < cols; j++ {
				fill := Color(Ratio(m.At(i, j), lo, hi))
				x.OTag("+rect")
				x.Attr("x", j*cell).Attr("y", i*cell)
				x.Attr("width", cell).Attr("height", cell)
				x.Attr("fill", fill.String())
				x.Attr("stroke", "black").Attr("stroke-width", 1)
				x.CTag()
			}
		}
	}

	x.CTag() // svg
}
