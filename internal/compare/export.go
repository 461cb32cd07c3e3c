package compare

import (
	"io"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

const (
	fillBest  = "FFC6EFCE"
	fillWorst = "FFFFC7CE"
)

// WriteXLSX renders a comparison as a spreadsheet: one row per attribute, one
// column per entity, best and worst cells filled.
func WriteXLSX(w io.Writer, headers []string, attributes []Attribute, results map[string][]Result) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Comparison")
	if err != nil {
		return eris.Wrap(err, "xlsx: add sheet")
	}

	bold := xlsx.NewStyle()
	bold.Font.Bold = true
	bold.ApplyFont = true

	header := sheet.AddRow()
	header.AddCell().SetString("Attribute")
	for _, h := range headers {
		c := header.AddCell()
		c.SetString(h)
		c.SetStyle(bold)
	}

	best := filledStyle(fillBest)
	worst := filledStyle(fillWorst)

	for _, attr := range attributes {
		row := sheet.AddRow()
		label := row.AddCell()
		label.SetString(attr.Label)
		label.SetStyle(bold)

		for _, r := range results[attr.Key] {
			c := row.AddCell()
			c.SetString(r.Value)
			switch {
			case r.IsBest:
				c.SetStyle(best)
			case r.IsWorst:
				c.SetStyle(worst)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return eris.Wrap(err, "xlsx: write")
	}
	return nil
}

func filledStyle(color string) *xlsx.Style {
	s := xlsx.NewStyle()
	s.Fill = *xlsx.NewFill("solid", color, color)
	s.ApplyFill = true
	return s
}
