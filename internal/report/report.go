// Package report turns a calculation result into the labelled rows of the
// detailed cost report and renders them as text or as a spreadsheet.
package report

import (
	"fmt"
	"strings"

	"printk/internal/format"
	"printk/internal/session"
)

// Line is one row of the report.
type Line struct {
	Label string
	Value string
}

// Build lists the report rows. CMYK and white sections appear only when the
// job uses them.
func Build(res session.Result) []Line {
	b := res.Breakdown

	lines := []Line{
		{"Quantità", fmt.Sprintf("%d", b.Quantity)},
		{"Superficie per pezzo (mq)", format.Measure(b.AreaM2)},
	}

	if b.CMYKLevel > 0 {
		lines = append(lines,
			Line{"Passaggi CMYK", fmt.Sprintf("%d×", b.CMYKLevel)},
			Line{"Consumo CMYK per pezzo (L)", format.Measure(b.InkLiters)},
			Line{"Costo CMYK per pezzo (€)", format.EUR(b.InkCost)},
		)
	}

	if b.WhiteLevel > 0 {
		lines = append(lines,
			Line{"Strati W", fmt.Sprintf("%dW", b.WhiteLevel)},
			Line{"Consumo W per pezzo (L)", format.Measure(b.WhiteLiters)},
			Line{"Costo W per pezzo (€)", format.EUR(b.WhiteCost)},
			Line{"Moltiplicatore costi vari", fmt.Sprintf("%.0f×", b.OverheadMultiplier)},
		)
	}

	lines = append(lines,
		Line{"Costi vari per pezzo (€)", format.EUR(b.OverheadCost)},
		Line{"Prestampa allocata per pezzo (€)", format.EUR(b.PrepressPerPiece)},
		Line{"Costo per pezzo (€)", format.EUR(b.CostPerPiece)},
		Line{"€/mq (per pezzo)", format.EUR(b.CostPerM2)},
	)

	return lines
}

// Summary lists the headline figures of the result card.
func Summary(res session.Result) []Line {
	return []Line{
		{"Totale commessa", format.EUR(res.Breakdown.TotalJobCost)},
		{"Costo per pezzo", format.EUR(res.Breakdown.CostPerPiece)},
		{"Costo al mq", format.EUR(res.Breakdown.CostPerM2)},
		{fmt.Sprintf("Totale vendita (margine %s%%)", format.Number(res.Sale.MarginPercent, 0)), format.EUR(res.Sale.Total)},
		{"Prezzo vendita per pezzo", format.EUR(res.Sale.PerPiece)},
	}
}

// Text renders lines as "label: value" rows.
func Text(lines []Line) string {
	var sb strings.Builder
	for _, l := range lines {
		sb.WriteString(l.Label)
		sb.WriteString(": ")
		sb.WriteString(l.Value)
		sb.WriteByte('\n')
	}
	return sb.String()
}
