package calculators

import (
	"printk/internal/format"
)

// DefaultMarginPercent is the margin proposed when the operator gives none.
const DefaultMarginPercent = 35.0

// Sale is the price offered to the customer for a costed job.
type Sale struct {
	MarginPercent float64
	Total         float64
	PerPiece      float64
}

// SalePrice applies a percentage margin to the job cost. Negative margins are
// treated as zero.
func SalePrice(totalJobCost float64, quantity int, marginPercent float64) Sale {
	if marginPercent < 0 {
		marginPercent = 0
	}

	total := totalJobCost * (1 + marginPercent/100)

	perPiece := 0.0
	if quantity > 0 {
		perPiece = total / float64(quantity)
	}

	return Sale{
		MarginPercent: marginPercent,
		Total:         total,
		PerPiece:      perPiece,
	}
}

// ParseMargin reads the margin field; anything unreadable counts as 0%.
func ParseMargin(s string) float64 {
	v, err := format.ParseDecimal(s)
	if err != nil || v < 0 {
		return 0
	}
	return v
}
