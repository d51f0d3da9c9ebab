// Package calculators turns a print job and the cost parameters into a
// per-piece and per-job cost breakdown, and derives the sale price.
package calculators

import (
	"errors"
	"fmt"

	"printk/internal/params"
)

// MaxLevel is the highest number of CMYK passes or white layers.
const MaxLevel = 6

var (
	ErrInvalidDimensions = errors.New("invalid dimensions")
	ErrInvalidLevel      = errors.New("invalid ink level")
)

// Job is one calculation request. Dimensions are in millimetres.
type Job struct {
	LengthMM   float64
	WidthMM    float64
	Quantity   int
	CMYKLevel  int
	WhiteLevel int
}

// ValidateLevels checks that both ink levels are within 0..MaxLevel.
func (j Job) ValidateLevels() error {
	if j.CMYKLevel < 0 || j.CMYKLevel > MaxLevel {
		return fmt.Errorf("%w: CMYK %d (0-%d)", ErrInvalidLevel, j.CMYKLevel, MaxLevel)
	}
	if j.WhiteLevel < 0 || j.WhiteLevel > MaxLevel {
		return fmt.Errorf("%w: white %d (0-%d)", ErrInvalidLevel, j.WhiteLevel, MaxLevel)
	}
	return nil
}

// Breakdown holds every figure of a calculation. Values are per piece unless
// the name says otherwise.
type Breakdown struct {
	AreaM2             float64
	InkLiters          float64
	WhiteLiters        float64
	InkCost            float64
	WhiteCost          float64
	OverheadMultiplier float64
	OverheadCost       float64
	PrepressPerPiece   float64
	CostPerPiece       float64
	TotalJobCost       float64
	CostPerM2          float64

	Quantity   int
	CMYKLevel  int
	WhiteLevel int
}

// Compute prices a job. It fails only when a dimension or the quantity is
// not positive, and then returns no partial result.
func Compute(p params.Set, job Job) (Breakdown, error) {
	if job.LengthMM <= 0 || job.WidthMM <= 0 || job.Quantity <= 0 {
		return Breakdown{}, fmt.Errorf("%w: length %v mm, width %v mm, quantity %d",
			ErrInvalidDimensions, job.LengthMM, job.WidthMM, job.Quantity)
	}

	area := (job.LengthMM / 1000) * (job.WidthMM / 1000)

	inkLiters := 0.0
	if job.CMYKLevel > 0 {
		inkLiters = p.Get(params.KeyCMYKConsumption) * area * float64(job.CMYKLevel)
	}
	whiteLiters := 0.0
	if job.WhiteLevel > 0 {
		whiteLiters = p.Get(params.KeyWhiteConsumption) * area * float64(job.WhiteLevel)
	}

	// Every white layer is another machine run over the same piece.
	multiplier := float64(job.WhiteLevel + 1)
	overheadPerM2 := p.Get(params.KeyOperatorCosts) + p.Get(params.KeyInvestment) + p.Get(params.KeyServiceSpareParts)
	overhead := overheadPerM2 * area * multiplier

	// All CMYK consumption is priced at the cyan rate; see DESIGN.md.
	inkCost := p.Get(params.KeyCyanPerLiter) * inkLiters
	whiteCost := p.Get(params.KeyWhitePerLiter) * whiteLiters
	prepress := p.Get(params.KeyPrepressHourly) / float64(job.Quantity)

	perPiece := inkCost + whiteCost + overhead + prepress
	total := perPiece * float64(job.Quantity)

	perM2 := 0.0
	if area > 0 {
		perM2 = perPiece / area
	}

	return Breakdown{
		AreaM2:             area,
		InkLiters:          inkLiters,
		WhiteLiters:        whiteLiters,
		InkCost:            inkCost,
		WhiteCost:          whiteCost,
		OverheadMultiplier: multiplier,
		OverheadCost:       overhead,
		PrepressPerPiece:   prepress,
		CostPerPiece:       perPiece,
		TotalJobCost:       total,
		CostPerM2:          perM2,
		Quantity:           job.Quantity,
		CMYKLevel:          job.CMYKLevel,
		WhiteLevel:         job.WhiteLevel,
	}, nil
}
