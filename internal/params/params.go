package params

import (
	"errors"
	"fmt"

	"printk/internal/format"
)

// Parameter keys. The set is closed: every key is present after Load.
const (
	KeyAnnualVolume      = "volume_annuo_mq"
	KeyCyanPerLiter      = "costo_C_litro"
	KeyMagentaPerLiter   = "costo_M_litro"
	KeyYellowPerLiter    = "costo_Y_litro"
	KeyBlackPerLiter     = "costo_K_litro"
	KeyWhitePerLiter     = "costo_W_litro"
	KeyCMYKConsumption   = "consumo_CMYK_mq"
	KeyWhiteConsumption  = "consumo_W_mq"
	KeyOperatorCosts     = "costi_vari_operatore_mq"
	KeyInvestment        = "investimento_mq"
	KeyServiceSpareParts = "assistenza_ricambi_mq"
	KeyPrepressHourly    = "costo_orario_prestampa"

	// LegacyAnnualVolume is the key older records used for KeyAnnualVolume.
	LegacyAnnualVolume = "Volume,estimato per anno mq"
)

var (
	ErrInvalidValue = errors.New("invalid parameter value")
	ErrUnknownKey   = errors.New("unknown parameter")
)

// ValidationError reports the edit that made Apply reject a change.
type ValidationError struct {
	Key   string
	Value string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("parameter %s: %q: %v", e.Key, e.Value, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// Set maps parameter names to their values.
type Set map[string]float64

var keys = []string{
	KeyAnnualVolume,
	KeyCyanPerLiter,
	KeyMagentaPerLiter,
	KeyYellowPerLiter,
	KeyBlackPerLiter,
	KeyWhitePerLiter,
	KeyCMYKConsumption,
	KeyWhiteConsumption,
	KeyOperatorCosts,
	KeyInvestment,
	KeyServiceSpareParts,
	KeyPrepressHourly,
}

// Labels are the settings form captions, keyed by parameter.
var Labels = map[string]string{
	KeyAnnualVolume:      "Volume annuo stimato (mq)",
	KeyCyanPerLiter:      "Costo C medio (€/L)",
	KeyMagentaPerLiter:   "Costo M medio (€/L)",
	KeyYellowPerLiter:    "Costo Y medio (€/L)",
	KeyBlackPerLiter:     "Costo K medio (€/L)",
	KeyWhitePerLiter:     "Costo W (€/L)",
	KeyCMYKConsumption:   "Consumo CMYK (L/mq)",
	KeyWhiteConsumption:  "Consumo W base (L/mq)",
	KeyOperatorCosts:     "Costi operatore (€/mq)",
	KeyInvestment:        "Investimento (€/mq)",
	KeyServiceSpareParts: "Assistenza/Ricambi (€/mq)",
	KeyPrepressHourly:    "Prestampa (€/h)",
}

// Keys returns the parameter keys in settings form order.
func Keys() []string {
	out := make([]string, len(keys))
	copy(out, keys)
	return out
}

// IsKnown reports whether key belongs to the parameter set.
func IsKnown(key string) bool {
	_, ok := Labels[key]
	return ok
}

// Defaults returns the built-in parameter values.
func Defaults() Set {
	return Set{
		KeyAnnualVolume:      16000,
		KeyCyanPerLiter:      175.0,
		KeyMagentaPerLiter:   175.0,
		KeyYellowPerLiter:    175.0,
		KeyBlackPerLiter:     175.0,
		KeyWhitePerLiter:     210.0,
		KeyCMYKConsumption:   0.006, // L/mq per CMYK pass
		KeyWhiteConsumption:  0.015, // L/mq per white layer
		KeyOperatorCosts:     0.96,
		KeyInvestment:        1.66,
		KeyServiceSpareParts: 0.96,
		KeyPrepressHourly:    25.0,
	}
}

// Get returns the value for key, falling back to the default when absent.
func (s Set) Get(key string) float64 {
	if v, ok := s[key]; ok {
		return v
	}
	return Defaults()[key]
}

// Clone returns an independent copy of s.
func (s Set) Clone() Set {
	out := make(Set, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Apply parses operator edits on top of current and returns the resulting
// set. Edits are all-or-nothing: on the first unknown key or unparsable value
// an error is returned and no edit is applied.
func Apply(current Set, edits map[string]string) (Set, error) {
	next := current.Clone()

	for key, raw := range edits {
		if !IsKnown(key) {
			return nil, &ValidationError{Key: key, Value: raw, Err: ErrUnknownKey}
		}
	}

	// Walk in form order so the reported error is stable.
	for _, key := range keys {
		raw, ok := edits[key]
		if !ok {
			continue
		}
		v, err := format.ParseDecimal(raw)
		if err != nil {
			return nil, &ValidationError{Key: key, Value: raw, Err: ErrInvalidValue}
		}
		next[key] = v
	}

	return next, nil
}
