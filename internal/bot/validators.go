package bot

import (
	"errors"
	"fmt"
	"strings"

	"printk/internal/calculators"
	"printk/internal/format"
)

var errUsage = errors.New("wrong number of arguments")

// parseDimensions reads "L W Q" as typed by the operator.
func parseDimensions(args []string) (length, width float64, quantity int, err error) {
	if len(args) < 3 {
		return 0, 0, 0, errUsage
	}

	length, err = format.ParseDecimal(args[0])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("lunghezza: %w", err)
	}
	width, err = format.ParseDecimal(args[1])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("larghezza: %w", err)
	}
	quantity, err = format.ParseInt(args[2])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("quantità: %w", err)
	}

	if length <= 0 || width <= 0 || quantity <= 0 {
		return 0, 0, 0, calculators.ErrInvalidDimensions
	}
	return length, width, quantity, nil
}

// parseJob reads "L W Q [CMYK] [W]".
func parseJob(args []string) (calculators.Job, error) {
	if len(args) < 3 || len(args) > 5 {
		return calculators.Job{}, errUsage
	}

	length, width, quantity, err := parseDimensions(args)
	if err != nil {
		return calculators.Job{}, err
	}
	job := calculators.Job{LengthMM: length, WidthMM: width, Quantity: quantity}

	if len(args) > 3 {
		if job.CMYKLevel, err = format.ParseInt(args[3]); err != nil {
			return calculators.Job{}, fmt.Errorf("CMYK: %w", err)
		}
	}
	if len(args) > 4 {
		if job.WhiteLevel, err = format.ParseInt(args[4]); err != nil {
			return calculators.Job{}, fmt.Errorf("bianco: %w", err)
		}
	}

	if err := job.ValidateLevels(); err != nil {
		return calculators.Job{}, err
	}
	return job, nil
}

func parseLevel(args []string) (int, error) {
	if len(args) != 1 {
		return 0, errUsage
	}
	level, err := format.ParseInt(args[0])
	if err != nil {
		return 0, err
	}
	if level < 0 || level > calculators.MaxLevel {
		return 0, fmt.Errorf("%w: %d (0-%d)", calculators.ErrInvalidLevel, level, calculators.MaxLevel)
	}
	return level, nil
}

// parseAssignments reads "key=value" pairs.
func parseAssignments(args []string) (map[string]string, error) {
	if len(args) == 0 {
		return nil, errUsage
	}

	out := make(map[string]string, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("%w: %q is not key=value", errUsage, arg)
		}
		out[key] = strings.TrimSpace(value)
	}
	return out, nil
}
