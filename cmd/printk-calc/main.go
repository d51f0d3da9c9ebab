package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"printk/internal/calculators"
	"printk/internal/config"
	"printk/internal/format"
	"printk/internal/params"
	"printk/internal/report"
	"printk/internal/session"
	"printk/pkg/logger"
)

const (
	exitOK = iota
	exitFailure
	exitInvalidInput
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitFailure
	}

	fs := flag.NewFlagSet("printk-calc", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		length     = fs.String("l", "", "lunghezza del pezzo (mm)")
		width      = fs.String("w", "", "larghezza del pezzo (mm)")
		quantity   = fs.String("q", "1", "quantità")
		cmyk       = fs.Int("cmyk", 0, "passaggi CMYK (0-6)")
		white      = fs.Int("bianco", 0, "strati di bianco (0-6)")
		margin     = fs.String("margine", "", "margine di vendita in % (predefinito DEFAULT_MARGIN)")
		xlsxPath   = fs.String("xlsx", "", "scrive il report dettagliato in un file Excel")
		paramsPath = fs.String("params", cfg.ParamsPath, "file dei parametri")
		logLevel   = fs.String("log", "warn", "livello di log")
	)
	if err := fs.Parse(args); err != nil {
		return exitInvalidInput
	}

	zapLogger, err := logger.New(*logLevel)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitFailure
	}
	defer zapLogger.Sync()

	store := params.NewStore(*paramsPath, zapLogger)
	set, err := store.Load()
	if err != nil {
		if !errors.Is(err, params.ErrCorruptRecord) {
			zapLogger.Error("Failed to load parameters", zap.Error(err))
			return exitFailure
		}
		zapLogger.Warn("Parameter record is corrupt, using defaults", zap.Error(err))
		set = params.Defaults()
	}

	marginPercent := cfg.DefaultMargin
	if *margin != "" {
		marginPercent = calculators.ParseMargin(*margin)
	}

	job, err := readJob(*length, *width, *quantity, *cmyk, *white)
	if err != nil {
		fmt.Fprintf(stderr, "valori non validi: %v\n", err)
		return exitInvalidInput
	}

	sess := session.New(store, set, marginPercent, zapLogger)
	sess.SetJob(job)
	res, err := sess.Recalculate()
	if err != nil {
		fmt.Fprintln(stderr, "Inserisci valori validi per lunghezza, larghezza e quantità (maggiore di 0).")
		return exitInvalidInput
	}

	lines := report.Build(res)
	fmt.Fprint(stdout, report.Text(report.Summary(res)))
	fmt.Fprintln(stdout)
	fmt.Fprint(stdout, report.Text(lines))

	if *xlsxPath != "" {
		if err := writeXLSX(*xlsxPath, lines); err != nil {
			zapLogger.Error("Failed to export report", zap.String("path", *xlsxPath), zap.Error(err))
			return exitFailure
		}
	}

	return exitOK
}

func readJob(length, width, quantity string, cmyk, white int) (calculators.Job, error) {
	l, err := format.ParseDecimal(length)
	if err != nil {
		return calculators.Job{}, fmt.Errorf("-l: %w", err)
	}
	w, err := format.ParseDecimal(width)
	if err != nil {
		return calculators.Job{}, fmt.Errorf("-w: %w", err)
	}
	q, err := format.ParseInt(quantity)
	if err != nil {
		return calculators.Job{}, fmt.Errorf("-q: %w", err)
	}

	job := calculators.Job{
		LengthMM:   l,
		WidthMM:    w,
		Quantity:   q,
		CMYKLevel:  cmyk,
		WhiteLevel: white,
	}
	if err := job.ValidateLevels(); err != nil {
		return calculators.Job{}, err
	}
	return job, nil
}

func writeXLSX(path string, lines []report.Line) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := report.WriteXLSX(f, "Report calcolo", lines); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
