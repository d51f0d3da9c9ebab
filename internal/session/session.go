// Package session keeps the state of one interactive pricing session: the
// parameter set in use, the job being edited, the margin and the last
// result, together with its Clean/Stale state.
package session

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"printk/internal/calculators"
	"printk/internal/params"
)

var (
	ErrStale    = errors.New("result is stale, recalculate first")
	ErrNoResult = errors.New("no result calculated yet")
)

// ParamStore persists the parameter set.
type ParamStore interface {
	Save(set params.Set) error
}

var _ ParamStore = (*params.Store)(nil)

// Result is one successful calculation.
type Result struct {
	Job       calculators.Job
	Breakdown calculators.Breakdown
	Sale      calculators.Sale
}

// Session is owned by a single operator and is not safe for concurrent use.
type Session struct {
	store  ParamStore
	logger *zap.Logger

	params params.Set
	job    calculators.Job
	margin float64

	last      *Result
	state     ResultState
	alertSent bool
}

func New(store ParamStore, set params.Set, marginPercent float64, logger *zap.Logger) *Session {
	if marginPercent < 0 {
		marginPercent = 0
	}
	return &Session{
		store:  store,
		logger: logger,
		params: set.Clone(),
		job:    calculators.Job{Quantity: 1},
		margin: marginPercent,
		state:  StateStale,
	}
}

// Params returns a copy of the parameter set in use.
func (s *Session) Params() params.Set {
	return s.params.Clone()
}

func (s *Session) Job() calculators.Job {
	return s.job
}

func (s *Session) Margin() float64 {
	return s.margin
}

func (s *Session) State() ResultState {
	return s.state
}

// SetJob replaces the whole job input.
func (s *Session) SetJob(job calculators.Job) {
	s.job = job
	s.markStale("job")
}

func (s *Session) SetDimensions(lengthMM, widthMM float64, quantity int) {
	s.job.LengthMM = lengthMM
	s.job.WidthMM = widthMM
	s.job.Quantity = quantity
	s.markStale("dimensions")
}

func (s *Session) SetCMYKLevel(level int) {
	s.job.CMYKLevel = level
	s.markStale("cmyk_level")
}

func (s *Session) SetWhiteLevel(level int) {
	s.job.WhiteLevel = level
	s.markStale("white_level")
}

// SetMargin stores the sale margin; negative values count as zero.
func (s *Session) SetMargin(percent float64) {
	if percent < 0 {
		percent = 0
	}
	s.margin = percent
	s.markStale("margin")
}

// UpdateParams applies operator edits and saves the resulting set. Nothing
// changes, in memory or on disk, unless every edit is valid and the save
// succeeds.
func (s *Session) UpdateParams(edits map[string]string) error {
	const operation = "session.UpdateParams"

	next, err := params.Apply(s.params, edits)
	if err != nil {
		return fmt.Errorf("%s: %w", operation, err)
	}
	if err := s.store.Save(next); err != nil {
		return fmt.Errorf("%s: %w", operation, err)
	}

	s.params = next
	s.markStale("parameters")
	return nil
}

// Recalculate prices the current job. On success the session becomes Clean;
// on failure the previous result is kept and the state does not change.
func (s *Session) Recalculate() (Result, error) {
	const operation = "session.Recalculate"

	b, err := calculators.Compute(s.params, s.job)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", operation, err)
	}

	res := Result{
		Job:       s.job,
		Breakdown: b,
		Sale:      calculators.SalePrice(b.TotalJobCost, b.Quantity, s.margin),
	}
	s.last = &res
	s.state = StateClean
	s.alertSent = false

	s.logger.Debug("Job recalculated",
		zap.Float64("total_job_cost", b.TotalJobCost),
		zap.Float64("cost_per_piece", b.CostPerPiece))

	return res, nil
}

// Report returns the last result for the detailed view. It refuses while the
// result is stale.
func (s *Session) Report() (Result, error) {
	if s.last == nil {
		return Result{}, ErrNoResult
	}
	if !s.state.IsClean() {
		return Result{}, ErrStale
	}
	return *s.last, nil
}

// Last returns the last result even when stale, so it can stay on screen
// marked as outdated.
func (s *Session) Last() (Result, bool, ResultState) {
	if s.last == nil {
		return Result{}, false, s.state
	}
	return *s.last, true, s.state
}

// TakeStaleAlert reports whether the operator should be warned that the
// shown result is outdated. It returns true once per stale period.
func (s *Session) TakeStaleAlert() bool {
	if s.last == nil || s.state.IsClean() || s.alertSent {
		return false
	}
	s.alertSent = true
	return true
}

func (s *Session) markStale(reason string) {
	if s.state.IsClean() {
		s.logger.Debug("Result marked stale", zap.String("reason", reason))
	}
	s.state = StateStale
}
