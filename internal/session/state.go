package session

// ResultState tells whether the last result still matches the inputs.
type ResultState string

const (
	// StateClean means the last result was computed from the current inputs.
	StateClean ResultState = "Clean"

	// StateStale means an input or parameter changed after the last result,
	// or nothing has been computed yet.
	StateStale ResultState = "Stale"
)

// String returns the string representation of ResultState
func (s ResultState) String() string {
	return string(s)
}

// IsClean returns true if the last result can be shown as current
func (s ResultState) IsClean() bool {
	return s == StateClean
}
