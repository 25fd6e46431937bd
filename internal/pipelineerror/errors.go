// Package pipelineerror defines the error taxonomy for the pipeline. Failures
// are local to one unit of work (one currency pair); downstream stages exclude
// the failed unit instead of aborting the run.
package pipelineerror

import "fmt"

// FetchError represents a failed download for one currency.
// Transient errors (network failures, 5xx) are retried a bounded number of
// times; permanent errors (4xx, malformed responses) are not.
type FetchError struct {
	Currency  string
	Status    int // 0 when no HTTP response was received
	Transient bool
	Err       error
}

func (e *FetchError) Error() string {
	kind := "permanent"
	if e.Transient {
		kind = "transient"
	}
	if e.Status != 0 {
		return fmt.Sprintf("%s fetch error for %s: status %d: %v", kind, e.Currency, e.Status, e.Err)
	}
	return fmt.Sprintf("%s fetch error for %s: %v", kind, e.Currency, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// SchemaError represents a required column missing from a parsed file. The
// affected unit produces no output and downstream treats it as zero coverage.
type SchemaError struct {
	FilePath string
	Field    string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("required column %q missing or empty in %s", e.Field, e.FilePath)
}

// UnitError wraps a stage failure with the unit (pair) it belongs to, so the
// orchestrator can log and exclude the unit without losing the cause.
type UnitError struct {
	Pair  string
	Stage string
	Err   error
}

func (e *UnitError) Error() string {
	return fmt.Sprintf("%s failed for %s: %v", e.Stage, e.Pair, e.Err)
}

func (e *UnitError) Unwrap() error {
	return e.Err
}
