package utils

import (
	"errors"
	"fmt"
	"strings"
)

// Attempt records one candidate that failed with a retryable error.
type Attempt struct {
	Candidate string
	Err       error
}

// CandidatesError is returned by TryEach when every candidate failed.
type CandidatesError struct {
	Operation string
	Attempts  []Attempt
}

func (e *CandidatesError) Error() string {
	parts := make([]string, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		parts = append(parts, fmt.Sprintf("%s: %v", a.Candidate, a.Err))
	}
	return fmt.Sprintf("%s: all %d candidates failed (%s)",
		e.Operation, len(e.Attempts), strings.Join(parts, "; "))
}

// Unwrap exposes every attempt's error to errors.Is / errors.As.
func (e *CandidatesError) Unwrap() []error {
	errs := make([]error, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		errs = append(errs, a.Err)
	}
	return errs
}

// Fallback holds an ordered list of candidate strategies.
// Retryable decides whether a failure moves on to the next candidate;
// a nil Retryable treats every error as retryable.
type Fallback struct {
	Candidates []string
	Retryable  func(error) bool
	Logger     *Logger
}

// TryEach runs fn for each candidate in order and returns the first success.
// A non-retryable error stops the loop immediately and is returned wrapped
// with the candidate name.
func TryEach[T any](f *Fallback, operationName string, fn func(candidate string) (T, error)) (T, error) {
	var zero T
	if len(f.Candidates) == 0 {
		return zero, fmt.Errorf("%s: no candidates configured", operationName)
	}

	attempts := make([]Attempt, 0, len(f.Candidates))
	for i, candidate := range f.Candidates {
		result, err := fn(candidate)
		if err == nil {
			if i > 0 && f.Logger != nil {
				f.Logger.Debug("[fallback] %s succeeded with candidate %q after %d failure(s)",
					operationName, candidate, i)
			}
			return result, nil
		}

		if f.Retryable != nil && !f.Retryable(err) {
			return zero, fmt.Errorf("%s (%s): %w", operationName, candidate, err)
		}

		attempts = append(attempts, Attempt{Candidate: candidate, Err: err})
		if f.Logger != nil && i < len(f.Candidates)-1 {
			f.Logger.Debug("[fallback] %s failed with candidate %q: %v, trying %q",
				operationName, candidate, err, f.Candidates[i+1])
		}
	}

	return zero, &CandidatesError{Operation: operationName, Attempts: attempts}
}

// IsCandidatesError reports whether err wraps a CandidatesError.
func IsCandidatesError(err error) bool {
	var ce *CandidatesError
	return errors.As(err, &ce)
}
