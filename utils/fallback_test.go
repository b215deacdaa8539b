package utils

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errSoft = errors.New("soft failure")

func retrySoft(err error) bool { return errors.Is(err, errSoft) }

func TestTryEachFirstSuccessWins(t *testing.T) {
	f := &Fallback{Candidates: []string{"a", "b", "c"}, Retryable: retrySoft, Logger: NewDiscardLogger()}

	var tried []string
	got, err := TryEach(f, "decode", func(c string) (string, error) {
		tried = append(tried, c)
		if c == "a" {
			return "", errSoft
		}
		return "ok-" + c, nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok-b", got)
	assert.Equal(t, []string{"a", "b"}, tried)
}

func TestTryEachAllFailListsAttempts(t *testing.T) {
	f := &Fallback{Candidates: []string{"a", "b"}, Retryable: retrySoft}

	_, err := TryEach(f, "decode", func(c string) (int, error) {
		return 0, errSoft
	})

	require.Error(t, err)
	var ce *CandidatesError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "decode", ce.Operation)
	require.Len(t, ce.Attempts, 2)
	assert.Equal(t, "a", ce.Attempts[0].Candidate)
	assert.Equal(t, "b", ce.Attempts[1].Candidate)
	assert.ErrorIs(t, err, errSoft)
	assert.Contains(t, err.Error(), "all 2 candidates failed")
	assert.True(t, IsCandidatesError(err))
}

func TestTryEachStopsOnHardError(t *testing.T) {
	hard := errors.New("syntax")
	f := &Fallback{Candidates: []string{"a", "b"}, Retryable: retrySoft}

	calls := 0
	_, err := TryEach(f, "parse", func(c string) (int, error) {
		calls++
		return 0, hard
	})

	require.Error(t, err)
	assert.Equal(t, 1, calls)
	assert.ErrorIs(t, err, hard)
	assert.False(t, IsCandidatesError(err))
	assert.Contains(t, err.Error(), "parse (a)")
}

func TestTryEachNoCandidates(t *testing.T) {
	_, err := TryEach(&Fallback{}, "noop", func(string) (int, error) { return 1, nil })
	assert.Error(t, err)
}
