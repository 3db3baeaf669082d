package serrors_test

import (
	"errors"
	"harvester/pkg/serrors"
	"testing"

	"github.com/stretchr/testify/require"
)

type customError struct{ msg string }

func (e customError) Error() string { return e.msg }

func TestDefaultKindsDistinct(t *testing.T) {
	kinds := []serrors.Kind{
		serrors.ErrTransient,
		serrors.ErrFetchFailed,
		serrors.ErrMalformedContent,
		serrors.ErrProvider,
		serrors.ErrRateLimited,
		serrors.ErrConfig,
		serrors.ErrNotFound,
	}
	seen := map[serrors.Kind]bool{}
	for i, k := range kinds {
		require.NotNil(t, k, "kind at index %d is nil", i)
		require.False(t, seen[k], "kind at index %d is duplicate: %v", i, k)
		seen[k] = true
	}

	// Ensure some expected inequalities
	require.NotEqual(t, serrors.ErrTransient, serrors.ErrFetchFailed, "Transient should not equal FetchFailed")
}

func TestErrorFormatting(t *testing.T) {
	base := errors.New("connection reset")

	e1 := serrors.With(serrors.ErrFetchFailed, "fetch of %q failed", "https://a.example")
	require.Equal(t, `fetch of "https://a.example" failed`, e1.Error(), "With() Error() mismatch")

	e2 := serrors.Wrap(serrors.ErrTransient, base, "sending request")
	require.Equal(t, "sending request: connection reset", e2.Error(), "Wrap() Error() mismatch")

	e3 := serrors.KindOnly(serrors.ErrMalformedContent)
	require.Equal(t, "MALFORMED_CONTENT", e3.Error(), "KindOnly Error() mismatch")
}

func TestIsMatchesKindAndWrapped(t *testing.T) {
	base := customError{"root cause"}
	e := serrors.Wrap(serrors.ErrProvider, base, "searching")

	require.ErrorIs(t, e, serrors.ErrProvider)
	require.ErrorIs(t, e, base)
	require.NotErrorIs(t, e, serrors.ErrConfig, "errors.Is should not match a different kind")
}

func TestAsMatchesKindAndWrapped(t *testing.T) {
	base := &customError{"root cause"}
	e := serrors.Wrap(serrors.ErrProvider, base, "searching")

	var k serrors.Kind
	require.ErrorAs(t, e, &k, "errors.As should extract Kind")
	require.Equal(t, serrors.ErrProvider, k)

	var ce *customError
	require.ErrorAs(t, e, &ce, "errors.As should extract wrapped error type")
	require.Equal(t, base, ce, "extracted cause pointer mismatch")
}

func TestAccessors(t *testing.T) {
	base := errors.New("boom")
	e := serrors.Wrap(serrors.ErrRateLimited, base, "throttled")
	require.Equal(t, serrors.ErrRateLimited, e.Kind())
	require.Equal(t, "throttled", e.Message())
	require.Equal(t, base, e.Cause())
}
