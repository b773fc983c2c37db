package trajcore

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsUsable(t *testing.T) {
	c := DefaultConfig()
	require.Less(t, c.GravityConstant, 0.0, "gravity constant should point down (negative)")
	require.Greater(t, c.MinimumVelocity, 0.0, "minimum velocity floor should be positive")
	require.Greater(t, c.MaximumDrop, 0.0, "maximum drop should be stored as a positive magnitude")
}

// TestLoadConfigFallsBackWithoutEnv checks the deliberate divergence from
// the teacher's smdConfig(): an unset TRAJCORE_CONFIG must not panic, and
// must yield the documented defaults.
func TestLoadConfigFallsBackWithoutEnv(t *testing.T) {
	t.Setenv("TRAJCORE_CONFIG", "")
	got := LoadConfig()
	want := DefaultConfig()
	require.Equal(t, want, got, "LoadConfig() without env should match DefaultConfig()")
}
