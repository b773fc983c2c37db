package trajcore

import (
	"fmt"
	"os"
	"sync"

	"github.com/spf13/viper"
)

// Config carries the tunable constants of a single engine instance. Unlike
// ShotProps, Config is not per-shot: it is typically loaded once and reused
// across many shots fired by the same Engine.
type Config struct {
	StepMultiplier      float64 // cStepMultiplier
	ZeroFindingAccuracy float64 // cZeroFindingAccuracy
	MinimumVelocity     float64 // cMinimumVelocity, ft/s
	MaximumDrop         float64 // cMaximumDrop, ft (magnitude; always treated as positive)
	MaxIterations       int     // cMaxIterations
	GravityConstant     float64 // cGravityConstant, ft/s^2 (negative: points down)
	MinimumAltitude     float64 // cMinimumAltitude, ft
}

// DefaultConfig mirrors the constants a ballistic calculator ships with out
// of the box: sea-level gravity, a generous altitude floor, and a velocity
// floor low enough to let subsonic pistol rounds still reach their apex.
func DefaultConfig() Config {
	return Config{
		StepMultiplier:      1.0,
		ZeroFindingAccuracy: 0.000005,
		MinimumVelocity:     50.0,
		MaximumDrop:         15000.0,
		MaxIterations:       10,
		GravityConstant:     -32.17405,
		MinimumAltitude:     -1000.0,
	}
}

var (
	cfgOnce    sync.Once
	cfgLoaded  Config
	cfgMu      sync.Mutex
)

// LoadConfig returns the package-level Config singleton, loading overrides
// from the file/path named by the TRAJCORE_CONFIG environment variable (if
// set) the first time it is called, the same "load once, cache, fall back
// to documented defaults" shape as the teacher's smdConfig(). Unlike the
// teacher, a missing or unset path is not an error: the documented defaults
// are a complete, usable configuration on their own.
func LoadConfig() Config {
	cfgOnce.Do(func() {
		cfgMu.Lock()
		defer cfgMu.Unlock()
		cfgLoaded = DefaultConfig()

		confPath := os.Getenv("TRAJCORE_CONFIG")
		if confPath == "" {
			return
		}
		v := viper.New()
		v.SetConfigFile(confPath)
		if err := v.ReadInConfig(); err != nil {
			fmt.Fprintf(os.Stderr, "trajcore: could not read %s, using defaults: %s\n", confPath, err)
			return
		}
		v.SetDefault("step_multiplier", cfgLoaded.StepMultiplier)
		v.SetDefault("zero_finding_accuracy", cfgLoaded.ZeroFindingAccuracy)
		v.SetDefault("minimum_velocity", cfgLoaded.MinimumVelocity)
		v.SetDefault("maximum_drop", cfgLoaded.MaximumDrop)
		v.SetDefault("max_iterations", cfgLoaded.MaxIterations)
		v.SetDefault("gravity_constant", cfgLoaded.GravityConstant)
		v.SetDefault("minimum_altitude", cfgLoaded.MinimumAltitude)

		cfgLoaded = Config{
			StepMultiplier:      v.GetFloat64("step_multiplier"),
			ZeroFindingAccuracy: v.GetFloat64("zero_finding_accuracy"),
			MinimumVelocity:     v.GetFloat64("minimum_velocity"),
			MaximumDrop:         v.GetFloat64("maximum_drop"),
			MaxIterations:       v.GetInt("max_iterations"),
			GravityConstant:     v.GetFloat64("gravity_constant"),
			MinimumAltitude:     v.GetFloat64("minimum_altitude"),
		}
	})
	cfgMu.Lock()
	defer cfgMu.Unlock()
	return cfgLoaded
}

func (c Config) String() string {
	return fmt.Sprintf("[trajcore:config] gravity=%.5f ft/s^2 minVel=%.1f ft/s maxDrop=%.1f ft minAlt=%.1f ft",
		c.GravityConstant, c.MinimumVelocity, c.MaximumDrop, c.MinimumAltitude)
}
