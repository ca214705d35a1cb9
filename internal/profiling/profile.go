// Package profiling starts runtime profiles selected by name on the
// command line.
package profiling

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/pkg/profile"
)

// Stopper ends a running profile and flushes it to disk.
type Stopper interface {
	Stop()
}

//nolint:gochecknoglobals // Read-only lookup table.
var modes = map[string]func(*profile.Profile){
	"block":     profile.BlockProfile,
	"cpu":       profile.CPUProfile,
	"clock":     profile.ClockProfile,
	"goroutine": profile.GoroutineProfile,
	"mem":       profile.MemProfile,
	"allocs":    profile.MemProfileAllocs,
	"heap":      profile.MemProfileHeap,
	"mutex":     profile.MutexProfile,
	"thread":    profile.ThreadcreationProfile,
	"trace":     profile.TraceProfile,
}

// Modes returns the supported profile names in sorted order.
func Modes() []string {
	return slices.Sorted(maps.Keys(modes))
}

type noop struct{}

func (noop) Stop() {}

// Start begins the profile named mode, writing into dir (the working
// directory when empty). An empty mode starts nothing.
func Start(mode, dir string) (Stopper, error) {
	if mode == "" {
		return noop{}, nil
	}

	fn, ok := modes[mode]
	if !ok {
		return nil, fmt.Errorf("unknown profile mode %q (valid: %s)", mode, strings.Join(Modes(), ", "))
	}

	opts := []func(*profile.Profile){fn, profile.Quiet, profile.NoShutdownHook}
	if dir != "" {
		opts = append(opts, profile.ProfilePath(dir))
	}
	return profile.Start(opts...), nil
}
