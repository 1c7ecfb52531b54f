package tablecore

import (
	"time"

	"github.com/saniainf/tablecore/registry"
)

// buildOptions holds configuration accumulated by Builder before Build.
type buildOptions struct {
	registry      registry.Registry
	historyLimit  int
	debounceDelay time.Duration
}

// defaultOptions returns the default build options.
func defaultOptions() buildOptions {
	return buildOptions{
		registry:      registry.DefaultCoreRegistry(),
		historyLimit:  100,
		debounceDelay: 400 * time.Millisecond,
	}
}

// clone creates a copy of buildOptions.
func (o buildOptions) clone() buildOptions {
	return buildOptions{
		registry:      o.registry,
		historyLimit:  o.historyLimit,
		debounceDelay: o.debounceDelay,
	}
}
