// Package app ties the bus, the tree walker and the process resolver
// together: it enumerates services, applies the user's filters and
// renders the grouped report.
package app

import (
	"github.com/charmbracelet/log"

	"dbusls/internal/proc"
)

// Bus is the subset of bus operations the enumerator consumes. It is
// satisfied by *bus.Conn and stubbed in tests.
type Bus interface {
	ListNames() ([]string, error)
	ListActivatableNames() ([]string, error)
	ProcessID(name string) (uint32, error)
	Introspect(service, path string) (string, error)
}

// readCmdline is stubbed in tests.
var readCmdline = proc.Cmdline

// Options configures the top-level controller.
type Options struct {
	// Bus is the connection the run enumerates. Required.
	Bus Bus
	// Logger receives diagnostics; results never go through it.
	// Defaults to the package-level charmbracelet logger.
	Logger *log.Logger
	// MaxWalkDepth bounds the introspection walk; zero means the
	// walker's default.
	MaxWalkDepth int
}

// App exposes the high-level operations the CLI/TUI reuse.
type App struct {
	bus      Bus
	logger   *log.Logger
	maxDepth int
}

// New constructs the shared controller facade.
func New(opts Options) *App {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &App{
		bus:      opts.Bus,
		logger:   logger,
		maxDepth: opts.MaxWalkDepth,
	}
}
