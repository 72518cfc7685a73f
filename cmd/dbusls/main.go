package main

import (
	"errors"
	"os"

	"github.com/briandowns/spinner"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"dbusls/internal/app"
	"dbusls/internal/bus"
	"dbusls/internal/config"
)

var (
	systemBus  bool
	sessionBus bool
	configPath string

	objectPattern    string
	interfacePattern string
	servicePattern   string
	processPattern   string

	includePrivate bool
	wakeup         bool
	verbose        bool
)

var rootCmd = &cobra.Command{
	Use:   "dbusls (--system | --session)",
	Short: "dbusls: list D-Bus services, objects and interfaces",
	Long: `dbusls enumerates the services registered on the system or session bus,
walks each service's object tree via introspection and prints the
discovered objects and interfaces. Services backed by the same process
are grouped under a single block. Filters take glob patterns (* and ?)
matched against the full string.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, cfg, cleanup, err := newApp()
		if err != nil {
			return err
		}
		defer cleanup()

		// Advisory progress on stderr; stopped before anything is
		// written to stdout.
		spin := spinner.New(spinner.CharSets[9], cfg.ProgressInterval, spinner.WithWriter(os.Stderr))
		spin.Start()
		services, err := a.Enumerate(app.EnumerateOptions{
			IncludePrivate: includePrivate,
			Wakeup:         wakeup,
		})
		spin.Stop()
		if err != nil {
			return err
		}

		a.Report(os.Stdout, services, app.Filters{
			Object:    objectPattern,
			Interface: interfacePattern,
			Service:   servicePattern,
			Process:   processPattern,
		}, verbose)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&systemBus, "system", false, "List services from the system bus")
	rootCmd.PersistentFlags().BoolVar(&sessionBus, "session", false, "List services from the session bus")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Optional config file (JSON)")
	rootCmd.PersistentFlags().BoolVarP(&includePrivate, "all", "a", false, "Show also private names (:X.Y)")
	rootCmd.PersistentFlags().BoolVarP(&wakeup, "wakeup", "w", false, "Start activatable services to inspect them")

	rootCmd.Flags().StringVarP(&objectPattern, "object", "o", "", "Show only services that have an object matching this")
	rootCmd.Flags().StringVarP(&interfacePattern, "interface", "i", "", "Show only services that have an interface matching this")
	rootCmd.Flags().StringVarP(&servicePattern, "service", "s", "", "Show only services whose name matches this")
	rootCmd.Flags().StringVarP(&processPattern, "process", "p", "", "Show only services whose cmd line matches this")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show all the service info when filtering by object, interface or process")
}

// busKind validates the mutually exclusive bus selection flags.
func busKind() (bus.Kind, error) {
	switch {
	case systemBus && !sessionBus:
		return bus.System, nil
	case sessionBus && !systemBus:
		return bus.Session, nil
	}
	return "", errors.New("exactly one of --system or --session is required")
}

// newApp connects to the selected bus and builds the controller shared
// by the root command and the TUI.
func newApp() (*app.App, config.Config, func(), error) {
	kind, err := busKind()
	if err != nil {
		return nil, config.Config{}, nil, err
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Warn("ignoring config", "err", err)
	}

	conn, err := bus.Connect(kind)
	if err != nil {
		return nil, cfg, nil, err
	}

	a := app.New(app.Options{
		Bus:          conn,
		Logger:       log.New(os.Stderr),
		MaxWalkDepth: cfg.MaxWalkDepth,
	})
	return a, cfg, func() { _ = conn.Close() }, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
