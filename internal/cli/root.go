// Package cli implements the playstate command line.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/llehouerou/playstate/internal/config"
	"github.com/llehouerou/playstate/internal/errmsg"
	"github.com/llehouerou/playstate/internal/errreport"
	"github.com/llehouerou/playstate/internal/logger"
	"github.com/llehouerou/playstate/internal/metrics"
	"github.com/llehouerou/playstate/internal/musicapi"
	"github.com/llehouerou/playstate/internal/session"
	"github.com/llehouerou/playstate/internal/state"
)

// Set via ldflags at build time
var Version = "dev"

// env holds the flags and the services built from them for one invocation.
type env struct {
	cfgFile     string
	jsonOut     bool
	verbose     bool
	showMetrics bool

	cfg      *config.Config
	logger   *slog.Logger
	report   *errreport.Reporter
	registry *prometheus.Registry
	store    *state.Manager
	session  *session.Session
	api      *musicapi.Client
}

func newRootCmd() (*cobra.Command, *env) {
	e := &env{}

	root := &cobra.Command{
		Use:   "playstate",
		Short: "Playback queue and history state from the command line",
		Long: `playstate keeps the recent searches, played tracks and favorites of a
music player and drives its playing queue against the music service.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return e.init(cmd)
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVarP(&e.cfgFile, "config", "c", "", "config file (default: ~/.config/playstate/config.toml)")
	root.PersistentFlags().BoolVarP(&e.jsonOut, "json", "j", false, "output as JSON")
	root.PersistentFlags().BoolVarP(&e.verbose, "verbose", "v", false, "verbose output")
	root.PersistentFlags().BoolVar(&e.showMetrics, "metrics", false, "print counters to stderr on exit")

	root.AddCommand(
		newHistoryCmd(e),
		newSearchCmd(e),
		newPlayCmd(e),
		newFavoriteCmd(e),
		newRecommendCmd(e),
		newDiscsCmd(e),
		newUIDCmd(e),
		newSnapshotsCmd(e),
	)
	return root, e
}

func (e *env) init(cmd *cobra.Command) error {
	var err error
	if e.cfgFile != "" {
		e.cfg, err = config.LoadFrom(e.cfgFile)
	} else {
		e.cfg, err = config.Load()
	}
	if err != nil {
		return errors.New(errmsg.FormatWith(errmsg.OpConfigLoad, e.cfgFile, err))
	}

	level := e.cfg.Log.Level
	if e.verbose {
		level = "debug"
	}
	e.logger = logger.New(logger.Config{
		Level:           level,
		Output:          cmd.ErrOrStderr(),
		DisableSampling: e.cfg.Log.DisableSampling,
	})

	e.report = errreport.New(false, e.logger)
	if e.cfg.HasSentryConfig() {
		e.report, err = errreport.Init(errreport.Options{
			DSN:         e.cfg.Sentry.DSN,
			Environment: e.cfg.Sentry.Environment,
			Release:     "playstate@" + Version,
		}, e.logger)
		if err != nil {
			e.logger.Warn(errmsg.Format(errmsg.OpInitialize, err))
		}
	}

	e.registry = prometheus.NewRegistry()
	m := metrics.New(e.registry)

	e.store, err = state.Open(state.Options{
		Path:      e.cfg.Storage.Path,
		SaveDelay: e.cfg.SaveDelay(),
		Logger:    e.logger,
		Reporter:  e.report,
		Metrics:   m,
	})
	if err != nil {
		e.report.Capture(err, "cli", errmsg.OpStorageOpen)
		return errors.New(errmsg.Format(errmsg.OpStorageOpen, err))
	}

	hist := e.cfg.GetHistoryConfig()
	e.session = session.New(e.store, session.Options{
		Capacities: session.Capacities{
			Search:   hist.SearchCapacity,
			Play:     hist.PlayCapacity,
			Favorite: hist.FavoriteCapacity,
		},
		Logger:   e.logger,
		Reporter: e.report,
		Metrics:  m,
	})

	api := e.cfg.GetAPIConfig()
	e.api = musicapi.New(musicapi.Options{
		Debug:    api.Debug,
		ProxyURL: api.ProxyURL,
		Timeout:  api.Timeout(),
		Logger:   e.logger,
	})
	return nil
}

// close flushes pending history writes. It runs whether or not the command
// succeeded.
func (e *env) close(stderr io.Writer) error {
	var err error
	if e.store != nil {
		if err = e.store.Close(); err != nil {
			e.report.Capture(err, "cli", errmsg.OpStorageClose)
			err = errors.New(errmsg.Format(errmsg.OpStorageClose, err))
		}
		e.store = nil
	}
	if e.showMetrics && e.registry != nil {
		writeMetrics(stderr, e.registry)
	}
	e.report.Flush(2 * time.Second)
	return err
}

// fail logs and reports err and returns the message shown to the user.
func (e *env) fail(op errmsg.Op, detail string, err error) error {
	e.report.Capture(err, "cli", op)
	e.logger.Debug("command failed", "operation", string(op), "error", err)
	return errors.New(errmsg.FormatWith(op, detail, err))
}

func run(args []string, stdout, stderr io.Writer) error {
	root, e := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	if cerr := e.close(stderr); cerr != nil {
		fmt.Fprintln(stderr, "Error:", cerr)
		if err == nil {
			err = cerr
		}
	}
	return err
}

// Execute runs the root command.
func Execute() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}
