package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/abhisek/primate/internal/catalog"
	"github.com/abhisek/primate/internal/config"
	"github.com/abhisek/primate/internal/logging"
	"github.com/abhisek/primate/internal/progress"
	"github.com/abhisek/primate/internal/scheduler"
	"github.com/abhisek/primate/internal/store"
)

// experiment bundles what every command needs: configuration, the
// condition catalog, the scheduler and the roster as last saved.
type experiment struct {
	cfg       *config.Config
	logger    *slog.Logger
	logCloser io.Closer
	catalog   *catalog.Catalog
	scheduler *scheduler.Scheduler
	roster    *progress.Roster
}

// openExperiment loads configuration and the catalog and reads the roster.
// A missing progress file is an error unless createRoster is set, in which
// case the roster starts empty. A corrupt file is always an error.
func openExperiment(cmd *cobra.Command, createRoster bool) (*experiment, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	logger, closer, err := logging.New(cfg.LogDir)
	if err != nil {
		return nil, err
	}
	exp := &experiment{cfg: cfg, logger: logger, logCloser: closer}

	exp.catalog, err = catalog.Load(cfg.VideoDir, cfg.Conditions.Order)
	if err != nil {
		exp.Close()
		return nil, err
	}
	exp.scheduler, err = scheduler.New(exp.catalog, cfg.TotalTrials)
	if err != nil {
		exp.Close()
		return nil, err
	}

	exp.roster, err = progress.Load(cfg.ProgressFile)
	if errors.Is(err, progress.ErrProgressFileMissing) {
		if !createRoster {
			err = fmt.Errorf("%w (run `primate subject add <name>` to create it)", err)
		} else {
			logger.Info("progress file missing, starting empty roster", "path", cfg.ProgressFile)
			exp.roster, err = progress.NewRoster()
		}
	}
	if err == nil {
		err = exp.roster.Validate(cfg.TotalTrials)
	}
	if err != nil {
		exp.Close()
		return nil, err
	}

	logger.Info("experiment loaded",
		"config", cfg.Path,
		"conditions", exp.catalog.Len(),
		"subjects", len(exp.roster.Subjects()),
		"total_trials", cfg.TotalTrials,
	)
	return exp, nil
}

// openStore opens the SQLite trial mirror.
func (e *experiment) openStore() (*store.Store, error) {
	if err := store.EnsureDir(e.cfg.Database); err != nil {
		return nil, err
	}
	st, err := store.Open(e.cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}

func (e *experiment) Close() error {
	return e.logCloser.Close()
}
