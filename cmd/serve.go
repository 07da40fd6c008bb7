package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/abhisek/primate/internal/api"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve a read-only progress API over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		exp, err := openExperiment(cmd, false)
		if err != nil {
			return err
		}
		defer exp.Close()

		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = exp.cfg.Server.Addr
		}

		deps := api.Deps{
			Catalog:      exp.catalog,
			Scheduler:    exp.scheduler,
			ProgressPath: exp.cfg.ProgressFile,
			Logger:       exp.logger,
		}
		st, err := exp.openStore()
		if err != nil {
			exp.logger.Warn("trial mirror unavailable", "path", exp.cfg.Database, "error", err)
		} else {
			defer st.Close()
			deps.Events = st.EventRepo()
		}

		gin.SetMode(gin.ReleaseMode)
		srv := &http.Server{
			Addr:              addr,
			Handler:           api.NewRouter(deps),
			ReadHeaderTimeout: 10 * time.Second,
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			exp.logger.Info("status api listening", "addr", addr)
			errCh <- srv.ListenAndServe()
		}()
		fmt.Printf("Serving status API on http://%s/api\n", addr)

		select {
		case err := <-errCh:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		case <-ctx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		exp.logger.Info("status api shutting down")
		return srv.Shutdown(shutdownCtx)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides server.addr in config)")
}
