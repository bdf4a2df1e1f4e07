package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/terminalpro/widgets-backend/config"
	"github.com/terminalpro/widgets-backend/logger"
	"github.com/terminalpro/widgets-backend/metrics"
	"github.com/terminalpro/widgets-backend/server"
	"github.com/terminalpro/widgets-backend/spec"
	"github.com/terminalpro/widgets-backend/widget"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var cfgFile string

	root := &cobra.Command{
		Use:           "widgets-backend",
		Short:         "Serve a Terminal Pro widget manifest derived from an OpenAPI document",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "path to config file")

	root.AddCommand(newServeCommand(&cfgFile))
	root.AddCommand(newGenerateCommand(&cfgFile))
	return root
}

func newServeCommand(cfgFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Build the manifest and serve it alongside the discovery endpoint",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*cfgFile)
			if err != nil {
				return err
			}
			if cfg.SchemaSource == "" {
				return fmt.Errorf("schema_source is required (config file or WIDGETS_SCHEMA_SOURCE)")
			}

			log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
			defer func() { _ = log.Sync() }()

			loader := &spec.Loader{Timeout: cfg.LoadTimeout()}
			srv := server.New(
				func(ctx context.Context) (*spec.Document, error) { return loader.Load(ctx, cfg.SchemaSource) },
				widget.Options{RequireNonEmpty: cfg.RequireNonEmpty},
				log,
				metrics.New(),
			)

			if _, err := srv.Rebuild(cmd.Context()); err != nil {
				// Keep serving; the widgets endpoint answers 503 until a
				// refresh succeeds.
				log.Error("initial build failed", zap.Error(err))
			}

			log.Info("listening",
				zap.String("addr", cfg.Addr()),
				zap.String("schema_source", cfg.SchemaSource))
			httpServer := &http.Server{Addr: cfg.Addr(), Handler: srv.Handler()}
			return httpServer.ListenAndServe()
		},
	}
}

func newGenerateCommand(cfgFile *string) *cobra.Command {
	var source string
	var out string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Build the manifest once and write widgets.json",
		RunE: func(cmd *cobra.Command, args []string) error {
			if source == "" {
				cfg, err := config.Load(*cfgFile)
				if err != nil {
					return err
				}
				source = cfg.SchemaSource
			}
			if source == "" {
				return fmt.Errorf("a schema source is required (--source or config)")
			}

			loader := &spec.Loader{}
			doc, err := loader.Load(cmd.Context(), source)
			if err != nil {
				return err
			}

			manifest, warnings, err := widget.Build(doc, widget.Options{})
			if err != nil {
				return err
			}
			for _, w := range warnings {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", w)
			}

			body, err := json.MarshalIndent(manifest, "", "  ")
			if err != nil {
				return err
			}
			if out == "-" {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(body))
				return err
			}
			return os.WriteFile(out, append(body, '\n'), 0o644)
		},
	}
	cmd.Flags().StringVar(&source, "source", "", "OpenAPI document URL or file path")
	cmd.Flags().StringVar(&out, "out", "-", "output file, - for stdout")
	return cmd
}
