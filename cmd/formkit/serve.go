package main

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/formkit/internal/api"
	"github.com/dmitrymomot/formkit/internal/catalog"
	"github.com/dmitrymomot/formkit/pkg/httpserver"
	"github.com/dmitrymomot/formkit/pkg/logger"
	"github.com/dmitrymomot/formkit/pkg/schema"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the schemas of a directory over HTTP",
		Long: `Loads every schema of the schema directory and validates submissions posted
to /forms/{name}. The server stops gracefully on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}
	cmd.Flags().String("schema-dir", "", "Directory of form schemas (default $FORMKIT_SCHEMA_DIR)")
	cmd.Flags().String("addr", "", "Listen address (default $FORMKIT_HTTP_ADDR)")
	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if dir, _ := cmd.Flags().GetString("schema-dir"); dir != "" {
		cfg.SchemaDir = dir
	}
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.HTTP.Addr = addr
	}
	log := cfg.Logger(cmd.ErrOrStderr())
	logger.SetAsDefault(log)
	ctx := cmd.Context()

	forms, err := schema.LoadDir(ctx, cfg.SchemaDir, schema.WithKeyFormat(cfg.KeyFormat()))
	if err != nil {
		return err
	}
	log.InfoContext(ctx, "schemas loaded",
		slog.String("dir", cfg.SchemaDir),
		logger.Count("forms", len(forms)),
	)

	tr, err := catalog.NewTranslator(ctx, log, cfg.DefaultLanguage, cfg.Messages...)
	if err != nil {
		return err
	}
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	h, err := api.NewHandler(forms, tr, api.WithLogger(log), api.WithRegistry(reg))
	if err != nil {
		return err
	}

	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
	return srv.Run(ctx, h)
}
