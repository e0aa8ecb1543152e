package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/spf13/cobra"

	"github.com/shelf-ui/shelf/internal/config"
	"github.com/shelf-ui/shelf/internal/library"
	"github.com/shelf-ui/shelf/pkg/metrics"
	"github.com/shelf-ui/shelf/pkg/server"
	"github.com/shelf-ui/shelf/pkg/telemetry"
	"github.com/shelf-ui/shelf/pkg/thumbs"
)

func serveCmd() *cobra.Command {
	var (
		addr       string
		configPath string
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the catalog server",
		Long: `Start the catalog server.

Configuration is read from shelf.yaml in the working directory.
Thumbnails are served from S3 when thumbs.bucket is configured,
otherwise from an in-memory store.

Examples:
  shelf serve
  shelf serve --addr=0.0.0.0:8460
  shelf serve --config=deploy/shelf.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(addr, configPath, verbose)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (default from shelf.yaml)")
	cmd.Flags().StringVarP(&configPath, "config", "c", config.ConfigFileName, "Path to configuration file")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	return cmd
}

func runServe(addr, configPath string, verbose bool) error {
	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.Server.Address = addr
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))

	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return err
	}

	lib := library.New()
	for _, seed := range cfg.Seed {
		lib.Add(seed.Title, seed.ThumbKey, seed.Description)
	}

	srv := server.New(lib, store,
		server.WithAddress(cfg.Server.Address),
		server.WithPollInterval(cfg.Server.PollInterval),
		server.WithLogger(logger),
		server.WithRecorder(metrics.NewRecorder(
			metrics.WithNamespace(cfg.Metrics.Namespace),
		)),
		server.WithTracer(telemetry.NewTracer(
			telemetry.WithContainerName("catalog"),
		)),
	)

	fmt.Printf("shelf %s listening on http://%s\n", version, cfg.Server.Address)
	return srv.Start(ctx)
}

// buildStore picks the thumbnail backend from configuration. An empty
// bucket means the in-memory store.
func buildStore(ctx context.Context, cfg *config.Config) (thumbs.Store, error) {
	if cfg.Thumbs.Bucket == "" {
		return thumbs.NewMemStore(), nil
	}

	var opts []func(*awsconfig.LoadOptions) error
	if cfg.Thumbs.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Thumbs.Region))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}
	client := s3.NewFromConfig(awsCfg)
	return thumbs.NewS3Store(client, cfg.Thumbs.Bucket, cfg.Thumbs.Prefix), nil
}
