package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/koios/moonlight-shelf/internal/artwork"
	"github.com/koios/moonlight-shelf/internal/config"
	"github.com/koios/moonlight-shelf/internal/settings"
	"github.com/koios/moonlight-shelf/internal/shelf"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type rootOptions struct {
	appList   string
	logLevel  string
	container string
	bundle    string
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:          "shelf",
		Short:        "Build Moonlight top shelf content from the shared app list",
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.appList, "app-list", "", "app list JSON to use instead of the configured settings store")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level (defaults to LOG_LEVEL)")
	cmd.PersistentFlags().StringVar(&opts.container, "container", "", "shared container directory (defaults to APP_GROUP_CONTAINER)")
	cmd.PersistentFlags().StringVar(&opts.bundle, "bundle", "", "bundle directory holding the placeholder image (defaults to BUNDLE_PATH)")

	cmd.AddCommand(newRenderCommand(opts))
	cmd.AddCommand(newAppsCommand(opts))
	cmd.AddCommand(newLinkCommand())
	return cmd
}

// newProvider applies flag overrides on top of the environment configuration
func newProvider(opts *rootOptions) (*shelf.Provider, func() error, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}
	if opts.container != "" {
		cfg.Artwork.ContainerPath = opts.container
	}
	if opts.bundle != "" {
		cfg.Artwork.BundlePath = opts.bundle
	}

	logger, err := config.NewLogger(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}

	if opts.appList == "" {
		provider, closeFn, err := shelf.NewProviderFromConfig(cfg, logger)
		if err != nil {
			return nil, nil, err
		}
		return provider, func() error {
			_ = logger.Sync()
			return closeFn()
		}, nil
	}

	resolver := artwork.NewResolver(artwork.Options{
		AppGroup:    cfg.Artwork.AppGroup,
		Placeholder: cfg.Artwork.Placeholder,
		Containers:  artwork.StaticContainer{Root: cfg.Artwork.ContainerPath},
		Bundle:      artwork.Bundle{Dir: cfg.Artwork.BundlePath},
	}, logger)
	reader := settings.MapStore{settings.AppListKey: opts.appList}
	logger.Debug("Using app list from flag", zap.Int("bytes", len(opts.appList)))

	return shelf.NewProvider(reader, resolver, logger), func() error {
		_ = logger.Sync()
		return nil
	}, nil
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// errOut is where commands report problems that do not fail the command
func errOut(cmd *cobra.Command, format string, args ...interface{}) {
	fmt.Fprintf(cmd.ErrOrStderr(), format+"\n", args...)
}
