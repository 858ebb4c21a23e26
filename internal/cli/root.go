// Package cli implements the tinify command line tool.
package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/golang/glog"
	"github.com/shestakovda/tinify"
	"github.com/shestakovda/tinify/internal/config"
	"github.com/spf13/cobra"
)

// app carries the configuration loaded before any subcommand runs.
type app struct {
	cfgFile string
	cfg     *config.Config
}

// withClient runs fn with a client built from the loaded configuration.
func (a *app) withClient(fn func(tinify.Client) error) error {
	return tinify.WithClient(a.cfg.Key, fn, a.cfg.Options()...)
}

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	a := new(app)

	root := &cobra.Command{
		Use:   "tinify",
		Short: "Compress, resize and convert images with the Tinify API",
		Long: `tinify sends images to the Tinify API and saves the optimized results.

The API key is read from --key, the TINIFY_KEY environment variable or the
"key" entry of the configuration file (~/.tinify.yaml by default).

Examples:
  tinify validate
  tinify compress photo.jpg
  tinify compress --resize-method fit --width 320 --height 240 -o thumb.jpg photo.jpg
  tinify compress --convert image/webp https://example.com/banner.png`,
		Version:       tinify.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) (err error) {
			// glog refuses to log before the standard flag set is parsed
			if !flag.Parsed() {
				_ = flag.CommandLine.Parse(nil)
			}

			a.cfg, err = config.Load(a.cfgFile, cmd.Root().PersistentFlags())
			return err
		},
	}

	root.CompletionOptions.DisableDefaultCmd = true

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "Configuration file (default ~/.tinify.yaml)")
	pf.String(config.KeyKey, "", "API key")
	pf.String(config.KeyAppID, "", "Application identifier appended to the User-Agent")
	pf.String(config.KeyProxy, "", "HTTP proxy address")
	pf.Duration(config.KeyTimeout, 0, "Request timeout, 0 waits for the transport limits")
	pf.String(config.KeyEndpoint, tinify.APIEndpoint, "API endpoint")
	pf.AddGoFlagSet(flag.CommandLine)

	root.AddCommand(
		newCompressCommand(a),
		newValidateCommand(a),
		newVersionCommand(),
	)

	return root
}

// Execute runs the tool until it finishes or is interrupted.
func Execute() {
	defer glog.Flush()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		glog.Flush()
		stop()
		os.Exit(1)
	}
}
