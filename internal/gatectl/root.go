// Package gatectl implements the gatekeeper operator command line: hashing
// secrets into stored verifiers, seeding a credential store and probing a
// running server.
package gatectl

import (
	"context"
	"io"
	"log/slog"

	"github.com/dmitrijs2005/gatekeeper/internal/buildinfo"
	"github.com/dmitrijs2005/gatekeeper/internal/logging"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	verbose bool
}

func (o *rootOptions) logger(w io.Writer) logging.Logger {
	level := slog.LevelWarn
	if o.verbose {
		level = slog.LevelDebug
	}
	return logging.NewText(w, level)
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "gatectl",
		Short: "Operator tool for the gatekeeper auth server",
		Long: `gatectl prepares and checks gatekeeper deployments: it turns secrets
into stored verifiers, provisions users into a credential store and checks
whether a server answers its liveness probe.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.Version = buildinfo.Version
	root.SetVersionTemplate("gatectl version {{.Version}}\n")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging to stderr")

	root.AddCommand(newHashCmd(), newSeedCmd(opts), newHealthCmd(opts))
	return root
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}
