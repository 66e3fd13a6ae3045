package gatectl

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gatekeeper/internal/client/client"
	"github.com/dmitrijs2005/gatekeeper/internal/client/dispatch"
	"github.com/spf13/cobra"
)

func newHealthCmd(opts *rootOptions) *cobra.Command {
	var (
		url     string
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check that a server answers its liveness probe",
		Long: `Sends one GET /health and classifies the reply the same way the
interactive client does. Exits non-zero unless the server is online.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tr := client.NewHTTPClient(url, timeout, opts.logger(cmd.ErrOrStderr()))
			defer tr.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout+time.Second)
			defer cancel()

			d, err := tr.CheckHealth(ctx)
			if err != nil {
				return err
			}

			var r client.Reply
			select {
			case r = <-tr.Replies():
			case <-ctx.Done():
				return ctx.Err()
			}
			if r.Descriptor.CorrelationID != d.CorrelationID {
				return fmt.Errorf("unexpected reply %s", r.Descriptor.CorrelationID)
			}

			o := dispatch.Classify(r)
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", url, o.Health)
			if o.Health != dispatch.HealthOnline {
				return fmt.Errorf("server is %s: %s", o.Health, o.Message)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&url, "url", "http://127.0.0.1:8080", "server base URL")
	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Second, "request timeout")
	return cmd
}
