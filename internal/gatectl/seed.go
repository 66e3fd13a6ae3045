package gatectl

import (
	"fmt"

	"github.com/dmitrijs2005/gatekeeper/internal/server/config"
	"github.com/dmitrijs2005/gatekeeper/internal/server/services"
	"github.com/dmitrijs2005/gatekeeper/internal/server/store"
	"github.com/dmitrijs2005/gatekeeper/internal/server/verifier"
	"github.com/spf13/cobra"
)

func newSeedCmd(opts *rootOptions) *cobra.Command {
	var driver, dsn, scheme string

	cmd := &cobra.Command{
		Use:   "seed <users.yaml>",
		Short: "Provision users from a YAML file",
		Long: `Creates the users listed in a YAML file in a credential store, applying
schema migrations first. Users whose identifier already exists are skipped.

  users:
    - id: a@b.com
      password: correct
      name: Alice`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if driver == config.StoreDriverMemory {
				return fmt.Errorf("seeding the %q driver has no lasting effect", driver)
			}

			v, err := verifier.New(scheme)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			st, err := store.Open(ctx, driver, dsn)
			if err != nil {
				return err
			}
			defer st.Close()

			seeder := services.NewSeeder(st, v, opts.logger(cmd.ErrOrStderr()))
			n, err := seeder.SeedFromFile(ctx, args[0])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "created %d user(s)\n", n)
			return nil
		},
	}

	var defaults config.Config
	defaults.LoadDefaults()

	cmd.Flags().StringVar(&driver, "driver", defaults.StoreDriver, "store driver: postgres or sqlite")
	cmd.Flags().StringVar(&dsn, "dsn", defaults.DatabaseDSN, "database DSN")
	cmd.Flags().StringVar(&scheme, "scheme", defaults.PasswordScheme, "verifier scheme: bcrypt, argon2id or plain")
	return cmd
}
