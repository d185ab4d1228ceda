package cli

import (
	"fmt"
	"os"

	"github.com/chetan-code/missioncontrol/internal/auth"
	"github.com/chetan-code/missioncontrol/internal/db"
	"github.com/chetan-code/missioncontrol/internal/repository"
	"github.com/chetan-code/missioncontrol/internal/service"
	"github.com/spf13/cobra"
)

// newCreateAdminCmd provisions an admin account. Registration only ever
// creates plain users, so the first admin comes from here.
func newCreateAdminCmd(opts *options) *cobra.Command {
	var email, username, password string

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an account with the admin role",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			setupSlog(os.Stderr, cfg.LogLevel)
			if password == "" {
				password = os.Getenv("ADMIN_PASSWORD")
			}

			database, err := db.Open(cfg.DBURL)
			if err != nil {
				return fmt.Errorf("opening database: %w", err)
			}
			defer database.Close()

			admin := service.NewAdminService(repository.NewUserRepo(database), auth.NewPasswordHasher(auth.DefaultHashParams))
			u, err := admin.CreateAdmin(cmd.Context(), email, username, password)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created admin %s (%s)\n", u.Username, u.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Admin email")
	cmd.Flags().StringVar(&username, "username", "", "Admin username")
	cmd.Flags().StringVar(&password, "password", "", "Admin password (or ADMIN_PASSWORD)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("username")

	return cmd
}
