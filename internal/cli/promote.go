package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/owaspcebu/ctf-platform/internal/pkg/config"
)

func newPromoteCmd() *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "promote",
		Short: "Grant the ADMIN role to a registered user",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPromote(cmd.Context(), cmd, email)
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email of the account to promote")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func runPromote(ctx context.Context, cmd *cobra.Command, email string) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	log := initLogger(cfg)

	a, err := newApp(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer a.Close(context.Background())

	u, err := a.admin.Promote(ctx, email)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s (%s) is now %s\n", u.Name, u.Email, u.Role)
	return nil
}
