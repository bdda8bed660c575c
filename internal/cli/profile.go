package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/you/estately/domain"
)

func newProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "View and edit your profile",
	}
	cmd.AddCommand(newProfileShowCmd(), newProfileUpdateCmd())
	return cmd
}

func newProfileShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show your profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := container.Profile.GetProfile(cmd.Context())
			if err != nil {
				return fmt.Errorf("get profile: %w", err)
			}
			fmt.Printf("Name:    %s\n", p.Name)
			fmt.Printf("Email:   %s\n", p.Email)
			fmt.Printf("Contact: %s\n", p.ContactNo)
			return nil
		},
	}
}

func newProfileUpdateCmd() *cobra.Command {
	var (
		name  string
		email string
	)

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update your name or email",
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" && email == "" {
				return fmt.Errorf("nothing to update: pass --name or --email")
			}
			p, err := container.Profile.UpdateProfile(cmd.Context(), &domain.Profile{Name: name, Email: email})
			if err != nil {
				return fmt.Errorf("update profile: %w", err)
			}
			fmt.Printf("Profile updated: %s <%s>\n", p.Name, p.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New display name")
	cmd.Flags().StringVar(&email, "email", "", "New email address")
	return cmd
}
