package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account",
		RunE: func(cmd *cobra.Command, args []string) error {
			session := container.Sessions.Current()
			if session == nil {
				fmt.Println("Not signed in. Run `estately login`.")
				return nil
			}
			fmt.Printf("Name:    %s\n", session.Profile.Name)
			fmt.Printf("Email:   %s\n", session.Profile.Email)
			fmt.Printf("Contact: %s\n", session.Profile.ContactNo)
			fmt.Printf("Role:    %s\n", session.Role)
			return nil
		},
	}
}
