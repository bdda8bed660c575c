package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newShortlistCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shortlist",
		Short: "Manage your shortlisted properties",
	}
	cmd.AddCommand(
		newShortlistListCmd(),
		newShortlistToggleCmd(),
		newShortlistRemoveCmd(),
	)
	return cmd
}

func newShortlistListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List shortlisted properties",
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := container.Shortlist.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("list shortlist: %w", err)
			}
			if len(entries) == 0 {
				fmt.Println("Shortlist is empty.")
				return nil
			}
			fmt.Printf("%-36s  %-36s  %s\n", "ENTRY", "PROPERTY", "ADDED")
			for _, e := range entries {
				fmt.Printf("%-36s  %-36s  %s\n", e.ID, e.PropertyID, e.AddedAt.Format("2006-01-02"))
			}
			return nil
		},
	}
}

func newShortlistToggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <property_id>",
		Short: "Add or remove a property from the shortlist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			shortlisted, err := container.Shortlist.Toggle(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("toggle shortlist: %w", err)
			}
			if shortlisted {
				fmt.Println("Added to shortlist.")
			} else {
				fmt.Println("Removed from shortlist.")
			}
			return nil
		},
	}
}

func newShortlistRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <entry_id>",
		Short: "Remove a shortlist entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := container.Shortlist.Remove(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("remove shortlist entry: %w", err)
			}
			fmt.Println("Removed.")
			return nil
		},
	}
}
