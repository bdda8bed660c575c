package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/you/estately/domain"
)

func newAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Administrative operations (requires an ADMIN account)",
	}
	cmd.AddCommand(
		newAdminListPropertiesCmd(),
		newAdminAddPropertyCmd(),
		newAdminUpdatePropertyCmd(),
		newAdminRemovePropertyCmd(),
		newAdminBookingsCmd(),
		newAdminSetStatusCmd(),
	)
	return cmd
}

func newAdminListPropertiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list-properties",
		Short: "List the catalogue through the management view",
		RunE: func(cmd *cobra.Command, args []string) error {
			props, err := container.Properties.AdminList(cmd.Context())
			if err != nil {
				return fmt.Errorf("list properties: %w", err)
			}
			printProperties(props)
			return nil
		},
	}
}

func newAdminAddPropertyCmd() *cobra.Command {
	var p domain.Property

	cmd := &cobra.Command{
		Use:   "add-property",
		Short: "Add a property to the catalogue",
		RunE: func(cmd *cobra.Command, args []string) error {
			created, err := container.Properties.Create(cmd.Context(), &p)
			if err != nil {
				return fmt.Errorf("create property: %w", err)
			}
			fmt.Printf("Created property %s (%s)\n", created.ID, created.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&p.Title, "title", "", "Property title")
	cmd.Flags().StringVar(&p.Description, "description", "", "Description")
	cmd.Flags().StringVar(&p.Location, "location", "", "Location")
	cmd.Flags().Int64Var(&p.Price, "price", 0, "Price")
	cmd.Flags().IntVar(&p.Bedrooms, "bedrooms", 0, "Bedrooms")
	cmd.Flags().IntVar(&p.Bathrooms, "bathrooms", 0, "Bathrooms")
	cmd.Flags().IntVar(&p.AreaSqft, "area", 0, "Area in sqft")
	cmd.Flags().BoolVar(&p.Featured, "featured", false, "Mark as featured")
	cobra.CheckErr(cmd.MarkFlagRequired("title"))
	cobra.CheckErr(cmd.MarkFlagRequired("location"))
	cobra.CheckErr(cmd.MarkFlagRequired("price"))
	return cmd
}

func newAdminUpdatePropertyCmd() *cobra.Command {
	var p domain.Property

	cmd := &cobra.Command{
		Use:   "update-property <property_id>",
		Short: "Update a property's fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// The endpoint replaces the record, so start from the current
			// state and overlay only the flags that were set.
			current, err := container.Properties.Get(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("get property: %w", err)
			}
			if !cmd.Flags().Changed("title") {
				p.Title = current.Title
			}
			if !cmd.Flags().Changed("description") {
				p.Description = current.Description
			}
			if !cmd.Flags().Changed("location") {
				p.Location = current.Location
			}
			if !cmd.Flags().Changed("price") {
				p.Price = current.Price
			}
			if !cmd.Flags().Changed("bedrooms") {
				p.Bedrooms = current.Bedrooms
			}
			if !cmd.Flags().Changed("bathrooms") {
				p.Bathrooms = current.Bathrooms
			}
			if !cmd.Flags().Changed("area") {
				p.AreaSqft = current.AreaSqft
			}
			if !cmd.Flags().Changed("featured") {
				p.Featured = current.Featured
			}

			updated, err := container.Properties.Update(cmd.Context(), args[0], &p)
			if err != nil {
				return fmt.Errorf("update property: %w", err)
			}
			fmt.Printf("Updated property %s (%s)\n", updated.ID, updated.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&p.Title, "title", "", "Property title")
	cmd.Flags().StringVar(&p.Description, "description", "", "Description")
	cmd.Flags().StringVar(&p.Location, "location", "", "Location")
	cmd.Flags().Int64Var(&p.Price, "price", 0, "Price")
	cmd.Flags().IntVar(&p.Bedrooms, "bedrooms", 0, "Bedrooms")
	cmd.Flags().IntVar(&p.Bathrooms, "bathrooms", 0, "Bathrooms")
	cmd.Flags().IntVar(&p.AreaSqft, "area", 0, "Area in sqft")
	cmd.Flags().BoolVar(&p.Featured, "featured", false, "Mark as featured")
	return cmd
}

func newAdminRemovePropertyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove-property <property_id>",
		Short: "Remove a property from the catalogue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := container.Properties.Delete(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("delete property: %w", err)
			}
			fmt.Println("Deleted.")
			return nil
		},
	}
}

func newAdminBookingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bookings",
		Short: "List all bookings",
		RunE: func(cmd *cobra.Command, args []string) error {
			bookings, err := container.Bookings.AllBookings(cmd.Context())
			if err != nil {
				return fmt.Errorf("list bookings: %w", err)
			}
			printBookings(bookings)
			return nil
		},
	}
}

func newAdminSetStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-status <booking_id> <status>",
		Short: "Update a booking's status (PENDING, CONFIRMED, CANCELLED, COMPLETED)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			booking, err := container.Bookings.UpdateStatus(cmd.Context(), args[0], domain.BookingStatus(args[1]))
			if err != nil {
				return fmt.Errorf("update booking: %w", err)
			}
			fmt.Printf("Booking %s is now %s\n", booking.ID, booking.Status)
			return nil
		},
	}
}
