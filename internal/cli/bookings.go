package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/you/estately/domain"
)

func newBookingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bookings",
		Short: "Manage site-visit bookings",
	}
	cmd.AddCommand(
		newBookingsListCmd(),
		newBookingsCreateCmd(),
		newBookingsShowCmd(),
	)
	return cmd
}

func newBookingsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your bookings",
		RunE: func(cmd *cobra.Command, args []string) error {
			bookings, err := container.Bookings.UserBookings(cmd.Context())
			if err != nil {
				return fmt.Errorf("list bookings: %w", err)
			}
			printBookings(bookings)
			return nil
		},
	}
}

func newBookingsCreateCmd() *cobra.Command {
	var (
		date  string
		notes string
	)

	cmd := &cobra.Command{
		Use:   "create <property_id>",
		Short: "Book a site visit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			visit, err := time.Parse("2006-01-02", date)
			if err != nil {
				return fmt.Errorf("visit date must be YYYY-MM-DD: %w", err)
			}

			booking, err := container.Bookings.Create(cmd.Context(), args[0], &domain.Booking{
				VisitDate: visit,
				Notes:     notes,
			})
			if err != nil {
				return fmt.Errorf("create booking: %w", err)
			}
			fmt.Printf("Booked visit %s for %s (%s)\n",
				booking.ID, booking.VisitDate.Format("2006-01-02"), booking.Status)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Visit date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&notes, "notes", "", "Notes for the visit")
	cobra.CheckErr(cmd.MarkFlagRequired("date"))
	return cmd
}

func newBookingsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <property_id>",
		Short: "Show your booking for a property",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			booking, err := container.Bookings.UserPropertyBooking(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("get booking: %w", err)
			}
			fmt.Printf("Booking:  %s\n", booking.ID)
			fmt.Printf("  Visit:  %s\n", booking.VisitDate.Format("2006-01-02"))
			fmt.Printf("  Status: %s\n", booking.Status)
			if booking.Notes != "" {
				fmt.Printf("  Notes:  %s\n", booking.Notes)
			}
			return nil
		},
	}
}

func printBookings(bookings []domain.Booking) {
	if len(bookings) == 0 {
		fmt.Println("No bookings found.")
		return
	}
	fmt.Printf("%-36s  %-36s  %-12s  %s\n", "ID", "PROPERTY", "DATE", "STATUS")
	for _, b := range bookings {
		fmt.Printf("%-36s  %-36s  %-12s  %s\n", b.ID, b.PropertyID, b.VisitDate.Format("2006-01-02"), b.Status)
	}
}
