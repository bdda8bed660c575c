package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/you/estately/domain"
)

func newPropertiesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "properties",
		Short: "Browse the property catalogue",
	}
	cmd.AddCommand(
		newPropertiesListCmd(),
		newPropertiesFeaturedCmd(),
		newPropertiesShowCmd(),
		newPropertiesSearchCmd(),
	)
	return cmd
}

func newPropertiesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all properties",
		RunE: func(cmd *cobra.Command, args []string) error {
			props, err := container.Properties.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("list properties: %w", err)
			}
			printProperties(props)
			return nil
		},
	}
}

func newPropertiesFeaturedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "featured",
		Short: "List featured properties",
		RunE: func(cmd *cobra.Command, args []string) error {
			props, err := container.Properties.Featured(cmd.Context())
			if err != nil {
				return fmt.Errorf("featured properties: %w", err)
			}
			printProperties(props)
			return nil
		},
	}
}

func newPropertiesShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <property_id>",
		Short: "Show one property",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := container.Properties.Get(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("get property: %w", err)
			}
			fmt.Printf("%s\n", p.Title)
			fmt.Printf("  ID:        %s\n", p.ID)
			fmt.Printf("  Location:  %s\n", p.Location)
			fmt.Printf("  Price:     %d\n", p.Price)
			fmt.Printf("  Layout:    %d BHK, %d bath, %d sqft\n", p.Bedrooms, p.Bathrooms, p.AreaSqft)
			if p.Description != "" {
				fmt.Printf("  About:     %s\n", p.Description)
			}
			return nil
		},
	}
}

func newPropertiesSearchCmd() *cobra.Command {
	var (
		location string
		minPrice int64
		maxPrice int64
		bedrooms int
	)

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search properties by filters",
		RunE: func(cmd *cobra.Command, args []string) error {
			props, err := container.Properties.Search(cmd.Context(), domain.PropertySearch{
				Location: location,
				MinPrice: minPrice,
				MaxPrice: maxPrice,
				Bedrooms: bedrooms,
			})
			if err != nil {
				return fmt.Errorf("search properties: %w", err)
			}
			printProperties(props)
			return nil
		},
	}

	cmd.Flags().StringVar(&location, "location", "", "Location substring")
	cmd.Flags().Int64Var(&minPrice, "min-price", 0, "Minimum price")
	cmd.Flags().Int64Var(&maxPrice, "max-price", 0, "Maximum price")
	cmd.Flags().IntVar(&bedrooms, "bedrooms", 0, "Exact bedroom count")
	return cmd
}

func printProperties(props []domain.Property) {
	if len(props) == 0 {
		fmt.Println("No properties found.")
		return
	}
	fmt.Printf("%-36s  %-28s  %-20s  %10s  %s\n", "ID", "TITLE", "LOCATION", "PRICE", "BEDS")
	for _, p := range props {
		fmt.Printf("%-36s  %-28s  %-20s  %10d  %d\n", p.ID, p.Title, p.Location, p.Price, p.Bedrooms)
	}
}
