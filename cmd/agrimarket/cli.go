// Scriptable subcommands sharing the session controller with the TUI.
package main

import (
	"fmt"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Canzo32/farmer-web/cmd/agrimarket/config"
	"github.com/Canzo32/farmer-web/internal/api"
	"github.com/Canzo32/farmer-web/internal/auth"
	"github.com/Canzo32/farmer-web/internal/session"
	"github.com/Canzo32/farmer-web/internal/types"
)

const clientVersion = "1.1.0"

// newController wires a controller for one-shot command use.
func newController() (*session.Controller, error) {
	cfg := loadConfig()
	dir, err := config.Dir()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config dir: %w", err)
	}
	client := api.NewWithConfig(api.Config{
		BaseURL: cfg.BackendURL,
		Timeout: cfg.RequestTimeout,
	})
	return session.NewController(client, auth.NewTokenStore(dir)), nil
}

var loginCmd = &cobra.Command{
	Use:   "login [email]",
	Short: "Authenticate and persist the session token",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctrl, err := newController()
		if err != nil {
			return err
		}

		fmt.Print("Password: ")
		raw, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}

		in := types.LoginInput{Email: args[0], Password: string(raw)}
		if err := ctrl.Login(cmd.Context(), in); err != nil {
			return err
		}
		user := ctrl.User()
		fmt.Printf("Logged in as %s (%s, %s)\n", user.Name, user.Role, user.Region)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the persisted session token",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctrl, err := newController()
		if err != nil {
			return err
		}
		ctrl.Logout()
		fmt.Println("Logged out.")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the profile behind the persisted token",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctrl, err := newController()
		if err != nil {
			return err
		}
		if err := ctrl.ResolveSession(cmd.Context()); err != nil {
			return err
		}
		user := ctrl.User()
		if user == nil {
			fmt.Println("Not logged in.")
			return nil
		}
		fmt.Printf("%s <%s>\nRole: %s\nRegion: %s\nPhone: %s\n",
			user.Name, user.Email, user.Role, user.Region, user.Phone)
		return nil
	},
}

var (
	browseCategory string
	browseRegion   string
	browseSearch   string
)

func init() {
	browseCmd.Flags().StringVar(&browseCategory, "category", "", "filter by category (vegetables, fruits, grains, tubers, livestock, other)")
	browseCmd.Flags().StringVar(&browseRegion, "region", "", "filter by region")
	browseCmd.Flags().StringVar(&browseSearch, "search", "", "substring match on title and description")
}

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "List available produce",
	Long: `Lists the marketplace catalog. Filters are applied server-side,
the same narrowing the interactive marketplace performs locally.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		client := api.NewWithConfig(api.Config{
			BaseURL: cfg.BackendURL,
			Timeout: cfg.RequestTimeout,
		})

		listings, err := client.ListProduce(cmd.Context(), api.CatalogQuery{
			Category: types.Category(browseCategory),
			Region:   types.Region(browseRegion),
			Search:   browseSearch,
		})
		if err != nil {
			return err
		}

		if len(listings) == 0 {
			fmt.Println("No produce available.")
			return nil
		}
		for _, item := range listings {
			fmt.Printf("%-10s %-24s %-12s %-10s %-16s %4d %s  %s\n",
				item.UniqueCode, item.Title, item.Category, item.Region,
				item.PriceLabel(), item.Quantity, item.Unit, item.FarmerName)
		}
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show [produce-id]",
	Short: "Show one produce listing",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		client := api.NewWithConfig(api.Config{
			BaseURL: cfg.BackendURL,
			Timeout: cfg.RequestTimeout,
		})

		item, err := client.GetProduce(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		fmt.Printf("%s (%s)\n", item.Title, item.UniqueCode)
		fmt.Printf("Category: %s\nRegion: %s\nPrice: %s\nStock: %d %s\nFarmer: %s\n",
			item.Category, item.Region, item.PriceLabel(), item.Quantity, item.Unit, item.FarmerName)
		if item.Description != "" {
			fmt.Printf("\n%s\n", item.Description)
		}
		if !item.IsAvailable {
			fmt.Println("\nCurrently unavailable.")
		}
		return nil
	},
}

var ordersCmd = &cobra.Command{
	Use:   "orders",
	Short: "List your orders",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctrl, err := newController()
		if err != nil {
			return err
		}
		if err := ctrl.ResolveSession(cmd.Context()); err != nil {
			return err
		}
		if ctrl.User() == nil {
			return fmt.Errorf("not logged in; run 'agrimarket login' first")
		}

		ctrl.LoadDashboard(cmd.Context())
		orders := ctrl.Orders()
		if len(orders) == 0 {
			fmt.Println("No orders.")
			return nil
		}
		for _, order := range orders {
			fmt.Printf("%-24s x%-4d GHS %8.2f  %-10s buyer=%s farmer=%s\n",
				order.ProduceTitle, order.Quantity, order.TotalAmount,
				order.Status, order.BuyerName, order.FarmerName)
		}
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the client version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("agrimarket %s\n", clientVersion)
	},
}
