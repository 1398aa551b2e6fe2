package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"bandiwala/internal/cart"
	"bandiwala/internal/pricing"

	"github.com/spf13/cobra"
)

var inspectUserID string

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Show stored state",
}

// inspectCartCmd prints a user's cart with the breakdown the API would return
var inspectCartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Print a user's cart and its price breakdown",
	Long: `Lists the cart lines stored for a user and prices them with the
configured fees (PLATFORM_FEE, DELIVERY_CHARGE, TAX_RATE).

Example:
  foodctl inspect cart --user 3f0c...`,
	RunE: runInspectCart,
}

func init() {
	inspectCartCmd.Flags().StringVar(&inspectUserID, "user", "", "user id")
	_ = inspectCartCmd.MarkFlagRequired("user")

	inspectCmd.AddCommand(inspectCartCmd)
}

func runInspectCart(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	pool, cfg, err := connect(ctx, false)
	if err != nil {
		return err
	}
	defer pool.Close()

	calc, err := pricing.NewCalculator(cfg.Fees)
	if err != nil {
		return err
	}

	// pricing a stored cart never needs the menu
	svc := cart.NewService(cart.NewPostgresRepository(pool), nil, calc)
	view, err := svc.GetCart(ctx, inspectUserID)
	if err != nil {
		return err
	}

	printCart(cmd.OutOrStdout(), view)
	return nil
}

func printCart(out io.Writer, view *cart.View) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ITEM\tVARIANT\tQTY\tUNIT\tLINE")
	for _, it := range view.Items {
		sub := it.SelectedSubcategory
		fmt.Fprintf(w, "%s\t%s\t%d\t%.2f\t%.2f\n",
			it.Name, sub.Title, it.Quantity, sub.Price, pricing.Round(sub.Price*float64(it.Quantity)))
	}
	_ = w.Flush()

	b := view.Breakdown
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Subtotal          %10.2f\n", b.Subtotal)
	fmt.Fprintf(out, "Platform fee      %10.2f\n", b.PlatformFee)
	fmt.Fprintf(out, "Delivery charge   %10.2f\n", b.DeliveryCharge)
	fmt.Fprintf(out, "Tax               %10.2f\n", b.Tax)
	fmt.Fprintf(out, "Total             %10.2f\n", b.Total)
}
