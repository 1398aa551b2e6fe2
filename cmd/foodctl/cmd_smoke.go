package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"bandiwala/internal/cart"
	"bandiwala/internal/logger"
	"bandiwala/internal/menu"
	"bandiwala/internal/pricing"

	"github.com/spf13/cobra"
)

var (
	smokeBaseURL  string
	smokeEmail    string
	smokePassword string
	smokeTimeout  time.Duration
)

// smokeCmd checks a running API prices a cart the way foodctl does
var smokeCmd = &cobra.Command{
	Use:   "smoke",
	Short: "Log in, add an item to the cart and verify the breakdown",
	Long: `Runs one customer journey against a live API:
  logs in, picks the first available menu item, adds it to the cart,
  fetches /cart and compares the returned breakdown with a local
  calculation using the configured fees.

Example:
  foodctl smoke --base-url http://localhost:8000 --email asha@example.com --password secret`,
	RunE: runSmokeCmd,
}

func init() {
	smokeCmd.Flags().StringVar(&smokeBaseURL, "base-url", "http://localhost:8000", "API base URL")
	smokeCmd.Flags().StringVar(&smokeEmail, "email", "", "customer email")
	smokeCmd.Flags().StringVar(&smokePassword, "password", "", "customer password")
	smokeCmd.Flags().DurationVar(&smokeTimeout, "timeout", 30*time.Second, "overall timeout")
	_ = smokeCmd.MarkFlagRequired("email")
	_ = smokeCmd.MarkFlagRequired("password")
}

func runSmokeCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	calc, err := pricing.NewCalculator(cfg.Fees)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), smokeTimeout)
	defer cancel()

	s := &smokeClient{
		http:    &http.Client{Timeout: 10 * time.Second},
		baseURL: strings.TrimRight(smokeBaseURL, "/"),
	}
	view, err := s.run(ctx, smokeEmail, smokePassword, calc)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "smoke OK: %d cart lines, total %.2f\n", len(view.Items), view.Breakdown.Total)
	return nil
}

var errBreakdownMismatch = errors.New("server breakdown does not match local calculation")

type smokeClient struct {
	http    *http.Client
	baseURL string
	token   string
}

func (s *smokeClient) run(ctx context.Context, email, password string, calc *pricing.Calculator) (*cart.View, error) {
	var login struct {
		Token string `json:"token"`
	}
	if err := s.do(ctx, http.MethodPost, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &login); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	s.token = login.Token

	item, sub, err := s.firstAvailableItem(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.do(ctx, http.MethodPost, "/cart/items", map[string]any{
		"menuItemId":  item.ID,
		"subcategory": sub.Title,
		"quantity":    1,
	}, nil); err != nil {
		return nil, fmt.Errorf("add %s to cart: %w", item.Name, err)
	}

	var view cart.View
	if err := s.do(ctx, http.MethodGet, "/cart", nil, &view); err != nil {
		return nil, fmt.Errorf("get cart: %w", err)
	}

	want, err := calc.Calculate(cart.LineItems(view.Items))
	if err != nil {
		return nil, err
	}
	if want != view.Breakdown {
		return nil, fmt.Errorf("%w: server %+v, local %+v", errBreakdownMismatch, view.Breakdown, want)
	}

	return &view, nil
}

func (s *smokeClient) firstAvailableItem(ctx context.Context) (*menu.MenuItem, pricing.Subcategory, error) {
	var vendors []menu.Vendor
	if err := s.do(ctx, http.MethodGet, "/vendors", nil, &vendors); err != nil {
		return nil, pricing.Subcategory{}, fmt.Errorf("list vendors: %w", err)
	}

	for _, v := range vendors {
		var vm menu.VendorMenu
		if err := s.do(ctx, http.MethodGet, "/vendors/"+v.ID+"/menu", nil, &vm); err != nil {
			return nil, pricing.Subcategory{}, fmt.Errorf("menu for %s: %w", v.Name, err)
		}
		for i := range vm.Items {
			it := &vm.Items[i]
			if it.IsAvailable && len(it.Subcategories) > 0 {
				return it, it.Subcategories[0], nil
			}
		}
	}

	return nil, pricing.Subcategory{}, errors.New("no available menu item found")
}

func (s *smokeClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	start := time.Now()
	resp, err := s.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	logger.GetLogger().Infow("http call",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("%s %s: status %d: %s", method, path, resp.StatusCode, strings.TrimSpace(string(data)))
	}

	if out == nil {
		return nil
	}
	return json.Unmarshal(data, out)
}
