// coinquote looks up a single coin on CoinMarketCap and prints its price,
// 24h change and market cap.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jerripat/CoinMarketCap/internal/cmc"
	"github.com/jerripat/CoinMarketCap/internal/config"
	"github.com/jerripat/CoinMarketCap/internal/format"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "coinquote",
	Short: "Look up one cryptocurrency quote on CoinMarketCap",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		client := cmc.New(cfg)

		fmt.Print("Enter the cryptocurrency symbol (e.g., BTC, ETH, DOGE): ")
		reader := bufio.NewReader(os.Stdin)
		line, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("read symbol: %w", err)
		}
		symbol := strings.ToUpper(strings.TrimSpace(line))

		rec, err := client.Quote(context.Background(), symbol)
		var apiErr *cmc.APIError
		switch {
		case errors.As(err, &apiErr):
			fmt.Printf("Error: %d %s\n", apiErr.Code, apiErr.Body)
			return nil
		case errors.Is(err, cmc.ErrSymbolNotFound):
			fmt.Println("Symbol not found in API response.")
			return nil
		case err != nil:
			return err
		}

		fmt.Printf("\n%s (%s)\n", rec.Name, rec.Symbol)
		fmt.Printf("Price: %s\n", format.Price(rec.PriceUSD))
		fmt.Printf("24h Change: %s\n", format.Percent(rec.PctChange24h))
		fmt.Printf("Market Cap: %s\n", format.Money(rec.MarketCapUSD))
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("coinquote %s (%s)\n", version, commit)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
