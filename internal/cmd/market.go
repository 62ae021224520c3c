package cmd

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/investorion/cli/pkg/service"
)

var marketCmd = &cobra.Command{
	Use:   "market",
	Short: "Market data commands",
	Long:  "Exchange rates, B3 stock quotes and Brazilian macro indicators",
}

var marketFXCmd = &cobra.Command{
	Use:   "fx [pairs...]",
	Short: "Show exchange rates (e.g. USD-BRL)",
	RunE: func(cmd *cobra.Command, args []string) error {
		marketSvc := service.NewMarketService()
		return marketSvc.ShowFX(cmd.Context(), args)
	},
}

var marketStocksCmd = &cobra.Command{
	Use:   "stocks [tickers...]",
	Short: "Show B3 stock quotes",
	RunE: func(cmd *cobra.Command, args []string) error {
		marketSvc := service.NewMarketService()
		return marketSvc.ShowStocks(cmd.Context(), args)
	},
}

var marketMacroCmd = &cobra.Command{
	Use:   "macro",
	Short: "Show IPCA, Selic and CDI indicators",
	RunE: func(cmd *cobra.Command, args []string) error {
		marketSvc := service.NewMarketService()
		return marketSvc.ShowMacro(cmd.Context())
	},
}

var marketWatchCmd = &cobra.Command{
	Use:   "watch [pairs...]",
	Short: "Poll exchange rates until interrupted",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		marketSvc := service.NewMarketService()
		return marketSvc.Watch(ctx, args)
	},
}

func init() {
	marketCmd.AddCommand(marketFXCmd)
	marketCmd.AddCommand(marketStocksCmd)
	marketCmd.AddCommand(marketMacroCmd)
	marketCmd.AddCommand(marketWatchCmd)
}
