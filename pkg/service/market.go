package service

import (
	"context"
	"fmt"
	"time"

	"github.com/investorion/cli/pkg/config"
	"github.com/investorion/cli/pkg/formatter"
	"github.com/investorion/cli/pkg/market"
)

// Default watch list shown when no symbols are given.
var (
	defaultFXPairs = []string{"USD-BRL", "EUR-BRL", "BTC-BRL"}
	defaultStocks  = []string{"PETR4", "VALE3", "ITUB4", "BOVA11"}
)

type MarketService struct {
	provider *market.Service
}

// NewMarketService creates a market service wired to the configured provider
// endpoints.
func NewMarketService() *MarketService {
	return &MarketService{
		provider: market.New(market.Options{
			FXBaseURL:     config.GetString("quotes.fx_base_url"),
			StocksBaseURL: config.GetString("quotes.stocks_base_url"),
			MacroBaseURL:  config.GetString("quotes.macro_base_url"),
		}),
	}
}

func printQuotes(title string, quotes []market.Quote) {
	if len(quotes) == 0 {
		return
	}
	rows := make([][]string, 0, len(quotes))
	for _, q := range quotes {
		rows = append(rows, []string{
			q.Symbol,
			q.Name,
			formatter.FormatBRL(q.Price),
			formatter.FormatPercent(q.ChangePercent),
		})
	}
	formatter.PrintInfo(title)
	formatter.PrintTable([]string{"Symbol", "Name", "Price", "Change"}, rows)
}

// ShowFX prints FX rates for the given pairs, defaulting to the usual BRL
// pairs.
func (s *MarketService) ShowFX(ctx context.Context, pairs []string) error {
	if len(pairs) == 0 {
		pairs = defaultFXPairs
	}

	quotes, err := s.provider.FetchFX(ctx, pairs)
	if err != nil {
		formatter.PrintError("Failed to fetch FX rates: %v", err)
		return err
	}

	printQuotes("Exchange rates", quotes)
	return nil
}

// ShowStocks prints quotes for the given B3 tickers.
func (s *MarketService) ShowStocks(ctx context.Context, symbols []string) error {
	if len(symbols) == 0 {
		symbols = defaultStocks
	}

	quotes, err := s.provider.FetchStocks(ctx, symbols)
	if err != nil {
		formatter.PrintError("Failed to fetch stock quotes: %v", err)
		return err
	}

	printQuotes("Stock quotes", quotes)
	return nil
}

// ShowMacro prints the IPCA, Selic and CDI indicators.
func (s *MarketService) ShowMacro(ctx context.Context) error {
	indicators, err := s.provider.FetchMacro(ctx)
	if err != nil {
		formatter.PrintError("Failed to fetch indicators: %v", err)
		return err
	}

	rows := make([][]string, 0, len(indicators))
	for _, ind := range indicators {
		rows = append(rows, []string{ind.Name, fmt.Sprintf("%.2f%%", ind.Value), ind.Date})
	}
	formatter.PrintInfo("Macro indicators")
	formatter.PrintTable([]string{"Indicator", "Value", "Date"}, rows)
	return nil
}

// Watch polls FX rates until the context is cancelled. The poll interval
// comes from quotes.poll_interval (seconds).
func (s *MarketService) Watch(ctx context.Context, pairs []string) error {
	interval := time.Duration(config.GetInt("quotes.poll_interval")) * time.Second
	if interval <= 0 {
		interval = 10 * time.Second
	}

	if err := s.ShowFX(ctx, pairs); err != nil {
		return err
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			// Transient provider errors should not kill the watch loop.
			_ = s.ShowFX(ctx, pairs)
		}
	}
}
