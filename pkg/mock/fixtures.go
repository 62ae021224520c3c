// Package mock generates offline fixture data for demo runs with api.mock
// enabled. Generation is seeded, so repeated runs show the same portfolio.
package mock

import (
	"fmt"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/investorion/cli/pkg/api"
)

const seed = 20240917

var tickers = []struct {
	ticker    string
	name      string
	assetType string
	price     float64
}{
	{"PETR4", "Petrobras PN", api.AssetTypeStock, 37.12},
	{"VALE3", "Vale ON", api.AssetTypeStock, 61.80},
	{"ITUB4", "Itaú Unibanco PN", api.AssetTypeStock, 34.55},
	{"HGLG11", "CSHG Logística FII", api.AssetTypeFII, 162.30},
	{"MXRF11", "Maxi Renda FII", api.AssetTypeFII, 10.45},
	{"BTC", "Bitcoin", api.AssetTypeCrypto, 355000},
	{"IVVB11", "iShares S&P 500", api.AssetTypeETF, 310.20},
	{"CDB-2027", "CDB Banco Inter 2027", api.AssetTypeFixedIncome, 1000},
}

// Faker returns a deterministic generator.
func Faker() *gofakeit.Faker {
	return gofakeit.New(seed)
}

// Profile returns the demo user.
func Profile() *api.Profile {
	f := Faker()
	return &api.Profile{
		ID:        "mock-user",
		Email:     "demo@investorion.com.br",
		FullName:  f.Name(),
		AvatarURL: "",
	}
}

// Assets returns a fixed demo portfolio.
func Assets() []api.Asset {
	f := Faker()
	assets := make([]api.Asset, 0, len(tickers))
	for i, tk := range tickers {
		quantity := float64(f.Number(5, 200))
		if tk.assetType == api.AssetTypeCrypto {
			quantity = f.Float64Range(0.01, 0.5)
		}
		assets = append(assets, api.Asset{
			ID:        fmt.Sprintf("mock-asset-%d", i+1),
			Ticker:    tk.ticker,
			Name:      tk.name,
			AssetType: tk.assetType,
			Quantity:  api.Number(quantity),
			AvgPrice:  api.Number(tk.price * f.Float64Range(0.85, 1.1)),
			IsActive:  true,
		})
	}
	return assets
}

// Transactions returns demo transactions over the demo assets.
func Transactions() []api.Transaction {
	f := Faker()
	assets := Assets()
	transactions := make([]api.Transaction, 0, 2*len(assets))
	for i, a := range assets {
		quantity := a.Quantity.Float64()
		price := a.AvgPrice.Float64()
		transactions = append(transactions, api.Transaction{
			ID:              fmt.Sprintf("mock-tx-%d", 2*i+1),
			AssetID:         a.ID,
			TransactionType: api.TransactionTypeBuy,
			Quantity:        a.Quantity,
			UnitPrice:       a.AvgPrice,
			Fees:            api.Number(f.Float64Range(0, 9.9)),
			Date:            fmt.Sprintf("2026-0%d-15", i%6+1),
		})
		if i%3 == 0 && quantity > 1 {
			transactions = append(transactions, api.Transaction{
				ID:              fmt.Sprintf("mock-tx-%d", 2*i+2),
				AssetID:         a.ID,
				TransactionType: api.TransactionTypeSell,
				Quantity:        api.Number(quantity / 4),
				UnitPrice:       api.Number(price * 1.08),
				Date:            fmt.Sprintf("2026-0%d-02", i%6+2),
			})
		}
	}
	return transactions
}

// Summary returns the server-shaped dashboard summary for the demo data.
func Summary() *api.PortfolioSummaryResponse {
	assets := Assets()
	var invested float64
	for _, a := range assets {
		invested += a.Quantity.Float64() * a.AvgPrice.Float64()
	}
	return &api.PortfolioSummaryResponse{
		TotalAssets:       api.Number(len(assets)),
		TotalTransactions: api.Number(len(Transactions())),
		TotalInvested:     api.Number(invested),
	}
}

// Allocation returns the server-shaped allocation for the demo data.
func Allocation() *api.AllocationResponse {
	assets := Assets()
	byType := map[string]float64{}
	counts := map[string]int{}
	var total float64
	for _, a := range assets {
		value := a.Quantity.Float64() * a.AvgPrice.Float64()
		byType[a.AssetType] += value
		counts[a.AssetType]++
		total += value
	}

	out := &api.AllocationResponse{}
	for _, tk := range tickers {
		value, ok := byType[tk.assetType]
		if !ok {
			continue
		}
		delete(byType, tk.assetType)
		out.Items = append(out.Items, api.AllocationItem{
			AssetType:  tk.assetType,
			AssetCount: api.Number(counts[tk.assetType]),
			TypeTotal:  api.Number(value),
			Percentage: api.Number(value / total * 100),
		})
	}
	return out
}

// Suggestions returns a demo suggestions board.
func Suggestions() []api.Suggestion {
	f := Faker()
	kinds := []string{api.SuggestionKindIdea, api.SuggestionKindIdea, api.SuggestionKindBug}
	suggestions := make([]api.Suggestion, 0, len(kinds))
	for i, kind := range kinds {
		suggestions = append(suggestions, api.Suggestion{
			ID:          fmt.Sprintf("mock-sug-%d", i+1),
			Kind:        kind,
			Title:       f.Sentence(5),
			Description: f.Sentence(12),
			Votes:       f.Number(0, 40),
		})
	}
	return suggestions
}
