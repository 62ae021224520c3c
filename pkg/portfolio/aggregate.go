package portfolio

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/investorion/cli/pkg/api"
)

// Summary holds the portfolio-level derived metrics. An empty portfolio
// yields zero values across the board; the presentation layer treats that as
// a first-run state, not an error.
type Summary struct {
	AssetsCount       int                `json:"assets_count"`
	TotalInvested     float64            `json:"total_invested"`
	CurrentValue      float64            `json:"current_value"`
	ProfitLoss        float64            `json:"profit_loss"`
	ProfitLossPercent float64            `json:"profit_loss_percent"`
	AllocationByType  map[string]float64 `json:"allocation_by_type"`
}

// Position is a single asset's contribution to the portfolio, valued at
// quantity * average_price.
type Position struct {
	Ticker      string  `json:"ticker"`
	Name        string  `json:"name"`
	TypeDisplay string  `json:"type_display"`
	Value       float64 `json:"value"`
}

// Aggregate derives the portfolio summary from the active assets. prices
// maps tickers to current market prices; a nil or incomplete map values the
// missing positions at their average purchase price, and with no market data
// at all profit/loss stays at zero.
func Aggregate(assets []Asset, prices map[string]float64) Summary {
	summary := Summary{AllocationByType: map[string]float64{}}

	invested := decimal.Zero
	investedByType := map[string]decimal.Decimal{}
	current := decimal.Zero

	for _, a := range assets {
		if !a.IsActive {
			continue
		}
		summary.AssetsCount++

		position := decimal.NewFromFloat(a.Quantity).Mul(decimal.NewFromFloat(a.AveragePrice))
		invested = invested.Add(position)
		investedByType[a.AssetType] = investedByType[a.AssetType].Add(position)

		marketPrice, ok := prices[a.Ticker]
		if ok {
			current = current.Add(decimal.NewFromFloat(a.Quantity).Mul(decimal.NewFromFloat(marketPrice)))
		} else {
			current = current.Add(position)
		}
	}

	summary.TotalInvested, _ = invested.Float64()

	if len(prices) == 0 {
		// Market value unavailable: current value mirrors invested
		// capital and profit/loss stays zero.
		summary.CurrentValue = summary.TotalInvested
	} else {
		summary.CurrentValue, _ = current.Float64()
		summary.ProfitLoss = summary.CurrentValue - summary.TotalInvested
		if summary.TotalInvested != 0 {
			summary.ProfitLossPercent = summary.ProfitLoss / summary.TotalInvested * 100
		}
	}

	if !invested.IsZero() {
		for assetType, typeTotal := range investedByType {
			share, _ := typeTotal.Div(invested).Float64()
			summary.AllocationByType[AssetTypeLabel(assetType)] = share * 100
		}
	}

	return summary
}

// SummaryFromServer assembles a Summary from the dashboard endpoints'
// server-computed aggregates.
func SummaryFromServer(summary *api.PortfolioSummaryResponse, allocation *api.AllocationResponse) Summary {
	out := Summary{AllocationByType: map[string]float64{}}
	if summary != nil {
		out.AssetsCount = int(summary.TotalAssets.Float64())
		out.TotalInvested = summary.TotalInvested.Float64()
		// The backend does not report market value; mirror invested
		// capital, the same default the aggregator uses.
		out.CurrentValue = out.TotalInvested
	}
	if allocation != nil {
		for _, item := range allocation.Items {
			out.AllocationByType[AssetTypeLabel(item.AssetType)] = item.Percentage.Float64()
		}
	}
	return out
}

// TopPositions returns the n largest active positions by invested value,
// descending. Ties keep input order.
func TopPositions(assets []Asset, n int) []Position {
	positions := make([]Position, 0, len(assets))
	for _, a := range assets {
		if !a.IsActive {
			continue
		}
		positions = append(positions, Position{
			Ticker:      a.Ticker,
			Name:        a.Name,
			TypeDisplay: a.TypeDisplay,
			Value:       a.Quantity * a.AveragePrice,
		})
	}

	sort.SliceStable(positions, func(i, j int) bool {
		return positions[i].Value > positions[j].Value
	})

	if len(positions) > n {
		positions = positions[:n]
	}
	return positions
}
