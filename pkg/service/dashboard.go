package service

import (
	"github.com/investorion/cli/pkg/api"
	"github.com/investorion/cli/pkg/client"
	"github.com/investorion/cli/pkg/formatter"
	"github.com/investorion/cli/pkg/mock"
	"github.com/investorion/cli/pkg/portfolio"
)

type DashboardService struct{}

// NewDashboardService creates a new dashboard service
func NewDashboardService() *DashboardService {
	return &DashboardService{}
}

func (s *DashboardService) fetch() (*api.PortfolioSummaryResponse, *api.AllocationResponse, []api.Asset, error) {
	if mockEnabled() {
		return mock.Summary(), mock.Allocation(), mock.Assets(), nil
	}

	summary, err := api.GetPortfolioSummary()
	if err != nil {
		return nil, nil, nil, err
	}
	allocation, err := api.GetAllocation()
	if err != nil {
		return nil, nil, nil, err
	}
	assets, err := api.GetAssets(true)
	if err != nil {
		return nil, nil, nil, err
	}
	return summary, allocation, assets, nil
}

// ShowDashboard prints the portfolio summary, allocation and top positions
func (s *DashboardService) ShowDashboard() error {
	client.Init()

	serverSummary, allocation, assets, err := s.fetch()
	if err != nil {
		formatter.PrintError("Failed to fetch dashboard: %v", err)
		return err
	}

	summary := portfolio.SummaryFromServer(serverSummary, allocation)
	if summary.AssetsCount == 0 {
		formatter.PrintInfo("Your portfolio is empty. Add an asset with 'investorion asset add'.")
		return nil
	}

	formatter.PrintKeyValue(map[string]interface{}{
		"Assets":         summary.AssetsCount,
		"Total invested": formatter.FormatBRL(summary.TotalInvested),
		"Current value":  formatter.FormatBRL(summary.CurrentValue),
		"Profit/Loss":    formatter.FormatBRL(summary.ProfitLoss) + " (" + formatter.FormatPercent(summary.ProfitLossPercent) + ")",
	})

	if len(summary.AllocationByType) > 0 {
		rows := make([][]string, 0, len(summary.AllocationByType))
		for _, item := range allocation.Items {
			rows = append(rows, []string{
				portfolio.AssetTypeLabel(item.AssetType),
				formatter.FormatBRL(item.TypeTotal.Float64()),
				formatter.FormatPercent(item.Percentage.Float64()),
			})
		}
		formatter.PrintInfo("Allocation by type")
		formatter.PrintTable([]string{"Type", "Invested", "Share"}, rows)
	}

	top := portfolio.TopPositions(portfolio.MapAssets(assets), 5)
	if len(top) > 0 {
		rows := make([][]string, 0, len(top))
		for _, p := range top {
			rows = append(rows, []string{p.Ticker, p.Name, p.TypeDisplay, formatter.FormatBRL(p.Value)})
		}
		formatter.PrintInfo("Top positions")
		formatter.PrintTable([]string{"Ticker", "Name", "Type", "Invested"}, rows)
	}

	return nil
}
