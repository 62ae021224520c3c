package api

import (
	"net/http"

	"github.com/investorion/cli/pkg/client"
	"github.com/investorion/cli/pkg/logger"
)

// GetPortfolioSummary fetches the server-computed portfolio totals.
func GetPortfolioSummary() (*PortfolioSummaryResponse, error) {
	logger.Debug("Fetching portfolio summary")

	var summary PortfolioSummaryResponse
	if err := client.Default().DoJSON(http.MethodGet, "/dashboard/summary", nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// GetAllocation fetches the per-type allocation breakdown.
func GetAllocation() (*AllocationResponse, error) {
	logger.Debug("Fetching allocation")

	var allocation AllocationResponse
	if err := client.Default().DoJSON(http.MethodGet, "/dashboard/allocation", nil, &allocation); err != nil {
		return nil, err
	}
	return &allocation, nil
}
