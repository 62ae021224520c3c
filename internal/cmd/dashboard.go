package cmd

import (
	"github.com/spf13/cobra"

	"github.com/investorion/cli/pkg/service"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show the portfolio dashboard",
	Long:  "Shows invested totals, allocation by asset type and your largest positions",
	RunE: func(cmd *cobra.Command, args []string) error {
		dashSvc := service.NewDashboardService()
		return dashSvc.ShowDashboard()
	},
}
