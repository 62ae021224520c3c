package cmd

import (
	"github.com/spf13/cobra"

	"github.com/investorion/cli/pkg/service"
)

var (
	assetActiveOnly bool
	assetTicker     string
	assetName       string
	assetType       string
	assetSector     string
	assetActivate   bool
	assetDeactivate bool
	assetForce      bool
)

var assetCmd = &cobra.Command{
	Use:   "asset",
	Short: "Asset commands",
	Long:  "Manage the assets in your portfolio",
}

var assetListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your assets",
	RunE: func(cmd *cobra.Command, args []string) error {
		assetSvc := service.NewAssetService()
		return assetSvc.ListAssets(assetActiveOnly)
	},
}

var assetViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show one asset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		assetSvc := service.NewAssetService()
		return assetSvc.ViewAsset(args[0])
	},
}

var assetAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Register a new asset",
	RunE: func(cmd *cobra.Command, args []string) error {
		assetSvc := service.NewAssetService()
		return assetSvc.CreateAsset(assetTicker, assetName, assetType, assetSector)
	},
}

var assetUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update asset fields",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var active *bool
		if assetActivate {
			v := true
			active = &v
		} else if assetDeactivate {
			v := false
			active = &v
		}
		assetSvc := service.NewAssetService()
		return assetSvc.UpdateAsset(args[0], assetTicker, assetName, assetType, assetSector, active)
	},
}

var assetDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an asset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		assetSvc := service.NewAssetService()
		return assetSvc.DeleteAsset(args[0], assetForce)
	},
}

func init() {
	assetListCmd.Flags().BoolVar(&assetActiveOnly, "active", false, "Show only active assets")

	for _, c := range []*cobra.Command{assetAddCmd, assetUpdateCmd} {
		c.Flags().StringVar(&assetTicker, "ticker", "", "Asset ticker, e.g. PETR4")
		c.Flags().StringVar(&assetName, "name", "", "Asset name")
		c.Flags().StringVar(&assetType, "type", "", "Asset type: STOCK, FII, CRYPTO, FIXED_INCOME, ETF, FUND, BDR, OTHER")
		c.Flags().StringVar(&assetSector, "sector", "", "Asset sector")
	}
	assetUpdateCmd.Flags().BoolVar(&assetActivate, "activate", false, "Mark the asset as active")
	assetUpdateCmd.Flags().BoolVar(&assetDeactivate, "deactivate", false, "Mark the asset as inactive")
	assetDeleteCmd.Flags().BoolVarP(&assetForce, "force", "f", false, "Skip confirmation")

	assetCmd.AddCommand(assetListCmd)
	assetCmd.AddCommand(assetViewCmd)
	assetCmd.AddCommand(assetAddCmd)
	assetCmd.AddCommand(assetUpdateCmd)
	assetCmd.AddCommand(assetDeleteCmd)
}
