package cmd

import (
	"github.com/spf13/cobra"

	"github.com/investorion/cli/pkg/api"
	"github.com/investorion/cli/pkg/service"
)

var (
	txAssetID   string
	txType      string
	txQuantity  float64
	txUnitPrice float64
	txFees      float64
	txDate      string
	txNotes     string
	txForce     bool
)

var transactionCmd = &cobra.Command{
	Use:     "transaction",
	Aliases: []string{"tx"},
	Short:   "Transaction commands",
	Long:    "Record and manage buy, sell and transfer transactions",
}

var txListCmd = &cobra.Command{
	Use:   "list",
	Short: "List transactions",
	RunE: func(cmd *cobra.Command, args []string) error {
		txSvc := service.NewTransactionService()
		return txSvc.ListTransactions(txAssetID)
	},
}

var txAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a transaction",
	RunE: func(cmd *cobra.Command, args []string) error {
		txSvc := service.NewTransactionService()
		return txSvc.CreateTransaction(txAssetID, txType, txQuantity, txUnitPrice, txFees, txDate, txNotes)
	},
}

var txUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update transaction fields",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		update := api.TransactionUpdate{}
		if cmd.Flags().Changed("asset") {
			update.AssetID = &txAssetID
		}
		if cmd.Flags().Changed("type") {
			update.TransactionType = &txType
		}
		if cmd.Flags().Changed("quantity") {
			update.Quantity = &txQuantity
		}
		if cmd.Flags().Changed("price") {
			update.UnitPrice = &txUnitPrice
		}
		if cmd.Flags().Changed("fees") {
			update.Fees = &txFees
		}
		if cmd.Flags().Changed("date") {
			update.Date = &txDate
		}
		if cmd.Flags().Changed("notes") {
			update.Notes = &txNotes
		}
		txSvc := service.NewTransactionService()
		return txSvc.UpdateTransaction(args[0], update)
	},
}

var txDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a transaction",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		txSvc := service.NewTransactionService()
		return txSvc.DeleteTransaction(args[0], txForce)
	},
}

func init() {
	txListCmd.Flags().StringVar(&txAssetID, "asset", "", "Filter by asset id")

	for _, c := range []*cobra.Command{txAddCmd, txUpdateCmd} {
		c.Flags().StringVar(&txAssetID, "asset", "", "Asset id")
		c.Flags().StringVar(&txType, "type", "", "Transaction type: BUY, SELL, TRANSFER")
		c.Flags().Float64Var(&txQuantity, "quantity", 0, "Quantity")
		c.Flags().Float64Var(&txUnitPrice, "price", 0, "Unit price")
		c.Flags().Float64Var(&txFees, "fees", 0, "Fees")
		c.Flags().StringVar(&txDate, "date", "", "Transaction date (YYYY-MM-DD)")
		c.Flags().StringVar(&txNotes, "notes", "", "Notes")
	}
	txDeleteCmd.Flags().BoolVarP(&txForce, "force", "f", false, "Skip confirmation")

	transactionCmd.AddCommand(txListCmd)
	transactionCmd.AddCommand(txAddCmd)
	transactionCmd.AddCommand(txUpdateCmd)
	transactionCmd.AddCommand(txDeleteCmd)
}
