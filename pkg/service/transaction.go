package service

import (
	"fmt"
	"strings"

	"github.com/investorion/cli/pkg/api"
	"github.com/investorion/cli/pkg/client"
	"github.com/investorion/cli/pkg/formatter"
	"github.com/investorion/cli/pkg/mock"
	"github.com/investorion/cli/pkg/portfolio"
	"github.com/investorion/cli/pkg/prompter"
)

type TransactionService struct{}

// NewTransactionService creates a new transaction service
func NewTransactionService() *TransactionService {
	return &TransactionService{}
}

// ListTransactions lists transactions, optionally filtered by asset
func (s *TransactionService) ListTransactions(assetID string) error {
	client.Init()

	var (
		transactions []api.Transaction
		assets       []api.Asset
		err          error
	)
	if mockEnabled() {
		transactions = mock.Transactions()
		assets = mock.Assets()
	} else {
		transactions, err = api.GetTransactions(assetID)
		if err != nil {
			formatter.PrintError("Failed to fetch transactions: %v", err)
			return err
		}
		// Tickers come from the asset list; transactions only carry ids.
		assets, err = api.GetAssets(false)
		if err != nil {
			formatter.PrintError("Failed to fetch assets: %v", err)
			return err
		}
	}

	if len(transactions) == 0 {
		formatter.PrintInfo("No transactions yet. Record one with 'investorion transaction add'.")
		return nil
	}

	mapped := portfolio.MapTransactions(transactions, assets)
	headers := []string{"Date", "Asset", "Type", "Quantity", "Unit Price", "Total"}
	rows := make([][]string, 0, len(mapped))
	for _, tx := range mapped {
		rows = append(rows, []string{
			tx.Date,
			tx.AssetTicker,
			tx.TypeDisplay,
			formatter.FormatQuantity(tx.Quantity),
			formatter.FormatBRL(tx.UnitPrice),
			tx.TotalAmount,
		})
	}

	formatter.PrintTable(headers, rows)
	return nil
}

// CreateTransaction records a buy/sell/transfer
func (s *TransactionService) CreateTransaction(assetID, txType string, quantity, unitPrice, fees float64, date, notes string) error {
	client.Init()

	var err error
	if assetID == "" {
		assetID, err = prompter.PromptString("Asset ID: ")
		if err != nil {
			return err
		}
	}
	if txType == "" {
		txType, err = prompter.PromptSelect("Transaction type", []string{
			api.TransactionTypeBuy,
			api.TransactionTypeSell,
			api.TransactionTypeTransfer,
		})
		if err != nil {
			return err
		}
	}
	txType = strings.ToUpper(txType)

	formatter.PrintInfo("Recording transaction...")

	tx, err := api.CreateTransaction(api.TransactionCreate{
		AssetID:         assetID,
		TransactionType: txType,
		Quantity:        quantity,
		UnitPrice:       unitPrice,
		Fees:            fees,
		Date:            date,
		Notes:           notes,
	})
	if err != nil {
		formatter.PrintError("Failed to record transaction: %v", err)
		return err
	}

	total := portfolio.TotalAmount(tx.Quantity.Float64(), tx.UnitPrice.Float64(), tx.Fees.Float64())
	formatter.PrintSuccess("✓ %s recorded, total %s", portfolio.TransactionTypeLabel(tx.TransactionType), total)
	return nil
}

// UpdateTransaction updates transaction fields; nil pointers are left untouched
func (s *TransactionService) UpdateTransaction(id string, update api.TransactionUpdate) error {
	client.Init()

	tx, err := api.UpdateTransaction(id, update)
	if err != nil {
		formatter.PrintError("Failed to update transaction: %v", err)
		return err
	}

	formatter.PrintSuccess("✓ Transaction %s updated", tx.ID)
	return nil
}

// DeleteTransaction removes a transaction after confirmation
func (s *TransactionService) DeleteTransaction(id string, force bool) error {
	client.Init()

	if !force {
		confirm, _ := prompter.PromptConfirm(fmt.Sprintf("Delete transaction %s?", id))
		if !confirm {
			return nil
		}
	}

	if err := api.DeleteTransaction(id); err != nil {
		formatter.PrintError("Failed to delete transaction: %v", err)
		return err
	}

	formatter.PrintSuccess("✓ Transaction deleted")
	return nil
}
