package api

import (
	"net/http"
	"net/url"

	"github.com/investorion/cli/pkg/client"
	"github.com/investorion/cli/pkg/logger"
)

// GetTransactions lists transactions, optionally filtered by asset id.
func GetTransactions(assetID string) ([]Transaction, error) {
	logger.Debug("Fetching transactions", "asset_id", assetID)

	opts := &client.Options{}
	if assetID != "" {
		query := url.Values{}
		query.Set("asset_id", assetID)
		opts.Query = query
	}

	var transactions []Transaction
	if err := client.Default().DoJSON(http.MethodGet, "/transactions", opts, &transactions); err != nil {
		return nil, err
	}
	return transactions, nil
}

// GetTransaction fetches a single transaction by id.
func GetTransaction(id string) (*Transaction, error) {
	logger.Debug("Fetching transaction", "id", id)

	var tx Transaction
	if err := client.Default().DoJSON(http.MethodGet, "/transactions/"+id, nil, &tx); err != nil {
		return nil, err
	}
	return &tx, nil
}

// CreateTransaction records a buy/sell/transfer.
func CreateTransaction(create TransactionCreate) (*Transaction, error) {
	logger.Debug("Creating transaction", "asset_id", create.AssetID, "type", create.TransactionType)

	var tx Transaction
	err := client.Default().DoJSON(http.MethodPost, "/transactions", &client.Options{Body: create}, &tx)
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

// UpdateTransaction patches a transaction. Only non-nil fields are sent.
func UpdateTransaction(id string, update TransactionUpdate) (*Transaction, error) {
	logger.Debug("Updating transaction", "id", id)

	var tx Transaction
	err := client.Default().DoJSON(http.MethodPatch, "/transactions/"+id, &client.Options{Body: update}, &tx)
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

// DeleteTransaction removes a transaction.
func DeleteTransaction(id string) error {
	logger.Debug("Deleting transaction", "id", id)

	return client.Default().DoJSON(http.MethodDelete, "/transactions/"+id, nil, nil)
}
