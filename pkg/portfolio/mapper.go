// Package portfolio holds the canonical client-side domain model. Backend
// field names and wire quirks stop at pkg/api; everything above works with
// the types in this package.
package portfolio

import (
	"net/url"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/investorion/cli/pkg/api"
)

// Display labels for asset type codes.
var assetTypeLabels = map[string]string{
	api.AssetTypeStock:       "Ação",
	api.AssetTypeFII:         "Fundo Imobiliário",
	api.AssetTypeCrypto:      "Criptomoeda",
	api.AssetTypeFixedIncome: "Renda Fixa",
	api.AssetTypeETF:         "ETF",
	api.AssetTypeFund:        "Fundo de Investimento",
	api.AssetTypeBDR:         "BDR",
	api.AssetTypeOther:       "Outro",
}

var transactionTypeLabels = map[string]string{
	api.TransactionTypeBuy:      "Compra",
	api.TransactionTypeSell:     "Venda",
	api.TransactionTypeTransfer: "Transferência",
}

// UnresolvedTicker is shown when a transaction's asset cannot be resolved.
const UnresolvedTicker = "N/A"

// Asset is the display-ready asset view.
type Asset struct {
	ID            string  `json:"id"`
	UserID        string  `json:"user_id"`
	Ticker        string  `json:"ticker"`
	Name          string  `json:"name"`
	AssetType     string  `json:"asset_type"`
	Sector        string  `json:"sector,omitempty"`
	Quantity      float64 `json:"quantity"`
	AveragePrice  float64 `json:"average_price"`
	IsActive      bool    `json:"is_active"`
	TypeDisplay   string  `json:"type_display"`
	Status        string  `json:"status"`
	StatusDisplay string  `json:"status_display"`
	CreatedAt     string  `json:"created_at,omitempty"`
	UpdatedAt     string  `json:"updated_at,omitempty"`
}

// Transaction is the display-ready transaction view. TotalAmount is a
// decimal string: quantity * unit_price + fees.
type Transaction struct {
	ID          string  `json:"id"`
	AssetID     string  `json:"asset_id"`
	UserID      string  `json:"user_id"`
	Type        string  `json:"type"`
	AssetTicker string  `json:"asset_ticker"`
	TypeDisplay string  `json:"type_display"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Fees        float64 `json:"fees"`
	TotalAmount string  `json:"total_amount"`
	Date        string  `json:"date"`
	Notes       string  `json:"notes,omitempty"`
	CreatedAt   string  `json:"created_at,omitempty"`
}

// AssetTypeLabel returns the display label for an asset type code, falling
// back to the code itself.
func AssetTypeLabel(code string) string {
	if label, ok := assetTypeLabels[code]; ok {
		return label
	}
	return code
}

// TransactionTypeLabel returns the display label for a transaction type
// code, falling back to the code itself.
func TransactionTypeLabel(code string) string {
	if label, ok := transactionTypeLabels[code]; ok {
		return label
	}
	return code
}

// AssetTypeCodes lists the known asset type codes.
func AssetTypeCodes() []string {
	return []string{
		api.AssetTypeStock,
		api.AssetTypeFII,
		api.AssetTypeCrypto,
		api.AssetTypeFixedIncome,
		api.AssetTypeETF,
		api.AssetTypeFund,
		api.AssetTypeBDR,
		api.AssetTypeOther,
	}
}

// MapAsset converts a wire asset into its display view.
func MapAsset(a api.Asset) Asset {
	status := "INACTIVE"
	statusDisplay := "Inativo"
	if a.IsActive {
		status = "ACTIVE"
		statusDisplay = "Ativo"
	}

	return Asset{
		ID:            a.ID,
		UserID:        a.UserID,
		Ticker:        a.Ticker,
		Name:          a.Name,
		AssetType:     a.AssetType,
		Sector:        a.Sector,
		Quantity:      a.Quantity.Float64(),
		AveragePrice:  a.AvgPrice.Float64(),
		IsActive:      a.IsActive,
		TypeDisplay:   AssetTypeLabel(a.AssetType),
		Status:        status,
		StatusDisplay: statusDisplay,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

// MapAssets converts a wire asset list.
func MapAssets(assets []api.Asset) []Asset {
	mapped := make([]Asset, 0, len(assets))
	for _, a := range assets {
		mapped = append(mapped, MapAsset(a))
	}
	return mapped
}

// TickerIndex builds an asset-id to ticker lookup for transaction mapping.
func TickerIndex(assets []api.Asset) map[string]string {
	index := make(map[string]string, len(assets))
	for _, a := range assets {
		index[a.ID] = a.Ticker
	}
	return index
}

// TotalAmount computes quantity*unitPrice + fees as a decimal string.
func TotalAmount(quantity, unitPrice, fees float64) string {
	total := decimal.NewFromFloat(quantity).
		Mul(decimal.NewFromFloat(unitPrice)).
		Add(decimal.NewFromFloat(fees))
	return total.String()
}

// MapTransaction converts a wire transaction into its display view. An empty
// ticker resolves to the UnresolvedTicker placeholder.
func MapTransaction(tx api.Transaction, ticker string) Transaction {
	if ticker == "" {
		ticker = UnresolvedTicker
	}

	quantity := tx.Quantity.Float64()
	unitPrice := tx.UnitPrice.Float64()
	fees := tx.Fees.Float64()

	return Transaction{
		ID:          tx.ID,
		AssetID:     tx.AssetID,
		UserID:      tx.UserID,
		Type:        tx.TransactionType,
		AssetTicker: ticker,
		TypeDisplay: TransactionTypeLabel(tx.TransactionType),
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		Fees:        fees,
		TotalAmount: TotalAmount(quantity, unitPrice, fees),
		Date:        tx.Date,
		Notes:       tx.Notes,
		CreatedAt:   tx.CreatedAt,
	}
}

// MapTransactions converts a wire transaction list, resolving tickers
// against the given asset list.
func MapTransactions(transactions []api.Transaction, assets []api.Asset) []Transaction {
	index := TickerIndex(assets)
	mapped := make([]Transaction, 0, len(transactions))
	for _, tx := range transactions {
		mapped = append(mapped, MapTransaction(tx, index[tx.AssetID]))
	}
	return mapped
}

// NormalizeMediaURL resolves a possibly relative media path against the API
// base URL. Absolute URLs pass through unchanged; relative paths are joined
// to the base's scheme and host only, so an API path prefix in the base is
// never duplicated.
func NormalizeMediaURL(baseURL, raw string) string {
	if raw == "" {
		return ""
	}
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return raw
	}

	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Host == "" {
		return raw
	}

	if !strings.HasPrefix(raw, "/") {
		raw = "/" + raw
	}
	return parsed.Scheme + "://" + parsed.Host + raw
}

// MapProfile normalizes backend profile fields for display, resolving the
// avatar URL against the API base.
func MapProfile(p api.Profile, baseURL string) api.Profile {
	p.AvatarURL = NormalizeMediaURL(baseURL, p.AvatarURL)
	return p
}
