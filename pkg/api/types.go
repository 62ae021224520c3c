package api

import (
	"bytes"
	"strconv"
)

// Number is a float64 that tolerates the API's habit of sending numeric
// fields as strings. Unparseable values decode to 0 instead of failing the
// whole payload.
type Number float64

func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*n = 0
		return nil
	}

	raw := string(data)
	if raw[0] == '"' {
		unquoted, err := strconv.Unquote(raw)
		if err != nil {
			*n = 0
			return nil
		}
		raw = unquoted
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		*n = 0
		return nil
	}
	*n = Number(value)
	return nil
}

func (n Number) Float64() float64 {
	return float64(n)
}

// Asset type codes accepted by the API.
const (
	AssetTypeStock       = "STOCK"
	AssetTypeFII         = "FII"
	AssetTypeCrypto      = "CRYPTO"
	AssetTypeFixedIncome = "FIXED_INCOME"
	AssetTypeETF         = "ETF"
	AssetTypeFund        = "FUND"
	AssetTypeBDR         = "BDR"
	AssetTypeOther       = "OTHER"
)

// Transaction type codes.
const (
	TransactionTypeBuy      = "BUY"
	TransactionTypeSell     = "SELL"
	TransactionTypeTransfer = "TRANSFER"
)

// Suggestion kinds.
const (
	SuggestionKindIdea = "ideia"
	SuggestionKindBug  = "bug"
)

type Asset struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	Ticker    string `json:"ticker"`
	Name      string `json:"name"`
	AssetType string `json:"asset_type"`
	Sector    string `json:"sector"`
	Quantity  Number `json:"quantity"`
	AvgPrice  Number `json:"average_price"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type AssetCreate struct {
	Ticker    string `json:"ticker"`
	Name      string `json:"name"`
	AssetType string `json:"asset_type"`
	Sector    string `json:"sector,omitempty"`
}

type AssetUpdate struct {
	Ticker    *string `json:"ticker,omitempty"`
	Name      *string `json:"name,omitempty"`
	AssetType *string `json:"asset_type,omitempty"`
	Sector    *string `json:"sector,omitempty"`
	IsActive  *bool   `json:"is_active,omitempty"`
}

type Transaction struct {
	ID              string `json:"id"`
	AssetID         string `json:"asset_id"`
	UserID          string `json:"user_id"`
	TransactionType string `json:"transaction_type"`
	Quantity        Number `json:"quantity"`
	UnitPrice       Number `json:"unit_price"`
	Fees            Number `json:"fees"`
	Date            string `json:"date"`
	Notes           string `json:"notes"`
	CreatedAt       string `json:"created_at"`
}

type TransactionCreate struct {
	AssetID         string  `json:"asset_id"`
	TransactionType string  `json:"transaction_type"`
	Quantity        float64 `json:"quantity"`
	UnitPrice       float64 `json:"unit_price"`
	Fees            float64 `json:"fees"`
	Date            string  `json:"date"`
	Notes           string  `json:"notes,omitempty"`
}

type TransactionUpdate struct {
	AssetID         *string  `json:"asset_id,omitempty"`
	TransactionType *string  `json:"transaction_type,omitempty"`
	Quantity        *float64 `json:"quantity,omitempty"`
	UnitPrice       *float64 `json:"unit_price,omitempty"`
	Fees            *float64 `json:"fees,omitempty"`
	Date            *string  `json:"date,omitempty"`
	Notes           *string  `json:"notes,omitempty"`
}

type Profile struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FullName  string `json:"full_name"`
	AvatarURL string `json:"avatar_url"`
	CPF       string `json:"cpf,omitempty"`
	Phone     string `json:"phone,omitempty"`
	BirthDate string `json:"birth_date,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

type ProfileUpdate struct {
	FullName  *string `json:"full_name,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`
	CPF       *string `json:"cpf,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	BirthDate *string `json:"birth_date,omitempty"`
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

// PortfolioSummaryResponse is the server-side aggregate for the dashboard.
type PortfolioSummaryResponse struct {
	TotalAssets       Number `json:"total_assets"`
	TotalTransactions Number `json:"total_transactions"`
	TotalInvested     Number `json:"total_invested"`
}

type AllocationItem struct {
	AssetType  string `json:"asset_type"`
	AssetCount Number `json:"asset_count"`
	TypeTotal  Number `json:"type_total"`
	Percentage Number `json:"percentage"`
}

type AllocationResponse struct {
	Items []AllocationItem `json:"items"`
}

type Suggestion struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Kind        string `json:"kind"`
	Votes       int    `json:"votes"`
	CreatedAt   string `json:"created_at"`
}

type SuggestionCreate struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Kind        string `json:"kind"`
}
