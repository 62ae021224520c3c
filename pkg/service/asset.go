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

type AssetService struct{}

// NewAssetService creates a new asset service
func NewAssetService() *AssetService {
	return &AssetService{}
}

func (s *AssetService) fetchAssets(activeOnly bool) ([]api.Asset, error) {
	if mockEnabled() {
		return mock.Assets(), nil
	}
	return api.GetAssets(activeOnly)
}

// ListAssets lists the user's assets
func (s *AssetService) ListAssets(activeOnly bool) error {
	client.Init()

	assets, err := s.fetchAssets(activeOnly)
	if err != nil {
		formatter.PrintError("Failed to fetch assets: %v", err)
		return err
	}

	if len(assets) == 0 {
		formatter.PrintInfo("No assets yet. Add one with 'investorion asset add'.")
		return nil
	}

	mapped := portfolio.MapAssets(assets)
	headers := []string{"Ticker", "Name", "Type", "Quantity", "Avg Price", "Status"}
	rows := make([][]string, 0, len(mapped))
	for _, a := range mapped {
		rows = append(rows, []string{
			a.Ticker,
			a.Name,
			a.TypeDisplay,
			formatter.FormatQuantity(a.Quantity),
			formatter.FormatBRL(a.AveragePrice),
			a.StatusDisplay,
		})
	}

	formatter.PrintTable(headers, rows)
	return nil
}

// ViewAsset shows one asset
func (s *AssetService) ViewAsset(id string) error {
	client.Init()

	asset, err := api.GetAsset(id)
	if err != nil {
		formatter.PrintError("Failed to fetch asset: %v", err)
		return err
	}

	mapped := portfolio.MapAsset(*asset)
	formatter.PrintKeyValue(map[string]interface{}{
		"Ticker":    mapped.Ticker,
		"Name":      mapped.Name,
		"Type":      mapped.TypeDisplay,
		"Sector":    mapped.Sector,
		"Quantity":  formatter.FormatQuantity(mapped.Quantity),
		"Avg Price": formatter.FormatBRL(mapped.AveragePrice),
		"Status":    mapped.StatusDisplay,
	})
	return nil
}

// CreateAsset registers a new asset
func (s *AssetService) CreateAsset(ticker, name, assetType, sector string) error {
	client.Init()

	var err error
	if ticker == "" {
		ticker, err = prompter.PromptString("Ticker: ")
		if err != nil {
			return err
		}
	}
	if name == "" {
		name, _ = prompter.PromptString("Name: ")
	}
	if assetType == "" {
		assetType, err = prompter.PromptSelect("Asset type", portfolio.AssetTypeCodes())
		if err != nil {
			return err
		}
	}
	assetType = strings.ToUpper(assetType)

	formatter.PrintInfo("Creating asset %s...", ticker)

	asset, err := api.CreateAsset(api.AssetCreate{
		Ticker:    strings.ToUpper(ticker),
		Name:      name,
		AssetType: assetType,
		Sector:    sector,
	})
	if err != nil {
		formatter.PrintError("Failed to create asset: %v", err)
		return err
	}

	formatter.PrintSuccess("✓ Asset %s created (%s)", asset.Ticker, portfolio.AssetTypeLabel(asset.AssetType))
	return nil
}

// UpdateAsset updates asset fields; empty values are left untouched
func (s *AssetService) UpdateAsset(id, ticker, name, assetType, sector string, active *bool) error {
	client.Init()

	update := api.AssetUpdate{IsActive: active}
	if ticker != "" {
		upper := strings.ToUpper(ticker)
		update.Ticker = &upper
	}
	if name != "" {
		update.Name = &name
	}
	if assetType != "" {
		upper := strings.ToUpper(assetType)
		update.AssetType = &upper
	}
	if sector != "" {
		update.Sector = &sector
	}

	asset, err := api.UpdateAsset(id, update)
	if err != nil {
		formatter.PrintError("Failed to update asset: %v", err)
		return err
	}

	formatter.PrintSuccess("✓ Asset %s updated", asset.Ticker)
	return nil
}

// DeleteAsset removes an asset after confirmation
func (s *AssetService) DeleteAsset(id string, force bool) error {
	client.Init()

	if !force {
		confirm, _ := prompter.PromptConfirm(fmt.Sprintf("Delete asset %s?", id))
		if !confirm {
			return nil
		}
	}

	if err := api.DeleteAsset(id); err != nil {
		formatter.PrintError("Failed to delete asset: %v", err)
		return err
	}

	formatter.PrintSuccess("✓ Asset deleted")
	return nil
}
