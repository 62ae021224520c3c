package api

import (
	"net/http"
	"net/url"

	"github.com/investorion/cli/pkg/client"
	"github.com/investorion/cli/pkg/logger"
)

// GetAssets lists the user's assets. With activeOnly set, soft-deleted
// assets are filtered out server-side.
func GetAssets(activeOnly bool) ([]Asset, error) {
	logger.Debug("Fetching assets", "active_only", activeOnly)

	opts := &client.Options{}
	if activeOnly {
		query := url.Values{}
		query.Set("active_only", "true")
		opts.Query = query
	}

	var assets []Asset
	if err := client.Default().DoJSON(http.MethodGet, "/assets", opts, &assets); err != nil {
		return nil, err
	}
	return assets, nil
}

// GetAsset fetches a single asset by id.
func GetAsset(id string) (*Asset, error) {
	logger.Debug("Fetching asset", "id", id)

	var asset Asset
	if err := client.Default().DoJSON(http.MethodGet, "/assets/"+id, nil, &asset); err != nil {
		return nil, err
	}
	return &asset, nil
}

// CreateAsset registers a new asset.
func CreateAsset(create AssetCreate) (*Asset, error) {
	logger.Debug("Creating asset", "ticker", create.Ticker)

	var asset Asset
	err := client.Default().DoJSON(http.MethodPost, "/assets", &client.Options{Body: create}, &asset)
	if err != nil {
		return nil, err
	}
	return &asset, nil
}

// UpdateAsset patches an asset. Only non-nil fields are sent.
func UpdateAsset(id string, update AssetUpdate) (*Asset, error) {
	logger.Debug("Updating asset", "id", id)

	var asset Asset
	err := client.Default().DoJSON(http.MethodPatch, "/assets/"+id, &client.Options{Body: update}, &asset)
	if err != nil {
		return nil, err
	}
	return &asset, nil
}

// DeleteAsset removes an asset. The backend treats this as a soft delete.
func DeleteAsset(id string) error {
	logger.Debug("Deleting asset", "id", id)

	return client.Default().DoJSON(http.MethodDelete, "/assets/"+id, nil, nil)
}
