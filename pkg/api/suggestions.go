package api

import (
	"net/http"

	"github.com/investorion/cli/pkg/client"
	"github.com/investorion/cli/pkg/logger"
)

// GetSuggestions lists the feature-board suggestions.
func GetSuggestions() ([]Suggestion, error) {
	logger.Debug("Fetching suggestions")

	var suggestions []Suggestion
	if err := client.Default().DoJSON(http.MethodGet, "/suggestions", nil, &suggestions); err != nil {
		return nil, err
	}
	return suggestions, nil
}

// CreateSuggestion submits a new idea or bug report.
func CreateSuggestion(create SuggestionCreate) (*Suggestion, error) {
	logger.Debug("Creating suggestion", "kind", create.Kind)

	var suggestion Suggestion
	err := client.Default().DoJSON(http.MethodPost, "/suggestions", &client.Options{Body: create}, &suggestion)
	if err != nil {
		return nil, err
	}
	return &suggestion, nil
}

// VoteSuggestion adds one vote to a suggestion. Vote uniqueness per user is
// enforced by the backend, not here.
func VoteSuggestion(id string) error {
	logger.Debug("Voting on suggestion", "id", id)

	return client.Default().DoJSON(http.MethodPost, "/suggestions/"+id+"/vote", nil, nil)
}
