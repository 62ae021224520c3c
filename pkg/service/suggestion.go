package service

import (
	"fmt"

	"github.com/investorion/cli/pkg/api"
	"github.com/investorion/cli/pkg/client"
	"github.com/investorion/cli/pkg/formatter"
	"github.com/investorion/cli/pkg/mock"
	"github.com/investorion/cli/pkg/prompter"
)

type SuggestionService struct{}

// NewSuggestionService creates a new suggestion service
func NewSuggestionService() *SuggestionService {
	return &SuggestionService{}
}

func printSuggestions(suggestions []api.Suggestion) {
	headers := []string{"ID", "Kind", "Title", "Votes"}
	rows := make([][]string, 0, len(suggestions))
	for _, sg := range suggestions {
		rows = append(rows, []string{sg.ID, sg.Kind, sg.Title, fmt.Sprintf("%d", sg.Votes)})
	}
	formatter.PrintTable(headers, rows)
}

// ListSuggestions lists the suggestion board
func (s *SuggestionService) ListSuggestions() error {
	client.Init()

	var suggestions []api.Suggestion
	if mockEnabled() {
		suggestions = mock.Suggestions()
	} else {
		var err error
		suggestions, err = api.GetSuggestions()
		if err != nil {
			formatter.PrintError("Failed to fetch suggestions: %v", err)
			return err
		}
	}

	if len(suggestions) == 0 {
		formatter.PrintInfo("No suggestions yet")
		return nil
	}

	printSuggestions(suggestions)
	return nil
}

// CreateSuggestion posts a new idea or bug report
func (s *SuggestionService) CreateSuggestion(title, description, kind string) error {
	client.Init()

	var err error
	if title == "" {
		title, err = prompter.PromptString("Title: ")
		if err != nil {
			return err
		}
	}
	if description == "" {
		description, _ = prompter.PromptString("Description: ")
	}
	if kind == "" {
		kind, err = prompter.PromptSelect("Kind", []string{api.SuggestionKindIdea, api.SuggestionKindBug})
		if err != nil {
			return err
		}
	}

	suggestion, err := api.CreateSuggestion(api.SuggestionCreate{
		Title:       title,
		Description: description,
		Kind:        kind,
	})
	if err != nil {
		formatter.PrintError("Failed to create suggestion: %v", err)
		return err
	}

	formatter.PrintSuccess("✓ Suggestion %s created", suggestion.ID)
	return nil
}

// VoteSuggestion votes on a suggestion and shows the refreshed board. Vote
// counts come from a refetch, not a local increment, so concurrent votes
// from other users are reflected.
func (s *SuggestionService) VoteSuggestion(id string) error {
	client.Init()

	if err := api.VoteSuggestion(id); err != nil {
		formatter.PrintError("Failed to vote: %v", err)
		return err
	}

	formatter.PrintSuccess("✓ Vote registered")

	suggestions, err := api.GetSuggestions()
	if err != nil {
		formatter.PrintWarning("Vote registered, but refreshing the board failed: %v", err)
		return nil
	}
	printSuggestions(suggestions)
	return nil
}
