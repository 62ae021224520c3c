package cmd

import (
	"github.com/spf13/cobra"

	"github.com/investorion/cli/pkg/service"
)

var (
	suggestionTitle       string
	suggestionDescription string
	suggestionKind        string
)

var suggestionCmd = &cobra.Command{
	Use:   "suggestion",
	Short: "Suggestion board commands",
	Long:  "Browse, post and vote on product suggestions",
}

var suggestionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List suggestions",
	RunE: func(cmd *cobra.Command, args []string) error {
		sugSvc := service.NewSuggestionService()
		return sugSvc.ListSuggestions()
	},
}

var suggestionAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Post a new suggestion",
	RunE: func(cmd *cobra.Command, args []string) error {
		sugSvc := service.NewSuggestionService()
		return sugSvc.CreateSuggestion(suggestionTitle, suggestionDescription, suggestionKind)
	},
}

var suggestionVoteCmd = &cobra.Command{
	Use:   "vote <id>",
	Short: "Vote on a suggestion",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sugSvc := service.NewSuggestionService()
		return sugSvc.VoteSuggestion(args[0])
	},
}

func init() {
	suggestionAddCmd.Flags().StringVar(&suggestionTitle, "title", "", "Suggestion title")
	suggestionAddCmd.Flags().StringVar(&suggestionDescription, "description", "", "Suggestion description")
	suggestionAddCmd.Flags().StringVar(&suggestionKind, "kind", "", "Suggestion kind: ideia or bug")

	suggestionCmd.AddCommand(suggestionListCmd)
	suggestionCmd.AddCommand(suggestionAddCmd)
	suggestionCmd.AddCommand(suggestionVoteCmd)
}
