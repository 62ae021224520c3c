package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/investorion/cli/pkg/config"
	"github.com/investorion/cli/pkg/logger"
	"github.com/investorion/cli/pkg/output"
)

var (
	verbose    bool
	configPath string
	outputFmt  string
	mockMode   bool
)

var rootCmd = &cobra.Command{
	Use:   "investorion",
	Short: "Investorion - Personal investment portfolio tracker",
	Long: `Investorion is a command-line interface for tracking your personal
investment portfolio: assets, transactions, allocation and market
quotes, directly from the terminal.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Initialize config and logger
		if err := config.Init(configPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error initializing config: %v\n", err)
			os.Exit(1)
		}

		logger.Init(verbose)

		if !output.ValidateOutputFormat(outputFmt) {
			fmt.Fprintf(os.Stderr, "Error: invalid output format %q (text, json, table)\n", outputFmt)
			os.Exit(1)
		}
		config.Set("output.format", outputFmt)

		if mockMode {
			config.Set("api.mock", true)
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default: ~/.config/investorion/cli/config.toml)")
	rootCmd.PersistentFlags().StringVar(&outputFmt, "output", "text", "Output format: text, json, table")
	rootCmd.PersistentFlags().BoolVar(&mockMode, "mock", false, "Use offline demo data instead of the API")

	rootCmd.AddCommand(authCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(assetCmd)
	rootCmd.AddCommand(transactionCmd)
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(suggestionCmd)
	rootCmd.AddCommand(marketCmd)
	rootCmd.AddCommand(versionCmd)
}
