package cmd

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/naka-gawa/repo-detective/internal/client"
	"github.com/naka-gawa/repo-detective/internal/config"
	"github.com/naka-gawa/repo-detective/internal/domain"
	"github.com/naka-gawa/repo-detective/internal/gateway"
	"github.com/naka-gawa/repo-detective/internal/usecase"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze TARGET",
	Short: "Analyzes a repository or a user's repositories and outputs JSON",
	Long: `Analyzes TARGET and prints the results as a JSON array.

TARGET is owner/repo, a github.com URL, or a username. A username analyzes
the user's most recently updated repositories. GITHUB_TOKEN is optional
locally; without it requests are unauthenticated and rate limited harder.
With --server the analysis is delegated to a running "repo-detective serve".`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		logger := newLogger(cmd)
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		var results []*domain.AnalysisResult
		if server, _ := cmd.Flags().GetString("server"); server != "" {
			result, err := client.New(server, client.WithTimeout(cfg.RequestTimeout()*6)).Analyze(ctx, args[0])
			if err != nil {
				return err
			}
			results = []*domain.AnalysisResult{result}
		} else {
			if cfg.GitHubToken == "" {
				logger.Println("GITHUB_TOKEN is not set, using unauthenticated requests.")
			}
			analyzer, err := newAnalyzer(cfg, logger)
			if err != nil {
				return err
			}
			results, err = analyzer.Analyze(ctx, args[0])
			if err != nil {
				return err
			}
		}

		// Marshal the results into a pretty-printed JSON string.
		jsonData, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal results to JSON: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(jsonData))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().String("server", "", "Base URL of a running repo-detective server")
}

// newAnalyzer injects the GitHub gateway into the analyze use case.
func newAnalyzer(cfg *config.Config, logger *log.Logger) (*usecase.Analyzer, error) {
	githubGateway, err := gateway.NewGitHubGateway(cfg.GitHubToken, gateway.Options{
		APIURL:            cfg.GitHubAPIURL,
		GraphQLURL:        cfg.GitHubGraphQLURL,
		CallTimeout:       cfg.RequestTimeout(),
		MaxRateLimitSleep: cfg.RateLimitMaxSleep(),
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub gateway: %w", err)
	}
	return usecase.NewAnalyzer(githubGateway, logger,
		usecase.WithUserRepoLimit(cfg.UserRepoLimit),
		usecase.WithIssueTitleLimit(*cfg.IssueTitleLimit),
	), nil
}

