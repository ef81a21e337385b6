package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/deepretrieve/deepretrieve/internal/api"
	"github.com/deepretrieve/deepretrieve/internal/markdown"
)

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask a one-shot question about the uploaded document",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		question := strings.Join(args, " ")
		client := api.NewClient(cfg.BackendURL)

		ctx, cancel := api.WithTimeout(cmd.Context(), cfg.QueryTimeout)
		defer cancel()

		logger.Info("query", "question", question, "top_k", cfg.TopK)
		resp, err := client.Query(ctx, question, cfg.TopK)
		if err != nil {
			return err
		}

		renderer, err := markdown.NewRenderer(100)
		if err != nil {
			return fmt.Errorf("create renderer: %w", err)
		}
		fmt.Println(renderer.Render(resp.Answer))

		if len(resp.Sources) > 0 {
			fmt.Println()
			fmt.Printf("Sources (%d):\n", len(resp.Sources))
			for _, src := range resp.Sources {
				line := fmt.Sprintf("  [%s] %s", src.Type, src.Confidence())
				if src.Page != nil {
					line += fmt.Sprintf(" · page %d", *src.Page)
				}
				if src.Source != "" {
					line += " · " + src.Source
				}
				fmt.Println(line)
			}
		}
		if resp.UsedWebSearch {
			fmt.Println("\n(web search was used to supplement the answer)")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(askCmd)
}
