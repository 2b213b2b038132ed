package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/apocrypha/forge/internal/api"
	"github.com/apocrypha/forge/internal/config"
	"github.com/apocrypha/forge/internal/marketplace"
)

var (
	marketplaceSearch string
	marketplaceStatus string
	marketplaceSort   string
)

var marketplaceCmd = &cobra.Command{
	Use:   "marketplace",
	Short: "Browse ideas in the marketplace",
	Long:  `List ideas from the Apocrypha marketplace with optional search, status filter, and sort order.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		client, err := api.NewClient(cfg.ServerURL(), cfg.Timeout())
		if err != nil {
			log.Fatalf("Invalid server URL: %v", err)
		}

		ideas, err := client.MarketplaceIdeas(context.Background())
		if err != nil {
			log.Fatalf("Failed to fetch marketplace: %v", err)
		}

		filtered := marketplace.Apply(ideas, marketplace.Filter{
			Query:  marketplaceSearch,
			Status: marketplaceStatus,
			Sort:   marketplace.SortOrder(marketplaceSort),
		})

		if len(filtered) == 0 {
			fmt.Println("No ideas match.")
			return
		}

		titleStyle := lipgloss.NewStyle().Bold(true)
		metaStyle := lipgloss.NewStyle().Faint(true)

		for _, idea := range filtered {
			fmt.Println(titleStyle.Render(idea.Title))
			fmt.Println(metaStyle.Render(fmt.Sprintf("  %s · %d views · %d comments · /idea/%s",
				idea.Status, idea.ViewCount, idea.CommentCount, idea.ID)))
			if idea.Description != "" {
				fmt.Printf("  %s\n", idea.Description)
			}
			fmt.Println()
		}
	},
}

func init() {
	marketplaceCmd.Flags().StringVar(&marketplaceSearch, "search", "", "filter by title or description substring")
	marketplaceCmd.Flags().StringVar(&marketplaceStatus, "status", marketplace.StatusAll, "filter by idea status")
	marketplaceCmd.Flags().StringVar(&marketplaceSort, "sort", string(marketplace.SortNewest),
		"sort order: newest, oldest, most_viewed, most_commented")
	rootCmd.AddCommand(marketplaceCmd)
}
