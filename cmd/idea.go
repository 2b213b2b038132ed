package cmd

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/apocrypha/forge/internal/api"
	"github.com/apocrypha/forge/internal/config"
)

var ideaCmd = &cobra.Command{
	Use:   "idea [idea-id]",
	Short: "Show a marketplace idea with its comments",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client := mustClient()

		detail, err := client.IdeaDetail(context.Background(), args[0])
		if err != nil {
			log.Fatalf("Failed to fetch idea: %v", err)
		}

		titleStyle := lipgloss.NewStyle().Bold(true)
		metaStyle := lipgloss.NewStyle().Faint(true)

		fmt.Println(titleStyle.Render(detail.Title))
		fmt.Println(metaStyle.Render("Status: " + detail.Status))
		if detail.Description != "" {
			fmt.Println("\n" + detail.Description)
		}
		fmt.Println("\n" + titleStyle.Render(fmt.Sprintf("Comments (%d)", len(detail.Comments))))
		for _, c := range detail.Comments {
			fmt.Printf("%s: %s\n", metaStyle.Render(c.Author), c.Text)
		}
	},
}

var commentCmd = &cobra.Command{
	Use:   "comment [idea-id]",
	Short: "Add a comment to a marketplace idea",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		client, err := api.NewClient(cfg.ServerURL(), cfg.Timeout())
		if err != nil {
			log.Fatalf("Invalid server URL: %v", err)
		}

		prompt := promptui.Prompt{
			Label: "Comment",
			Validate: func(input string) error {
				if strings.TrimSpace(input) == "" {
					return fmt.Errorf("comment cannot be empty")
				}
				return nil
			},
		}
		comment, err := prompt.Run()
		if err != nil {
			log.Fatalf("Prompt failed: %v", err)
		}

		if _, err := client.AddComment(context.Background(), args[0], strings.TrimSpace(comment), cfg.Author()); err != nil {
			log.Fatalf("Failed to add comment: %v", err)
		}

		fmt.Printf("Comment posted as %s.\n", cfg.Author())
	},
}

func mustClient() *api.Client {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	client, err := api.NewClient(cfg.ServerURL(), cfg.Timeout())
	if err != nil {
		log.Fatalf("Invalid server URL: %v", err)
	}
	return client
}

func init() {
	rootCmd.AddCommand(ideaCmd)
	rootCmd.AddCommand(commentCmd)
}
