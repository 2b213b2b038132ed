package cmd

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/apocrypha/forge/internal/app"
)

var rootCmd = &cobra.Command{
	Use:   "forge",
	Short: "Terminal client for the Apocrypha idea forge",
	Long: `Forge is a terminal client for the Apocrypha Solutions Factory.
Chat with the assistant to develop your business idea, watch the
consideration board fill in, and submit to the marketplace.`,
	Run: func(cmd *cobra.Command, args []string) {
		// Default behavior: run the forge application
		application, err := app.NewApplication()
		if err != nil {
			log.Fatalf("Failed to create application: %v", err)
		}
		defer application.Stop()

		if err := application.Start(); err != nil {
			log.Fatalf("Application error: %v", err)
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution error: %v", err)
		os.Exit(1)
	}
}

func init() {
	// Add subcommands
	rootCmd.AddCommand(profileCmd)
}
