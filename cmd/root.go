package cmd

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentdeck/agentdeck/internal/app"
)

var endpointFlag string

var rootCmd = &cobra.Command{
	Use:   "agentdeck",
	Short: "Terminal front end for an agent upstream",
	Long:  `Agentdeck submits text and image payloads to a configured agent endpoint and renders the markdown answer in the terminal.`,
	Run: func(cmd *cobra.Command, args []string) {
		// Default behavior: run the interactive application
		application, err := app.NewApplication(endpointFlag)
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
	rootCmd.PersistentFlags().StringVar(&endpointFlag, "endpoint", "", "agent endpoint URL, overrides every configured source")

	// Add subcommands
	rootCmd.AddCommand(endpointCmd)
	rootCmd.AddCommand(pingCmd)
	rootCmd.AddCommand(askCmd)
}
