package cmd

import (
	"fmt"
	"log"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/agentdeck/agentdeck/internal/config"
	"github.com/agentdeck/agentdeck/internal/endpoint"
)

var endpointCmd = &cobra.Command{
	Use:   "endpoint",
	Short: "Manage the agent endpoint",
	Long:  `Inspect, set, or clear the persisted agent endpoint and access token.`,
}

var showEndpointCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the resolved endpoint and its source",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		url, source := endpoint.Resolve(endpoint.DefaultProviders(endpointFlag, cfg))

		fmt.Printf("Endpoint: %s\n", url)
		fmt.Printf("Source: %s\n", source)
		if url == endpoint.Placeholder {
			fmt.Println("Warning: no endpoint configured, using the placeholder")
			fmt.Println("Run: agentdeck endpoint set <url>")
		} else if !endpoint.IsValid(url) {
			fmt.Println("Warning: endpoint is not a valid http(s) URL")
		}
		hasToken := "No"
		if cfg.Token != "" {
			hasToken = "Yes"
		}
		fmt.Printf("Token: %s\n", hasToken)
	},
}

var setEndpointCmd = &cobra.Command{
	Use:   "set [url]",
	Short: "Set the persisted endpoint",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		var url string
		if len(args) > 0 {
			url = args[0]
		} else {
			prompt := promptui.Prompt{
				Label:   "Endpoint URL",
				Default: cfg.Endpoint,
				Validate: func(input string) error {
					if !endpoint.IsValid(input) {
						return fmt.Errorf("must start with http:// or https://")
					}
					return nil
				},
			}
			url, err = prompt.Run()
			if err != nil {
				log.Fatalf("Prompt failed: %v", err)
			}
		}

		if !endpoint.IsValid(url) {
			log.Fatalf("Invalid endpoint %q: must start with http:// or https://", url)
		}

		// Token is optional and passed through opaquely
		tokenPrompt := promptui.Prompt{
			Label:   "Access token (optional)",
			Default: cfg.Token,
			Mask:    '*',
		}
		token, err := tokenPrompt.Run()
		if err != nil {
			log.Fatalf("Prompt failed: %v", err)
		}

		cfg.Endpoint = url
		cfg.Token = token
		if err := cfg.Save(); err != nil {
			log.Fatalf("Failed to save config: %v", err)
		}

		fmt.Printf("Endpoint set to %s\n", url)
	},
}

var clearEndpointCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear the persisted endpoint and token",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		confirmPrompt := promptui.Prompt{
			Label:     "Clear the persisted endpoint and token? (y/N)",
			IsConfirm: true,
		}
		if _, err := confirmPrompt.Run(); err != nil {
			fmt.Println("Clear cancelled")
			return
		}

		cfg.Endpoint = ""
		cfg.Token = ""
		if err := cfg.Save(); err != nil {
			log.Fatalf("Failed to save config: %v", err)
		}

		fmt.Println("Endpoint cleared")
	},
}

func init() {
	endpointCmd.AddCommand(showEndpointCmd)
	endpointCmd.AddCommand(setEndpointCmd)
	endpointCmd.AddCommand(clearEndpointCmd)
}
