package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentdeck/agentdeck/internal/config"
	"github.com/agentdeck/agentdeck/internal/endpoint"
	"github.com/agentdeck/agentdeck/internal/markdown"
	"github.com/agentdeck/agentdeck/internal/upstream"
)

var askImageFlag string

var askCmd = &cobra.Command{
	Use:   "ask [text]",
	Short: "Submit a one-shot question and print the answer",
	Long:  `Submit text (and optionally an image) to the agent endpoint and print the rendered markdown answer.`,
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		url := endpoint.ResolveAndPersist(endpointFlag, cfg)
		if url == endpoint.Placeholder {
			log.Fatalf("No endpoint configured. Run: agentdeck endpoint set <url>")
		}

		sub := upstream.Submission{
			Text:  strings.Join(args, " "),
			Token: cfg.Token,
		}
		if askImageFlag != "" {
			data, err := os.ReadFile(askImageFlag)
			if err != nil {
				log.Fatalf("Failed to read image: %v", err)
			}
			sub.Image = data
			sub.ImageName = filepath.Base(askImageFlag)
		}

		client := upstream.NewClient()
		result, err := client.Submit(context.Background(), url, sub)
		if err != nil {
			log.Fatalf("Submission failed: %v", err)
		}

		fmt.Println(markdown.RenderTerm(result.AnswerMarkdown))
		if len(result.Files) > 0 {
			fmt.Println()
			fmt.Println("Attachments:")
			for _, f := range result.Files {
				fmt.Printf("  %s  %s\n", f.Name, f.URL)
			}
		}
	},
}

func init() {
	askCmd.Flags().StringVar(&askImageFlag, "image", "", "path to an image to attach")
}
