package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/agentdeck/agentdeck/internal/config"
	"github.com/agentdeck/agentdeck/internal/endpoint"
	"github.com/agentdeck/agentdeck/internal/upstream"
)

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check that the agent endpoint is reachable",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		url := endpoint.ResolveAndPersist(endpointFlag, cfg)
		if url == endpoint.Placeholder {
			log.Fatalf("No endpoint configured. Run: agentdeck endpoint set <url>")
		}

		client := upstream.NewClient()
		start := time.Now()
		err = client.Probe(context.Background(), url)
		elapsed := time.Since(start)

		if err != nil {
			fmt.Printf("FAIL %s: %v\n", url, err)
			os.Exit(1)
		}
		fmt.Printf("OK %s (%d ms)\n", url, elapsed.Milliseconds())
	},
}
