package main

import (
	"log"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:           "requestbot",
		Short:         "Telegram bot that collects code requests and routes them to a moderation channel",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runServe,
	}

	root.AddCommand(newServeCommand(), newStatsCommand())

	if err := root.Execute(); err != nil {
		log.Fatalf("requestbot: %v", err)
	}
}
