package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/moonlander/internal/registry"
)

var botsCmd = &cobra.Command{
	Use:   "bots",
	Short: "List all available bots",
	Long:  `Shows a list of all bot kinds that can fly a lander.`,
	Run:   runBots,
}

func runBots(_ *cobra.Command, _ []string) {
	bots := registry.List()

	if len(bots) == 0 {
		fmt.Println("No bots available.")
		return
	}

	fmt.Println("Available bots:")
	fmt.Println()

	// Calculate column widths
	maxKindLen := 4 // "Kind" header
	for _, b := range bots {
		if len(b.Kind) > maxKindLen {
			maxKindLen = len(b.Kind)
		}
	}

	fmt.Printf("  %-*s  %s\n", maxKindLen, "Kind", "Description")
	fmt.Printf("  %-*s  %s\n", maxKindLen, "----", "-----------")

	for _, b := range bots {
		fmt.Printf("  %-*s  %s\n", maxKindLen, b.Kind, b.Description)
	}

	fmt.Println()
	fmt.Println("Run 'lander run --bot <kind>:<team>' to enter a bot.")
}
