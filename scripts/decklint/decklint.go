package main

import (
	"fmt"
	"math/rand"
	"os"
	"sort"

	"partyhub"
	"partyhub/internal/game"
)

func main() {
	fmt.Println("PartyHub Prompt Deck Linter")
	fmt.Println("===========================")
	fmt.Println()

	// Lint the embedded decks by default; DECK_FILE checks an edited copy
	// before it gets embedded.
	raw := partyhub.PromptDecksYAML
	source := "embedded static/prompt-decks.yaml"
	if path := os.Getenv("DECK_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Printf("Error reading %s: %v\n", path, err)
			os.Exit(1)
		}
		raw = data
		source = path
	}

	decks, err := game.NewDeckService(raw, rand.New(rand.NewSource(1)))
	if err != nil {
		fmt.Printf("Deck validation failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("All decks parse and validate (%s)\n\n", source)

	sizes := decks.Sizes()
	names := make([]string, 0, len(sizes))
	for name := range sizes {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("Deck sizes:")
	for _, name := range names {
		fmt.Printf("  %-20s %d\n", name, sizes[name])
	}
}
