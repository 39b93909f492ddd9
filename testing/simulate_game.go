package main

import (
	"fmt"
	"log"
	"os"
	"slices"

	"github.com/tatianab/adventure-sim/internal/config"
	"github.com/tatianab/adventure-sim/internal/report"
	"github.com/tatianab/adventure-sim/internal/simulation"
)

type walkthrough struct {
	name     string
	commands []string
	expected []int
}

func walkthroughs() []walkthrough {
	var lose []string
	var loseLog []int
	for n := 0; n < 16; n++ {
		lose = append(lose, "go north", "go south")
		loseLog = append(loseLog, 1, 2)
	}
	loseLog = append(loseLog, 1)

	return []walkthrough{
		{
			// chirly finishes the final sliding tile puzzle
			name: "win",
			commands: []string{"go north", "go east", "look", "pick up", "laptop charger", "go west", "go north", "look",
				"pick up", "lucky uoft mug", "go east", "go east", "look", "pick up", "large rock", "go north",
				"drop", "large rock", "drop", "laptop charger", "go west", "go west", "look", "pick up",
				"line 1 sign", "go east", "go east", "drop", "line 1 sign", "look", "pick up", "usb drive",
				"pick up", "laptop charger", "go south", "go east", "drop", "laptop charger", "drop",
				"lucky uoft mug", "drop", "usb drive", "chirly"},
			expected: []int{1, 2, 3, 3, 3, 3, 2, 5, 5, 5, 5, 6, 7, 7, 7, 7, 11, 11, 11, 11, 11, 10, 9, 9, 9, 9, 10, 11, 11, 11,
				11, 11, 11, 11, 11, 7, 8, 8, 8, 8, 8, 8, 8, 8},
		},
		{name: "lose", commands: lose, expected: loseLog},
		{name: "inventory", commands: []string{"look", "pick up", "toonie", "inventory"}, expected: []int{1, 1, 1, 1, 1}},
		{name: "score", commands: []string{"look", "pick up", "toonie", "score"}, expected: []int{1, 1, 1, 1, 1}},
	}
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	failed := 0
	for _, w := range walkthroughs() {
		fmt.Printf("--- %s ---\n", w.name)

		var opts []simulation.Option
		if cfg.Strict {
			opts = append(opts, simulation.WithStrictCommands())
		}
		sim, err := simulation.Open(cfg.GameDataFile, cfg.InitialLocation, w.commands, opts...)
		if err != nil {
			fmt.Printf("Error running walkthrough: %v\n\n", err)
			failed++
			continue
		}

		got := sim.IDLog()
		if !slices.Equal(got, w.expected) {
			fmt.Printf("MISMATCH\n  expected: %v\n  got:      %v\n\n", w.expected, got)
			failed++
			continue
		}
		fmt.Printf("OK: %s\n\n", report.Summary(got))
	}

	if failed > 0 {
		fmt.Printf("%d walkthrough(s) failed\n", failed)
		os.Exit(1)
	}
	fmt.Println("All walkthroughs matched.")
}
