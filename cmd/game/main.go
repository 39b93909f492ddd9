package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/tatianab/adventure-sim/internal/archive"
	"github.com/tatianab/adventure-sim/internal/config"
	"github.com/tatianab/adventure-sim/internal/engine"
	"github.com/tatianab/adventure-sim/internal/logging"
	"github.com/tatianab/adventure-sim/internal/models"
	"github.com/tatianab/adventure-sim/internal/report"
	"github.com/tatianab/adventure-sim/internal/simulation"
	"github.com/tatianab/adventure-sim/internal/tui"
)

func main() {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	var (
		dataFile = flag.String("data", cfg.GameDataFile, "game data file (.json or .yaml)")
		start    = flag.Int("start", cfg.InitialLocation, "initial location id")
		script   = flag.String("script", cfg.ScriptFile, "YAML script with initial_location and commands")
		ids      = flag.Bool("ids", false, "print the location id log instead of the transcript")
		visits   = flag.Bool("report", false, "print a table of visits per location")
		save     = flag.String("save", "", "save the replay under this name in the save dir")
		archPath = flag.String("archive", cfg.ArchivePath, "also store the replay in this SQLite archive")
		narrate  = flag.Bool("narrate", false, "print a Gemini narration of the replay")
		view     = flag.Bool("view", false, "open the replay in the terminal viewer")
		strict   = flag.Bool("strict", cfg.Strict, "reject commands the game does not know")
		verbose  = flag.Bool("v", false, "log every replayed step")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] [command ...]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	defer logging.Setup("[SIM] ", cfg.LogFile).Close()

	commands := flag.Args()
	if *script != "" {
		s, err := models.LoadScript(*script)
		if err != nil {
			log.Fatalf("Failed to load script: %v", err)
		}
		commands = append(s.Commands, commands...)
		if s.InitialLocation != 0 && !isFlagSet("start") {
			*start = s.InitialLocation
		}
	}

	var opts []simulation.Option
	if *strict {
		opts = append(opts, simulation.WithStrictCommands())
	}
	if *verbose {
		opts = append(opts, simulation.WithLogger(logging.New()))
	}

	sim, err := simulation.Open(*dataFile, *start, commands, opts...)
	if err != nil {
		log.Fatalf("Failed to run simulation: %v", err)
	}

	name := *save
	if name == "" {
		name = "current"
	}
	replay := sim.Replay(name)

	switch {
	case *ids:
		fmt.Println(sim.IDLog())
	case *view:
		if err := tui.Run(replay); err != nil {
			log.Fatalf("Error running viewer: %v", err)
		}
	default:
		if err := sim.Run(os.Stdout); err != nil {
			log.Fatalf("Failed to print transcript: %v", err)
		}
	}

	if *visits {
		fmt.Println()
		fmt.Println(report.Summary(replay.IDLog))
		report.WriteVisitTable(os.Stdout, replay.IDLog)
	}

	if *save != "" {
		if err := replay.Save(cfg.SaveDir); err != nil {
			log.Fatalf("Failed to save replay: %v", err)
		}
		log.Printf("saved replay %q to %s", name, cfg.SaveDir)
	}

	if *archPath != "" {
		store, err := archive.Open(*archPath)
		if err != nil {
			log.Fatalf("Failed to open archive: %v", err)
		}
		defer store.Close()
		id, err := store.SaveReplay(ctx, replay)
		if err != nil {
			log.Fatalf("Failed to archive replay: %v", err)
		}
		log.Printf("archived replay %q as #%d", name, id)
	}

	if *narrate {
		if !cfg.NarrationEnabled() {
			log.Fatalf("Narration needs GEMINI_API_KEY")
		}
		eng, err := engine.NewEngine(ctx, cfg.GeminiAPIKey, cfg.Model)
		if err != nil {
			log.Fatalf("Error creating engine: %v", err)
		}
		defer eng.Close()
		story, err := eng.Narrate(ctx, replay)
		if err != nil {
			log.Fatalf("Failed to narrate replay: %v", err)
		}
		fmt.Println()
		fmt.Println(story)
	}
}

func isFlagSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}
