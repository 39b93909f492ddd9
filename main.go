package main

import (
	"fmt"
	"os"

	"github.com/tatianab/adventure-sim/internal/config"
	"github.com/tatianab/adventure-sim/internal/logging"
	"github.com/tatianab/adventure-sim/internal/tui"
)

// main opens the viewer on the replay of ADVENTURE_SCRIPT.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}
	defer logging.Setup("[VIEW] ", cfg.LogFile).Close()

	if err := tui.Start(cfg); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
