package simulation

import (
	"bytes"
	"errors"
	"log"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/tatianab/adventure-sim/internal/events"
	"github.com/tatianab/adventure-sim/internal/models"
	"github.com/tatianab/adventure-sim/internal/world"
)

var gameData = filepath.Join("testdata", "game_data.json")

// loopWorld is two rooms joined by a door.
func loopWorld(t *testing.T) *world.World {
	t.Helper()
	w, err := world.New(models.GameData{
		Locations: []models.Location{
			{ID: 1, BriefDescription: "Porch.", LongDescription: "A creaking porch.", AvailableCommands: map[string]int{"go in": 2}},
			{ID: 2, BriefDescription: "Parlour.", LongDescription: "A dusty parlour.", AvailableCommands: map[string]int{"go out": 1}},
		},
		Verbs: []string{"look"},
	}, 1)
	if err != nil {
		t.Fatalf("Failed to build world: %v", err)
	}
	return w
}

func descriptions(s *Simulation) []string {
	var out []string
	s.Events().Forward(func(_ int, e events.Event) bool {
		out = append(out, e.Description)
		return true
	})
	return out
}

func TestScenarios(t *testing.T) {
	win := []string{"go north", "go east", "look", "pick up", "laptop charger", "go west", "go north", "look",
		"pick up", "lucky uoft mug", "go east", "go east", "look", "pick up", "large rock", "go north",
		"drop", "large rock", "drop", "laptop charger", "go west", "go west", "look", "pick up",
		"line 1 sign", "go east", "go east", "drop", "line 1 sign", "look", "pick up", "usb drive",
		"pick up", "laptop charger", "go south", "go east", "drop", "laptop charger", "drop",
		"lucky uoft mug", "drop", "usb drive", "chirly"}
	var lose []string
	var loseLog []int
	for n := 0; n < 16; n++ {
		lose = append(lose, "go north", "go south")
		loseLog = append(loseLog, 1, 2)
	}
	loseLog = append(loseLog, 1)

	for _, tc := range []struct {
		name     string
		commands []string
		want     []int
	}{
		{name: "single move", commands: []string{"go north"}, want: []int{1, 2}},
		{name: "three moves", commands: []string{"go north", "go east", "go north"}, want: []int{1, 2, 3, 6}},
		{name: "lose", commands: lose, want: loseLog},
		{name: "inventory", commands: []string{"look", "pick up", "toonie", "inventory"}, want: []int{1, 1, 1, 1, 1}},
		{name: "score", commands: []string{"look", "pick up", "toonie", "score"}, want: []int{1, 1, 1, 1, 1}},
		{
			name:     "win",
			commands: win,
			want: []int{1, 2, 3, 3, 3, 3, 2, 5, 5, 5, 5, 6, 7, 7, 7, 7, 11, 11, 11, 11, 11, 10, 9, 9, 9, 9, 10, 11, 11, 11,
				11, 11, 11, 11, 11, 7, 8, 8, 8, 8, 8, 8, 8, 8},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			sim, err := Open(gameData, 1, tc.commands)
			if err != nil {
				t.Fatalf("Failed to open simulation: %v", err)
			}
			got := sim.IDLog()
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("id log mismatch (-want +got):\n%s", diff)
			}
			if len(got) != len(tc.commands)+1 {
				t.Errorf("Expected %d entries, got %d", len(tc.commands)+1, len(got))
			}
			if got[0] != 1 {
				t.Errorf("Expected log to start at 1, got %d", got[0])
			}
		})
	}
}

func TestIDLogIdempotentAndMatchesTraversal(t *testing.T) {
	sim, err := Open(gameData, 1, []string{"go north", "go east", "look", "go west"})
	if err != nil {
		t.Fatal(err)
	}

	first := sim.IDLog()
	if diff := cmp.Diff(first, sim.IDLog()); diff != "" {
		t.Errorf("IDLog changed between calls:\n%s", diff)
	}

	var forward []int
	sim.Events().Forward(func(_ int, e events.Event) bool {
		forward = append(forward, e.LocationID)
		return true
	})
	if diff := cmp.Diff(first, forward); diff != "" {
		t.Errorf("forward traversal differs from IDLog:\n%s", diff)
	}

	var backward []int
	sim.Events().Backward(func(_ int, e events.Event) bool {
		backward = append(backward, e.LocationID)
		return true
	})
	slices.Reverse(backward)
	if diff := cmp.Diff(forward, backward); diff != "" {
		t.Errorf("backward traversal disagrees:\n%s", diff)
	}
}

func TestRevisitUsesBriefDescription(t *testing.T) {
	sim, err := New(loopWorld(t), []string{"go in", "go out", "go in", "go out"})
	if err != nil {
		t.Fatal(err)
	}

	want := []string{
		"Porch.",            // seed uses the brief description
		"A dusty parlour.",  // first entry
		"A creaking porch.", // the start is not marked visited until entered
		"Parlour.",
		"Porch.",
	}
	if diff := cmp.Diff(want, descriptions(sim)); diff != "" {
		t.Errorf("descriptions mismatch (-want +got):\n%s", diff)
	}
}

func TestNonMovementKeepsLocation(t *testing.T) {
	sim, err := New(loopWorld(t), []string{"go in", "look", "dance"})
	if err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff([]int{1, 2, 2, 2}, sim.IDLog()); diff != "" {
		t.Errorf("id log mismatch (-want +got):\n%s", diff)
	}
	want := []string{"Porch.", "A dusty parlour.", "Parlour.", "Parlour."}
	if diff := cmp.Diff(want, descriptions(sim)); diff != "" {
		t.Errorf("descriptions mismatch (-want +got):\n%s", diff)
	}
}

func TestEventsCarryProducingCommand(t *testing.T) {
	commands := []string{"go in", "look"}
	sim, err := New(loopWorld(t), commands)
	if err != nil {
		t.Fatal(err)
	}

	var got []string
	sim.Events().Forward(func(i int, e events.Event) bool {
		cmd, ok := e.NextCommand()
		if i == 0 {
			if ok {
				t.Errorf("Seed event has command %q", cmd)
			}
			return true
		}
		got = append(got, cmd)
		return true
	})
	if diff := cmp.Diff(commands, got); diff != "" {
		t.Errorf("commands mismatch (-want +got):\n%s", diff)
	}
}

func TestNoCommands(t *testing.T) {
	if _, err := New(loopWorld(t), nil); !errors.Is(err, ErrNoCommands) {
		t.Errorf("Expected ErrNoCommands, got %v", err)
	}
}

func TestStrictCommands(t *testing.T) {
	w := loopWorld(t)

	if _, err := New(w, []string{"look", "go in"}, WithStrictCommands()); err != nil {
		t.Errorf("Known commands failed in strict mode: %v", err)
	}
	// "go out" is part of the vocabulary even though it does nothing on the porch
	if _, err := New(w, []string{"go out"}, WithStrictCommands()); err != nil {
		t.Errorf("Vocabulary command failed in strict mode: %v", err)
	}
	if _, err := New(w, []string{"go in", "dance"}, WithStrictCommands()); !errors.Is(err, ErrInvalidCommand) {
		t.Errorf("Expected ErrInvalidCommand, got %v", err)
	}
}

// brokenWorld points at a location it cannot produce.
type brokenWorld struct{}

func (brokenWorld) Current() models.Location {
	return models.Location{ID: 1, BriefDescription: "Void.", AvailableCommands: map[string]int{"jump": 9}}
}

func (brokenWorld) Location(id int) (models.Location, error) {
	return models.Location{}, world.ErrUnknownLocation
}

func TestWorldErrorPropagates(t *testing.T) {
	_, err := New(brokenWorld{}, []string{"jump"})
	if !errors.Is(err, world.ErrUnknownLocation) {
		t.Errorf("Expected ErrUnknownLocation, got %v", err)
	}
}

func TestOpenMissingData(t *testing.T) {
	if _, err := Open(filepath.Join("testdata", "missing.json"), 1, []string{"look"}); err == nil {
		t.Errorf("Expected an error for missing game data")
	}
}

func TestRun(t *testing.T) {
	sim, err := New(loopWorld(t), []string{"go in", "look"})
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := sim.Run(&buf); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	want := strings.Join([]string{
		"Porch.",
		"You choose: go in",
		"A dusty parlour.",
		"You choose: look",
		"Parlour.",
		"",
	}, "\n")
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("transcript mismatch (-want +got):\n%s", diff)
	}
}

func TestWithLogger(t *testing.T) {
	var buf bytes.Buffer
	if _, err := New(loopWorld(t), []string{"go in"}, WithLogger(log.New(&buf, "", 0))); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `step 1: "go in" -> location 2`) {
		t.Errorf("Unexpected log output: %q", buf.String())
	}
}

func TestReplay(t *testing.T) {
	sim, err := Open(gameData, 1, []string{"go north", "look"})
	if err != nil {
		t.Fatal(err)
	}

	r := sim.Replay("demo")
	if r.Name != "demo" || r.GameData != gameData || r.InitialLocation != 1 {
		t.Errorf("Unexpected replay header: %+v", r)
	}
	if diff := cmp.Diff([]int{1, 2, 2}, r.IDLog); diff != "" {
		t.Errorf("id log mismatch (-want +got):\n%s", diff)
	}
	if len(r.Steps) != 3 {
		t.Fatalf("Expected 3 steps, got %d", len(r.Steps))
	}
	if r.Steps[0].Command != "" || r.Steps[1].Command != "go north" || r.Steps[2].Command != "look" {
		t.Errorf("Unexpected step commands: %+v", r.Steps)
	}
	if r.Steps[2].Description != "You are in the residence hallway." {
		t.Errorf("Unexpected description for look: %q", r.Steps[2].Description)
	}
}
