// Package simulation replays a scripted command sequence against a game
// world and records every step in an events.Log.
package simulation

import (
	"fmt"
	"io"
	"log"

	"github.com/pkg/errors"

	"github.com/tatianab/adventure-sim/internal/events"
	"github.com/tatianab/adventure-sim/internal/models"
	"github.com/tatianab/adventure-sim/internal/world"
)

var (
	// ErrNoCommands is returned when a simulation is given nothing to replay.
	ErrNoCommands = errors.New("no commands to replay")
	// ErrInvalidCommand is returned in strict mode for commands the world
	// does not recognize.
	ErrInvalidCommand = errors.New("invalid command")
)

// World is the part of a game the simulation queries.
type World interface {
	// Current returns the location the game starts at.
	Current() models.Location
	// Location returns the location with the given id.
	Location(id int) (models.Location, error)
}

// Vocabulary is implemented by worlds that can tell whether a command means
// anything in the game. It is only consulted in strict mode.
type Vocabulary interface {
	KnowsCommand(cmd string) bool
}

// Option configures a Simulation.
type Option func(*Simulation)

// WithStrictCommands makes replay fail with ErrInvalidCommand on commands
// that are neither movement commands nor part of the world's vocabulary.
func WithStrictCommands() Option {
	return func(s *Simulation) { s.strict = true }
}

// WithLogger logs every replayed step to logger.
func WithLogger(logger *log.Logger) Option {
	return func(s *Simulation) { s.logger = logger }
}

// Simulation is a finished playthrough of a command sequence.
type Simulation struct {
	world  World
	events *events.Log

	dataFile string
	commands []string

	strict bool
	logger *log.Logger
}

// Open loads the game data at dataFile positioned at initialID and replays
// commands against it.
func Open(dataFile string, initialID int, commands []string, opts ...Option) (*Simulation, error) {
	w, err := world.Load(dataFile, initialID)
	if err != nil {
		return nil, err
	}
	opts = append([]Option{func(s *Simulation) { s.dataFile = dataFile }}, opts...)
	return New(w, commands, opts...)
}

// New replays commands against w. The commands are expected to be valid at
// the location they are issued from; commands that do not move the player
// leave them where they are.
func New(w World, commands []string, opts ...Option) (*Simulation, error) {
	if len(commands) == 0 {
		return nil, ErrNoCommands
	}

	s := &Simulation{
		world:    w,
		events:   events.NewLog(),
		commands: append([]string(nil), commands...),
		logger:   log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(s)
	}

	start := w.Current()
	s.events.Add(events.NewSeedEvent(start.ID, start.BriefDescription))

	if err := s.generateEvents(s.commands); err != nil {
		return nil, err
	}
	return s, nil
}

// generateEvents appends one event per command.
func (s *Simulation) generateEvents(commands []string) error {
	current := s.world.Current()
	// The start location is only marked once it is entered by a movement
	// command, so the first return to it gets the long description.
	visited := map[int]bool{}

	for step, command := range commands {
		var (
			locationID  int
			description string
		)

		if target, ok := current.AvailableCommands[command]; ok {
			next, err := s.world.Location(target)
			if err != nil {
				return errors.Wrapf(err, "step %d (%q)", step+1, command)
			}
			if !visited[target] {
				description = next.LongDescription
				visited[target] = true
			} else {
				description = next.BriefDescription
			}
			locationID = target
			current = next
		} else {
			if s.strict && !s.knows(command) {
				return errors.Wrapf(ErrInvalidCommand, "step %d: %q at location %d", step+1, command, current.ID)
			}
			description = current.BriefDescription
			locationID = current.ID
		}

		s.events.Add(events.NewEvent(locationID, description, command))
		s.logger.Printf("step %d: %q -> location %d", step+1, command, locationID)
	}
	return nil
}

func (s *Simulation) knows(command string) bool {
	v, ok := s.world.(Vocabulary)
	return ok && v.KnowsCommand(command)
}

// IDLog returns the ids of the locations visited, in order, starting with
// the initial location.
func (s *Simulation) IDLog() []int {
	return s.events.IDLog()
}

// Events returns the underlying event log. It must not be appended to.
func (s *Simulation) Events() *events.Log {
	return s.events
}

// Run writes the transcript of the playthrough to w: every step's
// description followed by the command chosen next.
func (s *Simulation) Run(w io.Writer) error {
	var err error
	s.events.Forward(func(i int, e events.Event) bool {
		if _, err = fmt.Fprintln(w, e.Description); err != nil {
			return false
		}
		if !s.events.IsLast(i) {
			next, _ := s.events.Next(i)
			ne, _ := s.events.At(next)
			cmd, _ := ne.NextCommand()
			_, err = fmt.Fprintln(w, "You choose:", cmd)
		}
		return err == nil
	})
	return err
}

// Replay snapshots the playthrough for saving or viewing.
func (s *Simulation) Replay(name string) models.Replay {
	r := models.Replay{
		Name:     name,
		GameData: s.dataFile,
		Commands: append([]string(nil), s.commands...),
		IDLog:    s.IDLog(),
	}
	if first, ok := s.events.First(); ok {
		r.InitialLocation = first.LocationID
	}
	s.events.Forward(func(_ int, e events.Event) bool {
		cmd, _ := e.NextCommand()
		r.Steps = append(r.Steps, models.Step{
			LocationID:  e.LocationID,
			Description: e.Description,
			Command:     cmd,
		})
		return true
	})
	return r
}
