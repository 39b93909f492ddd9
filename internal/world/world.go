// Package world loads a game definition and answers location queries about it.
package world

import (
	"os"
	"path/filepath"
	"strings"

	goccy "github.com/goccy/go-json"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/tatianab/adventure-sim/internal/models"
)

// ErrUnknownLocation is returned for ids the game does not define.
var ErrUnknownLocation = errors.New("unknown location")

// World is a loaded game positioned at an initial location.
type World struct {
	locations  map[int]models.Location
	current    int
	vocabulary map[string]bool
}

// Load reads the game definition at path. Files ending in .yaml or .yml are
// parsed as YAML, everything else as JSON.
func Load(path string, initialID int) (*World, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading game data")
	}

	var data models.GameData
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(raw, &data)
	default:
		err = goccy.Unmarshal(raw, &data)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "parsing game data %s", path)
	}
	return New(data, initialID)
}

// New builds a world from already parsed game data.
func New(data models.GameData, initialID int) (*World, error) {
	w := &World{
		locations:  make(map[int]models.Location, len(data.Locations)),
		current:    initialID,
		vocabulary: map[string]bool{},
	}
	for _, loc := range data.Locations {
		if _, dup := w.locations[loc.ID]; dup {
			return nil, errors.Errorf("duplicate location id %d", loc.ID)
		}
		w.locations[loc.ID] = loc
		for cmd := range loc.AvailableCommands {
			w.vocabulary[cmd] = true
		}
	}
	for _, loc := range data.Locations {
		for cmd, target := range loc.AvailableCommands {
			if _, ok := w.locations[target]; !ok {
				return nil, errors.Wrapf(ErrUnknownLocation, "location %d: %q leads to %d", loc.ID, cmd, target)
			}
		}
	}
	for _, verb := range data.Verbs {
		w.vocabulary[verb] = true
	}
	for _, item := range data.Items {
		w.vocabulary[item.Name] = true
	}

	if _, ok := w.locations[initialID]; !ok {
		return nil, errors.Wrapf(ErrUnknownLocation, "initial location %d", initialID)
	}
	return w, nil
}

// Current returns the location the world was started at.
func (w *World) Current() models.Location {
	return w.locations[w.current]
}

// Location returns the location with the given id.
func (w *World) Location(id int) (models.Location, error) {
	loc, ok := w.locations[id]
	if !ok {
		return models.Location{}, errors.Wrapf(ErrUnknownLocation, "id %d", id)
	}
	return loc, nil
}

// KnowsCommand reports whether cmd is anywhere in the game's vocabulary:
// a movement command of some location, a verb, or an item name.
func (w *World) KnowsCommand(cmd string) bool {
	return w.vocabulary[cmd]
}
