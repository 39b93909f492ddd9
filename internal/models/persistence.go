package models

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// DefaultSaveDir is where replays are written when no directory is configured.
const DefaultSaveDir = ".saves"

const replayFile = "replay.yaml"

// Save writes the replay to <dir>/<name>/replay.yaml.
func (r *Replay) Save(dir string) error {
	if r.Name == "" {
		return errors.New("replay has no name")
	}
	target := filepath.Join(dir, r.Name)
	if err := os.MkdirAll(target, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(r)
	if err != nil {
		return errors.Wrapf(err, "marshaling replay %q", r.Name)
	}
	return os.WriteFile(filepath.Join(target, replayFile), data, 0644)
}

// LoadReplay reads a replay previously written by Save.
func LoadReplay(dir, name string) (*Replay, error) {
	data, err := os.ReadFile(filepath.Join(dir, name, replayFile))
	if err != nil {
		return nil, err
	}
	var replay Replay
	if err := yaml.Unmarshal(data, &replay); err != nil {
		return nil, errors.Wrapf(err, "parsing replay %q", name)
	}
	return &replay, nil
}

// ListReplays returns the names of the replays saved under dir.
func ListReplays(dir string) ([]string, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return []string{}, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			// replay.yaml marks a complete save
			if _, err := os.Stat(filepath.Join(dir, entry.Name(), replayFile)); err == nil {
				names = append(names, entry.Name())
			}
		}
	}
	return names, nil
}

// LoadScript reads a YAML command script.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var script Script
	if err := yaml.Unmarshal(data, &script); err != nil {
		return nil, errors.Wrapf(err, "parsing script %s", path)
	}
	return &script, nil
}
