package models

// Location represents a node in the game's location graph.
type Location struct {
	ID                int            `yaml:"id" json:"id"`
	Name              string         `yaml:"name" json:"name"`
	BriefDescription  string         `yaml:"brief_description" json:"brief_description"`
	LongDescription   string         `yaml:"long_description" json:"long_description"`
	AvailableCommands map[string]int `yaml:"available_commands" json:"available_commands"` // command -> destination location id
}

// Item is an object placed in the world. Only its name matters to replays,
// where it can appear as the argument of a "pick up" or "drop" step.
type Item struct {
	Name           string `yaml:"name" json:"name"`
	StartPosition  int    `yaml:"start_position" json:"start_position"`
	TargetPosition int    `yaml:"target_position,omitempty" json:"target_position,omitempty"`
	TargetPoints   int    `yaml:"target_points,omitempty" json:"target_points,omitempty"`
}

// GameData is the contents of a game definition file.
type GameData struct {
	Locations []Location `yaml:"locations" json:"locations"`
	Items     []Item     `yaml:"items" json:"items"`
	Verbs     []string   `yaml:"verbs" json:"verbs"` // globally recognized commands, e.g. "look"
}

// Script is a command sequence supplied up front for a replay.
type Script struct {
	InitialLocation int      `yaml:"initial_location"`
	Commands        []string `yaml:"commands"`
}

// Step is one recorded event of a finished replay.
type Step struct {
	LocationID  int    `yaml:"location_id"`
	Description string `yaml:"description"`
	Command     string `yaml:"command,omitempty"` // empty for the first step
}

// Replay aggregates everything needed to review a finished simulation.
type Replay struct {
	Name            string   `yaml:"name"`
	GameData        string   `yaml:"game_data"`
	InitialLocation int      `yaml:"initial_location"`
	Commands        []string `yaml:"commands"`
	IDLog           []int    `yaml:"id_log"`
	Steps           []Step   `yaml:"steps"`
}
