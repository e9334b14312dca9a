package settings

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml"
)

// Match contains the tunable round/match configuration. Movement and weapon
// numbers are deliberately absent: those are simulation constants that both
// sides must share, not server preferences.
type Match struct {
	// RoundsToWin is the score a team needs to take the match.
	RoundsToWin int32
	// RoundTimeMillis is the live-play clock per round.
	RoundTimeMillis int32
	// CountdownMillis runs before each round goes live.
	CountdownMillis int32
	// RoundEndMillis is the pause after a round ends.
	RoundEndMillis int32
	// TeamSize caps players per team; 0 means no cap beyond MaxClients.
	TeamSize int32
}

// DefaultMatch returns the stock clan-arena style configuration.
func DefaultMatch() Match {
	return Match{
		RoundsToWin:     10,
		RoundTimeMillis: 90_000,
		CountdownMillis: 5_000,
		RoundEndMillis:  4_000,
		TeamSize:        4,
	}
}

// Load reads a match configuration from the given TOML file.
func Load(path string) (Match, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Match{}, fmt.Errorf("failed reading match settings: %v", err)
	}
	m := DefaultMatch()
	if err := toml.Unmarshal(data, &m); err != nil {
		return Match{}, fmt.Errorf("failed decoding match settings: %v", err)
	}
	return m, nil
}

// SaveDefault writes the default settings file if none exists yet; it
// returns an error when the file is already present.
func SaveDefault(path string) error {
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return fmt.Errorf("settings file %s already exists", path)
	}
	data, err := toml.Marshal(DefaultMatch())
	if err != nil {
		return fmt.Errorf("failed encoding default settings: %v", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed creating settings file: %v", err)
	}
	return nil
}
