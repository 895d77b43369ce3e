// config.go loads tunable search/eval parameters from TOML using
// github.com/BurntSushi/toml instead of a hand-rolled parser.
package engine

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds the tunables a front end may want to keep in a file:
// table size, time-management margins, and the pruning constants
// search.go hardcodes. Engine and Search do not read a Config; search
// always uses its own constants, so a loaded Config only carries values
// for the caller to use itself (e.g. Hash.SizeMB passed to New).
type Config struct {
	Hash struct {
		SizeMB int `toml:"size_mb"`
	} `toml:"hash"`

	Search struct {
		NullMoveReduction  int `toml:"null_move_reduction"`
		FutilityMargin     int `toml:"futility_margin"`
		AspirationWindow   int `toml:"aspiration_window"`
	} `toml:"search"`

	Time struct {
		MoveOverheadMS int `toml:"move_overhead_ms"`
	} `toml:"time"`
}

// DefaultConfig returns the values search.go's constants encode, so a
// Config loaded from disk and DefaultConfig() agree until a user
// actually overrides something.
func DefaultConfig() Config {
	var c Config
	c.Hash.SizeMB = 64
	c.Search.NullMoveReduction = nullMoveReduction
	c.Search.FutilityMargin = futilityMargin
	c.Search.AspirationWindow = 25
	c.Time.MoveOverheadMS = 50
	return c
}

// LoadConfig reads a TOML file at path, starting from DefaultConfig and
// overwriting only the fields present in the file.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("engine: loading config %s: %w", path, err)
	}
	return cfg, nil
}
