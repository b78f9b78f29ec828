package layering

import (
	"errors"
	"fmt"
	"strings"
)

// Level identifies the precedence of a property source inside an override
// chain. Higher levels override lower levels.
type Level int

const (
	// LevelUnknown guards against misconfiguration so call sites can detect
	// missing metadata.
	LevelUnknown Level = iota
	// LevelMaster represents the broadest source (slide master, named cell
	// style, built-in defaults).
	LevelMaster
	// LevelLayout represents the template level (slide layout, cell format).
	LevelLayout
	// LevelInstance represents the most specific source (the shape itself, a
	// conditional format match).
	LevelInstance
)

func (l Level) String() string {
	switch l {
	case LevelMaster:
		return "master"
	case LevelLayout:
		return "layout"
	case LevelInstance:
		return "instance"
	default:
		return "unknown"
	}
}

// ParseLevel converts a string representation into the corresponding Level.
// Returns LevelUnknown for unrecognised values.
func ParseLevel(value string) Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "master":
		return LevelMaster
	case "layout":
		return LevelLayout
	case "instance":
		return LevelInstance
	default:
		return LevelUnknown
	}
}

// ErrLevelOrder reports a level sequence that is not ordered strongest first.
var ErrLevelOrder = errors.New("layering: levels must be ordered strongest first")

// CheckOrder verifies levels are known and never increase along the sequence.
// Several consecutive entries may share a level.
func CheckOrder(levels ...Level) error {
	for i, level := range levels {
		if level == LevelUnknown {
			return fmt.Errorf("%w: unknown level at position %d", ErrLevelOrder, i)
		}
		if i > 0 && levels[i-1] < level {
			return fmt.Errorf("%w: %s follows %s", ErrLevelOrder, level, levels[i-1])
		}
	}
	return nil
}
