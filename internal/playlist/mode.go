package playlist

import (
	"fmt"
	"strings"

	"github.com/llehouerou/playstate/internal/shuffle"
)

// Mode defines how the effective queue is derived and how playback advances.
type Mode int

const (
	ModeSequence Mode = iota
	ModeLoopSingle
	ModeRandom
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeSequence:
		return "sequence"
	case ModeLoopSingle:
		return "loop"
	case ModeRandom:
		return "random"
	default:
		return "unknown"
	}
}

// Next returns the mode that follows m in the cycle sequence, loop, random.
func (m Mode) Next() Mode {
	switch m {
	case ModeSequence:
		return ModeLoopSingle
	case ModeLoopSingle:
		return ModeRandom
	default:
		return ModeSequence
	}
}

// ParseMode parses a mode name as returned by String.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sequence":
		return ModeSequence, nil
	case "loop":
		return ModeLoopSingle, nil
	case "random":
		return ModeRandom, nil
	default:
		return ModeSequence, fmt.Errorf("unknown play mode %q", s)
	}
}

// DeriveQueue computes the effective play order for canonical under mode and
// the index of current within it (-1 if current is nil or absent).
//
// Sequence and loop keep the canonical order; loop only differs when a track
// ends. Random shuffles, so the index is looked up in the shuffled result.
func DeriveQueue(canonical []Track, mode Mode, current *Track) ([]Track, int) {
	var queue []Track
	if mode == ModeRandom {
		queue = shuffle.Shuffle(canonical)
	} else {
		queue = make([]Track, len(canonical))
		copy(queue, canonical)
	}

	if current == nil {
		return queue, -1
	}
	for i := range queue {
		if queue[i].ID == current.ID {
			return queue, i
		}
	}
	return queue, -1
}

func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Mode) UnmarshalText(text []byte) error {
	mode, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = mode
	return nil
}
