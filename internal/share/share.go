// Package share renders a finished session as copyable text.
//
//	🇸🇬 Birdle 123, 4/6*
//
//	🥚🐣🥚🥚🥚
//	🐓🥚🐣🥚🥚
//	🐓🐓🥚🐓🐣
//	🐓🐓🐓🐓🐓
//
// Only status glyphs are emitted, never letters. Copying the text anywhere
// is the caller's business.
package share

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/robalobadob/birdle/internal/game"
)

// Glyphs and markers.
const (
	GlyphCorrect   = "🐓"
	GlyphPresent   = "🐣"
	GlyphAbsent    = "🥚"
	HardModeMarker = "*"
	LostMarker     = "X"
)

// DefaultTitle prefixes every share label.
const DefaultTitle = "🇸🇬 Birdle"

// Input is everything Encode needs.
type Input struct {
	Guesses     []string
	Solution    string
	Label       string
	Lost        bool
	HardMode    bool
	MaxAttempts int
}

// Encode renders the header line, a blank line and one glyph row per guess.
func Encode(in Input) string {
	attempts := strconv.Itoa(len(in.Guesses))
	if in.Lost {
		attempts = LostMarker
	}
	marker := ""
	if in.HardMode {
		marker = HardModeMarker
	}

	header := fmt.Sprintf("%s %s/%d%s", in.Label, attempts, in.MaxAttempts, marker)
	return header + "\n\n" + Grid(in.Guesses, in.Solution)
}

// Grid renders the glyph rows only.
func Grid(guesses []string, solution string) string {
	rows := lo.Map(guesses, func(g string, _ int) string {
		return strings.Join(lo.Map(game.Evaluate(g, solution), func(st game.Status, _ int) string {
			return glyph(st)
		}), "")
	})
	return strings.Join(rows, "\n")
}

func glyph(st game.Status) string {
	switch st {
	case game.StatusCorrect:
		return GlyphCorrect
	case game.StatusPresent:
		return GlyphPresent
	default:
		return GlyphAbsent
	}
}

// Label names the puzzle: "<title> <index>," for daily games and
// "<title> Practice," for practice games.
func Label(title string, mode game.Mode, index int) string {
	if title == "" {
		title = DefaultTitle
	}
	if mode == game.ModePractice {
		return title + " Practice,"
	}
	return fmt.Sprintf("%s %d,", title, index)
}
