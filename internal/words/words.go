// internal/words/words.go
//
// Word catalog for the game engine.
//
// Responsibilities:
//   - Load answer, allowed-guess and definition lists from configured files
//     or fall back to the embedded defaults in package assets.
//   - Maintain sets for quick lookups (answers only, answers ∪ guesses).
//   - Supply RandomWord (practice solutions), RandomGuess ("Wing It") and
//     Definition (display name used when the solution is revealed).
//
// Word Lists:
//   - "answers": canonical solutions, in deployment order. The daily
//     selector indexes into this order, so it must not be sorted.
//   - "allowed": extra valid guesses (answers are always allowed too).
//
// Sources:
//  1. AnswersFile and AllowedFile both set: load each from its file.
//  2. Only AllowedFile set: use that file for both lists.
//  3. Neither set: embedded defaults.
//
// Constraints:
//   - Words must be WordLength letters; anything else is skipped.
//   - Lists are normalized to upper case and de-duplicated.
//
// A Catalog is immutable after construction and safe for concurrent use.
package words

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/robalobadob/birdle/assets"
)

// ErrNoAnswers is returned when no usable answer survives normalization.
var ErrNoAnswers = errors.New("words: answers list is empty")

// Rand is the random source used for practice words and random guesses.
// *math/rand/v2.Rand satisfies it; tests inject fixed sources.
type Rand interface {
	IntN(n int) int
}

// Sources configures where Load reads word data from.
type Sources struct {
	AnswersFile     string
	AllowedFile     string
	DefinitionsFile string
	WordLength      int
}

// Catalog answers membership questions over the word lists.
type Catalog struct {
	wordLength  int
	answers     []string            // canonical answers, deployment order
	allowed     []string            // answers ∪ guesses, for random guesses
	answersSet  map[string]struct{} // answers only
	allowedSet  map[string]struct{} // answers ∪ guesses
	definitions map[string]string
}

// New builds a Catalog from in-memory lists.
func New(answers, allowed []string, definitions map[string]string, wordLength int) (*Catalog, error) {
	c := &Catalog{wordLength: wordLength}
	c.answers = normalize(answers, wordLength)
	if len(c.answers) == 0 {
		return nil, ErrNoAnswers
	}
	c.allowed = lo.Uniq(append(append([]string{}, c.answers...), normalize(allowed, wordLength)...))
	c.answersSet = lo.Keyify(c.answers)
	c.allowedSet = lo.Keyify(c.allowed)

	c.definitions = make(map[string]string, len(definitions))
	for w, d := range definitions {
		c.definitions[strings.ToUpper(strings.TrimSpace(w))] = strings.TrimSpace(d)
	}
	return c, nil
}

// Load reads word data according to src.
func Load(src Sources) (*Catalog, error) {
	var ansList, allowList []string
	var err error

	switch {
	// Case 1: both lists provided
	case src.AnswersFile != "" && src.AllowedFile != "":
		if ansList, err = readWordFile(src.AnswersFile); err != nil {
			return nil, fmt.Errorf("read answers: %w", err)
		}
		if allowList, err = readWordFile(src.AllowedFile); err != nil {
			return nil, fmt.Errorf("read allowed: %w", err)
		}

	// Case 2: only allowed file provided → use for both
	case src.AnswersFile == "" && src.AllowedFile != "":
		if allowList, err = readWordFile(src.AllowedFile); err != nil {
			return nil, fmt.Errorf("read allowed: %w", err)
		}
		ansList = allowList

	// Case 3: fallback to embedded defaults
	default:
		if ansList, err = assets.AnswersList(); err != nil {
			return nil, fmt.Errorf("embedded answers: %w", err)
		}
		if allowList, err = assets.AllowedList(); err != nil {
			return nil, fmt.Errorf("embedded allowed: %w", err)
		}
	}

	var defLines []string
	if src.DefinitionsFile != "" {
		defLines, err = readWordFile(src.DefinitionsFile)
	} else {
		defLines, err = assets.DefinitionLines()
	}
	if err != nil {
		return nil, fmt.Errorf("read definitions: %w", err)
	}

	c, err := New(ansList, allowList, parseDefinitions(defLines), src.WordLength)
	if err != nil {
		return nil, err
	}
	a, g := c.Counts()
	log.Info().Int("answers", a).Int("allowed", g).Int("wordLength", src.WordLength).Msg("word lists loaded")
	return c, nil
}

// readWordFile loads the non-empty, non-comment lines of a file.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	return out, sc.Err()
}

// parseDefinitions turns "word<TAB>name" lines into a map.
func parseDefinitions(lines []string) map[string]string {
	out := make(map[string]string, len(lines))
	for _, line := range lines {
		word, name, ok := strings.Cut(line, "\t")
		if !ok {
			continue
		}
		out[word] = name
	}
	return out
}

// normalize upper-cases, validates and de-duplicates a list, keeping order.
func normalize(list []string, wordLength int) []string {
	out := lo.FilterMap(list, func(w string, _ int) (string, bool) {
		w = strings.ToUpper(strings.TrimSpace(w))
		return w, utf8.RuneCountInString(w) == wordLength && isAlpha(w)
	})
	return lo.Uniq(out)
}

// isAlpha reports whether s is all letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// IsValidWord reports whether w is a valid guess (answers ∪ guesses).
func (c *Catalog) IsValidWord(w string) bool {
	_, ok := c.allowedSet[strings.ToUpper(w)]
	return ok
}

// IsAnswer reports whether w is an answer word.
func (c *Catalog) IsAnswer(w string) bool {
	_, ok := c.answersSet[strings.ToUpper(w)]
	return ok
}

// Answers returns the canonical answer list in deployment order.
func (c *Catalog) Answers() []string {
	return append([]string(nil), c.answers...)
}

// WordLength is the length every word in the catalog has.
func (c *Catalog) WordLength() int { return c.wordLength }

// RandomWord picks a practice solution uniformly from the answers.
// It is never used for daily puzzles.
func (c *Catalog) RandomWord(rng Rand) string {
	return c.answers[rng.IntN(len(c.answers))]
}

// RandomGuess picks any valid guess uniformly.
func (c *Catalog) RandomGuess(rng Rand) string {
	return c.allowed[rng.IntN(len(c.allowed))]
}

// Definition returns the display name for an answer, or "" if unknown.
func (c *Catalog) Definition(w string) string {
	return c.definitions[strings.ToUpper(w)]
}

// Counts returns counts of loaded words: (answers, allowed).
func (c *Catalog) Counts() (answersCount int, allowedCount int) {
	return len(c.answers), len(c.allowedSet)
}
