// Package leaderboard applies the submission policy on top of run scores:
// minimum score, display-name cleanup, a blocked-word filter, and one row
// per run that is raised in place as the run's score grows.
package leaderboard

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/vovakirdan/mindgrid/internal/config"
)

var (
	// ErrScoreTooLow is returned for scores under the minimum submit score.
	ErrScoreTooLow = errors.New("leaderboard: score below minimum")

	// ErrNameNotAllowed is returned when a name matches the blocked-word list.
	ErrNameNotAllowed = errors.New("leaderboard: name not allowed")
)

// Look-alike characters accepted for each letter of a blocked word.
var lookalikes = map[rune]string{
	'a': `a4@^ÀÁÂÃÄÅàáâãäå∆Λ`,
	'e': `e3ÈÉÊËèéêë€`,
	'i': `i1!|ÌÍÎÏìíîï`,
	'o': `o0°ºòóôõöø`,
	'u': `uµùúûüÙÚÛÜ`,
	's': `s5$§`,
	't': `t7+†`,
	'b': `b8ß`,
	'g': `g69`,
	'l': `l1|!¡`,
	'c': `c(<{¢©`,
	'k': `k(<{`,
}

// separator matches anything placed between the letters of a word.
const separator = `[^a-zA-Z0-9]*`

// Policy decides whether a score may be submitted and under which name.
type Policy struct {
	minScore    int
	defaultName string
	maxLen      int
	blocked     []*regexp.Regexp
}

// NewPolicy compiles the blocked-word list of cfg.
func NewPolicy(cfg config.LeaderboardConfig) (*Policy, error) {
	p := &Policy{
		minScore:    cfg.MinSubmitScore,
		defaultName: cfg.DefaultName,
		maxLen:      cfg.MaxNameLength,
	}
	if p.defaultName == "" {
		p.defaultName = "Guest"
	}

	for _, w := range cfg.BlockedWords {
		w = strings.TrimSpace(w)
		if w == "" {
			continue
		}
		re, err := regexp.Compile(wordPattern(w))
		if err != nil {
			return nil, fmt.Errorf("leaderboard: blocked word %q: %w", w, err)
		}
		p.blocked = append(p.blocked, re)
	}
	return p, nil
}

// wordPattern builds a case-insensitive pattern that also matches
// look-alike characters and punctuation between letters.
func wordPattern(word string) string {
	parts := make([]string, 0, utf8.RuneCountInString(word))
	for _, r := range strings.ToLower(word) {
		if set, ok := lookalikes[r]; ok {
			parts = append(parts, "["+regexp.QuoteMeta(set)+"]")
			continue
		}
		parts = append(parts, regexp.QuoteMeta(string(r)))
	}
	return "(?i)" + strings.Join(parts, separator)
}

// MinScore returns the minimum submit score.
func (p *Policy) MinScore() int { return p.minScore }

// Eligible reports whether a score may reach the leaderboard.
func (p *Policy) Eligible(score int) bool { return score >= p.minScore }

// DisplayName trims the name, falls back to the default name and caps its length.
func (p *Policy) DisplayName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return p.defaultName
	}
	if p.maxLen > 0 && utf8.RuneCountInString(name) > p.maxLen {
		name = string([]rune(name)[:p.maxLen])
	}
	return name
}

// IsBlocked reports whether the NFKD form of name matches a blocked word.
func (p *Policy) IsBlocked(name string) bool {
	if name == "" {
		return false
	}
	cleaned := norm.NFKD.String(name)
	for _, re := range p.blocked {
		if re.MatchString(cleaned) {
			return true
		}
	}
	return false
}

// Check validates a submission and returns the name to store.
func (p *Policy) Check(name string, score int) (string, error) {
	if !p.Eligible(score) {
		return "", fmt.Errorf("%w: %d < %d", ErrScoreTooLow, score, p.minScore)
	}
	if p.IsBlocked(name) {
		return "", ErrNameNotAllowed
	}
	return p.DisplayName(name), nil
}
