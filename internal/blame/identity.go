// Package blame maps per-line authorship onto structural elements.
package blame

import (
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"lens/internal/errors"
)

// Config controls author identity collapsing and bot filtering.
type Config struct {
	// ExcludeBots drops lines authored by accounts matching BotPatterns.
	ExcludeBots bool `json:"excludeBots" yaml:"excludeBots" mapstructure:"excludeBots"`

	// BotPatterns are regex patterns matched against author name and email.
	BotPatterns []string `json:"botPatterns" yaml:"botPatterns" mapstructure:"botPatterns"`

	// Aliases maps an author email to the canonical email of the same
	// person, collapsing multiple identities into one.
	Aliases map[string]string `json:"aliases" yaml:"aliases" mapstructure:"aliases"`
}

// DefaultConfig returns the stock identity configuration.
func DefaultConfig() Config {
	return Config{
		ExcludeBots: true,
		BotPatterns: []string{
			`\[bot\]$`,
			`^dependabot`,
			`^renovate`,
			`^github-actions`,
		},
	}
}

// LoadConfig parses YAML identity configuration, overlaying base.
func LoadConfig(data []byte, base Config) (Config, error) {
	cfg := base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.New(errors.InternalError, "parsing blame config", err)
	}
	return cfg, nil
}

// identityKey collapses an author to a stable key: the aliased, lowercased
// email, or the lowercased name when no usable email exists.
func (c Config) identityKey(author, email string) string {
	e := strings.ToLower(strings.TrimSpace(email))
	if canonical, ok := c.Aliases[e]; ok {
		e = strings.ToLower(canonical)
	}
	if e != "" && e != "noreply@github.com" {
		return e
	}
	return strings.ToLower(strings.TrimSpace(author))
}

// compileBotPatterns drops patterns that do not compile instead of failing
// the whole resolution.
func (c Config) compileBotPatterns() []*regexp.Regexp {
	if !c.ExcludeBots {
		return nil
	}
	var out []*regexp.Regexp
	for _, p := range c.BotPatterns {
		if re, err := regexp.Compile(p); err == nil {
			out = append(out, re)
		}
	}
	return out
}

func isBot(author, email string, patterns []*regexp.Regexp) bool {
	for _, re := range patterns {
		if re.MatchString(author) || re.MatchString(email) {
			return true
		}
	}
	return false
}
