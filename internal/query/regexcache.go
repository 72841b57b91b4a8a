package query

import (
	"regexp"
	"sync"

	"lens/internal/errors"
	"lens/internal/logging"
)

// RegexCache compiles regex filter patterns once per pattern string. Patterns
// are compiled case-insensitively. A pattern that fails to compile is logged,
// cached as nil and matches nothing on every subsequent use.
type RegexCache struct {
	mu       sync.Mutex
	compiled map[string]*regexp.Regexp
	logger   *logging.Logger
}

// NewRegexCache returns an empty cache that discards compile diagnostics.
// Safe for concurrent use.
func NewRegexCache() *RegexCache {
	return NewRegexCacheWithLogger(logging.Nop())
}

// NewRegexCacheWithLogger returns an empty cache that reports each invalid
// pattern once through logger.
func NewRegexCacheWithLogger(logger *logging.Logger) *RegexCache {
	return &RegexCache{
		compiled: make(map[string]*regexp.Regexp),
		logger:   logger,
	}
}

// Match reports whether pattern matches s. Invalid patterns never match.
func (c *RegexCache) Match(pattern, s string) bool {
	re := c.get(pattern)
	if re == nil {
		return false
	}
	return re.MatchString(s)
}

func (c *RegexCache) get(pattern string) *regexp.Regexp {
	c.mu.Lock()
	defer c.mu.Unlock()
	if re, ok := c.compiled[pattern]; ok {
		return re
	}
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		re = nil
		c.logger.Warn("invalid regex pattern in filter", map[string]interface{}{
			"code":    string(errors.InvalidRegexPattern),
			"pattern": pattern,
			"error":   err.Error(),
		})
	}
	c.compiled[pattern] = re
	return re
}
