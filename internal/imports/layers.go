package imports

import (
	"strings"

	"github.com/BurntSushi/toml"

	"lens/internal/errors"
)

// LayerRule maps path prefixes to a named layer and declares which layers
// it may import from. A nil Allow list means the layer declares no policy
// and its outgoing edges are never violations; an explicitly empty list
// forbids every cross-layer import. The two are distinct on purpose.
type LayerRule struct {
	Name     string   `toml:"name"`
	Prefixes []string `toml:"prefixes"`
	Allow    []string `toml:"allow"`
}

// LayerRules is the parsed layer configuration. The zero value (no rules)
// makes every check a no-op.
type LayerRules struct {
	Layers []LayerRule `toml:"layer"`
}

// ParseLayerRules decodes TOML layer configuration.
func ParseLayerRules(data []byte) (*LayerRules, error) {
	var rules LayerRules
	if err := toml.Unmarshal(data, &rules); err != nil {
		return nil, errors.New(errors.InternalError, "parsing layer rules", err)
	}
	for _, l := range rules.Layers {
		if l.Name == "" {
			return nil, errors.Newf(errors.InternalError, "layer rule without a name")
		}
		if len(l.Prefixes) == 0 {
			return nil, errors.Newf(errors.InternalError, "layer %q has no path prefixes", l.Name)
		}
	}
	return &rules, nil
}

// LayerFor returns the layer a file belongs to by longest-prefix match, or
// nil when no rule covers it.
func (r *LayerRules) LayerFor(file string) *LayerRule {
	var best *LayerRule
	bestLen := -1
	for i := range r.Layers {
		for _, prefix := range r.Layers[i].Prefixes {
			if strings.HasPrefix(file, prefix) && len(prefix) > bestLen {
				best = &r.Layers[i]
				bestLen = len(prefix)
			}
		}
	}
	return best
}

// CheckLayers reports every edge that crosses from a layer into one its
// allow-list does not name. Same-layer edges and edges touching unlayered
// files pass. Typing-only edges are skipped.
func CheckLayers(edges []Edge, rules *LayerRules) []LayerViolation {
	if rules == nil || len(rules.Layers) == 0 {
		return nil
	}

	var violations []LayerViolation
	for _, e := range edges {
		if e.TypingOnly || e.Target == "" {
			continue
		}
		from := rules.LayerFor(e.From)
		to := rules.LayerFor(e.Target)
		if from == nil || to == nil || from.Name == to.Name {
			continue
		}
		if from.Allow == nil {
			// Layer declares no policy.
			continue
		}
		allowed := false
		for _, name := range from.Allow {
			if name == to.Name {
				allowed = true
				break
			}
		}
		if !allowed {
			violations = append(violations, LayerViolation{
				From:      e.From,
				To:        e.Target,
				FromLayer: from.Name,
				ToLayer:   to.Name,
				Line:      e.Line,
			})
		}
	}
	return violations
}
