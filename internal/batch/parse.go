// Package batch runs sequential multi-target research with incremental
// progress and partial-failure handling.
package batch

import "strings"

// MaxTargets caps one batch; extra lines are dropped.
const MaxTargets = 20

// DefaultCity is the last-resort city when nothing else resolves.
const DefaultCity = "España"

// Target is one batch entry. City is the inline city parsed out of the
// input line; ExplicitCity is a caller-supplied per-entry city, ranked
// below the inline one.
type Target struct {
	Name         string
	City         string
	ExplicitCity string
}

// separators recognized between a business name and an inline city.
// Order matters: the first one found in the line wins.
var separators = []string{",", " - ", " — "}

// ParseTargets splits raw multi-line text into targets: non-empty trimmed
// lines capped at MaxTargets, each optionally split into name and inline
// city. A line without a recognized separator is name-only.
func ParseTargets(raw string) []Target {
	var targets []Target
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if len(targets) == MaxTargets {
			break
		}
		targets = append(targets, parseLine(line))
	}
	return targets
}

func parseLine(line string) Target {
	for _, sep := range separators {
		if idx := strings.Index(line, sep); idx >= 0 {
			name := strings.TrimSpace(line[:idx])
			city := strings.TrimSpace(line[idx+len(sep):])
			if name != "" && city != "" {
				return Target{Name: name, City: city}
			}
		}
	}
	return Target{Name: line}
}

// ResolveCity applies the precedence: inline city > per-entry explicit
// city > batch-wide fallback > DefaultCity.
func ResolveCity(t Target, fallback string) string {
	if t.City != "" {
		return t.City
	}
	if c := strings.TrimSpace(t.ExplicitCity); c != "" {
		return c
	}
	if fallback = strings.TrimSpace(fallback); fallback != "" {
		return fallback
	}
	return DefaultCity
}
