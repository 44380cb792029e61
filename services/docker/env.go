package docker

import "strings"

// PrepareEnv splits a raw environment blob into the ordered KEY=VALUE list
// the engine expects. Blank lines are dropped; anything else passes through
// unchanged, including lines without a KEY=VALUE shape — variable precedence
// can depend on order, and rejecting here would hide the problem from the
// container where it is visible.
func PrepareEnv(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}
