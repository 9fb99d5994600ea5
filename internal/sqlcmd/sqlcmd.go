// Package sqlcmd classifies raw SQL strings by their leading command
// keyword. It is a coarse allow-list: SELECT and INSERT pass through,
// a fixed set of mutating commands is blocked outright, and everything
// else is unrecognized. The check is a prefix match only; it does not
// parse the statement body, so comment or whitespace tricks can evade
// it. Callers must not treat it as injection protection.
package sqlcmd

import (
	"regexp"
	"strings"
)

// Command is the leading SQL keyword of a classified query.
type Command string

const (
	Select Command = "SELECT"
	Insert Command = "INSERT"
)

var (
	allowedRe = regexp.MustCompile(`(?i)^\s*(SELECT|INSERT)\s`)
	blockedRe = regexp.MustCompile(`(?i)^\s*(UPDATE|DELETE|DROP|ALTER|TRUNCATE|CREATE)\s`)
)

// Classify reports the command of query. ok is true only for an allowed
// command; blocked is true when the query starts with a denylisted
// mutating keyword. A bare keyword with nothing after it is unrecognized.
func Classify(query string) (cmd Command, blocked bool, ok bool) {
	if m := allowedRe.FindStringSubmatch(query); m != nil {
		return Command(strings.ToUpper(m[1])), false, true
	}
	if blockedRe.MatchString(query) {
		return "", true, false
	}
	return "", false, false
}
