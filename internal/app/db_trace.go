package app

import (
	"regexp"
	"strings"
)

// Traced statements are collapsed to one line and capped so spans stay
// readable in the trace UI.
const maxTracedQueryLen = 512

var sqlWhitespace = regexp.MustCompile(`\s+`)

func formatQueryForTrace(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return query
	}

	normalized := sqlWhitespace.ReplaceAllString(query, " ")
	if len(normalized) <= maxTracedQueryLen {
		return normalized
	}

	return normalized[:maxTracedQueryLen] + "..."
}
