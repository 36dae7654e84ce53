package validator

import (
	"strings"
	"time"
	"unicode/utf8"
)

func EventTitle(title string) bool {
	return strings.TrimSpace(title) != "" && utf8.RuneCountInString(title) <= 200
}

func EventDescription(description string) bool {
	return utf8.RuneCountInString(description) <= 1000
}

// EventDeadline parses an ISO-8601 deadline. The offset is mandatory:
// a naive timestamp has no defined instant and is rejected here so the
// window evaluator never has to guess a timezone.
func EventDeadline(deadline string) (time.Time, bool) {
	t, err := time.Parse(time.RFC3339, deadline)
	if err != nil {
		return time.Time{}, false
	}
	return t.UTC(), true
}
