package usecase

import (
	"regexp"
	"time"
)

var timeframeDate = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)

// decodeTimeframe extracts the first YYYY-MM-DD date found anywhere in the
// element text and returns it as unix seconds at UTC midnight. Zero means no
// usable date, which enrolment treats as an unbounded window.
func decodeTimeframe(text string) int64 {
	match := timeframeDate.FindString(text)
	if match == "" {
		return 0
	}
	t, err := time.Parse("2006-01-02", match)
	if err != nil {
		return 0
	}
	return t.Unix()
}
