// Package model holds what is shared by the entity packages under it.
//
// Each entity lives in its own sub-package (owner, account) next to the
// payloads it is created and updated from and the response it is rendered as.
package model

import "time"

// DateLayout is the wire format of every date field.
const DateLayout = "2006-01-02"

// Today returns the UTC date portion of now.
func Today(now time.Time) time.Time {
	y, m, d := now.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses s as a DateLayout date in UTC.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}

// FormatDate renders t in DateLayout.
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}
