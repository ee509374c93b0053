// Package dates formats the month/year ranges shown on resume entries.
package dates

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidDate indicates a token that is neither "YYYY-MM" nor "present".
var ErrInvalidDate = errors.New("invalid date")

// Present is the end-date token for an ongoing entry, matched case-insensitively.
const Present = "present"

// monthLayout renders a full English month name and a four-digit year.
const monthLayout = "January 2006"

// Month formats a "YYYY-MM" token as "{FullMonthName} {Year}".
//
// The token is parsed with a synthetic first day in UTC, so the displayed month never
// shifts with the local timezone.
func Month(token string) (string, error) {
	t, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(token)+"-01", time.UTC)
	if err != nil {
		return "", fmt.Errorf("%w: %q is not YYYY-MM", ErrInvalidDate, token)
	}
	return t.Format(monthLayout), nil
}

// IsPresent reports whether an end-date token means "ongoing".
func IsPresent(token string) bool {
	return strings.EqualFold(strings.TrimSpace(token), Present)
}

// FormatRange formats a start/end pair as "March 2022 - July 2023" or
// "January 2021 - Present".
func FormatRange(start, end string) (string, error) {
	startStr, err := Month(start)
	if err != nil {
		return "", err
	}

	if IsPresent(end) {
		return startStr + " - Present", nil
	}

	endStr, err := Month(end)
	if err != nil {
		return "", err
	}

	return startStr + " - " + endStr, nil
}
