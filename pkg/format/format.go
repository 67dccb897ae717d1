// Package format holds presentation helpers shared by the handlers:
// display formatting, resource URLs and SEO metadata.
package format

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const dateLayout = "January 2, 2006"

var printer = message.NewPrinter(language.AmericanEnglish)

// Date formats t as "March 1, 2024".
func Date(t time.Time) string {
	return t.Format(dateLayout)
}

// DateString parses an RFC 3339 timestamp and formats it like Date.
func DateString(s string) (string, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return "", fmt.Errorf("parse date %q: %w", s, err)
	}
	return Date(t), nil
}

// TruncateText shortens text to maxLength runes, trimming trailing space
// and appending "...". Text that already fits is returned unchanged.
func TruncateText(text string, maxLength int) string {
	runes := []rune(text)
	if len(runes) <= maxLength {
		return text
	}
	if maxLength < 0 {
		maxLength = 0
	}
	return strings.TrimSpace(string(runes[:maxLength])) + "..."
}

// Number formats n with en-US digit grouping ("1,234,567").
func Number(n int64) string {
	return printer.Sprintf("%d", n)
}

// PostURL returns the site path of a post.
func PostURL(id int) string { return fmt.Sprintf("/posts/%d", id) }

// UserURL returns the site path of a user.
func UserURL(id int) string { return fmt.Sprintf("/users/%d", id) }

// AlbumURL returns the site path of an album.
func AlbumURL(id int) string { return fmt.Sprintf("/albums/%d", id) }
