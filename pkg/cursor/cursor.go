// Package cursor implements the opaque pagination cursor used by the list
// endpoints. A cursor is the base64url (unpadded) encoding of {"page":N}.
package cursor

import (
	"encoding/base64"
	"fmt"
	"math"
	"strings"

	"github.com/tidwall/gjson"
)

// Encode returns the cursor for the given page.
func Encode(page int) string {
	return base64.RawURLEncoding.EncodeToString([]byte(fmt.Sprintf(`{"page":%d}`, page)))
}

// Decode extracts the page number from a cursor.
// It reports false for empty, malformed or tampered input and never panics.
func Decode(c string) (int, bool) {
	if c == "" {
		return 0, false
	}

	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(c, "="))
	if err != nil {
		return 0, false
	}

	if !gjson.ValidBytes(raw) {
		return 0, false
	}
	doc := gjson.ParseBytes(raw)
	if !doc.IsObject() {
		return 0, false
	}

	page := doc.Get("page")
	if page.Type != gjson.Number {
		return 0, false
	}

	f := page.Float()
	if math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 || f != math.Trunc(f) || f > math.MaxInt32 {
		return 0, false
	}

	return int(f), true
}
