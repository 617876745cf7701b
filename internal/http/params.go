package http

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// Numeric inputs are parsed leniently throughout the API: a value that cannot
// be read as an integer falls back to a default instead of failing the
// request. Both helpers below exist so that this behaviour lives in one
// place.

// queryIntDefault reads an integer query parameter, returning def when the
// parameter is absent or not a valid integer.
func queryIntDefault(c *gin.Context, name string, def int) int {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}

// FlexInt is an optional integer body field that tolerates lenient JSON
// input: a number or a numeric string sets Value, anything else leaves it
// nil, meaning absent.
type FlexInt struct {
	Value *int
}

// UnmarshalJSON never fails; unparseable input is treated as absent.
func (f *FlexInt) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	raw = strings.Trim(raw, `"`)
	if raw == "" || raw == "null" {
		f.Value = nil
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		f.Value = nil
		return nil
	}
	f.Value = &v
	return nil
}
