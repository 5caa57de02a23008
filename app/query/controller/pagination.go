package controller

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"
)

// limitRange is the closed [1, Max] window a resource accepts, with the
// value used when the input is missing, non-numeric or below 1.
type limitRange struct {
	Default int
	Max     int
}

var (
	swapsLimits          = limitRange{Default: 100, Max: 1000}
	volumeLimits         = limitRange{Default: 168, Max: 720}
	whalesLimits         = limitRange{Default: 100, Max: 500}
	anomaliesLimits      = limitRange{Default: 50, Max: 200}
	tokenFlowsLimits     = limitRange{Default: 168, Max: 720}
	protocolHealthLimits = limitRange{Default: 30, Max: 90}
)

// maxOffset keeps offsets within the range a float64 represents exactly.
const maxOffset = 1 << 53

type pagedResponse[T any] struct {
	Data   []T  `json:"data"`
	Limit  int  `json:"limit"`
	Offset *int `json:"offset,omitempty"`
}

// parseLimit never rejects input; bad values fall back to the default and
// large ones are clamped to the maximum. Fractions are truncated.
func parseLimit(r *http.Request, lr limitRange) int {
	n, ok := parseNumber(r.URL.Query().Get("limit"))
	if !ok || n < 1 {
		return lr.Default
	}
	if n > float64(lr.Max) {
		return lr.Max
	}
	return int(n)
}

// parseOffset floors negative and non-numeric input at 0.
func parseOffset(r *http.Request) int {
	n, ok := parseNumber(r.URL.Query().Get("offset"))
	if !ok || n < 0 {
		return 0
	}
	if n > maxOffset {
		return maxOffset
	}
	return int(n)
}

// parseNumber accepts anything ParseFloat does. Out of range input keeps the
// ±Inf it parses to so the callers clamp it.
func parseNumber(v string) (float64, bool) {
	n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	if math.IsNaN(n) {
		return 0, false
	}
	return math.Trunc(n), true
}

// parseFilter lower-cases and trims an equality filter. Empty means absent.
func parseFilter(r *http.Request, key string) string {
	return strings.ToLower(strings.TrimSpace(r.URL.Query().Get(key)))
}
