package nutrition

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"
)

// DefaultMaxFoodLength caps the description in runes when no limit is configured.
const DefaultMaxFoodLength = 500

// ParseQuery validates a raw request body into a FoodQuery.
// maxLen <= 0 falls back to DefaultMaxFoodLength.
func ParseQuery(body []byte, maxLen int) (FoodQuery, error) {
	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return FoodQuery{}, fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}
	obj, ok := doc.(map[string]any)
	if !ok {
		return FoodQuery{}, ErrMissingFood
	}
	raw, ok := obj["food"]
	if !ok {
		return FoodQuery{}, ErrMissingFood
	}
	food, ok := raw.(string)
	if !ok {
		return FoodQuery{}, ErrMissingFood
	}
	return NewFoodQuery(food, maxLen)
}

// NewFoodQuery checks an already-decoded description.
func NewFoodQuery(food string, maxLen int) (FoodQuery, error) {
	if maxLen <= 0 {
		maxLen = DefaultMaxFoodLength
	}
	food = sanitize(food)
	if food == "" {
		return FoodQuery{}, ErrEmptyFood
	}
	if utf8.RuneCountInString(food) > maxLen {
		return FoodQuery{}, fmt.Errorf("%w: max %d characters", ErrFoodTooLong, maxLen)
	}
	return FoodQuery{Food: food}, nil
}

// sanitize drops NUL and control characters (tab and newline survive) and trims.
func sanitize(s string) string {
	if !utf8.ValidString(s) {
		s = strings.ToValidUTF8(s, "")
	}
	var b bytes.Buffer
	for _, r := range s {
		if (r >= 32 && r != 127) || r == '\t' || r == '\n' {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}
