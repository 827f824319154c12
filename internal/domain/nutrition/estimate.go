package nutrition

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// ParseEstimate decodes model text into a NutrientEstimate.
// The text must be a JSON object, optionally inside one markdown code fence.
// Each field is coerced on its own: absent or unusable values become 0.
func ParseEstimate(text string) (NutrientEstimate, error) {
	body := stripCodeFence(text)
	if body == "" {
		return NutrientEstimate{}, &UpstreamFormatError{Raw: text, Cause: fmt.Errorf("empty completion")}
	}

	dec := json.NewDecoder(strings.NewReader(body))
	dec.UseNumber()
	var fields map[string]any
	if err := dec.Decode(&fields); err != nil {
		return NutrientEstimate{}, &UpstreamFormatError{Raw: text, Cause: err}
	}
	if fields == nil {
		return NutrientEstimate{}, &UpstreamFormatError{Raw: text, Cause: fmt.Errorf("not a json object")}
	}
	// anything after the object, including a stray closing brace, is invalid
	if _, err := dec.Token(); err != io.EOF {
		return NutrientEstimate{}, &UpstreamFormatError{Raw: text, Cause: fmt.Errorf("trailing data after object")}
	}

	return NutrientEstimate{
		Calories: Coerce(fields["calories"]),
		Protein:  Coerce(fields["protein"]),
		Carbs:    Coerce(fields["carbs"]),
		Fat:      Coerce(fields["fat"]),
	}, nil
}

// Coerce converts one decoded JSON value to a non-negative finite number.
// Numbers and numeric strings pass through; anything else is 0.
func Coerce(v any) float64 {
	var f float64
	switch t := v.(type) {
	case json.Number:
		n, err := t.Float64()
		if err != nil {
			return 0
		}
		f = n
	case float64:
		f = t
	case int:
		f = float64(t)
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0
		}
		f = n
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	return f
}

func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	// drop an info string such as "json"
	if i := strings.IndexByte(s, '\n'); i >= 0 && !strings.ContainsAny(s[:i], "{[") {
		s = s[i+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
