package nutrition

import (
	"errors"
	"math"
	"testing"
)

func TestParseEstimate(t *testing.T) {
	testCases := []struct {
		name string
		text string
		want NutrientEstimate
	}{
		{
			name: "all fields",
			text: `{"calories":260,"protein":5,"carbs":57,"fat":1}`,
			want: NutrientEstimate{Calories: 260, Protein: 5, Carbs: 57, Fat: 1},
		},
		{
			name: "fractional values",
			text: `{"calories": 95.5, "protein": 0.5, "carbs": 25.1, "fat": 0.3}`,
			want: NutrientEstimate{Calories: 95.5, Protein: 0.5, Carbs: 25.1, Fat: 0.3},
		},
		{
			name: "missing fields default to zero",
			text: `{"calories":250,"fat":8}`,
			want: NutrientEstimate{Calories: 250, Fat: 8},
		},
		{
			name: "empty object",
			text: `{}`,
			want: NutrientEstimate{},
		},
		{
			name: "null and garbage coerce per field",
			text: `{"calories":null,"protein":"12","carbs":"lots","fat":true}`,
			want: NutrientEstimate{Protein: 12},
		},
		{
			name: "negative clamps to zero",
			text: `{"calories":-10,"protein":3,"carbs":4,"fat":5}`,
			want: NutrientEstimate{Protein: 3, Carbs: 4, Fat: 5},
		},
		{
			name: "nested values are not numbers",
			text: `{"calories":{"value":100},"protein":[1],"carbs":2,"fat":3}`,
			want: NutrientEstimate{Carbs: 2, Fat: 3},
		},
		{
			name: "extra keys ignored",
			text: `{"calories":100,"protein":1,"carbs":2,"fat":3,"fiber":4}`,
			want: NutrientEstimate{Calories: 100, Protein: 1, Carbs: 2, Fat: 3},
		},
		{
			name: "surrounding whitespace",
			text: "\n  {\"calories\":1,\"protein\":2,\"carbs\":3,\"fat\":4}  \n",
			want: NutrientEstimate{Calories: 1, Protein: 2, Carbs: 3, Fat: 4},
		},
		{
			name: "json code fence",
			text: "```json\n{\"calories\":1,\"protein\":2,\"carbs\":3,\"fat\":4}\n```",
			want: NutrientEstimate{Calories: 1, Protein: 2, Carbs: 3, Fat: 4},
		},
		{
			name: "bare code fence on one line",
			text: "```{\"calories\":7}```",
			want: NutrientEstimate{Calories: 7},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseEstimate(tc.text)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("expected %+v, got %+v", tc.want, got)
			}
		})
	}
}

func TestParseEstimate_UpstreamFormat(t *testing.T) {
	testCases := []struct {
		name string
		text string
	}{
		{"prose", "I think it is about 260 calories."},
		{"empty", ""},
		{"whitespace", "   \n"},
		{"array", `[260, 5, 57, 1]`},
		{"number", `260`},
		{"null", `null`},
		{"truncated", `{"calories":260,"protein":`},
		{"trailing prose", `{"calories":260} hope this helps`},
		{"stray closing brace", `{"calories":260}}`},
		{"stray closing bracket", `{"calories":260} ]`},
		{"second object", `{"calories":260}{"fat":1}`},
		{"fence without object", "```json\nsorry\n```"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseEstimate(tc.text)
			if !errors.Is(err, ErrUpstreamFormat) {
				t.Fatalf("expected ErrUpstreamFormat, got %v", err)
			}
			var ufe *UpstreamFormatError
			if !errors.As(err, &ufe) {
				t.Fatalf("expected *UpstreamFormatError, got %T", err)
			}
			if ufe.Raw != tc.text {
				t.Errorf("expected raw %q, got %q", tc.text, ufe.Raw)
			}
			if got != (NutrientEstimate{}) {
				t.Errorf("expected zero estimate on failure, got %+v", got)
			}
		})
	}
}

func TestCoerce(t *testing.T) {
	testCases := []struct {
		name string
		in   any
		want float64
	}{
		{"nil", nil, 0},
		{"float", 12.5, 12.5},
		{"int", 3, 3},
		{"numeric string", " 42 ", 42},
		{"word", "many", 0},
		{"empty string", "", 0},
		{"bool", true, 0},
		{"nan string", "NaN", 0},
		{"inf", math.Inf(1), 0},
		{"negative", -1.5, 0},
		{"map", map[string]any{"a": 1}, 0},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Coerce(tc.in); got != tc.want {
				t.Errorf("Coerce(%v) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestOutcome(t *testing.T) {
	ok := Succeeded(NutrientEstimate{Calories: 1})
	if !ok.OK() || ok.Estimate.Calories != 1 {
		t.Errorf("expected successful outcome, got %+v", ok)
	}
	failed := Failed(ErrUpstreamFormat)
	if failed.OK() || failed.Estimate != nil {
		t.Errorf("expected failed outcome, got %+v", failed)
	}
}
