package prompt

import (
	"encoding/json"
	"strings"

	"github.com/bryanwahyu/macro-estimator/internal/domain/nutrition"
)

// example anchors the completion to the exact keys ParseEstimate reads.
var example = nutrition.NutrientEstimate{Calories: 250, Protein: 12, Carbs: 30, Fat: 8}

// Nutrition renders the single-message prompt for one food description.
// Output is deterministic for a given input; the description is embedded verbatim.
func Nutrition(food string) string {
	return strings.Join([]string{
		"Estimate nutrition for the following food. Return ONLY valid JSON with keys: calories, protein, carbs, fat (all numbers in grams, except calories).",
		"Food: " + food,
		"Example output: " + Example(),
	}, "\n")
}

// Example returns the sample object shown to the model.
func Example() string {
	b, err := json.Marshal(example)
	if err != nil {
		// NutrientEstimate only holds float64 fields
		panic(err)
	}
	return string(b)
}
