package nutrition

// FoodQuery is a validated free-text food description.
type FoodQuery struct {
	Food string `json:"food"`
}

// NutrientEstimate is the macro breakdown returned for a query.
// Calories are kcal, everything else grams.
type NutrientEstimate struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// Outcome is the tagged result of one analysis: either Estimate is set or Err is.
type Outcome struct {
	Estimate *NutrientEstimate
	Err      error
}

func Succeeded(e NutrientEstimate) Outcome { return Outcome{Estimate: &e} }

func Failed(err error) Outcome { return Outcome{Err: err} }

func (o Outcome) OK() bool { return o.Err == nil && o.Estimate != nil }
