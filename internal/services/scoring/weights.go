package scoring

// featureWeights is the fixed linear weight table. Positive weights sum
// to 1.10 and the three penalty features carry -0.10 combined, netting
// to 1.0 across the vector.
var featureWeights = map[string]float64{
	"visibility":    0.12,
	"size":          0.06,
	"position":      0.09,
	"contrast":      0.05,
	"friction":      0.08,
	"intent":        0.12,
	"scent":         0.07,
	"urgency":       0.05,
	"trust":         0.05,
	"interactivity": 0.09,
	"buttonStyling": 0.08,
	"textLength":    0.04,
	"labelClarity":  0.04,
	"affordance":    0.05,
	"socialProof":   0.03,
	"messageMatch":  0.04,
	"mobileFit":     0.04,

	// Penalty features.
	"formComplexity": -0.04,
	"distraction":    -0.03,
	"depth":          -0.03,
}

const (
	// MinScore is the floor applied after all modifiers so no element
	// scores exactly zero.
	MinScore = 0.001

	// MaxElements caps a single scoring batch.
	MaxElements = 100
)

// Multiplicative modifiers applied after the weighted sum.
const (
	invisibleModifier   = 0.1
	belowFoldModifier   = 0.6
	formFieldModifier   = 0.8
	buttonStyleModifier = 1.2
	interactiveModifier = 1.1
)
