package condition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vouch/internal/verification/models"
)

func testContext() *models.VerificationContext {
	return &models.VerificationContext{
		SessionID: "sess-1",
		Timestamp: 1700000000000,
		Fingerprint: map[string]any{
			"userAgent": "Mozilla/5.0 GoogleBot/2.1",
			"webdriver": true,
			"canvas":    "",
			"screen": map[string]any{
				"width":  float64(1920),
				"height": float64(1080),
			},
		},
		Behavioral: map[string]any{
			"sessionDuration": float64(72000),
			"metrics": map[string]any{
				"totalEvents":    float64(42),
				"clickFrequency": float64(0.8),
			},
		},
	}
}

func TestEvaluateComparisons(t *testing.T) {
	tests := []struct {
		name      string
		condition string
		want      bool
	}{
		{"number equality", "behavioral.metrics.totalEvents == 42", true},
		{"number inequality", "behavioral.metrics.totalEvents != 42", false},
		{"less than", "behavioral.sessionDuration < 5000", false},
		{"greater than", "behavioral.sessionDuration > 60000", true},
		{"greater or equal boundary", "behavioral.metrics.totalEvents >= 42", true},
		{"less or equal boundary", "behavioral.metrics.totalEvents <= 42", true},
		{"negative literal", "behavioral.metrics.clickFrequency > -1", true},
		{"string equality", `fingerprint.userAgent == "Mozilla/5.0 GoogleBot/2.1"`, true},
		{"single quoted string", `sessionId == 'sess-1'`, true},
		{"boolean equality", "fingerprint.webdriver == true", true},
		{"boolean inequality", "fingerprint.webdriver != false", true},
		{"nested path", "fingerprint.screen.width > 1280", true},
		{"top level timestamp", "timestamp > 0", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Evaluate(tt.condition, testContext())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEvaluateAbsentPathsFoldToFalse(t *testing.T) {
	tests := []string{
		"facial.confidence > 0.5",
		"fingerprint.missing == 'anything'",
		"fingerprint.screen.depth != 24",
		"behavioral.metrics.totalEvents.extra > 1",
		"fingerprint.nope",
	}
	for _, condition := range tests {
		t.Run(condition, func(t *testing.T) {
			got, err := Evaluate(condition, testContext())
			require.NoError(t, err)
			assert.False(t, got)
		})
	}

	// Negation of an absent comparison is observable truth: the comparison
	// folds to false, the negation flips it.
	got, err := Evaluate("!(facial.confidence > 0.5)", testContext())
	require.NoError(t, err)
	assert.True(t, got)
}

func TestEvaluateTypeMismatchesFoldToFalse(t *testing.T) {
	tests := []string{
		`behavioral.sessionDuration == "72000"`,
		`fingerprint.userAgent > 10`,
		`fingerprint.webdriver < true`,
	}
	for _, condition := range tests {
		t.Run(condition, func(t *testing.T) {
			got, err := Evaluate(condition, testContext())
			require.NoError(t, err)
			assert.False(t, got)
		})
	}
}

func TestEvaluateBooleanOperators(t *testing.T) {
	tests := []struct {
		name      string
		condition string
		want      bool
	}{
		{"and both true", "fingerprint.webdriver == true && timestamp > 0", true},
		{"and one false", "fingerprint.webdriver == true && timestamp < 0", false},
		{"or short circuit", "timestamp > 0 || facial.confidence > 0.5", true},
		{"or both false", "timestamp < 0 || facial.confidence > 0.5", false},
		{"not", "!fingerprint.webdriver", false},
		{"double not", "!!fingerprint.webdriver", true},
		{"and binds tighter than or", "timestamp < 0 && timestamp < 0 || timestamp > 0", true},
		{"parens override precedence", "timestamp < 0 && (timestamp < 0 || timestamp > 0)", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Evaluate(tt.condition, testContext())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEvaluateTruthiness(t *testing.T) {
	tests := []struct {
		name      string
		condition string
		want      bool
	}{
		{"non-empty string is truthy", "fingerprint.userAgent", true},
		{"empty string is falsy", "fingerprint.canvas", false},
		{"true bool is truthy", "fingerprint.webdriver", true},
		{"nonzero number is truthy", "behavioral.sessionDuration", true},
		{"map is truthy", "fingerprint.screen", true},
		{"absent is falsy", "facial.imageData", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Evaluate(tt.condition, testContext())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEvaluateIncludes(t *testing.T) {
	tests := []struct {
		name      string
		condition string
		want      bool
	}{
		{"substring present", `fingerprint.userAgent.includes("GoogleBot")`, true},
		{"substring absent", `fingerprint.userAgent.includes("curl")`, false},
		{"case sensitive", `fingerprint.userAgent.includes("googlebot")`, false},
		{"receiver absent", `facial.imageData.includes("data:")`, false},
		{"receiver not a string", `fingerprint.webdriver.includes("tr")`, false},
		{"combined with or", `fingerprint.userAgent.includes("bot") || fingerprint.userAgent.includes("Bot")`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Evaluate(tt.condition, testContext())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEvaluateNilContext(t *testing.T) {
	got, err := Evaluate("fingerprint.userAgent == 'x'", nil)
	require.NoError(t, err)
	assert.False(t, got)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name      string
		condition string
	}{
		{"empty condition", ""},
		{"unbalanced paren", "(timestamp > 0"},
		{"dangling operator", "timestamp > "},
		{"chained comparison", "1 < timestamp < 2"},
		{"trailing dot path", "fingerprint. == 'x'"},
		{"double dot path", "fingerprint..userAgent"},
		{"unterminated string", `fingerprint.userAgent == "oops`},
		{"bad token", "timestamp @ 5"},
		{"single ampersand", "timestamp > 0 & timestamp > 0"},
		{"includes without argument", "fingerprint.userAgent.includes()"},
		{"includes with number argument", "fingerprint.userAgent.includes(5)"},
		{"trailing garbage", "timestamp > 0 timestamp"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Evaluate(tt.condition, testContext())
			require.Error(t, err)

			var perr *ParseError
			require.ErrorAs(t, err, &perr)
			assert.NotEmpty(t, perr.Msg)
		})
	}
}

func TestEvalWithCustomLookup(t *testing.T) {
	look := func(path string) Value {
		if path == "a.b" {
			return Of(float64(7))
		}
		return Absent()
	}

	expr, err := Parse("a.b == 7")
	require.NoError(t, err)
	assert.True(t, Eval(expr, look))

	expr, err = Parse("a.missing == 7")
	require.NoError(t, err)
	assert.False(t, Eval(expr, look))
}
