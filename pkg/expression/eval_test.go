package expression

import (
	"errors"
	"regexp"
	"testing"

	"github.com/provide-io/erlc/pkg/registry"
	"github.com/provide-io/erlc/pkg/widgets"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name     string
		version  string
		input    string
		expected registry.Level
	}{
		{name: "single constant", version: "5.4", input: "E_NOTICE", expected: 8},
		{name: "or", version: "5.4", input: "E_ERROR | E_WARNING", expected: 3},
		{name: "e_all 5.4", version: "5.4", input: "E_ALL", expected: 32767},
		{name: "e_all 5.3", version: "5.3", input: "E_ALL", expected: 30719},
		{name: "and not", version: "5.4", input: "E_ALL & ~E_NOTICE", expected: 32759},
		{name: "and binds tighter than or", version: "5.2", input: "E_ALL & ~E_NOTICE | E_STRICT", expected: 8183},
		{name: "parentheses", version: "5.4", input: "E_ALL & ~(E_NOTICE | E_STRICT)", expected: 30711},
		{name: "xor", version: "5.4", input: "E_ERROR ^ 3", expected: 2},
		{name: "decimal literal", version: "5.4", input: "6143", expected: 6143},
		{name: "hex literal", version: "5.4", input: "0x10 | E_ERROR", expected: 17},
		{name: "no spaces", version: "5.4", input: "E_ERROR|E_PARSE", expected: 5},
		{name: "double not", version: "5.4", input: "~~E_PARSE", expected: 4},
		{name: "zero", version: "5.4", input: "0", expected: 0},
	}

	reg := registry.Default()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Evaluate(reg, tt.version, tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("Evaluate(%q) = %d, want %d", tt.input, got, tt.expected)
			}
		})
	}
}

func TestEvaluateErrors(t *testing.T) {
	tests := []struct {
		name    string
		version string
		input   string
		err     error
	}{
		{name: "blank", version: "5.4", input: "   ", err: ErrEmpty},
		{name: "unknown constant", version: "5.4", input: "E_ERROR | E_FOO", err: ErrUnknownConstant},
		{name: "dangling operator", version: "5.4", input: "E_ERROR |", err: ErrUnexpectedToken},
		{name: "bad rune", version: "5.4", input: "E_ERROR + E_WARNING", err: ErrUnexpectedToken},
		{name: "missing close", version: "5.4", input: "(E_ERROR | E_WARNING", err: ErrUnbalancedParen},
		{name: "extra close", version: "5.4", input: "E_ERROR)", err: ErrUnbalancedParen},
		{name: "leading close", version: "5.4", input: ")", err: ErrUnbalancedParen},
		{name: "adjacent operands", version: "5.4", input: "E_ERROR E_WARNING", err: ErrUnexpectedToken},
		{name: "bad number", version: "5.4", input: "0xZZ", err: ErrUnexpectedToken},
		{name: "unknown version", version: "9.9", input: "E_ALL", err: registry.ErrUnknownVersion},
	}

	reg := registry.Default()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Evaluate(reg, tt.version, tt.input)
			if !errors.Is(err, tt.err) {
				t.Fatalf("Evaluate(%q) error = %v, want %v", tt.input, err, tt.err)
			}
		})
	}
}

// An addition followed by a removal reads differently under PHP precedence
// than the level it was rendered from.
var additionBeforeRemoval = regexp.MustCompile(`\| E_\w+ .*& ~`)

func TestRenderedExpressionsEvaluateBack(t *testing.T) {
	reg := registry.Default()

	for _, v := range reg.Versions() {
		max, _ := reg.MaxLevel(v.Key)
		eAll, _ := reg.EAllLevel(v.Key)

		levels := []registry.Level{0, max, eAll}
		constants, _ := reg.ConstantsForVersion(v.Key)
		for _, c := range constants {
			levels = append(levels, c.Value, max.Clear(c.Value), eAll.Clear(c.Value))
		}

		for _, level := range levels {
			expr := widgets.Expression(reg, level, max, eAll)
			if additionBeforeRemoval.MatchString(expr) {
				continue
			}
			got, err := Evaluate(reg, v.Key, expr)
			if err != nil {
				t.Fatalf("%s: Evaluate(%q): %v", v.Key, expr, err)
			}
			if got != level {
				t.Errorf("%s: Evaluate(%q) = %d, want %d", v.Key, expr, got, level)
			}
		}
	}
}
