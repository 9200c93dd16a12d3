// Package eval classifies and evaluates recognized expression text
// against a persistent variable scope.
package eval

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/Knetic/govaluate"
)

// Placeholder is displayed in place of a result when evaluation fails.
const Placeholder = "?"

var (
	// ErrEmpty marks text that is blank after trimming.
	ErrEmpty = errors.New("empty expression")
	// ErrUnrecognized marks text still carrying unrecognized glyphs.
	ErrUnrecognized = errors.New("expression contains unrecognized characters")
	// ErrUndefinedVariable marks a reference to a variable that was
	// never assigned.
	ErrUndefinedVariable = errors.New("undefined variable")
	// ErrMalformedAssignment marks an assignment whose right side is
	// not a pure numeric expression.
	ErrMalformedAssignment = errors.New("malformed assignment")
)

// Kind classifies what the user wrote.
type Kind int

const (
	// KindInvalid covers empty text and unresolved glyphs.
	KindInvalid Kind = iota
	// KindAssignment is "x=5": evaluate the right side, bind x.
	KindAssignment
	// KindEquation is text ending in "=": evaluate what precedes it.
	KindEquation
	// KindExpression is bare text with no trailing "=", evaluated for
	// live preview only.
	KindExpression
)

func (k Kind) String() string {
	switch k {
	case KindAssignment:
		return "assignment"
	case KindEquation:
		return "equation"
	case KindExpression:
		return "expression"
	default:
		return "invalid"
	}
}

// Outcome is the full result of evaluating one line of text. Err is
// never propagated as a panic or failure past this package: a failed
// evaluation yields Result == Placeholder and a message.
type Outcome struct {
	Kind     Kind
	Input    string
	Variable string // assignment target, when Kind is KindAssignment
	Value    float64
	Result   string
	Err      error
}

var assignmentRe = regexp.MustCompile(`^([a-zA-Z])=(.+)$`)

// Evaluate classifies text, evaluates it against scope, and formats
// the result. Only a successful assignment mutates the scope.
func Evaluate(text string, scope *Scope) Outcome {
	out := Outcome{Input: text, Result: Placeholder}

	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		out.Err = ErrEmpty
		return out
	}
	if strings.Contains(trimmed, "?") {
		out.Err = ErrUnrecognized
		return out
	}

	hasTrailing := strings.HasSuffix(trimmed, "=")
	body := strings.TrimSuffix(trimmed, "=")

	if m := assignmentRe.FindStringSubmatch(body); m != nil {
		out.Kind = KindAssignment
		out.Variable = m[1]
		rhs := Normalize(m[2])
		if containsVariable(rhs) {
			out.Kind = KindInvalid
			out.Err = fmt.Errorf("%w: right side of %s= must be numeric", ErrMalformedAssignment, m[1])
			return out
		}
		v, err := evalArithmetic(rhs, scope)
		if err != nil {
			out.Err = err
			return out
		}
		scope.Set(out.Variable, v)
		out.Value = v
		out.Result = FormatNumber(v)
		return out
	}

	if hasTrailing {
		out.Kind = KindEquation
	} else {
		out.Kind = KindExpression
	}

	v, err := evalArithmetic(Normalize(body), scope)
	if err != nil {
		out.Err = err
		return out
	}
	out.Value = v
	out.Result = FormatNumber(v)
	return out
}

// Normalize rewrites drawn notation into evaluable notation: handwriting
// operators to ASCII, whitespace stripped, implicit multiplication made
// explicit.
func Normalize(s string) string {
	r := strings.NewReplacer(
		"×", "*",
		"÷", "/",
		"−", "-", // U+2212 minus sign
		"–", "-", // en dash
		"—", "-", // em dash
		" ", "",
		"\t", "",
	)
	s = r.Replace(s)

	var sb strings.Builder
	var prev rune
	for i, c := range s {
		if i > 0 && implicitMul(prev, c) {
			sb.WriteRune('*')
		}
		sb.WriteRune(c)
		prev = c
	}
	return sb.String()
}

// implicitMul reports whether a multiplication sign belongs between
// two adjacent characters: 2x, x2, 2(, )(, )3.
func implicitMul(prev, cur rune) bool {
	prevOperand := isDigit(prev) || isLetter(prev) || prev == ')'
	switch {
	case prevOperand && cur == '(':
		return true
	case prev == ')' && (isDigit(cur) || isLetter(cur)):
		return true
	case isDigit(prev) && isLetter(cur):
		return true
	case isLetter(prev) && isDigit(cur):
		return true
	case isLetter(prev) && isLetter(cur):
		return true
	}
	return false
}

func isDigit(c rune) bool  { return c >= '0' && c <= '9' }
func isLetter(c rune) bool { return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }

func containsVariable(s string) bool {
	for _, c := range s {
		if isLetter(c) {
			return true
		}
	}
	return false
}

// evalArithmetic evaluates a normalized arithmetic expression. Every
// referenced variable must already exist in scope.
func evalArithmetic(normalized string, scope *Scope) (float64, error) {
	if normalized == "" {
		return 0, ErrEmpty
	}
	for _, c := range normalized {
		if isLetter(c) {
			if _, ok := scope.Get(string(c)); !ok {
				return 0, fmt.Errorf("%w: %s", ErrUndefinedVariable, string(c))
			}
		}
	}

	ee, err := govaluate.NewEvaluableExpression(normalized)
	if err != nil {
		return 0, fmt.Errorf("parse %q: %w", normalized, err)
	}
	raw, err := ee.Evaluate(scope.Snapshot())
	if err != nil {
		return 0, fmt.Errorf("evaluate %q: %w", normalized, err)
	}
	v, ok := raw.(float64)
	if !ok {
		return 0, fmt.Errorf("evaluate %q: non-numeric result %v", normalized, raw)
	}
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, fmt.Errorf("evaluate %q: division by zero", normalized)
	}
	return v, nil
}

// FormatNumber renders a value without floating-point noise: rounded
// to ten significant digits, shortest decimal form, no trailing ".0"
// for integral values.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(roundNoise(v), 'f', -1, 64)
}

func roundNoise(v float64) float64 {
	if v == 0 || math.IsInf(v, 0) || math.IsNaN(v) {
		return v
	}
	mag := math.Pow(10, 9-math.Floor(math.Log10(math.Abs(v))))
	return math.Round(v*mag) / mag
}
