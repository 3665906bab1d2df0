// Package expr evaluates the arithmetic shorthand accepted by the
// amount field: plain numbers combined with + - * / and parentheses.
//
// It is a closed grammar on purpose. Input is user-typed text, so it
// must never reach a general evaluation facility; anything outside
// digits, the four operators, parentheses, dots and whitespace is
// rejected before parsing.
package expr

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidExpression is wrapped by every parse failure.
	ErrInvalidExpression = errors.New("invalid expression")

	// ErrDivisionByZero is returned when a divisor evaluates to zero.
	ErrDivisionByZero = errors.New("division by zero")
)

// IsCandidate reports whether the text looks like an arithmetic
// expression: only allowed characters, at least one digit, and at
// least one operator. A bare number is not a candidate, it is already
// an amount.
func IsCandidate(s string) bool {
	hasDigit, hasOp := false, false
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			hasDigit = true
		case r == '+' || r == '-' || r == '*' || r == '/':
			hasOp = true
		case r == '(' || r == ')' || r == '.' || r == ' ' || r == '\t':
		default:
			return false
		}
	}
	return hasDigit && hasOp
}

// Eval parses and evaluates the expression with the usual precedence
// (* and / before + and -, parentheses grouping). The result is exact
// decimal arithmetic except for division, which uses decimal's default
// precision.
func Eval(input string) (decimal.Decimal, error) {
	p := &parser{input: input}
	v, err := p.expression()
	if err != nil {
		return decimal.Zero, err
	}
	p.skipSpace()
	if p.pos != len(p.input) {
		return decimal.Zero, fmt.Errorf("%w: unexpected %q at offset %d",
			ErrInvalidExpression, p.input[p.pos], p.pos)
	}
	return v, nil
}

type parser struct {
	input string
	pos   int
}

// expression := term (('+' | '-') term)*
func (p *parser) expression() (decimal.Decimal, error) {
	v, err := p.term()
	if err != nil {
		return decimal.Zero, err
	}
	for {
		p.skipSpace()
		switch {
		case p.accept('+'):
			t, err := p.term()
			if err != nil {
				return decimal.Zero, err
			}
			v = v.Add(t)
		case p.accept('-'):
			t, err := p.term()
			if err != nil {
				return decimal.Zero, err
			}
			v = v.Sub(t)
		default:
			return v, nil
		}
	}
}

// term := factor (('*' | '/') factor)*
func (p *parser) term() (decimal.Decimal, error) {
	v, err := p.factor()
	if err != nil {
		return decimal.Zero, err
	}
	for {
		p.skipSpace()
		switch {
		case p.accept('*'):
			f, err := p.factor()
			if err != nil {
				return decimal.Zero, err
			}
			v = v.Mul(f)
		case p.accept('/'):
			f, err := p.factor()
			if err != nil {
				return decimal.Zero, err
			}
			if f.IsZero() {
				return decimal.Zero, ErrDivisionByZero
			}
			v = v.Div(f)
		default:
			return v, nil
		}
	}
}

// factor := number | '-' factor | '(' expression ')'
func (p *parser) factor() (decimal.Decimal, error) {
	p.skipSpace()
	if p.accept('-') {
		v, err := p.factor()
		if err != nil {
			return decimal.Zero, err
		}
		return v.Neg(), nil
	}
	if p.accept('(') {
		v, err := p.expression()
		if err != nil {
			return decimal.Zero, err
		}
		p.skipSpace()
		if !p.accept(')') {
			return decimal.Zero, fmt.Errorf("%w: missing closing parenthesis", ErrInvalidExpression)
		}
		return v, nil
	}
	return p.number()
}

func (p *parser) number() (decimal.Decimal, error) {
	start := p.pos
	sawDot := false
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		if c >= '0' && c <= '9' {
			p.pos++
			continue
		}
		if c == '.' && !sawDot {
			sawDot = true
			p.pos++
			continue
		}
		break
	}
	if p.pos == start {
		return decimal.Zero, fmt.Errorf("%w: expected number at offset %d", ErrInvalidExpression, start)
	}
	d, err := decimal.NewFromString(p.input[start:p.pos])
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidExpression, p.input[start:p.pos])
	}
	return d, nil
}

func (p *parser) accept(c byte) bool {
	if p.pos < len(p.input) && p.input[p.pos] == c {
		p.pos++
		return true
	}
	return false
}

func (p *parser) skipSpace() {
	for p.pos < len(p.input) && (p.input[p.pos] == ' ' || p.input[p.pos] == '\t') {
		p.pos++
	}
}
