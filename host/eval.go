// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"errors"
	"fmt"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

var errExprParse = errors.New("expression syntax error")

// An evaluator computes integer expressions typed at the monitor prompt.
// Expressions use starlark integer arithmetic after 6502 style literals
// ($hex and %binary) have been rewritten into starlark literals.
type evaluator struct {
	hexMode bool
}

func newEvaluator() *evaluator {
	return &evaluator{}
}

// Eval evaluates the expression with the provided identifiers in scope.
func (e *evaluator) Eval(expr string, vars map[string]int64) (int64, error) {
	src, err := e.translate(expr)
	if err != nil {
		return 0, err
	}

	pred := starlark.StringDict{}
	for k, v := range vars {
		pred[k] = starlark.MakeInt64(v)
		pred[strings.ToUpper(k)] = pred[k]
	}

	thread := &starlark.Thread{Name: "evaluate"}
	opts := syntax.FileOptions{}
	dict, err := starlark.ExecFileOptions(&opts, thread, "expr", "rc = "+src+"\n", pred)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", errExprParse, expr)
	}

	rc, ok := dict["rc"].(starlark.Int)
	if !ok {
		return 0, fmt.Errorf("%w: '%s' is not an integer", errExprParse, expr)
	}
	v, ok := rc.Int64()
	if !ok {
		return 0, fmt.Errorf("%w: '%s' is out of range", errExprParse, expr)
	}
	return v, nil
}

// Rewrite monitor literals into starlark syntax. '$' prefixes a hex number,
// '%' at the start of an operand prefixes a binary number, a lone '.' names
// the program counter, and '/' is integer division. In hex mode, numbers
// without a prefix are hexadecimal.
func (e *evaluator) translate(expr string) (string, error) {
	var b strings.Builder
	operand := true // an operand is expected next

	for i := 0; i < len(expr); {
		c := expr[i]
		switch {
		case c == ' ' || c == '\t':
			b.WriteByte(c)
			i++
			continue

		case c == '$':
			j := scan(expr, i+1, isHexDigit)
			if j == i+1 {
				return "", fmt.Errorf("%w: %s", errExprParse, expr)
			}
			b.WriteString("0x" + expr[i+1:j])
			i, operand = j, false
			continue

		case c == '%' && operand:
			j := scan(expr, i+1, isBinDigit)
			if j == i+1 {
				return "", fmt.Errorf("%w: %s", errExprParse, expr)
			}
			b.WriteString("0b" + expr[i+1:j])
			i, operand = j, false
			continue

		case c == '.' && (i+1 == len(expr) || !isIdentChar(expr[i+1])):
			b.WriteString("pc")
			i, operand = i+1, false
			continue

		case c == '/':
			j := i + 1
			if j < len(expr) && expr[j] == '/' {
				j++
			}
			b.WriteString("//")
			i, operand = j, true
			continue

		case isDigit(c):
			j := scan(expr, i, isIdentChar)
			tok := expr[i:j]
			if e.hexMode && !strings.HasPrefix(strings.ToLower(tok), "0x") {
				tok = "0x" + tok
			}
			b.WriteString(tok)
			i, operand = j, false
			continue

		case isIdentChar(c):
			j := scan(expr, i, isIdentChar)
			b.WriteString(expr[i:j])
			i, operand = j, false
			continue

		case c == ')':
			operand = false

		default:
			operand = true
		}

		b.WriteByte(c)
		i++
	}

	return b.String(), nil
}

func scan(s string, i int, accept func(c byte) bool) int {
	for i < len(s) && accept(s[i]) {
		i++
	}
	return i
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isBinDigit(c byte) bool {
	return c == '0' || c == '1'
}

func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isIdentChar(c byte) bool {
	return isDigit(c) || c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
