/*
Copyright © 2023 Red Hat, Inc.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package parser

// Expression parser for rule conditions. The grammar is deliberately naive:
// the split point of a logical expression is the FIRST AND/OR token found at
// parenthesis nesting depth zero, scanning left to right. There is no
// precedence between the two operators, so "A AND B OR C" parses as
// "A AND (B OR C)" simply because AND is found first; authors needing a
// specific grouping must use explicit parentheses. AND and OR are matched
// case-sensitively while NOT is stripped case-insensitively.

import (
	"regexp"
	"strings"

	"github.com/RedHatInsights/triage-rules-service/types"
)

// Logical operator tokens as they appear in the source text
const (
	tokenAnd = "AND"
	tokenOr  = "OR"
)

var notToken = regexp.MustCompile(`(?i)\bNOT\b`)

// ParseExpression recursively parses a rule condition substring into an
// expression tree. Each recursion step works on a strictly shorter
// substring, so the resulting tree is always finite and acyclic.
func ParseExpression(text string) (types.Expression, error) {
	text = strings.TrimSpace(text)

	// a single matching outer pair of parentheses is transparent
	if inner, wrapped := stripOuterParentheses(text); wrapped {
		return ParseExpression(inner)
	}

	operator, position := findTopLevelOperator(text)
	if position < 0 {
		return parseCondition(text)
	}

	left := strings.TrimSpace(text[:position])
	right := strings.TrimSpace(text[position+len(operator):])
	if left == "" || right == "" {
		return nil, &InvalidLogicalExpressionError{
			Operator: string(operator),
			Text:     text,
		}
	}

	leftExpression, err := ParseExpression(left)
	if err != nil {
		return nil, err
	}

	rightExpression, err := ParseExpression(right)
	if err != nil {
		return nil, err
	}

	return types.LogicalExpression{
		Operator: operator,
		Left:     leftExpression,
		Right:    rightExpression,
	}, nil
}

// stripOuterParentheses reports whether the whole string is wrapped in one
// matching pair of parentheses and returns the trimmed interior if so. The
// pair matches only when the opening parenthesis closes at the very end of
// the string.
func stripOuterParentheses(text string) (string, bool) {
	if len(text) < 2 || text[0] != '(' || text[len(text)-1] != ')' {
		return "", false
	}

	depth := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '(':
			depth++
		case ')':
			depth--
		}
		if depth == 0 && i < len(text)-1 {
			// the opening parenthesis closes before the end of the
			// string, so the outer pair does not wrap the whole
			// expression
			return "", false
		}
	}
	if depth != 0 {
		return "", false
	}

	return strings.TrimSpace(text[1 : len(text)-1]), true
}

// findTopLevelOperator scans the string left to right, character by
// character, tracking parenthesis nesting depth, and returns the first
// AND/OR token found at depth zero together with its position. Position -1
// means the string is a leaf condition.
func findTopLevelOperator(text string) (types.LogicalOperator, int) {
	depth := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '(':
			depth++
		case ')':
			depth--
		}
		if depth != 0 {
			continue
		}
		if strings.HasPrefix(text[i:], tokenAnd) {
			return types.OperatorAnd, i
		}
		if strings.HasPrefix(text[i:], tokenOr) {
			return types.OperatorOr, i
		}
	}
	return "", -1
}

// parseCondition parses a leaf condition: an optional NOT token anywhere in
// the string (stripped case-insensitively) followed by the statement name.
func parseCondition(text string) (types.Expression, error) {
	negated := false
	variable := text

	if location := notToken.FindStringIndex(text); location != nil {
		negated = true
		variable = text[:location[0]] + text[location[1]:]
	}

	variable = strings.TrimSpace(variable)
	if variable == "" {
		return nil, &InvalidConditionError{Text: text}
	}

	return types.Condition{
		Variable: variable,
		Negated:  negated,
	}, nil
}
