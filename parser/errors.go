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

// All errors that can be raised while compiling a questionnaire source. They
// are syntax-class errors and all of them are fatal to the whole parse: no
// partial program is ever returned.

import "fmt"

// MissingSectionError occurs when one of the three mandatory sections
// (stmt, results, rules) cannot be found in the source text
type MissingSectionError struct {
	Section string
}

func (e *MissingSectionError) Error() string {
	return fmt.Sprintf("missing '%s' section", e.Section)
}

// MalformedDeclarationError occurs when a non-blank line in the statements
// or results section does not split into a name and a value around '='
type MalformedDeclarationError struct {
	Section string
	Line    int
	Text    string
}

func (e *MalformedDeclarationError) Error() string {
	return fmt.Sprintf("malformed declaration in '%s' section at line %d: %q", e.Section, e.Line, e.Text)
}

// MalformedRuleError occurs when a non-blank line in the rules section does
// not match the IF ... THEN <result> pattern
type MalformedRuleError struct {
	Line int
	Text string
}

func (e *MalformedRuleError) Error() string {
	return fmt.Sprintf("malformed rule at line %d: %q", e.Line, e.Text)
}

// InvalidConditionError occurs when a condition has no variable name left
// after the optional NOT token has been stripped
type InvalidConditionError struct {
	Text string
}

func (e *InvalidConditionError) Error() string {
	return fmt.Sprintf("invalid condition %q: missing variable name", e.Text)
}

// InvalidLogicalExpressionError occurs when an AND/OR operator has been
// found but one of its operands is empty
type InvalidLogicalExpressionError struct {
	Operator string
	Text     string
}

func (e *InvalidLogicalExpressionError) Error() string {
	return fmt.Sprintf("invalid logical expression %q: missing operand for %s", e.Text, e.Operator)
}

// RuleExpressionError wraps an expression parser error with the line number
// and raw text of the offending rule, preserving the underlying message
type RuleExpressionError struct {
	Line int
	Text string
	Err  error
}

func (e *RuleExpressionError) Error() string {
	return fmt.Sprintf("rule at line %d (%q): %s", e.Line, e.Text, e.Err)
}

// Unwrap returns the underlying expression parser error
func (e *RuleExpressionError) Unwrap() error {
	return e.Err
}

// DanglingReferenceError occurs in strict mode only, when a condition
// references an undeclared statement or a rule references an undeclared
// result
type DanglingReferenceError struct {
	Kind string
	Name string
}

func (e *DanglingReferenceError) Error() string {
	return fmt.Sprintf("dangling reference: %s %q is not declared", e.Kind, e.Name)
}
