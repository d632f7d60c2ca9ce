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

package parser_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/RedHatInsights/triage-rules-service/parser"
	"github.com/RedHatInsights/triage-rules-service/types"
)

const questionnaireSource = `
stmt
    graphics_issues = Are there graphics artifacts on screen?
    fan_noise = Is the fan unusually loud?
    no_boot = Does the machine fail to boot?
endstmt

results
    replace_gpu = Replace the graphics card
    check_cooling = Check the cooling assembly
endresults

rules
    IF graphics_issues AND (fan_noise OR no_boot) THEN replace_gpu
    IF fan_noise THEN check_cooling
endrules
`

// TestParse function checks compilation of a complete questionnaire source
func TestParse(t *testing.T) {
	program, err := parser.Parse(questionnaireSource)

	assert.NoError(t, err, "Error is not expected there")
	assert.Len(t, program.Statements, 3)
	assert.Len(t, program.Results, 2)
	assert.Len(t, program.Rules, 2)

	assert.Equal(t, "graphics_issues", program.Statements[0].Name)
	assert.Equal(t, "Are there graphics artifacts on screen?", program.Statements[0].Value)
	assert.Equal(t, "replace_gpu", program.Results[0].Name)

	assert.Equal(t, types.LogicalExpression{
		Operator: types.OperatorAnd,
		Left:     types.Condition{Variable: "graphics_issues"},
		Right: types.LogicalExpression{
			Operator: types.OperatorOr,
			Left:     types.Condition{Variable: "fan_noise"},
			Right:    types.Condition{Variable: "no_boot"},
		},
	}, program.Rules[0].Expression)
	assert.Equal(t, "replace_gpu", program.Rules[0].Result)
	assert.Equal(t, "check_cooling", program.Rules[1].Result)
}

// TestParseDeterministic function checks that parsing the same source twice
// yields structurally equal programs
func TestParseDeterministic(t *testing.T) {
	first, err := parser.Parse(questionnaireSource)
	assert.NoError(t, err, "Error is not expected there")

	second, err := parser.Parse(questionnaireSource)
	assert.NoError(t, err, "Error is not expected there")

	assert.Equal(t, first, second)
}

// TestParseErrorsAreWrapped function checks that any parse error is wrapped
// with the generic prefix and that the underlying error stays reachable
func TestParseErrorsAreWrapped(t *testing.T) {
	testCases := []struct {
		name   string
		source string
		check  func(error) bool
	}{
		{
			name:   "missing section",
			source: "stmt\nendstmt",
			check: func(err error) bool {
				var target *parser.MissingSectionError
				return errors.As(err, &target)
			},
		},
		{
			name:   "malformed declaration",
			source: "stmt\nbroken line\nendstmt\nresults\nendresults\nrules\nendrules",
			check: func(err error) bool {
				var target *parser.MalformedDeclarationError
				return errors.As(err, &target)
			},
		},
		{
			name:   "malformed rule",
			source: "stmt\nendstmt\nresults\nendresults\nrules\nbroken rule\nendrules",
			check: func(err error) bool {
				var target *parser.MalformedRuleError
				return errors.As(err, &target)
			},
		},
		{
			name:   "invalid expression",
			source: "stmt\nendstmt\nresults\nendresults\nrules\nIF AND b THEN r\nendrules",
			check: func(err error) bool {
				var target *parser.InvalidLogicalExpressionError
				return errors.As(err, &target)
			},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			program, err := parser.Parse(testCase.source)
			assert.Error(t, err, "Error is expected there")
			assert.Nil(t, program, "No partial program is returned on error")
			assert.True(t, strings.HasPrefix(err.Error(), "failed to parse input: "))
			assert.True(t, testCase.check(err))
		})
	}
}

// TestValidateReferences function checks the opt-in strict reference
// validation
func TestValidateReferences(t *testing.T) {
	program, err := parser.Parse(questionnaireSource)
	assert.NoError(t, err, "Error is not expected there")

	assert.NoError(t, parser.ValidateReferences(program))
}

// TestValidateReferencesDanglingStatement function checks that a condition
// referencing an undeclared statement is rejected in strict mode
func TestValidateReferencesDanglingStatement(t *testing.T) {
	source := `
stmt
    a = Question A
endstmt
results
    r = Result R
endresults
rules
    IF a AND mystery THEN r
endrules
`
	program, err := parser.Parse(source)
	assert.NoError(t, err, "The permissive parser accepts dangling references")

	err = parser.ValidateReferences(program)
	assert.Error(t, err, "Error is expected there")

	var dangling *parser.DanglingReferenceError
	assert.True(t, errors.As(err, &dangling))
	assert.Equal(t, "statement", dangling.Kind)
	assert.Equal(t, "mystery", dangling.Name)
}

// TestValidateReferencesDanglingResult function checks that a rule
// referencing an undeclared result is rejected in strict mode
func TestValidateReferencesDanglingResult(t *testing.T) {
	source := `
stmt
    a = Question A
endstmt
results
    r = Result R
endresults
rules
    IF a THEN missing_result
endrules
`
	program, err := parser.Parse(source)
	assert.NoError(t, err, "The permissive parser accepts dangling references")

	err = parser.ValidateReferences(program)
	assert.Error(t, err, "Error is expected there")

	var dangling *parser.DanglingReferenceError
	assert.True(t, errors.As(err, &dangling))
	assert.Equal(t, "result", dangling.Kind)
	assert.Equal(t, "missing_result", dangling.Name)
}
