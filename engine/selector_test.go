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

package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/RedHatInsights/triage-rules-service/engine"
	"github.com/RedHatInsights/triage-rules-service/parser"
	"github.com/RedHatInsights/triage-rules-service/types"
)

const selectorInput = `
stmt
a = Is the first symptom present?
b = Is the second symptom present?
endstmt

results
r1 = Both symptoms reported
r2 = First symptom reported
endresults

rules
IF a AND b THEN r1
IF a THEN r2
endrules
`

// mustParse helper parses the given questionnaire source or fails the test
func mustParse(t *testing.T, input string) *types.Program {
	program, err := parser.Parse(input)
	assert.NoError(t, err)
	assert.NotNil(t, program)
	return program
}

// TestSelectResultLastMatchWins function checks that the result of the last
// matching rule is selected even when an earlier rule matched as well
func TestSelectResultLastMatchWins(t *testing.T) {
	program := mustParse(t, selectorInput)

	// both rules match, the second one is declared later
	result, found := engine.SelectResult(program, types.Answers{"a": "yes", "b": "yes"})
	assert.True(t, found)
	assert.Equal(t, "r2", result.Name)
	assert.Equal(t, "First symptom reported", result.Value)
}

// TestSelectResultSingleMatch function checks selection when exactly one
// rule matches
func TestSelectResultSingleMatch(t *testing.T) {
	program := mustParse(t, selectorInput)

	result, found := engine.SelectResult(program, types.Answers{"a": "yes", "b": "no"})
	assert.True(t, found)
	assert.Equal(t, "r2", result.Name)
	assert.Equal(t, "First symptom reported", result.Value)
}

// TestSelectResultNoMatch function checks that no result is reported when no
// rule matches the answer set
func TestSelectResultNoMatch(t *testing.T) {
	program := mustParse(t, selectorInput)

	testCases := []types.Answers{
		{"a": "no", "b": "no"},
		{"a": "no", "b": "yes"},
		{},
		nil,
	}

	for _, answers := range testCases {
		_, found := engine.SelectResult(program, answers)
		assert.False(t, found)
	}
}

// TestSelectResultUnresolvedReference function checks that a matching rule
// pointing at an undeclared result is skipped silently
func TestSelectResultUnresolvedReference(t *testing.T) {
	const input = `
stmt
a = Is the symptom present?
endstmt

results
r1 = Known result
endresults

rules
IF a THEN r1
IF a THEN missing
endrules
`
	program := mustParse(t, input)

	// last matching rule references an unknown result, so the earlier
	// match stays selected
	result, found := engine.SelectResult(program, types.Answers{"a": "yes"})
	assert.True(t, found)
	assert.Equal(t, "r1", result.Name)
}

// TestSelectResultEmptyProgram function checks the degenerate case of a
// program without any rules
func TestSelectResultEmptyProgram(t *testing.T) {
	program := &types.Program{}

	_, found := engine.SelectResult(program, types.Answers{"a": "yes"})
	assert.False(t, found)
}
