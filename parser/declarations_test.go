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
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/RedHatInsights/triage-rules-service/parser"
	"github.com/RedHatInsights/triage-rules-service/types"
)

// TestParseDeclarations function checks parsing of well-formed declaration
// lines, including order preservation and trimming
func TestParseDeclarations(t *testing.T) {
	section := "fan_noise = Is the fan unusually loud?\n   no_boot=Does the machine fail to boot?   \ngraphics_issues = Are there graphics artifacts on screen?"

	variables, err := parser.ParseDeclarations(section, parser.SectionStatements)

	assert.NoError(t, err, "Error is not expected there")
	assert.Equal(t, []types.Variable{
		{Name: "fan_noise", Value: "Is the fan unusually loud?"},
		{Name: "no_boot", Value: "Does the machine fail to boot?"},
		{Name: "graphics_issues", Value: "Are there graphics artifacts on screen?"},
	}, variables)
}

// TestParseDeclarationsBlankLines function checks that blank lines are
// skipped without affecting the result
func TestParseDeclarationsBlankLines(t *testing.T) {
	section := "\n\na = Question A\n\n   \nb = Question B\n"

	variables, err := parser.ParseDeclarations(section, parser.SectionStatements)

	assert.NoError(t, err, "Error is not expected there")
	assert.Len(t, variables, 2)
	assert.Equal(t, "a", variables[0].Name)
	assert.Equal(t, "b", variables[1].Name)
}

// TestParseDeclarationsValueWithEqualsSign function checks that only the
// first '=' splits the line
func TestParseDeclarationsValueWithEqualsSign(t *testing.T) {
	section := "formula = E = mc^2"

	variables, err := parser.ParseDeclarations(section, parser.SectionResults)

	assert.NoError(t, err, "Error is not expected there")
	assert.Equal(t, []types.Variable{
		{Name: "formula", Value: "E = mc^2"},
	}, variables)
}

// TestParseDeclarationsMalformedLine function checks that a line without '='
// is reported with its 1-based line number and the section name
func TestParseDeclarationsMalformedLine(t *testing.T) {
	section := "a = Question A\nthis line has no equals sign\nb = Question B"

	_, err := parser.ParseDeclarations(section, parser.SectionResults)
	assert.Error(t, err, "Error is expected there")

	var malformed *parser.MalformedDeclarationError
	assert.True(t, errors.As(err, &malformed))
	assert.Equal(t, parser.SectionResults, malformed.Section)
	assert.Equal(t, 2, malformed.Line)
	assert.Equal(t, "this line has no equals sign", malformed.Text)
	assert.Contains(t, err.Error(), "results")
	assert.Contains(t, err.Error(), "line 2")
}

// TestParseDeclarationsEmptySection function checks that an empty section
// yields no variables and no error
func TestParseDeclarationsEmptySection(t *testing.T) {
	variables, err := parser.ParseDeclarations("", parser.SectionStatements)

	assert.NoError(t, err, "Error is not expected there")
	assert.Empty(t, variables)
}
