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

package types_test

import (
	"testing"

	"github.com/RedHatInsights/triage-rules-service/types"
	"github.com/stretchr/testify/assert"
)

func TestResultValue(t *testing.T) {
	program := types.Program{
		Results: []types.Variable{
			{Name: "replace_gpu", Value: "Replace the graphics card"},
			{Name: "check_fans", Value: "Check the cooling fans"},
		},
	}

	var testScenarios = []struct {
		name     string
		expected types.Variable
		found    bool
	}{
		{
			name:     "replace_gpu",
			expected: types.Variable{Name: "replace_gpu", Value: "Replace the graphics card"},
			found:    true,
		},
		{
			name:     "check_fans",
			expected: types.Variable{Name: "check_fans", Value: "Check the cooling fans"},
			found:    true,
		},
		{
			name:     "no_such_result",
			expected: types.Variable{},
			found:    false,
		},
	}

	for _, scenario := range testScenarios {
		value, found := program.ResultValue(scenario.name)
		assert.Equal(t, scenario.expected, value)
		assert.Equal(t, scenario.found, found)
	}
}

func TestResultValueEmptyProgram(t *testing.T) {
	program := types.Program{}

	_, found := program.ResultValue("anything")
	assert.False(t, found)
}
