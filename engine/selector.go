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

package engine

import (
	"github.com/RedHatInsights/triage-rules-service/types"
)

// SelectResult determines which result, if any, a set of answers selects.
//
// Rules are folded in declaration order: every rule whose expression
// evaluates to true and whose result name resolves to a declared result
// overwrites the running selection, so the last matching rule wins. A
// matching rule whose result name does not resolve is skipped silently. The
// second return value is false when no rule ever matched.
func SelectResult(program *types.Program, answers types.Answers) (types.Variable, bool) {
	var selected types.Variable
	var found bool

	for _, rule := range program.Rules {
		if !Evaluate(rule.Expression, answers) {
			continue
		}
		result, resolved := program.ResultValue(rule.Result)
		if !resolved {
			continue
		}
		selected = result
		found = true
	}

	return selected, found
}
