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

// Package engine evaluates parsed questionnaire programs against answer
// sets. Evaluation is a pure recursive tree walk with no side effects and no
// error conditions: it is total over any well-formed expression tree and any
// answer mapping, including an empty one.
package engine

// Generated documentation is available at:
// https://pkg.go.dev/github.com/RedHatInsights/triage-rules-service/engine

import (
	"github.com/RedHatInsights/triage-rules-service/types"
)

// Evaluate computes the boolean value of an expression tree against a set of
// answers.
//
// A plain condition is true iff the referenced statement was answered
// exactly "yes"; a negated condition is true iff it was answered exactly
// "no". Negation does not mean "not yes": an unanswered statement is false
// under both polarities. A logical node evaluates both children
// unconditionally and combines them with AND or OR.
func Evaluate(expression types.Expression, answers types.Answers) bool {
	switch e := expression.(type) {
	case types.Condition:
		answer := answers[e.Variable]
		if e.Negated {
			return answer == types.AnswerNo
		}
		return answer == types.AnswerYes
	case types.LogicalExpression:
		left := Evaluate(e.Left, answers)
		right := Evaluate(e.Right, answers)
		if e.Operator == types.OperatorAnd {
			return left && right
		}
		return left || right
	default:
		return false
	}
}
