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

// Package exporter converts parsed questionnaire programs into a stable JSON
// representation and back. Expression trees are encoded as tagged nodes so
// that consumers written in other languages can reconstruct them without
// re-parsing the rule language.
package exporter

// Documentation in literate-programming-style is available at:
// https://redhatinsights.github.io/triage-rules-service/packages/exporter/exporter.html

import (
	"encoding/json"
	"fmt"

	"github.com/RedHatInsights/triage-rules-service/types"
)

// node type tags used in the JSON representation of expression trees
const (
	nodeTypeCondition = "condition"
	nodeTypeLogical   = "logical"
)

// expressionNode structure is the wire form of a single expression tree node.
// Exactly one shape is populated, selected by the Type tag.
type expressionNode struct {
	Type     string          `json:"type"`
	Variable string          `json:"variable,omitempty"`
	Negated  bool            `json:"negated,omitempty"`
	Operator string          `json:"operator,omitempty"`
	Left     *expressionNode `json:"left,omitempty"`
	Right    *expressionNode `json:"right,omitempty"`
}

// ruleDocument structure is the wire form of one rule
type ruleDocument struct {
	Expression *expressionNode `json:"expression"`
	Result     string          `json:"result"`
}

// programDocument structure is the wire form of a whole program
type programDocument struct {
	Statements []types.Variable `json:"statements"`
	Results    []types.Variable `json:"results"`
	Rules      []ruleDocument   `json:"rules"`
}

// MarshalProgram function serializes the given program into indented JSON
func MarshalProgram(program *types.Program) ([]byte, error) {
	if program == nil {
		return nil, fmt.Errorf("unable to marshal nil program")
	}

	document := programDocument{
		Statements: program.Statements,
		Results:    program.Results,
		Rules:      make([]ruleDocument, 0, len(program.Rules)),
	}

	for _, rule := range program.Rules {
		node, err := encodeExpression(rule.Expression)
		if err != nil {
			return nil, err
		}
		document.Rules = append(document.Rules, ruleDocument{
			Expression: node,
			Result:     rule.Result,
		})
	}

	return json.MarshalIndent(document, "", "\t")
}

// UnmarshalProgram function reconstructs a program from its JSON form
func UnmarshalProgram(data []byte) (*types.Program, error) {
	var document programDocument

	err := json.Unmarshal(data, &document)
	if err != nil {
		return nil, err
	}

	program := types.Program{
		Statements: document.Statements,
		Results:    document.Results,
		Rules:      make([]types.Rule, 0, len(document.Rules)),
	}

	for _, rule := range document.Rules {
		expression, err := decodeExpression(rule.Expression)
		if err != nil {
			return nil, err
		}
		program.Rules = append(program.Rules, types.Rule{
			Expression: expression,
			Result:     rule.Result,
		})
	}

	return &program, nil
}

// encodeExpression function converts an expression tree into tagged nodes
func encodeExpression(expression types.Expression) (*expressionNode, error) {
	switch typed := expression.(type) {
	case types.Condition:
		return &expressionNode{
			Type:     nodeTypeCondition,
			Variable: typed.Variable,
			Negated:  typed.Negated,
		}, nil
	case types.LogicalExpression:
		left, err := encodeExpression(typed.Left)
		if err != nil {
			return nil, err
		}
		right, err := encodeExpression(typed.Right)
		if err != nil {
			return nil, err
		}
		return &expressionNode{
			Type:     nodeTypeLogical,
			Operator: string(typed.Operator),
			Left:     left,
			Right:    right,
		}, nil
	default:
		return nil, fmt.Errorf("unable to encode expression of type %T", expression)
	}
}

// decodeExpression function reconstructs an expression tree from tagged nodes
func decodeExpression(node *expressionNode) (types.Expression, error) {
	if node == nil {
		return nil, fmt.Errorf("unable to decode empty expression node")
	}

	switch node.Type {
	case nodeTypeCondition:
		return types.Condition{
			Variable: node.Variable,
			Negated:  node.Negated,
		}, nil
	case nodeTypeLogical:
		left, err := decodeExpression(node.Left)
		if err != nil {
			return nil, err
		}
		right, err := decodeExpression(node.Right)
		if err != nil {
			return nil, err
		}
		return types.LogicalExpression{
			Operator: types.LogicalOperator(node.Operator),
			Left:     left,
			Right:    right,
		}, nil
	default:
		return nil, fmt.Errorf("unable to decode expression node of type %q", node.Type)
	}
}
