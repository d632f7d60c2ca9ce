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

// Package parser compiles the declarative questionnaire language into a
// Program: statements (yes/no questions), results (named outcomes) and
// IF ... THEN ... rules whose conditions are boolean expression trees. The
// whole input is parsed in one pass; the first error encountered aborts the
// parse and no partial program is returned.
package parser

// Generated documentation is available at:
// https://pkg.go.dev/github.com/RedHatInsights/triage-rules-service/parser

import (
	"fmt"

	"github.com/RedHatInsights/triage-rules-service/types"
)

// Parse compiles raw questionnaire source text into a Program. Parsing is
// deterministic: the same input always yields a structurally identical
// program.
func Parse(source string) (*types.Program, error) {
	program, err := parse(source)
	if err != nil {
		return nil, fmt.Errorf("failed to parse input: %w", err)
	}
	return program, nil
}

func parse(source string) (*types.Program, error) {
	blocks, err := ExtractBlocks(source)
	if err != nil {
		return nil, err
	}

	statements, err := ParseDeclarations(blocks.Statements, SectionStatements)
	if err != nil {
		return nil, err
	}

	results, err := ParseDeclarations(blocks.Results, SectionResults)
	if err != nil {
		return nil, err
	}

	rules, err := ParseRules(blocks.Rules)
	if err != nil {
		return nil, err
	}

	return &types.Program{
		Statements: statements,
		Results:    results,
		Rules:      rules,
	}, nil
}

// ValidateReferences checks that every condition references a declared
// statement and every rule references a declared result. The language itself
// is permissive about unresolved references (they are silent no-ops at
// evaluation time), so this check is opt-in via the strict_references
// configuration knob.
func ValidateReferences(program *types.Program) error {
	statements := make(map[string]struct{}, len(program.Statements))
	for _, statement := range program.Statements {
		statements[statement.Name] = struct{}{}
	}

	results := make(map[string]struct{}, len(program.Results))
	for _, result := range program.Results {
		results[result.Name] = struct{}{}
	}

	for _, rule := range program.Rules {
		for _, variable := range conditionVariables(rule.Expression) {
			if _, declared := statements[variable]; !declared {
				return &DanglingReferenceError{Kind: "statement", Name: variable}
			}
		}
		if _, declared := results[rule.Result]; !declared {
			return &DanglingReferenceError{Kind: "result", Name: rule.Result}
		}
	}

	return nil
}

// conditionVariables collects the statement names referenced by all
// condition leaves of an expression tree
func conditionVariables(expression types.Expression) []string {
	switch e := expression.(type) {
	case types.Condition:
		return []string{e.Variable}
	case types.LogicalExpression:
		return append(conditionVariables(e.Left), conditionVariables(e.Right)...)
	default:
		return nil
	}
}
