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

import (
	"regexp"
	"strings"

	"github.com/RedHatInsights/triage-rules-service/types"
)

// ruleExpression matches one rule line: the condition text is everything
// between IF and the THEN anchor, the result is a single word
var ruleExpression = regexp.MustCompile(`^IF\s+(.*?)\s+THEN\s+(\w+)$`)

// ParseRules turns the inner text of the rules section into an ordered
// sequence of rules, delegating the condition text of each rule to the
// expression parser
func ParseRules(section string) ([]types.Rule, error) {
	var rules []types.Rule

	for i, line := range strings.Split(section, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		rule, err := parseRule(line, i+1)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}

	return rules, nil
}

// parseRule parses one non-blank rule line. Expression parser errors are
// re-wrapped with the line number and raw line text while preserving the
// underlying message.
func parseRule(line string, lineNumber int) (types.Rule, error) {
	match := ruleExpression.FindStringSubmatch(line)
	if match == nil {
		return types.Rule{}, &MalformedRuleError{
			Line: lineNumber,
			Text: line,
		}
	}

	expression, err := ParseExpression(match[1])
	if err != nil {
		return types.Rule{}, &RuleExpressionError{
			Line: lineNumber,
			Text: line,
			Err:  err,
		}
	}

	return types.Rule{
		Expression: expression,
		Result:     match[2],
	}, nil
}
