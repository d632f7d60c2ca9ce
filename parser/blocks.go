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

// Block extractor: isolates the three named sections of a questionnaire
// source. Section keywords are literal and case-sensitive. The relative
// ordering of the sections is not validated and duplicate sections are not
// rejected; the first match wins.

import (
	"regexp"
	"strings"
)

// Section names, also used as keywords delimiting the sections in the source
// text (the end keyword is the section name prefixed with "end")
const (
	SectionStatements = "stmt"
	SectionResults    = "results"
	SectionRules      = "rules"
)

var (
	statementsSection = sectionExpression(SectionStatements)
	resultsSection    = sectionExpression(SectionResults)
	rulesSection      = sectionExpression(SectionRules)
)

// sectionExpression builds a regular expression matching the first
// occurrence of a section. Word boundaries keep the start keyword from
// matching inside its own end keyword.
func sectionExpression(keyword string) *regexp.Regexp {
	return regexp.MustCompile(`(?s)\b` + keyword + `\b(.*?)\bend` + keyword + `\b`)
}

// Blocks holds the inner text of the three sections of a questionnaire
// source, trimmed at the outer edges only
type Blocks struct {
	Statements string
	Results    string
	Rules      string
}

// ExtractBlocks locates the three sections in the raw source text and
// returns their inner text verbatim. A MissingSectionError naming the absent
// section is returned when any of the three sections cannot be found.
func ExtractBlocks(source string) (Blocks, error) {
	statements, err := extractSection(source, SectionStatements, statementsSection)
	if err != nil {
		return Blocks{}, err
	}

	results, err := extractSection(source, SectionResults, resultsSection)
	if err != nil {
		return Blocks{}, err
	}

	rules, err := extractSection(source, SectionRules, rulesSection)
	if err != nil {
		return Blocks{}, err
	}

	return Blocks{
		Statements: statements,
		Results:    results,
		Rules:      rules,
	}, nil
}

func extractSection(source, name string, expression *regexp.Regexp) (string, error) {
	match := expression.FindStringSubmatch(source)
	if match == nil {
		return "", &MissingSectionError{Section: name}
	}
	return strings.TrimSpace(match[1]), nil
}
