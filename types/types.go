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

package types

// Generated documentation is available at:
// https://pkg.go.dev/github.com/RedHatInsights/triage-rules-service/types

import (
	"time"
)

// Timestamp represents any timestamp in a form gathered from database
type Timestamp time.Time

// DBDriver type for db driver enum
type DBDriver int

const (
	// DBDriverSQLite3 shows that db driver is sqlite
	DBDriverSQLite3 DBDriver = iota
	// DBDriverPostgres shows that db driver is postgres
	DBDriverPostgres
	// DBDriverGeneral general sql (used for mock now)
	DBDriverGeneral
)

// Variable represents one named declaration from the questionnaire source.
// It is used for both statements (the name identifies a yes/no question and
// the value holds the question text) and results (the name identifies an
// outcome and the value holds the outcome text).
type Variable struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// LogicalOperator represents the two binary operators allowed in rule
// conditions.
type LogicalOperator string

// Logical operators as they appear in the questionnaire source
const (
	OperatorAnd LogicalOperator = "AND"
	OperatorOr  LogicalOperator = "OR"
)

// Expression is one node of a parsed rule condition: either a Condition leaf
// or a LogicalExpression with two children. The tree is immutable after
// parsing, so it is safe to evaluate the same tree concurrently against
// independent answer sets.
type Expression interface {
	exprNode()
}

// Condition is a leaf expression referencing a statement by name, optionally
// negated. The reference is resolved at evaluation time only; an unknown
// statement name simply evaluates as unanswered.
type Condition struct {
	Variable string
	Negated  bool
}

func (Condition) exprNode() {}

// LogicalExpression is an inner expression node combining two subexpressions
// with AND or OR. Both children are always present.
type LogicalExpression struct {
	Operator LogicalOperator
	Left     Expression
	Right    Expression
}

func (LogicalExpression) exprNode() {}

// Rule represents one parsed IF ... THEN ... rule. Result references a
// result variable by name; an unresolved reference is skipped silently when
// the rule fires.
type Rule struct {
	Expression Expression
	Result     string
}

// Program is the output of one parse pass over a questionnaire source:
// statements, results and rules, all in declaration order. The declaration
// order of rules is semantically significant because the last matching rule
// wins. The structure is read-only once built.
type Program struct {
	Statements []Variable
	Results    []Variable
	Rules      []Rule
}

// ResultValue looks up a result variable by name in declaration order.
func (program *Program) ResultValue(name string) (Variable, bool) {
	for _, result := range program.Results {
		if result.Name == name {
			return result, true
		}
	}
	return Variable{}, false
}

// Answer values recognized by the evaluator. Any other value, including a
// missing entry, counts as unanswered.
const (
	AnswerYes = "yes"
	AnswerNo  = "no"
)

// Answers maps statement names to their answers ("yes", "no" or absent)
type Answers map[string]string

// SubmissionID represents ID value in the `submissions` table
type SubmissionID int64

// SubmissionEntry represents one answer set retrieved from the database and
// waiting to be evaluated
type SubmissionEntry struct {
	ID          SubmissionID
	Respondent  string
	Answers     Answers
	SubmittedAt Timestamp
}

// EvaluationRecord structure represents one record stored in the
// `evaluations` table
type EvaluationRecord struct {
	ID           string
	SubmissionID SubmissionID
	ResultName   string
	ResultText   string
	EvaluatedAt  Timestamp
	ErrorLog     string
}

// OutcomeMessage represents content of messages sent to the configured
// outcome destinations (Kafka topic, webhook) after a submission has been
// evaluated
type OutcomeMessage struct {
	Questionnaire string `json:"questionnaire"`
	SubmissionID  int64  `json:"submission_id"`
	Respondent    string `json:"respondent"`
	Selected      bool   `json:"selected"`
	ResultName    string `json:"result_name"`
	ResultText    string `json:"result_text"`
	EvaluatedAt   string `json:"evaluated_at"`
}

// ProducerMessage represents a message to be produced
type ProducerMessage []byte

// CliFlags represents structure holding all command line arguments/flags.
type CliFlags struct {
	ProcessSubmissions            bool
	RenderForm                    bool
	ExportProgram                 bool
	ShowVersion                   bool
	ShowAuthors                   bool
	ShowConfiguration             bool
	PrintSubmissionsForCleanup    bool
	PerformSubmissionsCleanup     bool
	PrintOldEvaluationsForCleanup bool
	PerformOldEvaluationsCleanup  bool
	CleanupOnStartup              bool
	Verbose                       bool
	MaxAge                        string
	Questionnaire                 string
	Answers                       string
	Output                        string
}
