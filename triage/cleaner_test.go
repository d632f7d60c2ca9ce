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

package triage_test

// Documentation in literate-programming-style is available at:
// https://redhatinsights.github.io/triage-rules-service/packages/triage/cleaner_test.html

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"github.com/RedHatInsights/triage-rules-service/triage"
	"github.com/RedHatInsights/triage-rules-service/types"
)

// TestPerformCleanupOperationPrintSubmissions checks if the right query is
// performed when submissions to be cleaned up should be printed.
func TestPerformCleanupOperationPrintSubmissions(t *testing.T) {
	cliFlags := types.CliFlags{
		PrintSubmissionsForCleanup: true,
		MaxAge:                     "1 day",
	}

	// prepare new mocked connection to database
	connection, mock := mustCreateMockConnection(t)

	// prepare mocked result for SQL query
	rows := sqlmock.NewRows([]string{"id", "respondent", "submitted_at"})

	// these three rows should be returned
	rows.AddRow(0, "first", time.Now())
	rows.AddRow(1, "second", time.Now())
	rows.AddRow(2, "third", time.Now())

	// expected query performed by tested function
	expectedQuery := "SELECT id, respondent, submitted_at FROM submissions WHERE submitted_at < NOW\\(\\) - \\$1::INTERVAL ORDER BY submitted_at"

	mock.ExpectQuery(expectedQuery).WithArgs("1 day").WillReturnRows(rows)
	mock.ExpectClose()

	// prepare connection to mocked database
	storage := triage.NewFromConnection(connection, types.DBDriverPostgres)

	// call the tested function
	err := triage.PerformCleanupOperation(storage, cliFlags)

	// tested function should NOT return an error
	assert.NoError(t, err, "error was not expected while querying database")

	// connection to mocked DB needs to be closed properly
	checkConnectionClose(t, connection)

	// check if all expectations were met
	checkAllExpectations(t, mock)
}

// TestPerformCleanupOperationSubmissionsCleanup checks if the right statement
// is performed when submissions should be cleaned up.
func TestPerformCleanupOperationSubmissionsCleanup(t *testing.T) {
	cliFlags := types.CliFlags{
		PerformSubmissionsCleanup: true,
		MaxAge:                    "1 day",
	}

	// prepare new mocked connection to database
	connection, mock := mustCreateMockConnection(t)

	// expected statement performed by tested function
	expectedStatement := "DELETE FROM submissions WHERE submitted_at < NOW\\(\\) - \\$1::INTERVAL"

	mock.ExpectExec(expectedStatement).WithArgs("1 day").WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectClose()

	// prepare connection to mocked database
	storage := triage.NewFromConnection(connection, types.DBDriverPostgres)

	// call the tested function
	err := triage.PerformCleanupOperation(storage, cliFlags)

	// tested function should NOT return an error
	assert.NoError(t, err, "error was not expected while running cleanup")

	// connection to mocked DB needs to be closed properly
	checkConnectionClose(t, connection)

	// check if all expectations were met
	checkAllExpectations(t, mock)
}

// TestPerformCleanupOperationPrintOldEvaluations checks if the right query is
// performed when old evaluations to be cleaned up should be printed.
func TestPerformCleanupOperationPrintOldEvaluations(t *testing.T) {
	cliFlags := types.CliFlags{
		PrintOldEvaluationsForCleanup: true,
		MaxAge:                        "1 day",
	}

	// prepare new mocked connection to database
	connection, mock := mustCreateMockConnection(t)

	// prepare mocked result for SQL query
	rows := sqlmock.NewRows([]string{"submission_id", "result_name", "evaluated_at"})
	rows.AddRow(1, "send_to_repair", time.Now())

	// expected query performed by tested function
	expectedQuery := "SELECT submission_id, result_name, evaluated_at FROM evaluations WHERE evaluated_at < NOW\\(\\) - \\$1::INTERVAL ORDER BY evaluated_at"

	mock.ExpectQuery(expectedQuery).WithArgs("1 day").WillReturnRows(rows)
	mock.ExpectClose()

	// prepare connection to mocked database
	storage := triage.NewFromConnection(connection, types.DBDriverPostgres)

	// call the tested function
	err := triage.PerformCleanupOperation(storage, cliFlags)

	// tested function should NOT return an error
	assert.NoError(t, err, "error was not expected while querying database")

	// connection to mocked DB needs to be closed properly
	checkConnectionClose(t, connection)

	// check if all expectations were met
	checkAllExpectations(t, mock)
}

// TestPerformCleanupOperationOldEvaluationsCleanup checks if the right
// statement is performed when old evaluations should be cleaned up.
func TestPerformCleanupOperationOldEvaluationsCleanup(t *testing.T) {
	cliFlags := types.CliFlags{
		PerformOldEvaluationsCleanup: true,
		MaxAge:                       "1 day",
	}

	// prepare new mocked connection to database
	connection, mock := mustCreateMockConnection(t)

	// expected statement performed by tested function
	expectedStatement := "DELETE FROM evaluations WHERE evaluated_at < NOW\\(\\) - \\$1::INTERVAL"

	mock.ExpectExec(expectedStatement).WithArgs("1 day").WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectClose()

	// prepare connection to mocked database
	storage := triage.NewFromConnection(connection, types.DBDriverPostgres)

	// call the tested function
	err := triage.PerformCleanupOperation(storage, cliFlags)

	// tested function should NOT return an error
	assert.NoError(t, err, "error was not expected while running cleanup")

	// connection to mocked DB needs to be closed properly
	checkConnectionClose(t, connection)

	// check if all expectations were met
	checkAllExpectations(t, mock)
}

// TestPerformCleanupOperationOnError checks the error handling in the
// cleanup operation dispatcher.
func TestPerformCleanupOperationOnError(t *testing.T) {
	cliFlags := types.CliFlags{
		PerformSubmissionsCleanup: true,
		MaxAge:                    "1 day",
	}

	// error to be thrown
	mockedError := errors.New("mocked error")

	// prepare new mocked connection to database
	connection, mock := mustCreateMockConnection(t)

	// expected statement performed by tested function
	expectedStatement := "DELETE FROM submissions WHERE submitted_at < NOW\\(\\) - \\$1::INTERVAL"

	// let's raise an error!
	mock.ExpectExec(expectedStatement).WithArgs("1 day").WillReturnError(mockedError)
	mock.ExpectClose()

	// prepare connection to mocked database
	storage := triage.NewFromConnection(connection, types.DBDriverPostgres)

	// call the tested function
	err := triage.PerformCleanupOperation(storage, cliFlags)

	// tested function should return an error
	assert.Error(t, err, "error was expected while running cleanup")

	// connection to mocked DB needs to be closed properly
	checkConnectionClose(t, connection)

	// check if all expectations were met
	checkAllExpectations(t, mock)
}

// TestPerformCleanupOperationUnknownOperation checks the dispatcher behaviour
// when no cleanup operation is selected via command line flags.
func TestPerformCleanupOperationUnknownOperation(t *testing.T) {
	cliFlags := types.CliFlags{}

	// prepare new mocked connection to database
	connection, mock := mustCreateMockConnection(t)
	mock.ExpectClose()

	// prepare connection to mocked database
	storage := triage.NewFromConnection(connection, types.DBDriverPostgres)

	// call the tested function
	err := triage.PerformCleanupOperation(storage, cliFlags)

	// tested function should return an error
	assert.Error(t, err, "error was expected for unknown operation")

	// connection to mocked DB needs to be closed properly
	checkConnectionClose(t, connection)

	// check if all expectations were met
	checkAllExpectations(t, mock)
}

// TestPerformCleanupOnStartup checks that the cleanup performed on startup
// only touches the evaluations table.
func TestPerformCleanupOnStartup(t *testing.T) {
	cliFlags := types.CliFlags{
		MaxAge: "90 days",
	}

	// prepare new mocked connection to database
	connection, mock := mustCreateMockConnection(t)

	// expected statement performed by tested function
	expectedStatement := "DELETE FROM evaluations WHERE evaluated_at < NOW\\(\\) - \\$1::INTERVAL"

	mock.ExpectExec(expectedStatement).WithArgs("90 days").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectClose()

	// prepare connection to mocked database
	storage := triage.NewFromConnection(connection, types.DBDriverPostgres)

	// call the tested function
	err := triage.PerformCleanupOnStartup(storage, cliFlags)

	// tested function should NOT return an error
	assert.NoError(t, err, "error was not expected while running cleanup")

	// connection to mocked DB needs to be closed properly
	checkConnectionClose(t, connection)

	// check if all expectations were met
	checkAllExpectations(t, mock)
}
