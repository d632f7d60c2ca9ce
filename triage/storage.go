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

package triage

// Generated documentation is available at:
// https://pkg.go.dev/github.com/RedHatInsights/triage-rules-service/triage
//
// Documentation in literate-programming-style is available at:
// https://redhatinsights.github.io/triage-rules-service/packages/triage/storage.html

// This source file contains an implementation of interface between Go code and
// (almost any) SQL database like PostgreSQL, SQLite, or MariaDB.
//
// It is possible to configure connection to selected database by using
// StorageConfiguration structure. Currently that structure contains two
// configurable parameter:
//
// Driver - a SQL driver, like "sqlite3", "pq" etc.
// DataSource - specification of data source. The content of this parameter depends on the database used.

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	_ "github.com/lib/pq"           // PostgreSQL database driver
	_ "github.com/mattn/go-sqlite3" // SQLite database driver

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/RedHatInsights/triage-rules-service/conf"
	"github.com/RedHatInsights/triage-rules-service/types"
)

// Storage represents an interface to almost any database or storage system
type Storage interface {
	Close() error
	ReadPendingSubmissions() ([]types.SubmissionEntry, error)
	WriteEvaluationRecord(evaluationRecord types.EvaluationRecord) error
	WriteEvaluationRecordForSubmission(
		submissionEntry types.SubmissionEntry,
		resultName string,
		resultText string,
		evaluatedAt types.Timestamp,
		errorLog string) error
	MarkSubmissionProcessed(
		submissionID types.SubmissionID,
		processedAt types.Timestamp) error
	DeleteRowFromSubmissions(submissionID types.SubmissionID) (int, error)
	DeleteRowFromEvaluations(evaluationID string) (int, error)
	PrintSubmissionsForCleanup(maxAge string) error
	CleanupSubmissions(maxAge string) (int, error)
	PrintOldEvaluationsForCleanup(maxAge string) error
	CleanupOldEvaluations(maxAge string) (int, error)
}

// DBStorage is an implementation of Storage interface that use selected SQL like database
// like SQLite, PostgreSQL, MariaDB, RDS etc. That implementation is based on the standard
// sql package. It is possible to configure connection via Configuration structure.
// SQLQueriesLog is log for sql queries, default is nil which means nothing is logged
type DBStorage struct {
	connection   *sql.DB
	dbDriverType types.DBDriver
}

// error messages
const (
	unableToCloseDBRowsHandle = "Unable to close DB rows handle"
)

// other messages
const (
	SubmissionIDMessage = "Submission ID"
	RespondentMessage   = "Respondent"
	SubmittedAtMessage  = "Submitted at"
	AgeMessage          = "Age"
	MaxAgeAttribute     = "max age"
	DeleteStatement     = "delete statement"
)

// SQL statements
const (
	// Select all submissions that have not been processed yet
	readPendingSubmissionsQuery = `
		SELECT id, respondent, answers, submitted_at
		  FROM submissions
		 WHERE processed_at IS NULL
		 ORDER BY submitted_at
`

	// Store one evaluation outcome
	insertEvaluationStatement = `
            INSERT INTO evaluations
            (id, submission_id, result_name, result_text, evaluated_at, error_log)
            VALUES
            ($1, $2, $3, $4, $5, $6)
        `

	// Mark one submission as processed
	markSubmissionProcessedStatement = `
		UPDATE submissions
		   SET processed_at = $2
		 WHERE id = $1
`

	// Delete one row from submissions table for given submission ID
	deleteRowFromSubmissionsTable = `
                DELETE
		  FROM submissions
		 WHERE id = $1
`

	// Delete one row from evaluations table for given evaluation ID
	deleteRowFromEvaluationsTable = `
                DELETE
		  FROM evaluations
		 WHERE id = $1
`

	// Delete older records from submissions table
	deleteOldRecordsFromSubmissionsTable = `
                DELETE
		  FROM submissions
		 WHERE submitted_at < NOW() - $1::INTERVAL
`

	// Delete older records from evaluations table
	deleteOldRecordsFromEvaluationsTable = `
                DELETE
		  FROM evaluations
		 WHERE evaluated_at < NOW() - $1::INTERVAL
`

	// Display older records from submissions table
	displayOldRecordsFromSubmissionsTable = `
                SELECT id, respondent, submitted_at
		  FROM submissions
		 WHERE submitted_at < NOW() - $1::INTERVAL
		 ORDER BY submitted_at
`

	// Display older records from evaluations table
	displayOldRecordsFromEvaluationsTable = `
                SELECT submission_id, result_name, evaluated_at
		  FROM evaluations
		 WHERE evaluated_at < NOW() - $1::INTERVAL
		 ORDER BY evaluated_at
`
)

// NewStorage function creates and initializes a new instance of Storage interface
func NewStorage(configuration conf.StorageConfiguration) (*DBStorage, error) {
	driverType, driverName, dataSource, err := initAndGetDriver(configuration)
	if err != nil {
		return nil, err
	}

	log.Info().Msgf(
		"Making connection to data storage, driver=%s",
		driverName,
	)

	connection, err := sql.Open(driverName, dataSource)
	if err != nil {
		log.Error().Err(err).Msg("Can not connect to data storage")
		return nil, err
	}

	return NewFromConnection(connection, driverType), nil
}

// NewFromConnection function creates and initializes a new instance of Storage interface from prepared connection
func NewFromConnection(connection *sql.DB, dbDriverType types.DBDriver) *DBStorage {
	return &DBStorage{
		connection:   connection,
		dbDriverType: dbDriverType,
	}
}

// initAndGetDriver initializes driver, checks if it's supported and returns
// driver type, driver name, dataSource and error
func initAndGetDriver(configuration conf.StorageConfiguration) (driverType types.DBDriver, driverName, dataSource string, err error) {
	driverName = configuration.Driver

	switch driverName {
	case "sqlite3":
		driverType = types.DBDriverSQLite3
		dataSource = configuration.SQLiteFile
	case "postgres":
		driverType = types.DBDriverPostgres
		dataSource = fmt.Sprintf(
			"postgresql://%v:%v@%v:%v/%v?%v",
			configuration.PGUsername,
			configuration.PGPassword,
			configuration.PGHost,
			configuration.PGPort,
			configuration.PGDBName,
			configuration.PGParams,
		)
	default:
		err = fmt.Errorf("driver %v is not supported", driverName)
		return
	}

	return
}

// Close method closes the connection to database. Needs to be called at the end of application lifecycle.
func (storage DBStorage) Close() error {
	log.Info().Msg("Closing connection to data storage")
	if storage.connection != nil {
		err := storage.connection.Close()
		if err != nil {
			log.Error().Err(err).Msg("Can not close connection to data storage")
			return err
		}
	}
	return nil
}

// ReadPendingSubmissions method creates list of submissions waiting to be
// evaluated from all the unprocessed rows in submissions table.
func (storage DBStorage) ReadPendingSubmissions() ([]types.SubmissionEntry, error) {
	var submissionList = make([]types.SubmissionEntry, 0)

	rows, err := storage.connection.Query(readPendingSubmissionsQuery)
	if err != nil {
		return submissionList, err
	}

	defer func() {
		err := rows.Close()
		if err != nil {
			log.Error().Err(err).Msg(unableToCloseDBRowsHandle)
		}
	}()

	for rows.Next() {
		var (
			submissionID types.SubmissionID
			respondent   string
			rawAnswers   string
			submittedAt  types.Timestamp
		)

		if err := rows.Scan(&submissionID, &respondent, &rawAnswers, &submittedAt); err != nil {
			if closeErr := rows.Close(); closeErr != nil {
				log.Error().Err(closeErr).Msg(unableToCloseDBRowsHandle)
			}
			return submissionList, err
		}

		// answers are stored as a JSON object mapping statement
		// names to answer values
		var answers types.Answers
		if err := json.Unmarshal([]byte(rawAnswers), &answers); err != nil {
			log.Error().
				Err(err).
				Int64(SubmissionIDMessage, int64(submissionID)).
				Msg("Unable to decode answers for submission")
			return submissionList, err
		}

		submissionList = append(submissionList, types.SubmissionEntry{
			ID:          submissionID,
			Respondent:  respondent,
			Answers:     answers,
			SubmittedAt: submittedAt})
	}

	return submissionList, nil
}

// WriteEvaluationRecord method writes an evaluation outcome into the database
// table `evaluations`. Data for several columns are passed via
// EvaluationRecord structure.
//
// See also: WriteEvaluationRecordForSubmission, WriteEvaluationRecordImpl
func (storage DBStorage) WriteEvaluationRecord(
	evaluationRecord types.EvaluationRecord) error {

	return storage.WriteEvaluationRecordImpl(evaluationRecord.ID,
		evaluationRecord.SubmissionID, evaluationRecord.ResultName,
		evaluationRecord.ResultText, evaluationRecord.EvaluatedAt,
		evaluationRecord.ErrorLog)
}

// WriteEvaluationRecordImpl method writes an evaluation outcome into the
// database table `evaluations`. Data for all columns are passed explicitly.
//
// See also: WriteEvaluationRecord, WriteEvaluationRecordForSubmission
func (storage DBStorage) WriteEvaluationRecordImpl(
	evaluationID string,
	submissionID types.SubmissionID,
	resultName string,
	resultText string,
	evaluatedAt types.Timestamp,
	errorLog string) error {

	_, err := storage.connection.Exec(insertEvaluationStatement, evaluationID,
		int64(submissionID), resultName, resultText,
		time.Time(evaluatedAt), errorLog)

	return err
}

// WriteEvaluationRecordForSubmission method writes an evaluation outcome into
// the database table `evaluations`. Data for several columns are passed via
// SubmissionEntry structure (as returned by ReadPendingSubmissions method). A
// new unique identifier is generated for the record.
//
// See also: WriteEvaluationRecord, WriteEvaluationRecordImpl
func (storage DBStorage) WriteEvaluationRecordForSubmission(
	submissionEntry types.SubmissionEntry,
	resultName string,
	resultText string,
	evaluatedAt types.Timestamp,
	errorLog string) error {

	return storage.WriteEvaluationRecordImpl(uuid.New().String(),
		submissionEntry.ID, resultName, resultText, evaluatedAt, errorLog)
}

// MarkSubmissionProcessed method marks one submission as processed so it is
// not picked up by the next run.
func (storage DBStorage) MarkSubmissionProcessed(
	submissionID types.SubmissionID,
	processedAt types.Timestamp) error {

	result, err := storage.connection.Exec(markSubmissionProcessedStatement,
		int64(submissionID), time.Time(processedAt))
	if err != nil {
		log.Err(err).
			Int64(SubmissionIDMessage, int64(submissionID)).
			Msg("Unable to mark submission as processed")
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("submission %d not found", submissionID)
	}
	return nil
}

// DeleteRowFromSubmissions deletes one selected row from `submissions` table.
// Number of deleted rows (zero or one) is returned.
func (storage DBStorage) DeleteRowFromSubmissions(
	submissionID types.SubmissionID) (int, error) {

	sqlStatement := deleteRowFromSubmissionsTable
	printableStatement := getPrintableStatement(sqlStatement)

	log.Info().
		Str("delete one row", printableStatement).
		Int64(SubmissionIDMessage, int64(submissionID)).
		Msg("Selected row cleanup")

	return storage.deleteRowImpl(sqlStatement, int64(submissionID))
}

// DeleteRowFromEvaluations deletes one selected row from `evaluations` table.
// Number of deleted rows (zero or one) is returned.
func (storage DBStorage) DeleteRowFromEvaluations(
	evaluationID string) (int, error) {

	sqlStatement := deleteRowFromEvaluationsTable
	printableStatement := getPrintableStatement(sqlStatement)

	log.Info().
		Str("delete one row", printableStatement).
		Str("Evaluation ID", evaluationID).
		Msg("Selected row cleanup")

	return storage.deleteRowImpl(sqlStatement, evaluationID)
}

// getPrintableStatement returns SQL statement in form prepared for logging
func getPrintableStatement(sqlStatement string) string {
	s := strings.ReplaceAll(sqlStatement, "\n", " ")
	s = strings.ReplaceAll(s, "\t", "")
	return strings.Trim(s, " ")
}

// deleteRowImpl method deletes one row from selected table.
// Number of deleted rows (zero or one) is returned.
func (storage DBStorage) deleteRowImpl(
	sqlStatement string, key interface{}) (int, error) {

	// perform the SQL statement to delete one row
	result, err := storage.connection.Exec(sqlStatement, key)
	if err != nil {
		return 0, err
	}

	// read number of affected (deleted) rows
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(affected), nil
}

// PrintSubmissionsForCleanup method prints all submissions older than
// specified relative time
func (storage DBStorage) PrintSubmissionsForCleanup(maxAge string) error {
	log.Info().
		Str(MaxAgeAttribute, maxAge).
		Str("select statement", displayOldRecordsFromSubmissionsTable).
		Msg("PrintSubmissionsForCleanup operation")

	rows, err := storage.connection.Query(displayOldRecordsFromSubmissionsTable, maxAge)
	if err != nil {
		return err
	}
	// used to compute a real record age
	now := time.Now()

	// iterate over all old records
	for rows.Next() {
		var (
			submissionID int64
			respondent   string
			submittedAt  time.Time
		)

		// read one old record from the submissions table
		if err := rows.Scan(&submissionID, &respondent, &submittedAt); err != nil {
			// close the result set in case of any error
			if closeErr := rows.Close(); closeErr != nil {
				log.Error().Err(closeErr).Msg(unableToCloseDBRowsHandle)
			}
			return err
		}

		// compute the real record age
		age := int(math.Ceil(now.Sub(submittedAt).Hours() / 24)) // in days

		// just print the report
		log.Info().
			Int64(SubmissionIDMessage, submissionID).
			Str(RespondentMessage, respondent).
			Str(SubmittedAtMessage, submittedAt.Format(time.RFC3339)).
			Int(AgeMessage, age).
			Msg("Old record from `submissions` table")
	}
	return nil
}

// PrintOldEvaluationsForCleanup method prints all evaluations older than
// specified relative time
func (storage DBStorage) PrintOldEvaluationsForCleanup(maxAge string) error {
	log.Info().
		Str(MaxAgeAttribute, maxAge).
		Str("select statement", displayOldRecordsFromEvaluationsTable).
		Msg("PrintOldEvaluationsForCleanup operation")

	rows, err := storage.connection.Query(displayOldRecordsFromEvaluationsTable, maxAge)
	if err != nil {
		return err
	}
	now := time.Now()

	for rows.Next() {
		var (
			submissionID int64
			resultName   string
			evaluatedAt  time.Time
		)

		if err := rows.Scan(&submissionID, &resultName, &evaluatedAt); err != nil {
			if closeErr := rows.Close(); closeErr != nil {
				log.Error().Err(closeErr).Msg(unableToCloseDBRowsHandle)
			}
			return err
		}

		age := int(math.Ceil(now.Sub(evaluatedAt).Hours() / 24)) // in days

		log.Info().
			Int64(SubmissionIDMessage, submissionID).
			Str("Result", resultName).
			Str("Evaluated at", evaluatedAt.Format(time.RFC3339)).
			Int(AgeMessage, age).
			Msg("Old record from `evaluations` table")
	}
	return nil
}

// Cleanup method deletes all records older than specified relative time
func (storage DBStorage) Cleanup(maxAge, statement string) (int, error) {
	log.Info().
		Str(MaxAgeAttribute, maxAge).
		Str(DeleteStatement, statement).
		Msg("Cleanup operation")

	// perform the SQL statement
	result, err := storage.connection.Exec(statement, maxAge)
	if err != nil {
		return 0, err
	}

	// read number of affected (deleted) rows
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(affected), nil
}

// CleanupSubmissions method deletes all records from `submissions` table older
// than specified relative time
func (storage DBStorage) CleanupSubmissions(maxAge string) (int, error) {
	return storage.Cleanup(maxAge, deleteOldRecordsFromSubmissionsTable)
}

// CleanupOldEvaluations method deletes all records from `evaluations` table
// older than specified relative time
func (storage DBStorage) CleanupOldEvaluations(maxAge string) (int, error) {
	return storage.Cleanup(maxAge, deleteOldRecordsFromEvaluationsTable)
}
