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

import (
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/RedHatInsights/triage-rules-service/types"
)

// Messages
const (
	databasePrintSubmissionsForCleanupOperationFailedMessage    = "Print records from `submissions` table prepared for cleanup failed"
	databasePrintOldEvaluationsForCleanupOperationFailedMessage = "Print records from `evaluations` table prepared for cleanup failed"
	databaseCleanupSubmissionsOperationFailedMessage            = "Cleanup records from `submissions` table failed"
	databaseCleanupOldEvaluationsOperationFailedMessage         = "Cleanup records from `evaluations` table failed"
	rowsDeletedMessage                                          = "Rows deleted"
)

// PerformCleanupOperation function performs selected cleanup operation
func PerformCleanupOperation(storage Storage, cliFlags types.CliFlags) error {
	switch {
	case cliFlags.PrintSubmissionsForCleanup:
		return printSubmissionsForCleanup(storage, cliFlags)
	case cliFlags.PerformSubmissionsCleanup:
		return performSubmissionsCleanup(storage, cliFlags)
	case cliFlags.PrintOldEvaluationsForCleanup:
		return printOldEvaluationsForCleanup(storage, cliFlags)
	case cliFlags.PerformOldEvaluationsCleanup:
		return performOldEvaluationsCleanup(storage, cliFlags)
	default:
		return errors.New("Unknown operation selected")
	}
}

// PerformCleanupOnStartup function cleans up old evaluation records before
// the regular processing starts
func PerformCleanupOnStartup(storage Storage, cliFlags types.CliFlags) error {
	return performOldEvaluationsCleanup(storage, cliFlags)
}

// printSubmissionsForCleanup function prints all submissions that are older
// than specified max age.
func printSubmissionsForCleanup(storage Storage, cliFlags types.CliFlags) error {
	err := storage.PrintSubmissionsForCleanup(cliFlags.MaxAge)
	if err != nil {
		log.Error().Err(err).Msg(databasePrintSubmissionsForCleanupOperationFailedMessage)
		return err
	}

	return nil
}

// performSubmissionsCleanup function deletes all submissions that are older
// than specified max age.
func performSubmissionsCleanup(storage Storage, cliFlags types.CliFlags) error {
	affected, err := storage.CleanupSubmissions(cliFlags.MaxAge)
	if err != nil {
		log.Error().Err(err).Msg(databaseCleanupSubmissionsOperationFailedMessage)
		return err
	}
	log.Info().Int(rowsDeletedMessage, affected).Msg("Cleanup `submissions` finished")

	return nil
}

// printOldEvaluationsForCleanup function prints all evaluation records that
// are older than specified max age.
func printOldEvaluationsForCleanup(storage Storage, cliFlags types.CliFlags) error {
	err := storage.PrintOldEvaluationsForCleanup(cliFlags.MaxAge)
	if err != nil {
		log.Error().Err(err).Msg(databasePrintOldEvaluationsForCleanupOperationFailedMessage)
		return err
	}

	return nil
}

// performOldEvaluationsCleanup function deletes all evaluation records that
// are older than specified max age.
func performOldEvaluationsCleanup(storage Storage, cliFlags types.CliFlags) error {
	affected, err := storage.CleanupOldEvaluations(cliFlags.MaxAge)
	if err != nil {
		log.Error().Err(err).Msg(databaseCleanupOldEvaluationsOperationFailedMessage)
		return err
	}
	log.Info().Int(rowsDeletedMessage, affected).Msg("Cleanup `evaluations` finished")

	return nil
}
