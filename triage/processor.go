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

// Package triage contains the main orchestration of the triage rules
// service: it loads and parses the configured questionnaire, evaluates
// pending submissions stored in the database, sends the selected outcomes
// to the configured destinations (Kafka topic and/or webhook), and records
// each evaluation back into the database.
package triage

// Generated documentation is available at:
// https://pkg.go.dev/github.com/RedHatInsights/triage-rules-service/triage
//
// Documentation in literate-programming-style is available at:
// https://redhatinsights.github.io/triage-rules-service/packages/triage/processor.html

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/RedHatInsights/triage-rules-service/conf"
	"github.com/RedHatInsights/triage-rules-service/engine"
	"github.com/RedHatInsights/triage-rules-service/exporter"
	"github.com/RedHatInsights/triage-rules-service/parser"
	"github.com/RedHatInsights/triage-rules-service/producer"
	"github.com/RedHatInsights/triage-rules-service/producer/disabled"
	"github.com/RedHatInsights/triage-rules-service/producer/kafka"
	"github.com/RedHatInsights/triage-rules-service/producer/webhook"
	"github.com/RedHatInsights/triage-rules-service/renderer"
	"github.com/RedHatInsights/triage-rules-service/types"
)

// Configuration-related constants
const (
	configFileEnvVariableName = "TRIAGE_RULES_SERVICE_CONFIG_FILE"
	defaultConfigFileName     = "config"
)

// Exit codes
const (
	// ExitStatusOK means that the tool finished with success
	ExitStatusOK = iota
	// ExitStatusConfiguration is an error code related to program configuration
	ExitStatusConfiguration
	// ExitStatusError is a general error code
	ExitStatusError
	// ExitStatusStorageError is returned in case of any storage-related error
	ExitStatusStorageError
	// ExitStatusQuestionnaireError is returned when the questionnaire source cannot be read or parsed
	ExitStatusQuestionnaireError
	// ExitStatusKafkaBrokerError is for kafka broker connection establishment errors
	ExitStatusKafkaBrokerError
	// ExitStatusKafkaProducerError is for kafka event production failures
	ExitStatusKafkaProducerError
	// ExitStatusWebhookError is raised when the webhook notifier cannot be initialized
	ExitStatusWebhookError
	// ExitStatusCleanerError is raised when clean operation is not successful
	ExitStatusCleanerError
	// ExitStatusMetricsError is raised when prometheus metrics cannot be pushed
	ExitStatusMetricsError
	// ExitStatusRendererError is raised when the questionnaire form cannot be rendered
	ExitStatusRendererError
	// ExitStatusExporterError is raised when the parsed questionnaire cannot be exported
	ExitStatusExporterError
)

// Messages
const (
	versionMessage           = "Triage rules service version 1.0"
	authorsMessage           = "Red Hat Inc."
	separator                = "------------------------------------------------------------"
	operationFailedMessage   = "Operation failed"
	submissionEntryMessage   = "submission entry"
	submissionAttribute      = "submission"
	respondentAttribute      = "respondent"
	resultAttribute          = "result"
	questionnaireAttribute   = "questionnaire"
	submissionsAttribute     = "submissions"
	invalidJSONContent       = "The provided content cannot be encoded as JSON."
	metricsPushFailedMessage = "Couldn't push prometheus metrics"
	errorStr                 = "Error:"
	noMatchingRuleMessage    = "No rule matched the submitted answers"
	destinationNotSet        = "No known outcome destination configured. Aborting."
	kafkaSendErrorMessage    = "Couldn't send outcome message to kafka topic."
	webhookSendErrorMessage  = "Couldn't send outcome message to the configured webhook."
)

var (
	kafkaNotifier   producer.Producer
	webhookNotifier producer.Producer
)

// showVersion function displays version information.
func showVersion() {
	fmt.Println(versionMessage)
}

// showAuthors function displays information about authors.
func showAuthors() {
	fmt.Println(authorsMessage)
}

// showConfiguration function displays actual configuration.
func showConfiguration(config conf.ConfigStruct) {
	brokerConfig := conf.GetKafkaBrokerConfiguration(config)
	log.Info().
		Bool("Enabled", brokerConfig.Enabled).
		Str("Addresses", brokerConfig.Addresses).
		Str("SecurityProtocol", brokerConfig.SecurityProtocol).
		Str("SaslMechanism", brokerConfig.SaslMechanism).
		Str("Topic", brokerConfig.Topic).
		Str("Timeout", brokerConfig.Timeout.String()).
		Msg("Broker configuration")

	webhookConfig := conf.GetWebhookConfiguration(config)

	// authentication token is omitted on purpose
	log.Info().
		Bool("Enabled", webhookConfig.Enabled).
		Str("URL", webhookConfig.URL).
		Str("Timeout", webhookConfig.Timeout.String()).
		Msg("Webhook configuration")

	storageConfig := conf.GetStorageConfiguration(config)
	log.Info().
		Str("Driver", storageConfig.Driver).
		Str("DB Name", storageConfig.PGDBName).
		Str("Username", storageConfig.PGUsername). // password is omitted on purpose
		Str("Host", storageConfig.PGHost).
		Int("Port", storageConfig.PGPort).
		Str("SQLite file", storageConfig.SQLiteFile).
		Bool("LogSQLQueries", storageConfig.LogSQLQueries).
		Str("Parameters", storageConfig.PGParams).
		Msg("Storage configuration")

	questionnaireConfig := conf.GetQuestionnaireConfiguration(config)
	log.Info().
		Str("Path", questionnaireConfig.Path).
		Str("Title", questionnaireConfig.Title).
		Msg("Questionnaire configuration")

	loggingConfig := conf.GetLoggingConfiguration(config)
	log.Info().
		Str("Level", loggingConfig.LogLevel).
		Bool("Pretty colored debug logging", loggingConfig.Debug).
		Msg("Logging configuration")

	processingConfig := conf.GetProcessingConfiguration(config)
	log.Info().
		Bool("Strict references", processingConfig.StrictReferences).
		Msg("Processing configuration")

	metricsConfig := conf.GetMetricsConfiguration(config)

	// authentication token is omitted on purpose
	log.Info().
		Str("Namespace", metricsConfig.Namespace).
		Str("Push Gateway", metricsConfig.GatewayURL).
		Str("Job", metricsConfig.Job).
		Int("Retries", metricsConfig.Retries).
		Str("Retry after", metricsConfig.RetryAfter.String()).
		Msg("Metrics configuration")

	cleanerConfig := conf.GetCleanerConfiguration(config)
	log.Info().
		Str("Max age", cleanerConfig.MaxAge).
		Msg("Cleaner configuration")
}

// loadQuestionnaire function reads the questionnaire source file and parses
// it into a program. The path configured in the configuration file can be
// overridden on the command line. When strict reference checking is enabled
// in the processing configuration, rules referring to undeclared statements
// or results are treated as a load failure instead of being skipped during
// evaluation.
func loadQuestionnaire(config conf.ConfigStruct, cliFlags types.CliFlags) (*types.Program, error) {
	path := conf.GetQuestionnaireConfiguration(config).Path
	if cliFlags.Questionnaire != "" {
		path = cliFlags.Questionnaire
	}
	if path == "" {
		return nil, &QuestionnaireLoadError{Msg: "no questionnaire source file specified"}
	}

	log.Info().Str(questionnaireAttribute, path).Msg("Loading questionnaire source")

	source, err := os.ReadFile(path) // #nosec G304
	if err != nil {
		return nil, err
	}

	program, err := parser.Parse(string(source))
	if err != nil {
		return nil, err
	}

	if conf.GetProcessingConfiguration(config).StrictReferences {
		err = parser.ValidateReferences(program)
		if err != nil {
			return nil, err
		}
	}

	log.Info().
		Int("statements", len(program.Statements)).
		Int("results", len(program.Results)).
		Int("rules", len(program.Rules)).
		Msg("Questionnaire parsed")

	return program, nil
}

// setupQuestionnaire function loads the questionnaire and aborts the process
// when it cannot be read or parsed.
func setupQuestionnaire(config conf.ConfigStruct, cliFlags types.CliFlags) *types.Program {
	program, err := loadQuestionnaire(config, cliFlags)
	if err != nil {
		ParseQuestionnaireErrors.Inc()
		log.Err(err).Msg("Couldn't load the questionnaire source.")
		os.Exit(ExitStatusQuestionnaireError)
	}
	return program
}

// setupKafkaProducer function creates a kafka producer using the provided
// configuration
func setupKafkaProducer(config conf.ConfigStruct) {
	kafkaConfiguration := conf.GetKafkaBrokerConfiguration(config)
	if !kafkaConfiguration.Enabled {
		kafkaNotifier = &disabled.Producer{}
		log.Info().Msg("Broker config for Triage Rules Service is disabled")
		return
	}
	log.Info().Msg("Broker config for Triage Rules Service is enabled")

	kafkaProducer, err := kafka.New(config)
	if err != nil {
		ProducerSetupErrors.Inc()
		log.Error().
			Err(err).
			Msg("Couldn't initialize Kafka producer with the provided config.")
		os.Exit(ExitStatusKafkaBrokerError)
	}
	kafkaNotifier = kafkaProducer
	log.Info().Msg("Kafka producer ready")
}

// setupWebhookProducer function creates a webhook producer using the
// provided configuration
func setupWebhookProducer(config conf.ConfigStruct) {
	webhookConfiguration := conf.GetWebhookConfiguration(config)
	if !webhookConfiguration.Enabled {
		webhookNotifier = &disabled.Producer{}
		log.Info().Msg("Webhook config for Triage Rules Service is disabled")
		return
	}
	log.Info().Msg("Webhook config for Triage Rules Service is enabled")

	webhookProducer, err := webhook.New(webhookConfiguration)
	if err != nil {
		ProducerSetupErrors.Inc()
		log.Error().
			Err(err).
			Msg("Couldn't initialize webhook producer with the provided config.")
		os.Exit(ExitStatusWebhookError)
	}
	webhookNotifier = webhookProducer
	log.Info().Msg("Webhook producer ready")
}

// generateOutcomeMessage function prepares the outcome message for one
// evaluated submission.
func generateOutcomeMessage(
	questionnaire string,
	submission types.SubmissionEntry,
	result types.Variable,
	selected bool,
	evaluatedAt time.Time,
) types.OutcomeMessage {
	return types.OutcomeMessage{
		Questionnaire: questionnaire,
		SubmissionID:  int64(submission.ID),
		Respondent:    submission.Respondent,
		Selected:      selected,
		ResultName:    result.Name,
		ResultText:    result.Value,
		EvaluatedAt:   evaluatedAt.UTC().Format(time.RFC3339),
	}
}

// produceOutcome function sends one outcome message to all configured
// destinations. It returns a non-empty error log when any destination
// refused the message, so that the failure can be recorded together with
// the evaluation.
func produceOutcome(outcome types.OutcomeMessage) string {
	msgBytes, err := json.Marshal(outcome)
	if err != nil {
		OutcomeNotSentErrorState.Inc()
		log.Error().Err(err).Msg(invalidJSONContent)
		return err.Error()
	}

	errorLog := ""

	_, offset, err := kafkaNotifier.ProduceMessage(msgBytes)
	if err != nil {
		OutcomeNotSentErrorState.Inc()
		log.Warn().
			Str(errorStr, err.Error()).
			Msg(kafkaSendErrorMessage)
		errorLog += kafkaSendErrorMessage + " " + err.Error()
	} else if offset != -1 {
		log.Debug().Int64("offset", offset).Msg("Outcome message sent to kafka topic")
	}

	_, _, err = webhookNotifier.ProduceMessage(msgBytes)
	if err != nil {
		OutcomeNotSentErrorState.Inc()
		log.Warn().
			Str(errorStr, err.Error()).
			Msg(webhookSendErrorMessage)
		errorLog += webhookSendErrorMessage + " " + err.Error()
	}

	if errorLog == "" {
		OutcomeSent.Inc()
	}
	return errorLog
}

// processSubmissions function reads all pending submissions from the
// database, evaluates each answer set against the parsed questionnaire,
// sends the selected outcomes to the configured destinations and records
// the evaluations. Submissions are marked as processed even when no rule
// matched, so that they are not picked up again by the next run.
func processSubmissions(config conf.ConfigStruct, program *types.Program, storage Storage) {
	questionnaire := conf.GetQuestionnaireConfiguration(config).Title

	submissions, err := storage.ReadPendingSubmissions()
	if err != nil {
		ReadSubmissionListErrors.Inc()
		log.Err(err).Msg(operationFailedMessage)
		os.Exit(ExitStatusStorageError)
	}

	entries := len(submissions)
	if entries == 0 {
		log.Info().Msg("No pending submissions found")
		return
	}
	log.Info().Int(submissionsAttribute, entries).Msg("Read pending submissions: done")

	for i, submission := range submissions {
		log.Info().
			Int("#", i).
			Int64(submissionAttribute, int64(submission.ID)).
			Str(respondentAttribute, submission.Respondent).
			Msg(submissionEntryMessage)

		evaluatedAt := time.Now()
		result, found := engine.SelectResult(program, submission.Answers)

		errorLog := ""
		if found {
			log.Info().
				Str(resultAttribute, result.Name).
				Msg("Rule matched for submission")
			outcome := generateOutcomeMessage(questionnaire, submission, result, true, evaluatedAt)
			errorLog = produceOutcome(outcome)
		} else {
			SubmissionWithoutResult.Inc()
			log.Info().
				Int64(submissionAttribute, int64(submission.ID)).
				Msg(noMatchingRuleMessage)
			errorLog = noMatchingRuleMessage
		}

		err = storage.WriteEvaluationRecordForSubmission(
			submission, result.Name, result.Value,
			types.Timestamp(evaluatedAt), errorLog)
		if err != nil {
			EvaluationRecordWriteError.Inc()
			log.Err(err).Msg("Write evaluation record failed")
		}

		err = storage.MarkSubmissionProcessed(submission.ID, types.Timestamp(evaluatedAt))
		if err != nil {
			log.Err(err).Msg("Mark submission as processed failed")
			continue
		}
		SubmissionsProcessed.Inc()
	}
}

// evaluateAnswersFile function performs a one-shot evaluation of a single
// answer set read from a JSON file, without touching the database or any
// producer. The selected outcome is printed to standard output.
func evaluateAnswersFile(program *types.Program, cliFlags types.CliFlags) int {
	content, err := os.ReadFile(cliFlags.Answers) // #nosec G304
	if err != nil {
		log.Err(err).Msg("Couldn't read the answers file.")
		return ExitStatusError
	}

	var answers types.Answers
	err = json.Unmarshal(content, &answers)
	if err != nil {
		DeserializeAnswersErrors.Inc()
		log.Err(err).Msg("Couldn't deserialize the answers file.")
		return ExitStatusError
	}

	result, found := engine.SelectResult(program, answers)
	if !found {
		SubmissionWithoutResult.Inc()
		fmt.Println(noMatchingRuleMessage)
		return ExitStatusOK
	}

	fmt.Printf("%s: %s\n", result.Name, result.Value)
	return ExitStatusOK
}

// openOutput function opens the output target specified on the command
// line. Standard output is used when no output file was specified.
func openOutput(cliFlags types.CliFlags) (io.WriteCloser, error) {
	if cliFlags.Output == "" {
		return os.Stdout, nil
	}
	return os.Create(cliFlags.Output) // #nosec G304
}

// renderQuestionnaireForm function renders the parsed questionnaire into a
// standalone HTML form written into the configured output.
func renderQuestionnaireForm(config conf.ConfigStruct, program *types.Program, cliFlags types.CliFlags) int {
	output, err := openOutput(cliFlags)
	if err != nil {
		log.Err(err).Msg(operationFailedMessage)
		return ExitStatusRendererError
	}

	title := conf.GetQuestionnaireConfiguration(config).Title
	err = renderer.RenderForm(program, title, output)
	if err != nil {
		log.Err(err).Msg("Couldn't render the questionnaire form.")
		return ExitStatusRendererError
	}

	if output != os.Stdout {
		err = output.Close()
		if err != nil {
			log.Err(err).Msg(operationFailedMessage)
			return ExitStatusRendererError
		}
	}
	return ExitStatusOK
}

// exportProgram function serializes the parsed questionnaire into its JSON
// representation and writes it into the configured output.
func exportProgram(program *types.Program, cliFlags types.CliFlags) int {
	payload, err := exporter.MarshalProgram(program)
	if err != nil {
		log.Err(err).Msg("Couldn't export the parsed questionnaire.")
		return ExitStatusExporterError
	}

	output, err := openOutput(cliFlags)
	if err != nil {
		log.Err(err).Msg(operationFailedMessage)
		return ExitStatusExporterError
	}

	_, err = output.Write(payload)
	if err != nil {
		log.Err(err).Msg(operationFailedMessage)
		return ExitStatusExporterError
	}

	if output != os.Stdout {
		err = output.Close()
		if err != nil {
			log.Err(err).Msg(operationFailedMessage)
			return ExitStatusExporterError
		}
	}
	return ExitStatusOK
}

// registerMetrics registers metrics using the provided namespace, if any
func registerMetrics(metricsConfig conf.MetricsConfiguration) {
	if metricsConfig.Namespace != "" {
		log.Info().Str("namespace", metricsConfig.Namespace).Msg("Setting metrics namespace")
		AddMetricsWithNamespace(metricsConfig.Namespace)
	}
}

func closeStorage(storage Storage) error {
	err := storage.Close()
	if err != nil {
		log.Err(err).Msg(operationFailedMessage)
		return err
	}
	return nil
}

func closeNotifier(notifier producer.Producer) error {
	err := notifier.Close()
	if err != nil {
		log.Err(err).Msg(operationFailedMessage)
		return err
	}
	return nil
}

func pushMetrics(metricsConf conf.MetricsConfiguration) {
	if metricsConf.GatewayURL == "" {
		log.Info().Msg("Metrics push gateway not configured")
		return
	}
	err := PushMetrics(metricsConf)
	if err != nil {
		log.Err(err).Msg(metricsPushFailedMessage)
		if metricsConf.RetryAfter == 0 || metricsConf.Retries == 0 {
			os.Exit(ExitStatusMetricsError)
		}
		for i := metricsConf.Retries; i > 0; i-- {
			time.Sleep(metricsConf.RetryAfter)
			log.Info().Msgf("Push metrics. Retrying (%d/%d attempts left)", i, metricsConf.Retries)
			err = PushMetrics(metricsConf)
			if err == nil {
				log.Info().Msg("Metrics pushed successfully. Terminating triage rules service successfully.")
				return
			}
			log.Err(err).Msg(metricsPushFailedMessage)
		}
		os.Exit(ExitStatusMetricsError)
	}
	log.Info().Msg("Metrics pushed successfully. Terminating triage rules service successfully.")
}

func deleteOperationSpecified(cliFlags types.CliFlags) bool {
	return cliFlags.PrintSubmissionsForCleanup ||
		cliFlags.PerformSubmissionsCleanup ||
		cliFlags.PrintOldEvaluationsForCleanup ||
		cliFlags.PerformOldEvaluationsCleanup
}

func assertOutcomeDestination(config conf.ConfigStruct) {
	if !conf.GetKafkaBrokerConfiguration(config).Enabled && !conf.GetWebhookConfiguration(config).Enabled {
		log.Error().Msg(destinationNotSet)
		os.Exit(ExitStatusConfiguration)
	}
}

func closeProcessor(storage Storage) {
	log.Info().Msg(separator)
	err := closeStorage(storage)
	if err != nil {
		defer os.Exit(ExitStatusStorageError)
	}
	log.Info().Msg(separator)
	err = closeNotifier(kafkaNotifier)
	if err != nil {
		defer os.Exit(ExitStatusKafkaBrokerError)
	}
	log.Info().Msg(separator)
	err = closeNotifier(webhookNotifier)
	if err != nil {
		defer os.Exit(ExitStatusWebhookError)
	}
	log.Info().Msg(separator)
}

// startProcessor function runs one batch pass: it loads the questionnaire,
// evaluates all pending submissions, sends the selected outcomes, and then
// pushes the collected metrics to the configured Prometheus gateway.
func startProcessor(config conf.ConfigStruct, storage Storage, cliFlags types.CliFlags) {
	log.Info().Msg("Triage rules processor started")
	log.Info().Msg(separator)

	if cliFlags.Verbose {
		showConfiguration(config)
	}

	assertOutcomeDestination(config)
	registerMetrics(conf.GetMetricsConfiguration(config))

	log.Info().Msg(separator)
	program := setupQuestionnaire(config, cliFlags)

	log.Info().Msg(separator)
	log.Info().Msg("Preparing Kafka producer")
	setupKafkaProducer(config)
	log.Info().Msg(separator)
	log.Info().Msg("Preparing webhook producer")
	setupWebhookProducer(config)
	log.Info().Msg(separator)

	log.Info().Msg("Evaluating pending submissions")
	processSubmissions(config, program, storage)
	log.Info().Msg("Process submissions: done")
	closeProcessor(storage)
	log.Info().Msg("Processor finished. Pushing metrics to the configured prometheus gateway.")
	pushMetrics(conf.GetMetricsConfiguration(config))
	log.Info().Msg(separator)
}

// checkArgs function handles command line options passed to the process
func checkArgs(args *types.CliFlags) {
	switch {
	case args.ShowVersion:
		showVersion()
		os.Exit(ExitStatusOK)
	case args.ShowAuthors:
		showAuthors()
		os.Exit(ExitStatusOK)
	case args.ShowConfiguration:
		// config not loaded yet, just skip the rest of function for
		// now
		return
	case args.PrintSubmissionsForCleanup,
		args.PerformSubmissionsCleanup,
		args.PrintOldEvaluationsForCleanup,
		args.PerformOldEvaluationsCleanup:
		// DB only operations, no need for additional args
		return
	case args.RenderForm,
		args.ExportProgram:
		// questionnaire-only operations, no DB needed
		return
	case args.Answers != "":
		// one-shot evaluation of a single answers file
		return
	default:
	}

	// check if operation is specified on command line
	if !args.ProcessSubmissions {
		log.Error().Msg("Operation needs to be specified on command line")
		os.Exit(ExitStatusConfiguration)
	}
}

func convertLogLevel(level string) zerolog.Level {
	level = strings.ToLower(strings.TrimSpace(level))
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	}

	return zerolog.DebugLevel
}

// Run function is entry point to the processor
func Run() {
	var cliFlags types.CliFlags

	// define and parse all command line options
	flag.BoolVar(&cliFlags.ProcessSubmissions, "process-submissions", false, "evaluate all pending submissions and send outcomes")
	flag.BoolVar(&cliFlags.RenderForm, "render-form", false, "render the questionnaire as an HTML form and exit")
	flag.BoolVar(&cliFlags.ExportProgram, "export-program", false, "export the parsed questionnaire as JSON and exit")
	flag.BoolVar(&cliFlags.ShowVersion, "show-version", false, "show version and exit")
	flag.BoolVar(&cliFlags.ShowAuthors, "show-authors", false, "show authors and exit")
	flag.BoolVar(&cliFlags.ShowConfiguration, "show-configuration", false, "show configuration and exit")
	flag.BoolVar(&cliFlags.PrintSubmissionsForCleanup, "print-submissions-for-cleanup", false, "print submissions to be cleaned up")
	flag.BoolVar(&cliFlags.PerformSubmissionsCleanup, "submissions-cleanup", false, "perform submissions clean up")
	flag.BoolVar(&cliFlags.PrintOldEvaluationsForCleanup, "print-old-evaluations-for-cleanup", false, "print old evaluations to be cleaned up")
	flag.BoolVar(&cliFlags.PerformOldEvaluationsCleanup, "old-evaluations-cleanup", false, "perform old evaluations clean up")
	flag.BoolVar(&cliFlags.CleanupOnStartup, "cleanup-on-startup", false, "perform database clean up on startup")
	flag.BoolVar(&cliFlags.Verbose, "verbose", false, "verbose logs")
	flag.StringVar(&cliFlags.MaxAge, "max-age", "", "max age for displaying/cleaning old records")
	flag.StringVar(&cliFlags.Questionnaire, "questionnaire", "", "path to the questionnaire source file (overrides configuration)")
	flag.StringVar(&cliFlags.Answers, "evaluate", "", "path to a JSON answers file to evaluate and exit")
	flag.StringVar(&cliFlags.Output, "output", "", "output file for render/export operations (default: stdout)")
	flag.Parse()
	checkArgs(&cliFlags)

	// config has exactly the same structure as *.toml file
	config, err := conf.LoadConfiguration(configFileEnvVariableName, defaultConfigFileName)
	if err != nil {
		log.Err(err).Msg("Load configuration")
		os.Exit(ExitStatusConfiguration)
	}

	// configuration is loaded, so it would be possible to display it if
	// asked by user
	if cliFlags.ShowConfiguration {
		showConfiguration(config)
		os.Exit(ExitStatusOK)
	}

	// override default value by one read from configuration file
	if cliFlags.MaxAge == "" {
		cliFlags.MaxAge = conf.GetCleanerConfiguration(config).MaxAge
	}

	loggingConfiguration := conf.GetLoggingConfiguration(config)
	if loggingConfiguration.Debug {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// set log level
	logLevel := convertLogLevel(loggingConfiguration.LogLevel)
	zerolog.SetGlobalLevel(logLevel)
	log.Info().
		Str("configured", loggingConfiguration.LogLevel).
		Int("internal", int(logLevel)).
		Msg("Log level")

	// questionnaire-only operations don't need any database connection
	if cliFlags.RenderForm || cliFlags.ExportProgram || cliFlags.Answers != "" {
		program := setupQuestionnaire(config, cliFlags)
		switch {
		case cliFlags.RenderForm:
			os.Exit(renderQuestionnaireForm(config, program, cliFlags))
		case cliFlags.ExportProgram:
			os.Exit(exportProgram(program, cliFlags))
		default:
			os.Exit(evaluateAnswersFile(program, cliFlags))
		}
	}

	// prepare the storage
	storageConfiguration := conf.GetStorageConfiguration(config)
	storage, err := NewStorage(storageConfiguration)
	if err != nil {
		StorageSetupErrors.Inc()
		log.Err(err).Msg(operationFailedMessage)
		os.Exit(ExitStatusStorageError)
	}

	if deleteOperationSpecified(cliFlags) {
		err := PerformCleanupOperation(storage, cliFlags)
		if err != nil {
			os.Exit(ExitStatusCleanerError)
		} else {
			os.Exit(ExitStatusOK)
		}
	}

	// perform database cleanup on startup if specified on command line
	if cliFlags.CleanupOnStartup {
		err := PerformCleanupOnStartup(storage, cliFlags)
		if err != nil {
			os.Exit(ExitStatusCleanerError)
		}
		// if previous operation is correct, just continue
	}

	startProcessor(config, storage, cliFlags)
}
