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

// File metrics contains all metrics that needs to be exposed to Prometheus and
// indirectly to Grafana.

// Generated documentation is available at:
// https://pkg.go.dev/github.com/RedHatInsights/triage-rules-service/
//
// Documentation in literate-programming-style is available at:
// https://redhatinsights.github.io/triage-rules-service/packages/triage/metrics.html

import (
	"net/http"

	"github.com/RedHatInsights/triage-rules-service/conf"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/push"
	"github.com/rs/zerolog/log"
)

// Metrics names
const (
	ParseQuestionnaireErrorsName   = "parse_questionnaire_errors"
	ReadSubmissionListErrorsName   = "read_submission_list_errors"
	ProducerSetupErrorsName        = "producer_setup_errors"
	StorageSetupErrorsName         = "storage_setup_errors"
	DeserializeAnswersErrorsName   = "deserialize_answers_errors"
	SubmissionWithoutResultName    = "submission_without_result"
	OutcomeNotSentErrorStateName   = "outcome_not_sent_error_state"
	OutcomeSentName                = "outcome_sent"
	SubmissionsProcessedName       = "submissions_processed"
	EvaluationRecordWriteErrorName = "evaluation_record_write_errors"
)

// Metrics helps
const (
	ParseQuestionnaireErrorsHelp   = "The total number of errors when parsing the questionnaire source"
	ReadSubmissionListErrorsHelp   = "The total number of errors when reading pending submissions from the submissions table"
	ProducerSetupErrorsHelp        = "The total number of errors when setting up a producer"
	StorageSetupErrorsHelp         = "The total number of errors when setting up storage connection"
	DeserializeAnswersErrorsHelp   = "The total number of errors when deserializing answers retrieved from the submissions table"
	SubmissionWithoutResultHelp    = "The total number of processed submissions for which no rule matched"
	OutcomeNotSentErrorStateHelp   = "The total number of outcomes not sent because of a producer error"
	OutcomeSentHelp                = "The total number of outcomes sent"
	SubmissionsProcessedHelp       = "The total number of submissions processed"
	EvaluationRecordWriteErrorHelp = "The total number of errors when writing evaluation records"
)

// PushGatewayClient is a simple wrapper over http.Client so that prometheus
// can do HTTP requests with the given authentication header
type PushGatewayClient struct {
	AuthToken string

	httpClient http.Client
}

// Do is a simple wrapper over http.Client.Do method that includes
// the authentication header configured in the PushGatewayClient instance
func (pgc *PushGatewayClient) Do(request *http.Request) (*http.Response, error) {
	if pgc.AuthToken != "" {
		log.Debug().Msg("Adding authorization header to HTTP request")
		request.Header.Set("Authorization", "Basic "+pgc.AuthToken)
	} else {
		log.Debug().Msg("No authorization token provided. Making HTTP request without credentials.")
	}
	log.Debug().Str("request", request.URL.String()).Str("method", request.Method).Msg("Pushing metrics to Prometheus push gateway")
	resp, err := pgc.httpClient.Do(request)
	if resp != nil {
		log.Debug().Int("code", resp.StatusCode).Msg("Returned status code")
	}
	return resp, err
}

// ParseQuestionnaireErrors shows number of errors when parsing the questionnaire source
var ParseQuestionnaireErrors = promauto.NewCounter(prometheus.CounterOpts{
	Name: ParseQuestionnaireErrorsName,
	Help: ParseQuestionnaireErrorsHelp,
})

// ReadSubmissionListErrors shows number of errors when reading pending submissions
var ReadSubmissionListErrors = promauto.NewCounter(prometheus.CounterOpts{
	Name: ReadSubmissionListErrorsName,
	Help: ReadSubmissionListErrorsHelp,
})

// ProducerSetupErrors shows number of errors when setting up a producer
var ProducerSetupErrors = promauto.NewCounter(prometheus.CounterOpts{
	Name: ProducerSetupErrorsName,
	Help: ProducerSetupErrorsHelp,
})

// StorageSetupErrors shows number of errors when setting up storage
var StorageSetupErrors = promauto.NewCounter(prometheus.CounterOpts{
	Name: StorageSetupErrorsName,
	Help: StorageSetupErrorsHelp,
})

// DeserializeAnswersErrors shows number of errors when deserializing stored answers
var DeserializeAnswersErrors = promauto.NewCounter(prometheus.CounterOpts{
	Name: DeserializeAnswersErrorsName,
	Help: DeserializeAnswersErrorsHelp,
})

// SubmissionWithoutResult shows number of submissions for which no rule matched
var SubmissionWithoutResult = promauto.NewCounter(prometheus.CounterOpts{
	Name: SubmissionWithoutResultName,
	Help: SubmissionWithoutResultHelp,
})

// OutcomeNotSentErrorState shows number of outcomes not sent because of a producer error
var OutcomeNotSentErrorState = promauto.NewCounter(prometheus.CounterOpts{
	Name: OutcomeNotSentErrorStateName,
	Help: OutcomeNotSentErrorStateHelp,
})

// OutcomeSent shows number of outcomes sent to the configured destinations
var OutcomeSent = promauto.NewCounter(prometheus.CounterOpts{
	Name: OutcomeSentName,
	Help: OutcomeSentHelp,
})

// SubmissionsProcessed shows the total number of submissions processed
var SubmissionsProcessed = promauto.NewCounter(prometheus.CounterOpts{
	Name: SubmissionsProcessedName,
	Help: SubmissionsProcessedHelp,
})

// EvaluationRecordWriteError shows number of errors when writing evaluation records
var EvaluationRecordWriteError = promauto.NewCounter(prometheus.CounterOpts{
	Name: EvaluationRecordWriteErrorName,
	Help: EvaluationRecordWriteErrorHelp,
})

// AddMetricsWithNamespace register the desired metrics using a given namespace
func AddMetricsWithNamespace(namespace string) {
	// exposed metrics

	// Unregister all metrics and registrer them again
	prometheus.Unregister(ParseQuestionnaireErrors)
	prometheus.Unregister(ReadSubmissionListErrors)
	prometheus.Unregister(ProducerSetupErrors)
	prometheus.Unregister(StorageSetupErrors)
	prometheus.Unregister(DeserializeAnswersErrors)
	prometheus.Unregister(SubmissionWithoutResult)
	prometheus.Unregister(OutcomeNotSentErrorState)
	prometheus.Unregister(OutcomeSent)
	prometheus.Unregister(SubmissionsProcessed)
	prometheus.Unregister(EvaluationRecordWriteError)

	ParseQuestionnaireErrors = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      ParseQuestionnaireErrorsName,
		Help:      ParseQuestionnaireErrorsHelp,
	})

	ReadSubmissionListErrors = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      ReadSubmissionListErrorsName,
		Help:      ReadSubmissionListErrorsHelp,
	})

	ProducerSetupErrors = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      ProducerSetupErrorsName,
		Help:      ProducerSetupErrorsHelp,
	})

	StorageSetupErrors = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      StorageSetupErrorsName,
		Help:      StorageSetupErrorsHelp,
	})

	DeserializeAnswersErrors = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      DeserializeAnswersErrorsName,
		Help:      DeserializeAnswersErrorsHelp,
	})

	SubmissionWithoutResult = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      SubmissionWithoutResultName,
		Help:      SubmissionWithoutResultHelp,
	})

	OutcomeNotSentErrorState = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      OutcomeNotSentErrorStateName,
		Help:      OutcomeNotSentErrorStateHelp,
	})

	OutcomeSent = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      OutcomeSentName,
		Help:      OutcomeSentHelp,
	})

	SubmissionsProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      SubmissionsProcessedName,
		Help:      SubmissionsProcessedHelp,
	})

	EvaluationRecordWriteError = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      EvaluationRecordWriteErrorName,
		Help:      EvaluationRecordWriteErrorHelp,
	})
}

// PushMetrics function pushes the metrics to the configured prometheus push
// gateway
func PushMetrics(metricsConf conf.MetricsConfiguration) error {
	client := PushGatewayClient{metricsConf.GatewayAuthToken, http.Client{}}

	// Creates a pusher to the gateway "$PUSHGW_URL/metrics/job/$(job_name)
	return push.New(metricsConf.GatewayURL, metricsConf.Job).
		Collector(ParseQuestionnaireErrors).
		Collector(ReadSubmissionListErrors).
		Collector(ProducerSetupErrors).
		Collector(StorageSetupErrors).
		Collector(DeserializeAnswersErrors).
		Collector(SubmissionWithoutResult).
		Collector(OutcomeNotSentErrorState).
		Collector(OutcomeSent).
		Collector(SubmissionsProcessed).
		Collector(EvaluationRecordWriteError).
		Client(&client).
		Push()
}
