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

// QuestionnaireLoadError occurs when the questionnaire source can not be read
// or parsed
type QuestionnaireLoadError struct {
	Msg string
}

func (e *QuestionnaireLoadError) Error() string {
	return e.Msg
}

// StatusStorageError is related to any storage error
type StatusStorageError struct{}

func (e *StatusStorageError) Error() string {
	return "StatusStorageError"
}

// KafkaBrokerError represent an error related to Kafka initialization
type KafkaBrokerError struct{}

func (e *KafkaBrokerError) Error() string {
	return "KafkaBrokerError"
}

// WebhookError represents an error when creating webhook connection
type WebhookError struct {
	Msg string
}

func (e *WebhookError) Error() string {
	return e.Msg
}

// StatusMetricsError is related to any metrics push error
type StatusMetricsError struct{}

func (e *StatusMetricsError) Error() string {
	return "StatusMetricsError"
}

// StatusConfiguration is related to any configuration error
type StatusConfiguration struct{}

func (e *StatusConfiguration) Error() string {
	return "StatusConfiguration"
}
