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

// Package webhook contains an implementation of Producer interface that can
// be used to deliver triage outcome messages over HTTP to a configured
// endpoint.
package webhook

// Generated documentation is available at:
// https://pkg.go.dev/github.com/RedHatInsights/triage-rules-service/producer
//
// Documentation in literate-programming-style is available at:
// https://redhatinsights.github.io/triage-rules-service/packages/producer/webhook/webhook_producer.html

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/RedHatInsights/triage-rules-service/conf"
	"github.com/RedHatInsights/triage-rules-service/types"
	"github.com/RedHatInsights/triage-rules-service/utils"
	"github.com/rs/zerolog/log"
)

// Producer is an implementation of Producer interface for outgoing webhooks
type Producer struct {
	Configuration conf.WebhookConfiguration
}

// New constructs a new instance of Producer implementation
func New(config conf.WebhookConfiguration) (*Producer, error) {
	if config.URL == "" {
		return nil, fmt.Errorf("webhook URL is not configured")
	}

	return &Producer{
		Configuration: config,
	}, nil
}

// ProduceMessage sends the given message to the configured webhook endpoint
func (producer *Producer) ProduceMessage(msg types.ProducerMessage) (partitionID int32, offset int64, err error) {
	// no-op when producer is disabled
	if !producer.Configuration.Enabled {
		return 0, -1, nil
	}

	webhookURL := utils.SetHTTPPrefix(producer.Configuration.URL)

	client := &http.Client{
		Timeout: producer.Configuration.Timeout,
	}

	req, err := http.NewRequest(http.MethodPost, webhookURL, bytes.NewBuffer(msg))
	if err != nil {
		log.Error().Err(err).Str("url", webhookURL).Msg("Error setting up HTTP POST request")
		return -1, -1, err
	}
	req.Header.Add("Content-Type", "application/json")
	if producer.Configuration.AuthToken != "" {
		req.Header.Add("Authorization", "Bearer "+producer.Configuration.AuthToken)
	}

	response, err := client.Do(req)
	if err != nil {
		log.Error().Err(err).Msgf("Error making the HTTP request")
		return -1, -1, err
	}

	err = response.Body.Close()
	if err != nil {
		log.Error().Err(err).Msg("Error closing the response body")
		return -1, -1, err
	}

	switch response.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusAccepted:
		return 0, 0, nil
	default:
		err = fmt.Errorf("received unexpected response status code - %s", response.Status)
		log.Error().Err(err).Msgf("Got unexpected response status code")
		return -1, -1, err
	}
}

// Close closes Producer (in case of webhook implementation, it does not do
// anything)
func (producer *Producer) Close() error {
	return nil
}
