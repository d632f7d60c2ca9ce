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

package utils_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/RedHatInsights/triage-rules-service/utils"
)

// TestSetHTTPPrefix function checks prefix handling for various URL forms
func TestSetHTTPPrefix(t *testing.T) {
	testCases := []struct {
		name     string
		url      string
		expected string
	}{
		{
			name:     "bare host",
			url:      "localhost:8000/triage",
			expected: "http://localhost:8000/triage",
		},
		{
			name:     "http prefix kept",
			url:      "http://localhost:8000/triage",
			expected: "http://localhost:8000/triage",
		},
		{
			name:     "https prefix kept",
			url:      "https://example.com/triage",
			expected: "https://example.com/triage",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.expected, utils.SetHTTPPrefix(testCase.url))
		})
	}
}

// TestSendRequest function checks reading a response body from a test server
func TestSendRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		_, err := writer.Write([]byte("payload"))
		assert.NoError(t, err)
	}))
	defer server.Close()

	request, err := http.NewRequest(http.MethodGet, server.URL, http.NoBody)
	assert.NoError(t, err)

	body, err := utils.SendRequest(request, time.Second)
	assert.NoError(t, err)
	assert.Equal(t, []byte("payload"), body)
}

// TestSendRequestConnectionRefused function checks the error path when the
// server is not reachable
func TestSendRequestConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {}))
	// shut the server down right away so the address refuses connections
	server.Close()

	request, err := http.NewRequest(http.MethodGet, server.URL, http.NoBody)
	assert.NoError(t, err)

	_, err = utils.SendRequest(request, time.Second)
	assert.Error(t, err)
}

// TestNewTLSConfigMissingFile function checks the error path for a missing
// certificate file
func TestNewTLSConfigMissingFile(t *testing.T) {
	_, err := utils.NewTLSConfig("no such certificate")
	assert.Error(t, err)
}
