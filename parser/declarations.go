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

import (
	"strings"

	"github.com/RedHatInsights/triage-rules-service/types"
)

// ParseDeclarations turns the inner text of the statements or results
// section into an ordered sequence of variables. Each non-blank line is
// split on the first '=' into a trimmed name and a trimmed value. The
// section name is used for error messages only. Uniqueness of names is not
// enforced here; the name is used as a lookup key at evaluation time.
func ParseDeclarations(section, name string) ([]types.Variable, error) {
	var variables []types.Variable

	for i, line := range strings.Split(section, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return nil, &MalformedDeclarationError{
				Section: name,
				Line:    i + 1,
				Text:    line,
			}
		}

		variables = append(variables, types.Variable{
			Name:  strings.TrimSpace(parts[0]),
			Value: strings.TrimSpace(parts[1]),
		})
	}

	return variables, nil
}
