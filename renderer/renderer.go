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

// Package renderer produces a self-contained HTML questionnaire form for a
// parsed program. Each statement becomes a yes/no radio group and the program
// itself is embedded as JSON so the form can be evaluated client-side.
package renderer

// Documentation in literate-programming-style is available at:
// https://redhatinsights.github.io/triage-rules-service/packages/renderer/renderer.html

import (
	"fmt"
	"html/template"
	"io"

	"github.com/RedHatInsights/triage-rules-service/exporter"
	"github.com/RedHatInsights/triage-rules-service/types"
)

// formTemplate is the page skeleton. The program JSON is injected into a
// script tag with type application/json so browsers treat it as data.
const formTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body>
<h1>{{.Title}}</h1>
<form id="questionnaire">
{{range .Statements}}<fieldset>
<legend>{{.Value}}</legend>
<label><input type="radio" name="{{.Name}}" value="yes"> yes</label>
<label><input type="radio" name="{{.Name}}" value="no"> no</label>
</fieldset>
{{end}}<button type="submit">Evaluate</button>
</form>
<script id="program" type="application/json">
{{.Program}}
</script>
</body>
</html>
`

// formDocument structure carries the values consumed by the page template
type formDocument struct {
	Title      string
	Statements []types.Variable
	Program    template.JS
}

var compiledFormTemplate = template.Must(template.New("form").Parse(formTemplate))

// RenderForm function writes an HTML questionnaire for the given program
func RenderForm(program *types.Program, title string, writer io.Writer) error {
	if program == nil {
		return fmt.Errorf("unable to render nil program")
	}

	encoded, err := exporter.MarshalProgram(program)
	if err != nil {
		return err
	}

	document := formDocument{
		Title:      title,
		Statements: program.Statements,
		Program:    template.JS(encoded),
	}

	return compiledFormTemplate.Execute(writer, document)
}
