package codegen

import (
	"strings"
	"text/template"
)

var funcs = template.FuncMap{
	"lower": strings.ToLower,
	"join":  strings.Join,
}

var classTemplate = template.Must(template.New("class").Funcs(funcs).Parse(`#!/usr/bin/env python3
from typing import List, Dict, Any, Optional


class {{.Name}}:
    """{{.Name}} class"""

    def __init__(self{{range .Attributes}}, {{.Name}}: {{.Type}} = {{if .Default}}{{.Default}}{{else}}None{{end}}{{end}}):
{{- range .Attributes}}
        self.{{.Name}} = {{.Name}}
{{- else}}
        pass
{{- end}}
{{- range .Methods}}

    def {{.Name}}(self{{range .Parameters}}, {{.Name}}: {{.Type}}{{end}}) -> {{.ReturnType}}:
        """{{if .Comment}}{{.Comment}}{{else}}{{.Name}} method{{end}}"""
        # TODO: Implement this method
{{- if ne .ReturnType "None"}}
        return None  # Change to return appropriate {{.ReturnType}}
{{- end}}
{{- end}}
`))

var mainTemplate = template.Must(template.New("main").Funcs(funcs).Parse(`#!/usr/bin/env python3
import logging
from typing import List, Dict, Any, Optional
{{range .Classes}}{{if .Name}}
from {{lower .Name}} import {{.Name}}{{end}}{{end}}

logging.basicConfig(
    level=logging.INFO,
    format="%(asctime)s - %(name)s - %(levelname)s - %(message)s"
)
logger = logging.getLogger(__name__)


def main():
    """Main entry point for {{.Title}}"""
    logger.info("Starting application")

    # TODO: Add application initialization and startup code

    logger.info("Application running")


if __name__ == "__main__":
    main()
`))

var readmeTemplate = template.Must(template.New("readme").Funcs(funcs).Parse(`# {{.Title}}

{{.Description}}

## Installation

` + "```bash" + `
pip install -r requirements.txt
` + "```" + `

## Usage

` + "```bash" + `
python main.py
` + "```" + `

## Features
{{range .Classes}}{{if .Name}}
- {{.Name}}{{end}}{{end}}

## Architecture
{{range .Architecture.Components}}{{if .Name}}
- {{.Name}}{{end}}{{end}}
`))

var requirements = []string{
	"python-dotenv>=0.19.0",
	"typing-extensions>=4.0.0",
}
