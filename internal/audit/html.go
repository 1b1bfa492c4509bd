package audit

import (
	_ "embed"
	"fmt"
	"html/template"
	"io"
)

//go:embed audit.html.tmpl
var auditTemplate string

var htmlTmpl = template.Must(template.New("audit").Funcs(template.FuncMap{
	"checks": func() []int { return make([]int, CheckColumns) },
}).Parse(auditTemplate))

// RenderHTML writes the report as a print-ready HTML document.
func RenderHTML(w io.Writer, report Report) error {
	if err := htmlTmpl.Execute(w, report); err != nil {
		return fmt.Errorf("rendering audit html: %w", err)
	}
	return nil
}
