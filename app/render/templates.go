package render

import (
	"embed"
	"html/template"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.New("").Funcs(template.FuncMap{
	// Item text is escaped during extraction and must not be escaped a
	// second time here
	"safe": func(s string) template.HTML { return template.HTML(s) },
}).ParseFS(templateFS, "templates/*.tmpl"))
