package ui

import (
	"embed"
	"html/template"
	"time"
)

//go:embed templates/*.html
var templateFS embed.FS

var funcs = template.FuncMap{
	"date":     FormatDate,
	"datetime": FormatDateTime,
	"money":    FormatMoney,
	"yesno":    YesNo,
	"dash":     Or,
	"css":      func(s Style) template.CSS { return s.CSS() },
	"year":     func() int { return time.Now().Year() },
	"add":      func(a, b int) int { return a + b },
}

// Templates parses the embedded page templates; each is addressed by file name.
func Templates() *template.Template {
	return template.Must(template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html"))
}
