package web

import (
	"html/template"
	"strings"

	"github.com/Masterminds/sprig/v3"

	"github.com/glorpus-work/cachectl/pkg/backend"
)

// funcMap is sprig's HTML-safe set plus a line classifier for result styling.
func funcMap() template.FuncMap {
	fm := sprig.HTMLFuncMap()
	fm["lineClass"] = func(line string) string {
		switch {
		case strings.Contains(line, backend.MarkerOK):
			return "success"
		case strings.Contains(line, strings.TrimSpace(backend.MarkerWarn)):
			return "warning"
		case strings.Contains(line, backend.MarkerFail):
			return "error"
		}
		return ""
	}
	return fm
}

type pageData struct {
	Title        string
	Authorized   bool
	Detection    []string
	Purge        []string
	Purged       bool
	HasAvailable bool
	CheckedAt    string
	History      []historyEntry
}

var pageTemplate = template.Must(template.New("page").Funcs(funcMap()).Parse(`<!DOCTYPE html>
<html>
<head>
    <title>{{ .Title }}</title>
    <style>
        body { font-family: Arial, sans-serif; max-width: 800px; margin: 20px auto; padding: 20px; }
        .result { background: #f5f5f5; padding: 15px; margin: 10px 0; border-radius: 5px; font-family: monospace; white-space: pre; }
        .button { background: #dc3545; color: white; padding: 10px 20px; border: none; border-radius: 4px; cursor: pointer; margin: 10px 5px; }
        input[type="password"] { width: 100%; padding: 10px; border: 1px solid #ddd; border-radius: 4px; }
        .success { color: #28a745; }
        .warning { color: #ffc107; }
        .error { color: #dc3545; }
    </style>
</head>
<body>
    <h1>🚀 {{ .Title }}</h1>
{{- if not .Authorized }}
    <form method="POST">
        <p>Enter the administrator password:</p>
        <input type="password" name="password" required>
        <button type="submit" class="button">Inspect caches</button>
    </form>
{{- else }}
    <div class="result">
    {{- range .Detection }}
        <div class="{{ lineClass . }}">{{ . }}</div>
    {{- end }}
    </div>
    {{- if .Purged }}
    <h2>📋 Cache Clearing Results</h2>
    <div class="result">
    {{- range .Purge }}
        <div class="{{ lineClass . }}">{{ . }}</div>
    {{- else }}
        <div>Nothing to clear.</div>
    {{- end }}
    </div>
    {{- end }}
    {{- if .HasAvailable }}
    <form method="POST" onsubmit="return confirm('Are you sure you want to clear all caches? This action cannot be undone.')">
        <input type="password" name="password" placeholder="Administrator password" required>
        <input type="hidden" name="action" value="clear">
        <button type="submit" class="button">🧹 Clear All Caches</button>
    </form>
    {{- end }}
    {{- with .History }}
    <h2>🕘 Recent Purges</h2>
    <ul>
    {{- range . }}
        <li>{{ .At }} from {{ .Remote }}: {{ .Cleared }} cleared, {{ .Failed }} failed</li>
    {{- end }}
    </ul>
    {{- end }}
    <p><small>Last checked: {{ .CheckedAt }}</small></p>
{{- end }}
</body>
</html>
`))
