package report

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/recovermail/recovermail/model"
)

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"base": filepath.Base,
	"clip": clip,
	"join": func(values []string) string { return strings.Join(values, ", ") },
}).Parse(htmlReportTemplate))

type htmlReportData struct {
	GeneratedAt string
	Artifacts   []model.Artifact
}

// WriteHTML exports a self-contained browsable document: a batch
// summary table plus one collapsible message table per archive. All
// values pass through html/template escaping.
func WriteHTML(artifacts []model.Artifact, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create html report: %w", err)
	}
	defer file.Close()

	data := htmlReportData{
		GeneratedAt: time.Now().UTC().Format("2006-01-02 15:04:05 (UTC)"),
		Artifacts:   artifacts,
	}
	if err := htmlTemplate.Execute(file, data); err != nil {
		return fmt.Errorf("render html report: %w", err)
	}
	return nil
}

func clip(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}

const htmlReportTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>RecoverMail Report</title>
<style>
body {font-family: Arial, sans-serif; margin: 0; padding: 0;}
.container {width: 95%; margin: 0 auto; padding: 20px;}
table {border-collapse: collapse; width: 100%; margin: 10px 0 25px 0;}
th, td {border: 1px solid #ddd; padding: 6px 8px; text-align: left; font-size: 13px; vertical-align: top;}
th {background-color: #f2f2f2;}
tr:nth-child(even) {background-color: #f9f9f9;}
.header {background-color: #004080; color: white; padding: 15px; text-align: center; margin-bottom: 20px;}
h2, h3 {color: #004080;}
details {border: 1px solid #ddd; margin-bottom: 10px; padding: 0 10px;}
summary {cursor: pointer; padding: 10px 4px; font-size: 15px; background-color: #eee; margin: 0 -10px;}
.email-body {white-space: pre-wrap; font-family: monospace; max-height: 250px; overflow-y: auto;}
</style>
</head>
<body>
<div class="header">
<h1>RecoverMail Report</h1>
<p>Generated {{.GeneratedAt}}</p>
</div>
<div class="container">
<h2>Analyzed archives</h2>
<table>
<tr><th>File</th><th>Messages</th><th>First date</th><th>Last date</th><th>Attachments</th><th>Duplicates</th><th>Top senders</th><th>Top subjects</th></tr>
{{range .Artifacts}}
<tr>
<td>{{base .FilePath}}</td>
<td>{{.MessageCount}}</td>
<td>{{.FirstDateUTCISO}}</td>
<td>{{.LastDateUTCISO}}</td>
<td>{{.AttachmentsTotal}}</td>
<td>{{.DuplicatesByHash}}</td>
<td>{{join .TopSenders}}</td>
<td>{{join .TopSubjects}}</td>
</tr>
{{end}}
</table>
{{range .Artifacts}}
<details>
<summary>{{base .FilePath}} ({{.MessageCount}} messages)</summary>
<h3>Messages in {{base .FilePath}}</h3>
<table>
<tr><th>#</th><th>From</th><th>To</th><th>Subject</th><th>Date</th><th>Attachments</th><th>Body</th></tr>
{{range .Messages}}
<tr>
<td>{{.ID}}</td>
<td>{{clip .From 60}}</td>
<td>{{clip .To 60}}</td>
<td>{{clip .Subject 60}}</td>
<td>{{.DateDisplay}}</td>
<td>{{len .Attachments}}</td>
<td><div class="email-body">{{.Body}}</div></td>
</tr>
{{end}}
</table>
{{if .Warnings}}
<h3>Warnings</h3>
<ul>
{{range .Warnings}}<li>{{.}}</li>
{{end}}
</ul>
{{end}}
</details>
{{end}}
</div>
</body>
</html>
`
