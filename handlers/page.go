package handlers

import (
	"encoding/json"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gameplay-analysis-api/analyzer"
)

const pageTemplate = `<!DOCTYPE html>
<html>
<head>
    <title>Video Analyses</title>
    <style>
        body { font-family: sans-serif; }
        .analysis { border: 1px solid #ccc; margin-bottom: 10px; padding: 10px; }
    </style>
</head>
<body>
    <h1>Video Analyses</h1>
{{range .}}    <div class="analysis">
        <h2>Video: {{.Name}}</h2>
        <pre>{{.Report}}</pre>
    </div>
{{end}}</body>
</html>
`

var analysesPage = template.Must(template.New("analyses").Parse(pageTemplate))

type pageEntry struct {
	Name   string
	Report string
}

// HandleAnalysesPage renders every stored analysis as one HTML page. With no
// record store configured it serves the empty shell. A record that cannot be
// fetched, parsed, or formatted is logged and skipped; the page itself always
// answers 200.
func HandleAnalysesPage(logger *zap.Logger, deps *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var entries []pageEntry

		if deps.Records != nil {
			ctx := c.Request.Context()
			names, err := deps.Records.ListVideos(ctx)
			if err != nil {
				logger.Error("Listing analyses failed", zap.Error(err))
				names = nil
			}
			for _, name := range names {
				data, err := deps.Records.GetRecord(ctx, name)
				if err != nil {
					logger.Error("Analysis retrieval failed", zap.String("video", name), zap.Error(err))
					continue
				}
				var rec analyzer.AnalysisRecord
				if err := json.Unmarshal(data, &rec); err != nil {
					logger.Error("Stored analysis is not valid JSON", zap.String("video", name), zap.Error(err))
					continue
				}
				report, err := analyzer.FormatRecord(&rec)
				if err != nil {
					logger.Error("Analysis formatting failed", zap.String("video", name), zap.Error(err))
					continue
				}
				entries = append(entries, pageEntry{Name: name, Report: report})
			}
		}

		c.Header("Content-Type", "text/html; charset=utf-8")
		c.Status(http.StatusOK)
		if err := analysesPage.Execute(c.Writer, entries); err != nil {
			logger.Error("Page rendering failed", zap.Error(err))
		}
	}
}
