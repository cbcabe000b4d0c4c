package mcp

import (
	"bytes"
	"context"
	"html/template"

	mcplib "github.com/felixgeelhaar/mcp-go"

	"github.com/felixgeelhaar/agenthub/pkg/application"
)

const appMimeType = "text/html;profile=mcp-app"

// appEntry maps a UI resource URI to the renderer that produces its page.
type appEntry struct {
	uri    string
	title  string
	render func(*Server) (string, error)
}

var appEntries = []appEntry{
	{uri: "ui://agenthub/plan", title: "Plan panel", render: (*Server).renderPlanApp},
	{uri: "ui://agenthub/chat", title: "Conversation", render: (*Server).renderChatApp},
}

func (s *Server) registerApps() {
	for _, entry := range appEntries {
		entry := entry
		s.mcpServer.Resource(entry.uri).
			Name(entry.uri).
			Description("MCP App UI: " + entry.title).
			MimeType(appMimeType).
			Handler(func(_ context.Context, _ string, _ map[string]string) (*mcplib.ResourceContent, error) {
				text, err := entry.render(s)
				if err != nil {
					return nil, err
				}
				return &mcplib.ResourceContent{
					URI:      entry.uri,
					MimeType: appMimeType,
					Text:     text,
				}, nil
			})
	}
}

var planPage = template.Must(template.New("plan").Funcs(template.FuncMap{
	"done": func(v application.PlanView, i int) bool { return v.IsCompleted(i) },
}).Parse(`<!doctype html>
<html><head><meta charset="utf-8"><title>Plano do Agente</title></head>
<body>
{{if .Ok}}{{with .View}}
<h1>{{.Objective}}</h1>
<progress max="100" value="{{.Percent}}">{{.Percent}}%</progress>
<ol>{{range $i, $t := .Plan.Tasks}}
<li>{{if done $.View $i}}<s>{{$t}}</s>{{else}}{{$t}}{{end}}</li>{{end}}
</ol>
{{if .Plan.SuggestedTools}}<h2>Ferramentas</h2><ul>{{range .Plan.SuggestedTools}}<li>{{.}}</li>{{end}}</ul>{{end}}
{{with .Plan.Memory}}<h2>Memória</h2><p>{{range .Strategies}}{{.}} {{end}}· {{.RetentionDays}} dias</p>{{end}}
{{with .Plan.RAG}}<h2>RAG</h2><ul>{{range .DataSources}}<li>{{.}}</li>{{end}}</ul><p>{{.EmbeddingModel}}</p>{{end}}
{{end}}{{else}}
<p>Nenhum plano ainda.</p>
{{end}}
</body></html>
`))

var chatPage = template.Must(template.New("chat").Parse(`<!doctype html>
<html><head><meta charset="utf-8"><title>Agent Hub</title></head>
<body>
{{range .}}<div class="msg {{.Role}}"><b>{{.Role}}</b> <time>{{.CreatedAt.Format "15:04"}}</time><p>{{.Content}}</p></div>
{{else}}<p>Sem mensagens.</p>{{end}}
</body></html>
`))

func (s *Server) renderPlanApp() (string, error) {
	view, ok := s.session.PlanView()
	var buf bytes.Buffer
	err := planPage.Execute(&buf, struct {
		Ok   bool
		View application.PlanView
	}{ok, view})
	return buf.String(), err
}

func (s *Server) renderChatApp() (string, error) {
	var buf bytes.Buffer
	err := chatPage.Execute(&buf, s.session.Messages())
	return buf.String(), err
}
