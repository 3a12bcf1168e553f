// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"bytes"
	"strings"
	"text/template"

	"github.com/pdiddy/sage-lens/pkg/types"
)

const (
	// contextRefs is the number of web references quoted in the research prompt.
	contextRefs = 5

	// contextSnippetLen is the rune limit for each quoted snippet.
	contextSnippetLen = 150
)

// Role instructions prepended to prompts in enriched mode.
const (
	researcherRole = `You are an expert research assistant. Your role is to:
1. Conduct comprehensive research on given topics
2. Synthesize information from multiple sources
3. Generate well-structured, accurate documentation
4. Cite sources appropriately
5. Identify key insights and trends

Always provide thorough, well-organized research outputs.`

	writerRole = `You are a professional content writer. Your role is to:
1. Transform research into engaging, well-structured content
2. Ensure clarity and readability
3. Maintain accuracy while improving presentation
4. Add appropriate formatting and structure
5. Create comprehensive summaries and analyses

Always produce high-quality, publication-ready content.`

	analystRole = `You are a strategic analyst. Your role is to:
1. Analyze research findings for key insights
2. Identify patterns and trends
3. Provide critical evaluation
4. Suggest implications and applications
5. Highlight important considerations

Always provide thoughtful, actionable analysis.`
)

var researchTmpl = template.Must(template.New("research").Parse(
	`{{if .Role}}{{.Role}}

User request: {{end}}Create a comprehensive, well-structured research document about: {{.Topic}}
{{- if .Context}}

Relevant information from web search:
{{range .Context}}- {{.Title}}: {{.Snippet}}
{{end}}{{end}}
{{- if .Role}}

Cover the overview and key concepts, the current state and developments, important findings, applications and use cases, and future trends.{{end}}`))

var polishTmpl = template.Must(template.New("polish").Parse(`{{.Role}}

User request: Transform this research into polished, publication-ready content:

{{.Content}}

Make it engaging, well-formatted, and comprehensive.`))

var analysisTmpl = template.Must(template.New("analysis").Parse(`{{.Role}}

User request: Analyze this research and provide key insights:

{{.Content}}

Focus on:
- Key takeaways
- Important implications
- Critical considerations
- Potential applications`))

type contextRef struct {
	Title   string
	Snippet string
}

// researchPrompt renders the generation prompt for topic, quoting up to
// contextRefs web references. enriched adds the researcher role.
func researchPrompt(topic string, refs []types.WebReference, enriched bool) (string, error) {
	data := struct {
		Role    string
		Topic   string
		Context []contextRef
	}{Topic: topic}
	if enriched {
		data.Role = researcherRole
	}
	for i, r := range refs {
		if i == contextRefs {
			break
		}
		data.Context = append(data.Context, contextRef{Title: r.Title, Snippet: truncate(r.Snippet, contextSnippetLen)})
	}
	return render(researchTmpl, data)
}

func polishPrompt(content string) (string, error) {
	return render(polishTmpl, struct{ Role, Content string }{writerRole, content})
}

func analysisPrompt(content string) (string, error) {
	return render(analysisTmpl, struct{ Role, Content string }{analystRole, content})
}

func render(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// truncate cuts s to at most n runes.
func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
