// Package docs renders event documentation gathered by an emitter (or a
// manifest, or the static extractor) into a human-readable document.
//
// Rendering is a pure text transformation: the same inputs always produce
// byte-identical output, and no file or network access happens here.
package docs

import (
	"fmt"
	"html"
	"strings"
)

// Recognized render formats. Any unrecognized format falls back to HTML.
const (
	FormatHTML     = "html"
	FormatMarkdown = "markdown"
	FormatMD       = "md"
)

// EventDoc describes a single documented event.
type EventDoc struct {
	// Name is the event name.
	Name string

	// Description explains when the event is raised.
	Description string

	// Params describes the positional arguments handlers receive,
	// in argument order.
	Params []string
}

// noParams is the placeholder rendered when an event has no documented
// parameters.
const noParams = "<none>"

// Render produces a document describing the events of typeName in the
// given format. "markdown" and "md" select Markdown; anything else,
// including the empty string, selects HTML.
//
// Events are rendered in slice order. An empty slice still produces a
// complete document reporting "0 Events".
func Render(typeName string, events []EventDoc, format string) string {
	switch format {
	case FormatMarkdown, FormatMD:
		return renderMarkdown(typeName, events)
	default:
		return renderHTML(typeName, events)
	}
}

func renderMarkdown(typeName string, events []EventDoc) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s Events <%d Events>\n", typeName, len(events))
	for i, evt := range events {
		fmt.Fprintf(&b, "\n## %s\n%s\n", evt.Name, evt.Description)
		if len(evt.Params) == 0 {
			fmt.Fprintf(&b, "\n> **%s**\n", noParams)
		} else {
			b.WriteString("\n")
			for j, p := range evt.Params {
				fmt.Fprintf(&b, "> **%d**. %s<br>\n", j+1, p)
			}
		}
		if i != len(events)-1 {
			b.WriteString("\n---\n")
		}
	}
	b.WriteString("\n---\n**Generated by eventkit**\n")
	return b.String()
}

func renderHTML(typeName string, events []EventDoc) string {
	var blocks strings.Builder
	for i, evt := range events {
		var params strings.Builder
		for j, p := range evt.Params {
			fmt.Fprintf(&params, `            <div class="param">
                <span>%d.</span>
                <span class="param-desc">%s</span>
            </div>
`, j+1, html.EscapeString(p))
		}
		if len(evt.Params) == 0 {
			fmt.Fprintf(&params, `            <div class="param">
                <span>%s</span>
            </div>
`, html.EscapeString(noParams))
		}

		fmt.Fprintf(&blocks, `        <div class="event">
            <h2 class="event-name">%s</h2>
            <div class="event-desc">%s</div>
            <div class="params-box">
                <div class="params-title">Handler arguments:</div>
%s            </div>
        </div>
`, html.EscapeString(evt.Name), html.EscapeString(evt.Description), params.String())

		if i != len(events)-1 {
			blocks.WriteString("        <div class=\"divider\"></div>\n")
		}
	}

	title := html.EscapeString(typeName)
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>%[1]s Events</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 40px; background: #f5f5f5; }
        .title { color: #2c3e50; font-size: 32px; text-align: center; margin-bottom: 30px; }
        .event-count { background: #3498db; color: white; padding: 2px 10px; border-radius: 12px; font-size: 25px; }
        .event { background: white; padding: 20px; margin-bottom: 20px; border-radius: 5px; box-shadow: 0 2px 5px rgba(0,0,0,0.1); }
        .event-name { color: #2c3e50; font-size: 24px; margin: 0 0 10px 0; border-bottom: 2px solid #3498db; padding-bottom: 5px; }
        .event-desc { color: #555; margin-bottom: 15px; }
        .params-box { background: #f8f9fa; border-left: 4px solid #3498db; padding: 15px; margin: 15px 0; }
        .params-title { color: #2c3e50; font-weight: bold; margin-bottom: 10px; }
        .param { margin: 8px 0; padding-left: 15px; }
        .param-desc { color: #555; }
        .divider { height: 1px; background: #ddd; margin: 25px 0; }
        .footer { text-align: center; color: #888; margin-top: 40px; padding-top: 20px; border-top: 1px solid #eee; }
    </style>
</head>
<body>
    <h1 class="title">
        %[1]s Events
        <span class="event-count">%[2]d Events</span>
    </h1>
    <div class="container">
%[3]s    </div>
    <div class="footer">
        Generated by eventkit
    </div>
</body>
</html>
`, title, len(events), blocks.String())
}
