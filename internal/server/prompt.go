package server

import (
	"sort"
	"strings"

	"github.com/lightwater2/claude-code-gemini-ui-assistant-mcp/internal/config"
)

const basePrompt = `You are a React UI component specialist. Generate production-ready React TypeScript components.

## Rules

1. Produce exactly one component per request. No pages, routing or app scaffolding.
2. Declare a TypeScript interface for props. Do not use ` + "`any`" + `.
3. Style with Tailwind utility classes only, unless told otherwise.
4. Use semantic HTML, ARIA attributes where needed, and keyboard support.
5. Keep functions short and components single-purpose.

## Output

Return only the component source. No markdown fences, no commentary.
The output must be valid TypeScript that can be saved as a .tsx file.

## Imports

- Project files use absolute imports with the @/ prefix.
- Do not assume an icon library unless the request names one.`

const modifyPrompt = `

## Task: Modify Component

Apply the requested change to the existing component below. Keep its public props
and behavior unless the change says otherwise, and return the full updated file.`

// SystemPrompt assembles the instruction text from the project's design context.
func SystemPrompt(dc *config.DesignContext) string {
	var b strings.Builder
	b.WriteString(basePrompt)
	if dc == nil {
		return b.String()
	}

	if c := dc.Conventions; c != nil {
		lines := []struct{ label, value string }{
			{"Styling", c.Styling},
			{"Units", c.Units},
			{"Imports", c.Imports},
			{"State", c.StateManagement},
			{"Data Fetching", c.DataFetching},
		}
		b.WriteString("\n\n## Project Conventions")
		for _, l := range lines {
			if l.value != "" {
				b.WriteString("\n- " + l.label + ": " + l.value)
			}
		}
	}

	if len(dc.ComponentPatterns) > 0 {
		keys := make([]string, 0, len(dc.ComponentPatterns))
		for k := range dc.ComponentPatterns {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		b.WriteString("\n\n## Component File Structure")
		for _, k := range keys {
			b.WriteString("\n- " + k + ": " + dc.ComponentPatterns[k])
		}
	}

	if dc.DesignContext != "" {
		b.WriteString("\n\n## Design System Context\n")
		b.WriteString(dc.DesignContext)
	}
	return b.String()
}
