package viz

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/san-kum/easelab/internal/log"
)

// noMarginStyle strips glamour's document margins so the code block sits
// flush in its panel.
const noMarginStyle = `{
	"document": {
		"margin": 0,
		"block_prefix": "",
		"block_suffix": ""
	},
	"code_block": {
		"margin": 0
	}
}`

// codeRenderer renders code text as a highlighted fenced block, caching by
// source.
type codeRenderer struct {
	style    string
	width    int
	renderer *glamour.TermRenderer
	cache    map[string]string
}

func newCodeRenderer(style string, width int) *codeRenderer {
	c := &codeRenderer{style: style, width: width, cache: make(map[string]string)}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithStylesFromJSONBytes([]byte(noMarginStyle)),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		log.ErrorErr(log.CatUI, "code renderer unavailable", err, "style", style)
		return c
	}
	c.renderer = r
	return c
}

func (c *codeRenderer) Render(src string) string {
	if out, ok := c.cache[src]; ok {
		return out
	}
	out := src
	if c.renderer != nil {
		md := "```js\n" + src + "\n```\n"
		if r, err := c.renderer.Render(md); err == nil {
			out = strings.Trim(r, "\n")
		} else {
			log.Warn(log.CatUI, "code render failed", "err", err)
		}
	}
	c.cache[src] = out
	return out
}

// EditStats counts the lines an edit added and removed.
type EditStats struct {
	Added, Removed int
}

func (e EditStats) Changed() bool { return e.Added+e.Removed > 0 }

// DiffLines compares two code texts line by line.
func DiffLines(original, edited string) EditStats {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(original, edited)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var st EditStats
	for _, d := range diffs {
		n := strings.Count(d.Text, "\n")
		if !strings.HasSuffix(d.Text, "\n") {
			n++
		}
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			st.Added += n
		case diffmatchpatch.DiffDelete:
			st.Removed += n
		}
	}
	return st
}

// RenderWordDiff shows the edited text with insertions and deletions marked.
func RenderWordDiff(original, edited string, s Styles) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffCleanupSemantic(dmp.DiffMain(original, edited, false))

	var b strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			b.WriteString(d.Text)
		case diffmatchpatch.DiffInsert:
			b.WriteString(styleLines(s.Added, d.Text))
		case diffmatchpatch.DiffDelete:
			b.WriteString(styleLines(s.Removed, d.Text))
		}
	}
	return b.String()
}

// styleLines renders each line separately so styles do not span newlines.
func styleLines(st lipgloss.Style, text string) string {
	parts := strings.Split(text, "\n")
	for i, p := range parts {
		if p != "" {
			parts[i] = st.Render(p)
		}
	}
	return strings.Join(parts, "\n")
}
