package components

import (
	"regexp"
	"strings"

	"github.com/Rorical/missionchat/ui/styles"
)

var (
	orderedItemRe = regexp.MustCompile(`^(\d+)\.\s+(.*)`)
	inlineCodeRe  = regexp.MustCompile("``[^`]*``|`[^`]*`")
	linkRe        = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)
	boldRe        = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	italicRe      = regexp.MustCompile(`(^|[^*\w])[*_]([^*_]+)[*_]([^*\w]|$)`)
	paragraphRe   = regexp.MustCompile(`\n\s*\n`)
)

// RenderMarkdown renders the subset of markdown mission answers use:
// headings, lists, fenced code, inline code, links, bold and italic.
func RenderMarkdown(text string) string {
	var out []string
	inCode := false

	for _, line := range joinParagraphs(text) {
		if strings.HasPrefix(line, "```") {
			inCode = !inCode
			continue
		}
		if inCode {
			out = append(out, styles.CodeStyle().Render(line))
			continue
		}

		switch {
		case strings.HasPrefix(line, "#"):
			title := strings.TrimSpace(strings.TrimLeft(line, "#"))
			out = append(out, styles.BoldStyle().Render(renderInline(title)))
		case strings.HasPrefix(line, "- "), strings.HasPrefix(line, "* "):
			out = append(out, "  • "+renderInline(line[2:]))
		default:
			if m := orderedItemRe.FindStringSubmatch(line); m != nil {
				out = append(out, "  "+m[1]+". "+renderInline(m[2]))
			} else {
				out = append(out, renderInline(line))
			}
		}
	}

	return strings.Join(out, "\n")
}

func renderInline(line string) string {
	line = inlineCodeRe.ReplaceAllStringFunc(line, func(m string) string {
		return styles.CodeStyle().Render(strings.Trim(m, "`"))
	})
	line = linkRe.ReplaceAllStringFunc(line, func(m string) string {
		return styles.LinkStyle().Render(linkRe.FindStringSubmatch(m)[1])
	})
	line = boldRe.ReplaceAllStringFunc(line, func(m string) string {
		return styles.BoldStyle().Render(boldRe.FindStringSubmatch(m)[1])
	})
	return italicRe.ReplaceAllStringFunc(line, func(m string) string {
		p := italicRe.FindStringSubmatch(m)
		return p[1] + styles.ItalicStyle().Render(p[2]) + p[3]
	})
}

// joinParagraphs splits text into display lines. Soft-wrapped prose inside a
// paragraph is joined with spaces; block lines (headings, list items, fences)
// and everything inside a fence keep their own line.
func joinParagraphs(text string) []string {
	var lines []string
	inCode := false

	for _, para := range paragraphRe.Split(strings.TrimSpace(text), -1) {
		prose := false
		for _, raw := range strings.Split(para, "\n") {
			line := strings.TrimSpace(raw)
			if strings.HasPrefix(line, "```") {
				inCode = !inCode
				lines = append(lines, line)
				prose = false
				continue
			}
			if inCode {
				lines = append(lines, strings.TrimRight(raw, " \t"))
				continue
			}
			if line == "" {
				continue
			}
			if isBlockLine(line) {
				lines = append(lines, line)
				prose = false
				continue
			}
			if prose {
				lines[len(lines)-1] += " " + line
			} else {
				lines = append(lines, line)
				prose = true
			}
		}
	}
	return lines
}

func isBlockLine(line string) bool {
	return strings.HasPrefix(line, "#") ||
		strings.HasPrefix(line, "- ") ||
		strings.HasPrefix(line, "* ") ||
		strings.HasPrefix(line, "> ") ||
		orderedItemRe.MatchString(line)
}
