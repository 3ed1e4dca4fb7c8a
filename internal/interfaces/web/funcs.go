package web

import (
	"fmt"
	"html/template"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/saanjh/storefront/internal/application/storefront"
	"github.com/saanjh/storefront/internal/domain/content"
	"github.com/saanjh/storefront/internal/domain/reveal"
)

func funcMap(basePath string) template.FuncMap {
	return template.FuncMap{
		"path": func(p string) string {
			return storefront.JoinPath(basePath, p)
		},
		"title":      titleCase,
		"upper":      strings.ToUpper,
		"reveal":     revealAttrs,
		"paragraphs": paragraphs,
		"readTime":   readTime,
		"truncate":   truncate,
		"add":        func(a, b int) int { return a + b },
		"number":     func(n *content.Number) int { return n.Int() },
	}
}

var titleCaser = cases.Title(language.English)

// titleCase converts string to title case using proper Unicode handling
func titleCase(s string) string {
	return titleCaser.String(s)
}

// revealAttrs renders the attributes the reveal script observes. Elements
// start hidden; the script moves them forward and never back.
func revealAttrs(spec reveal.Spec) template.HTMLAttr {
	return template.HTMLAttr(fmt.Sprintf(
		`data-reveal="%s" data-reveal-delay="%d" data-reveal-threshold="%s"`,
		reveal.Hidden,
		spec.DelayMs,
		strconv.FormatFloat(spec.Threshold, 'f', -1, 64),
	))
}

// paragraphs splits text on blank lines, dropping empty runs
func paragraphs(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	var out []string
	for _, p := range strings.Split(s, "\n\n") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func readTime(minutes *content.Number) string {
	m := minutes.Int()
	if m <= 0 {
		return ""
	}
	return strconv.Itoa(m) + " min read"
}

// truncate shortens s to n runes, adding an ellipsis
func truncate(n int, s string) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return strings.TrimSpace(string(r[:n])) + "…"
}
