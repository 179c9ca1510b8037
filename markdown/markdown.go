// Package markdown extracts plain-text summaries from Markdown post bodies.
package markdown

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	reBold             = regexp.MustCompile(`\*\*(.+?)\*\*`)
	reBoldUnderscore   = regexp.MustCompile(`__(.+?)__`)
	reItalic           = regexp.MustCompile(`\*([^*]+)\*`)
	reItalicUnderscore = regexp.MustCompile(`_([^_]+)_`)
	reInlineCode       = regexp.MustCompile("`([^`]+)`")
	reLink             = regexp.MustCompile(`\[(.*?)\]\((.*?)\)(\^)?`)
	reOrderedList      = regexp.MustCompile(`^(\d+)\.\s`)
	reHeading          = regexp.MustCompile(`^#{1,6}\s`)
	// ![alt](url), optionally followed by {style} or {style|width|height}
	reImg     = regexp.MustCompile(`\!\[(.*?)\]\((.*?)\)(?:\{[^}]*\})?`)
	reImgLine = regexp.MustCompile(`^\!\[(.*?)\]\((.*?)\)(?:\{[^}]*\})?$`)
)

// Ellipsis is appended to summaries that were cut short.
const Ellipsis = "…"

// Summary returns the leading prose of md as plain text, cut to maxWords
// words. Headings, fenced code, rules, tables and standalone images are
// skipped. maxWords <= 0 keeps every word.
func Summary(md string, maxWords int) string {
	var words []string
	inCode := false
	for _, raw := range strings.Split(md, "\n") {
		line := strings.TrimSpace(strings.TrimRight(raw, "\r"))
		if strings.HasPrefix(line, "```") {
			inCode = !inCode
			continue
		}
		if inCode || line == "" || skipBlock(line) {
			continue
		}
		words = append(words, strings.Fields(PlainInline(blockText(line)))...)
		if maxWords > 0 && len(words) > maxWords {
			break
		}
	}
	if maxWords > 0 && len(words) > maxWords {
		return strings.Join(words[:maxWords], " ") + Ellipsis
	}
	return strings.Join(words, " ")
}

func skipBlock(line string) bool {
	switch {
	case strings.HasPrefix(line, "---"),
		strings.HasPrefix(line, "|"),
		reHeading.MatchString(line),
		reImgLine.MatchString(line):
		return true
	}
	return false
}

// blockText drops list and quote markers from a line.
func blockText(line string) string {
	switch {
	case strings.HasPrefix(line, "- "), strings.HasPrefix(line, "> "):
		return line[2:]
	case reOrderedList.MatchString(line):
		return reOrderedList.ReplaceAllString(line, "")
	}
	return line
}

// PlainInline strips inline formatting (bold, italic, code, links, images)
// from s. Links and images keep their text.
func PlainInline(s string) string {
	s = reImg.ReplaceAllString(s, "$1")
	s = reLink.ReplaceAllString(s, "$1")
	// Code spans are swapped for placeholders so emphasis markers inside
	// backticks survive.
	var codeSpans []string
	s = reInlineCode.ReplaceAllStringFunc(s, func(m string) string {
		match := reInlineCode.FindStringSubmatch(m)
		placeholder := "\x00IC" + strconv.Itoa(len(codeSpans)) + "\x00"
		codeSpans = append(codeSpans, match[1])
		return placeholder
	})
	s = reBold.ReplaceAllString(s, "$1")
	s = reBoldUnderscore.ReplaceAllString(s, "$1")
	s = reItalic.ReplaceAllString(s, "$1")
	s = reItalicUnderscore.ReplaceAllString(s, "$1")
	for i, code := range codeSpans {
		s = strings.Replace(s, "\x00IC"+strconv.Itoa(i)+"\x00", code, 1)
	}
	return s
}
