package extract

import (
	"io"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

var (
	spaceRunRE = regexp.MustCompile(`[ \t\f\v\p{Zs}]+`)
	blankRunRE = regexp.MustCompile(`\n{3,}`)
	htmlMarkRE = regexp.MustCompile(`(?i)<\s*(?:!doctype|html|head|body|div|p|span|article|section|main|ul|li|a|h[1-6]|time|img)\b[^>]*>`)
)

// breakTags end a line of text when they close. br breaks when it opens.
var breakTags = map[string]bool{
	"p": true, "div": true, "li": true, "tr": true, "article": true, "section": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
}

// IsHTML reports whether page looks like an HTML document or fragment.
func IsHTML(page string) bool {
	return htmlMarkRE.MatchString(page)
}

// Clean strips markup from s, unescapes HTML entities and normalizes
// whitespace. Line structure survives: each line is trimmed and runs of
// blank lines collapse to a single paragraph break.
func Clean(s string) string {
	if strings.ContainsRune(s, '<') {
		s = stripMarkup(s)
	} else {
		s = html.UnescapeString(s)
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(spaceRunRE.ReplaceAllString(line, " "))
	}
	s = strings.Join(lines, "\n")
	s = blankRunRE.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

// stripMarkup returns the text tokens of s with entities unescaped.
// Anything the tokenizer does not read as a tag, such as "<3" or "->",
// stays as text. Script and style bodies and comments are dropped.
func stripMarkup(s string) string {
	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(s))
	skip := ""
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if z.Err() != io.EOF {
				return s
			}
			return b.String()
		case html.TextToken:
			if skip == "" {
				b.Write(z.Text())
			}
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			switch tag := string(name); {
			case tag == "br":
				b.WriteByte('\n')
			case (tag == "script" || tag == "style") && tt == html.StartTagToken:
				skip = tag
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			tag := string(name)
			if tag == skip {
				skip = ""
			} else if breakTags[tag] {
				b.WriteByte('\n')
			}
		}
	}
}

// Truncate returns s cut to at most limit characters, with marker appended
// when anything was removed.
func Truncate(s string, limit int, marker string) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	n := 0
	for i := range s {
		if n == limit {
			return s[:i] + marker
		}
		n++
	}
	return s
}

// runeFloor moves i back to the start of the rune containing it.
func runeFloor(s string, i int) int {
	if i <= 0 {
		return 0
	}
	if i >= len(s) {
		return len(s)
	}
	for i > 0 && !utf8.RuneStart(s[i]) {
		i--
	}
	return i
}

// runeCeil moves i forward to the start of the next rune boundary.
func runeCeil(s string, i int) int {
	if i <= 0 {
		return 0
	}
	if i >= len(s) {
		return len(s)
	}
	for i < len(s) && !utf8.RuneStart(s[i]) {
		i++
	}
	return i
}
