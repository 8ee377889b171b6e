package renderer

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// wordsPerMinute 는 읽기 시간 추정에 쓰는 평균 읽기 속도다.
const wordsPerMinute = 200

// PlainText extracts the readable text of rendered HTML. Code blocks and
// markup are dropped; block boundaries collapse to single spaces.
func PlainText(htmlStr string) (string, error) {
	doc, err := html.Parse(strings.NewReader(htmlStr))
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "pre", "button":
				return
			}
		}
		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				if sb.Len() > 0 {
					sb.WriteByte(' ')
				}
				sb.WriteString(text)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return sb.String(), nil
}

// ReadingTime estimates reading minutes for the given plain text.
// Never returns less than 1 for non-empty text.
func ReadingTime(text string) int {
	words := len(strings.Fields(text))
	if words == 0 {
		return 0
	}
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}

// Excerpt returns text truncated to max runes on a word boundary, with an
// ellipsis when truncation happened.
func Excerpt(text string, max int) string {
	if utf8.RuneCountInString(text) <= max {
		return text
	}
	rs := []rune(text)
	cut := string(rs[:max])
	if idx := strings.LastIndexByte(cut, ' '); idx > 0 {
		cut = cut[:idx]
	}
	return strings.TrimSpace(cut) + "…"
}
