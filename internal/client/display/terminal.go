package display

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"golang.org/x/net/html"
)

// Terminal prints status element updates as plain text lines.
type Terminal struct {
	mu sync.Mutex
	w  io.Writer
}

func NewTerminal(w io.Writer) *Terminal {
	return &Terminal{w: w}
}

func (t *Terminal) SetHTML(id, fragment string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.w, "[%s] %s\n", id, PlainText(fragment))
}

func (t *Terminal) SetAction(id, action string) {}

// PlainText flattens an HTML fragment for terminal output. Links keep their
// target in parentheses, line breaks become " / " and images their alt text.
func PlainText(fragment string) string {
	nodes, err := html.ParseFragment(strings.NewReader(fragment), &html.Node{
		Type: html.ElementNode, Data: "body",
	})
	if err != nil {
		return fragment
	}
	var sb strings.Builder
	for _, n := range nodes {
		writeText(&sb, n)
	}
	return strings.TrimSpace(sb.String())
}

func writeText(sb *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		sb.WriteString(n.Data)
		return
	case html.ElementNode:
		switch n.Data {
		case "br":
			sb.WriteString(" / ")
			return
		case "img":
			sb.WriteString(attr(n, "alt"))
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeText(sb, c)
	}
	if n.Type == html.ElementNode && n.Data == "a" {
		if href := attr(n, "href"); href != "" {
			sb.WriteString(" (" + href + ")")
		}
	}
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
