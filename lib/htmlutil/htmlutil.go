package htmlutil

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	child := node.FirstChild
	for child != nil {
		getTextRecursive(child, buffer)
		child = child.NextSibling
	}
}

// BlockText renders the text content of a selection with element
// boundaries converted to newlines. Every chunk is trimmed and empty
// chunks are dropped, so paragraph breaks survive as single newlines.
func BlockText(sel *goquery.Selection) string {
	var chunks []string
	for _, node := range sel.Nodes {
		collectTextChunks(node, &chunks)
	}
	return strings.Join(chunks, "\n")
}

func collectTextChunks(node *html.Node, chunks *[]string) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		text := strings.TrimSpace(node.Data)
		if text != "" {
			*chunks = append(*chunks, text)
		}
		return
	}
	child := node.FirstChild
	for child != nil {
		collectTextChunks(child, chunks)
		child = child.NextSibling
	}
}

// StrippedText is the whitespace-trimmed text of a selection with inner
// whitespace runs collapsed to a single space.
func StrippedText(sel *goquery.Selection) string {
	return strings.Join(strings.Fields(sel.Text()), " ")
}
