package htmlutil

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, raw string) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestBlockText(t *testing.T) {
	doc := parse(t, `<html><body>
<p> first paragraph </p>
<p></p>
<div><span>nested</span> text</div>
</body></html>`)

	got := BlockText(doc.Find("body"))
	require.Equal(t, "first paragraph\nnested\ntext", got)
}

func TestBlockTextEmpty(t *testing.T) {
	doc := parse(t, `<html><body><div>   </div></body></html>`)
	require.Equal(t, "", BlockText(doc.Find("div")))
}

func TestStrippedText(t *testing.T) {
	doc := parse(t, `<html><body><a>  Intro   to
Testing </a></body></html>`)
	require.Equal(t, "Intro to Testing", StrippedText(doc.Find("a")))
}

func TestGetText(t *testing.T) {
	doc := parse(t, `<html><body><p>a<b>b</b>c</p></body></html>`)
	require.Equal(t, "abc", GetText(doc.Find("p").Nodes[0]))
}
