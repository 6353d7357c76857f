package grader

import (
	"context"
	"strings"

	"gradeassist-backend/lib/htmlutil"
	"gradeassist-backend/lib/scrapers/moodle/core"
	"gradeassist-backend/lib/scrapers/moodle/grading"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// responses are capped so automation callers don't choke on huge pages
const crawlContentLimit = 5000

type CrawlResult struct {
	Url        string
	StatusCode int
	Content    string
	Title      string
}

// Crawl fetches an arbitrary page with the caller's cookie and returns
// its text content, optionally filtered by a CSS selector.
func (s Service) Crawl(ctx context.Context, rawUrl, selector, cookie string) (CrawlResult, error) {
	ctx, span := tracer.Start(ctx, "grader:Crawl")
	defer span.End()
	span.SetAttributes(attribute.String("url", rawUrl))

	client, err := core.NewClient(core.ClientOptions{
		BaseUrl: rawUrl,
		Cookie:  cookie,
	})
	if err != nil {
		return CrawlResult{}, err
	}

	res, err := client.Fetch(ctx, rawUrl)
	if err != nil {
		span.SetStatus(codes.Error, "failed to fetch")
		return CrawlResult{}, err
	}
	doc, err := document(res.Body())
	if err != nil {
		span.SetStatus(codes.Error, "failed to parse html")
		return CrawlResult{}, err
	}

	var content string
	if selector != "" {
		matcher, err := cascadia.Compile(selector)
		if err != nil {
			return CrawlResult{}, err
		}
		var chunks []string
		doc.FindMatcher(matcher).Each(func(i int, sel *goquery.Selection) {
			text := htmlutil.StrippedText(sel)
			if text != "" {
				chunks = append(chunks, text)
			}
		})
		content = strings.Join(chunks, "\n")
	} else {
		content = htmlutil.BlockText(doc.Selection)
	}

	runes := []rune(content)
	if len(runes) > crawlContentLimit {
		content = string(runes[:crawlContentLimit])
	}

	return CrawlResult{
		Url:        rawUrl,
		StatusCode: res.StatusCode(),
		Content:    content,
		Title:      grading.PageTitle(doc),
	}, nil
}
