package grader

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func crawlServer(t *testing.T, body string) *httptest.Server {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, body)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestCrawl(t *testing.T) {
	service := newTestService(t, &fakeScorer{}, 1)
	server := crawlServer(t, `<html><head><title>Announcements</title></head><body>
<h1>Week 3</h1>
<p>Midterm moved to Friday.</p>
</body></html>`)

	result, err := service.Crawl(context.Background(), server.URL, "", "MoodleSession=abc")
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, server.URL, result.Url)
	require.Equal(t, http.StatusOK, result.StatusCode)
	require.Equal(t, "Announcements", result.Title)
	require.Contains(t, result.Content, "Week 3")
	require.Contains(t, result.Content, "Midterm moved to Friday.")
}

func TestCrawlWithSelector(t *testing.T) {
	service := newTestService(t, &fakeScorer{}, 1)
	server := crawlServer(t, `<html><body>
<p class="keep">first</p>
<p>skipped</p>
<p class="keep">second</p>
</body></html>`)

	result, err := service.Crawl(context.Background(), server.URL, "p.keep", "")
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, "first\nsecond", result.Content)
}

func TestCrawlInvalidSelector(t *testing.T) {
	service := newTestService(t, &fakeScorer{}, 1)
	server := crawlServer(t, `<html><body><p>anything</p></body></html>`)

	_, err := service.Crawl(context.Background(), server.URL, "p[", "")
	require.Error(t, err)
}

func TestCrawlContentLimit(t *testing.T) {
	service := newTestService(t, &fakeScorer{}, 1)
	long := strings.Repeat("x", crawlContentLimit+500)
	server := crawlServer(t, "<html><body><p>"+long+"</p></body></html>")

	result, err := service.Crawl(context.Background(), server.URL, "", "")
	if err != nil {
		t.Fatal(err)
	}
	require.Len(t, result.Content, crawlContentLimit)
}
