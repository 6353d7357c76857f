package core

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/url"
	"time"

	"gradeassist-backend/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
)

// FetchError wraps a transport-level failure or a non-2xx status from
// the portal. The pipeline never retries; the first failure aborts the
// whole invocation.
type FetchError struct {
	Url        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %v", e.Url, e.Err)
	}
	return fmt.Sprintf("fetch %s: unexpected status %d", e.Url, e.StatusCode)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Client issues authenticated GET requests against portal pages using a
// caller-supplied session cookie. It keeps no state between calls.
type Client struct {
	BaseUrl *url.URL
	Http    *resty.Client
}

type ClientOptions struct {
	BaseUrl string
	// opaque session cookie, forwarded verbatim as the Cookie header
	Cookie string
}

func NewClient(opts ClientOptions) (*Client, error) {
	baseUrl, err := url.Parse(opts.BaseUrl)
	if err != nil {
		return nil, err
	}

	client := resty.New()
	client.SetBaseURL(opts.BaseUrl)
	// some self-hosted portals run on self-signed certificates, this
	// deliberately weakens transport trust to stay compatible with them
	client.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)

	client.SetHeader("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36")
	if opts.Cookie != "" {
		client.SetHeader("cookie", opts.Cookie)
	}
	client.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(baseUrl.Hostname()))
	client.SetTimeout(time.Second * 30)

	telemetry.InstrumentResty(client, "scrapers/moodle/http")

	c := &Client{
		BaseUrl: baseUrl,
		Http:    client,
	}
	return c, nil
}

// Fetch gets a page, target may be a path relative to the base url or
// an absolute url. A transport failure or non-2xx status comes back as
// a *FetchError.
func (c *Client) Fetch(ctx context.Context, target string) (*resty.Response, error) {
	res, err := c.Http.R().
		SetContext(ctx).
		Get(target)
	if err != nil {
		return nil, &FetchError{Url: target, Err: err}
	}
	if !res.IsSuccess() {
		return nil, &FetchError{Url: target, StatusCode: res.StatusCode()}
	}
	return res, nil
}
