package core

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"gradeassist-backend/lib/telemetry"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
)

var ErrLoginFailed = fmt.Errorf("failed to login to your account")

type LoginOptions struct {
	// absolute url of the portal's login form, usually /login/index.php
	Url      string
	Username string
	Password string
}

type LoginResult struct {
	StatusCode int
	// the session cookies after login, serialized in Cookie header form
	Cookie   string
	FinalUrl string
}

// Login simulates the portal's form-based login to capture a session
// cookie. The portal requires a logintoken scraped from the form before
// credentials are accepted.
func Login(ctx context.Context, opts LoginOptions) (LoginResult, error) {
	loginUrl, err := url.Parse(opts.Url)
	if err != nil {
		return LoginResult{}, err
	}

	client := resty.New()
	client.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	jar, err := cookiejar.New(nil)
	if err != nil {
		return LoginResult{}, err
	}
	client.SetCookieJar(jar)
	client.SetTimeout(time.Second * 30)
	telemetry.InstrumentResty(client, "scrapers/moodle/login")

	res, err := client.R().
		SetContext(ctx).
		Get(opts.Url)
	if err != nil {
		return LoginResult{}, &FetchError{Url: opts.Url, Err: err}
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		return LoginResult{}, err
	}

	logintoken := doc.Find("form input[name=logintoken]").AttrOr("value", "")
	if logintoken == "" {
		return LoginResult{}, fmt.Errorf("%w: could not find login token", ErrLoginFailed)
	}

	res, err = client.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"username":   opts.Username,
			"password":   opts.Password,
			"logintoken": logintoken,
			"anchor":     "",
		}).
		Post(opts.Url)
	if err != nil {
		return LoginResult{}, &FetchError{Url: opts.Url, Err: err}
	}

	cookie := strings.Builder{}
	for i, c := range jar.Cookies(loginUrl) {
		if i > 0 {
			cookie.WriteString("; ")
		}
		cookie.WriteString(fmt.Sprintf("%s=%s", c.Name, c.Value))
	}

	finalUrl := opts.Url
	if res.RawResponse != nil && res.RawResponse.Request != nil {
		finalUrl = res.RawResponse.Request.URL.String()
	}

	return LoginResult{
		StatusCode: res.StatusCode(),
		Cookie:     cookie.String(),
		FinalUrl:   finalUrl,
	}, nil
}
