package e2etest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"github.com/PuerkitoBio/goquery"
	"github.com/justinas/nosurf"
	"github.com/myrjola/veritruth/internal/errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	neturl "net/url"
	"strings"
	"time"
)

type Client struct {
	client *http.Client
	url    string
}

// NewClient creates a session-aware HTTP client for the server at url.
func NewClient(url string) (*Client, error) {
	jar, err := newPlainHTTPCookieJar()
	if err != nil {
		return nil, errors.Wrap(err, "create cookie jar")
	}
	return &Client{
		client: &http.Client{Jar: jar}, //nolint:exhaustruct // defaults are fine for tests
		url:    url,
	}, nil
}

// WaitForReady calls the specified endpoint until it gets a HTTP 200 Success
// response or until the context is cancelled or the 1-second timeout is reached.
func (c *Client) WaitForReady(ctx context.Context, urlPath string) error {
	timeout := 1 * time.Second
	startTime := time.Now()
	var (
		err  error
		req  *http.Request
		resp *http.Response
	)
	for {
		if req, err = c.newRequestWithContext(ctx, http.MethodGet, urlPath, nil); err != nil {
			return errors.Wrap(err, "create request")
		}

		if resp, err = c.client.Do(req); err == nil {
			if err = resp.Body.Close(); err != nil {
				return errors.Wrap(err, "close response body")
			}
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		select {
		case <-ctx.Done():
			return errors.Wrap(ctx.Err(), "context cancelled")
		default:
			if time.Since(startTime) >= timeout {
				return errors.New("timeout waiting for endpoint to be ready")
			}
			time.Sleep(100 * time.Millisecond) //nolint:mnd // 100ms
		}
	}
}

// Get fetches a URL and returns the response.
func (c *Client) Get(ctx context.Context, urlPath string) (*http.Response, error) {
	var (
		err  error
		req  *http.Request
		resp *http.Response
	)
	if req, err = c.newRequestWithContext(ctx, http.MethodGet, urlPath, nil); err != nil {
		return nil, errors.Wrap(err, "create request with context")
	}
	if resp, err = c.client.Do(req); err != nil {
		return nil, errors.Wrap(err, "do request")
	}
	return resp, nil
}

// GetDoc fetches a URL and returns a goquery document.
func (c *Client) GetDoc(ctx context.Context, urlPath string) (*goquery.Document, error) {
	var (
		err  error
		resp *http.Response
	)
	if resp, err = c.Get(ctx, urlPath); err != nil {
		return nil, errors.Wrap(err, "client get")
	}
	return documentFromResponse(resp)
}

func documentFromResponse(resp *http.Response) (*goquery.Document, error) {
	defer func() {
		_ = resp.Body.Close()
	}()
	if http.StatusOK != resp.StatusCode {
		return nil, errors.New("unexpected status code", slog.Int("status", resp.StatusCode))
	}
	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "create document from reader")
	}
	return doc, nil
}

// newRequestWithContext creates a new HTTP request to the server that respects the given context.
func (c *Client) newRequestWithContext(
	ctx context.Context,
	method, urlPath string,
	body io.Reader,
) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.url+urlPath, body)
	if err != nil {
		return nil, errors.Wrap(err, "create request")
	}
	return req, nil
}

func (c *Client) extractCSRFToken(doc *goquery.Document, formActionURLPath string) (string, error) {
	formSelector := fmt.Sprintf("form[action='%s']", formActionURLPath)
	form := doc.Find(formSelector)
	csrfToken, ok := form.Find("input[name=csrf_token]").Attr("value")
	if !ok {
		return "", errors.New("csrf_token not found in form", slog.String("action", formActionURLPath))
	}
	return csrfToken, nil
}

// SubmitForm submits a form at formUrlPath with action formActionUrlPath and returns the response document.
// The redirect after the post is followed.
func (c *Client) SubmitForm(
	ctx context.Context,
	formURLPath string,
	formActionURLPath string,
	values neturl.Values,
) (*goquery.Document, error) {
	var (
		doc *goquery.Document
		err error
	)
	if doc, err = c.GetDoc(ctx, formURLPath); err != nil {
		return nil, errors.Wrap(err, "get document")
	}

	// Extract CSRF token from the form.
	var csrfToken string
	if csrfToken, err = c.extractCSRFToken(doc, formActionURLPath); err != nil {
		return nil, errors.Wrap(err, "extract CSRF token")
	}

	// Build form data
	formData := neturl.Values{}
	for key, vals := range values {
		formData[key] = append([]string(nil), vals...)
	}
	formData.Set("csrf_token", csrfToken)
	data := strings.NewReader(formData.Encode())

	// Submit the form
	var req *http.Request
	if req, err = c.newRequestWithContext(ctx, http.MethodPost, formActionURLPath, data); err != nil {
		return nil, errors.Wrap(err, "new request with context")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	var resp *http.Response
	if resp, err = c.client.Do(req); err != nil {
		return nil, errors.Wrap(err, "do request")
	}
	return documentFromResponse(resp)
}

// UploadFile submits content as the multipart file field of the form with action formActionURLPath found at
// formURLPath and returns the response document.
func (c *Client) UploadFile(
	ctx context.Context,
	formURLPath string,
	formActionURLPath string,
	field, filename string,
	content []byte,
) (*goquery.Document, error) {
	doc, err := c.GetDoc(ctx, formURLPath)
	if err != nil {
		return nil, errors.Wrap(err, "get document")
	}
	var csrfToken string
	if csrfToken, err = c.extractCSRFToken(doc, formActionURLPath); err != nil {
		return nil, errors.Wrap(err, "extract CSRF token")
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if err = mw.WriteField("csrf_token", csrfToken); err != nil {
		return nil, errors.Wrap(err, "write csrf field")
	}
	var fw io.Writer
	if fw, err = mw.CreateFormFile(field, filename); err != nil {
		return nil, errors.Wrap(err, "create form file")
	}
	if _, err = fw.Write(content); err != nil {
		return nil, errors.Wrap(err, "write form file")
	}
	if err = mw.Close(); err != nil {
		return nil, errors.Wrap(err, "close multipart writer")
	}

	var req *http.Request
	if req, err = c.newRequestWithContext(ctx, http.MethodPost, formActionURLPath, &body); err != nil {
		return nil, errors.Wrap(err, "new request with context")
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set(nosurf.HeaderName, csrfToken)
	var resp *http.Response
	if resp, err = c.client.Do(req); err != nil {
		return nil, errors.Wrap(err, "do request")
	}
	return documentFromResponse(resp)
}

// PostJSON posts payload encoded as JSON to urlPath. The caller closes the response body.
func (c *Client) PostJSON(ctx context.Context, urlPath string, payload any) (*http.Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrap(err, "marshal payload")
	}
	var req *http.Request
	if req, err = c.newRequestWithContext(ctx, http.MethodPost, urlPath, bytes.NewReader(body)); err != nil {
		return nil, errors.Wrap(err, "new request with context")
	}
	req.Header.Set("Content-Type", "application/json")
	var resp *http.Response
	if resp, err = c.client.Do(req); err != nil {
		return nil, errors.Wrap(err, "do request")
	}
	return resp, nil
}
