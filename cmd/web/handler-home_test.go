package main

import (
	"context"
	"github.com/myrjola/veritruth/internal/testhelpers"
	"github.com/myrjola/veritruth/internal/workspace"
	"github.com/stretchr/testify/require"
	"net/http"
	"net/url"
	"strings"
	"testing"
)

func Test_application_home(t *testing.T) {
	ctx := context.Background()
	server := startTestServer(t, testhelpers.NewStubEngine(fakeVerdict()))
	client := server.Client()

	resp, err := client.Get(ctx, "/")
	require.NoError(t, err)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	csp := resp.Header.Get("Content-Security-Policy")
	require.Contains(t, csp, "script-src 'nonce-")
	require.Contains(t, csp, "img-src 'self' data:")

	doc, err := client.GetDoc(ctx, "/")
	require.NoError(t, err)

	require.Equal(t, 1, doc.Find("form[action='/analyze'] textarea[name=text]").Length())
	require.Equal(t, 1, doc.Find("form[action='/upload'] input[type=file][name=file][accept='image/*']").Length())
	require.Equal(t, 1, doc.Find("form[action='/camera/open']").Length())
	require.Equal(t, len(workspace.ExamplePrompts), doc.Find("#examples button").Length())
	require.Equal(t, workspace.ExamplePrompts[0], strings.TrimSpace(doc.Find("#examples button").First().Text()))
	require.Zero(t, doc.Find("#result").Length())
	require.Zero(t, doc.Find("#history").Length())
	require.Zero(t, doc.Find(".error").Length())
	require.Zero(t, doc.Find("dialog#camera").Length())

	nonce, ok := doc.Find("script[src='/static/app.js']").Attr("nonce")
	require.True(t, ok)
	require.NotEmpty(t, nonce)
}

func Test_application_static(t *testing.T) {
	ctx := context.Background()
	server := startTestServer(t, testhelpers.NewStubEngine(fakeVerdict()))

	for _, path := range []string{"/static/app.js", "/static/app.css"} {
		resp, err := server.Client().Get(ctx, path)
		require.NoError(t, err)
		_ = resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode, path)
		require.Contains(t, resp.Header.Get("Cache-Control"), "immutable")
	}
}

func Test_application_notFound(t *testing.T) {
	server := startTestServer(t, testhelpers.NewStubEngine(fakeVerdict()))

	resp, err := server.Client().Get(context.Background(), "/does-not-exist")
	require.NoError(t, err)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func Test_application_csrf(t *testing.T) {
	server := startTestServer(t, testhelpers.NewStubEngine(fakeVerdict()))

	resp, err := http.PostForm(server.URL()+"/analyze", url.Values{"text": {"claim"}})
	require.NoError(t, err)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func Test_application_useExample(t *testing.T) {
	ctx := context.Background()
	server := startTestServer(t, testhelpers.NewStubEngine(fakeVerdict()))

	doc, err := server.Client().SubmitForm(ctx, "/", "/examples/2", nil)
	require.NoError(t, err)
	require.Equal(t, workspace.ExamplePrompts[2], doc.Find("textarea[name=text]").Text())
}

func Test_application_sessionsAreIsolated(t *testing.T) {
	ctx := context.Background()
	server := startTestServer(t, testhelpers.NewStubEngine(fakeVerdict()))

	_, err := server.Client().SubmitForm(ctx, "/", "/analyze", url.Values{"text": {"claim"}})
	require.NoError(t, err)

	other, err := server.NewClient()
	require.NoError(t, err)
	doc, err := other.GetDoc(ctx, "/")
	require.NoError(t, err)
	require.Zero(t, doc.Find("#result").Length())
	require.Zero(t, doc.Find("#history").Length())
}
