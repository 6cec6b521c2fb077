package main

import (
	"context"
	"fmt"
	"github.com/myrjola/veritruth/internal/e2etest"
	"github.com/myrjola/veritruth/internal/errors"
	"github.com/myrjola/veritruth/internal/logging"
	"github.com/myrjola/veritruth/internal/workspace"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"time"
)

// TestWorkspace loads the workspace and fills in an example claim without running an analysis.
func TestWorkspace(client *e2etest.Client) error {
	ctx := context.Background()
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second) //nolint:mnd // 10 seconds
	defer cancel()

	if err := client.WaitForReady(ctx, "/api/healthy"); err != nil {
		return errors.Wrap(err, "wait for ready")
	}
	doc, err := client.GetDoc(ctx, "/")
	if err != nil {
		return errors.Wrap(err, "get home")
	}
	if doc.Find("form#analyze-form").Length() != 1 {
		return errors.New("analyze form missing")
	}
	if doc, err = client.SubmitForm(ctx, "/", "/examples/0", url.Values{}); err != nil {
		return errors.Wrap(err, "use example")
	}
	text := strings.TrimSpace(doc.Find("textarea#text").Text())
	if text != workspace.ExamplePrompts[0] {
		return errors.New("example not applied", slog.String("text", text))
	}
	if _, err = client.SubmitForm(ctx, "/", "/clear", url.Values{}); err != nil {
		return errors.Wrap(err, "clear workspace")
	}
	return nil
}

func main() {
	loggerHandler := logging.NewContextHandler(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		AddSource:   false,
		Level:       slog.LevelDebug,
		ReplaceAttr: nil,
	}))
	logger := slog.New(loggerHandler)
	ctx := context.Background()

	if len(os.Args) != 2 { //nolint:mnd // we expect only hostname to be passed as argument.
		logger.LogAttrs(ctx, slog.LevelError, "usage: smoketest <hostname>")
		os.Exit(1)
	}

	var (
		hostname = os.Args[1]
		baseURL  = fmt.Sprintf("https://%s", hostname)
		client   *e2etest.Client
		err      error
	)
	ctx = logging.WithAttrs(ctx, slog.String("hostname", baseURL))

	if client, err = e2etest.NewClient(baseURL); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error creating client", errors.SlogError(err))
		os.Exit(1)
	}
	if err = TestWorkspace(client); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error testing workspace", errors.SlogError(err))
		os.Exit(1)
	}

	logger.LogAttrs(ctx, slog.LevelInfo, "Smoke test successful 🙌")
	os.Exit(0)
}
