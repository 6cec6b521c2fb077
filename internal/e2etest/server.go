package e2etest

import (
	"context"
	"fmt"
	"github.com/myrjola/veritruth/internal/errors"
	"github.com/myrjola/veritruth/internal/logging"
	"io"
	"log/slog"
)

type Server struct {
	url    string
	client *Client
}

// LogAddrKey is the key used to log the address the server is listening on.
const LogAddrKey = "addr"

// StartServer starts the test server, waits for it to be ready, and return the server URL for testing.
//
// logSink is the writer to which the server logs are written. You usually want to use [io.Discard].
// lookupEnv is a function that returns the value of an environment variable. It has same signature as [os.LookupEnv].
// run is the function that starts the server. The server is expected to log the address
// it listens on with the key [LogAddrKey].
func StartServer(
	ctx context.Context,
	logSink io.Writer,
	lookupEnv func(string) (string, bool),
	run func(context.Context, *slog.Logger, func(string) (string, bool)) error,
) (*Server, error) {
	ctx, cancel := context.WithCancelCause(ctx)

	// We need to grab the dynamically allocated port from the log output.
	addrCh := make(chan string, 1)
	logger := slog.New(logging.NewContextHandler(slog.NewTextHandler(logSink, &slog.HandlerOptions{
		AddSource: false,
		Level:     slog.LevelDebug,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == LogAddrKey {
				select {
				case addrCh <- a.Value.String():
				default:
				}
			}
			return a
		},
	})))

	// Start the server and wait for it to be ready.
	go func() {
		if err := run(ctx, logger, lookupEnv); err != nil {
			cancel(err)
		}
	}()
	select {
	case <-ctx.Done():
		return nil, errors.Wrap(context.Cause(ctx), "server stopped before it was ready")
	case addr := <-addrCh:
		var (
			err    error
			client *Client
		)
		serverURL := fmt.Sprintf("http://%s", addr)
		if client, err = NewClient(serverURL); err != nil {
			return nil, errors.Wrap(err, "new client")
		}
		if err = client.WaitForReady(ctx, "/api/healthy"); err != nil {
			return nil, errors.Wrap(err, "wait for ready")
		}
		return &Server{
			url:    serverURL,
			client: client,
		}, nil
	}
}

// Client returns a client with its own cookie jar bound to the first browser session.
func (s *Server) Client() *Client {
	return s.client
}

// NewClient returns a client with an empty cookie jar, which acts as a separate browser session.
func (s *Server) NewClient() (*Client, error) {
	return NewClient(s.url)
}

func (s *Server) URL() string {
	return s.url
}
