package main

import (
	"net/http"
	"time"
)

const timeoutBody = `<!doctype html>
<html lang="en">
<head><title>Timeout</title></head>
<body>
<h1>Timeout</h1>
<p>The verification is taking longer than expected. It keeps running and its result shows up on the front page.</p>
<p><a href="/">Back to the front page</a></p>
</body>
</html>
`

// timeoutHandler responds with a 503 Service Unavailable error when the handler does not meet the deadline.
func timeoutHandler(h http.Handler, defaultTimeout time.Duration) http.Handler {
	// We want the timeout to be a little shorter than the server's write timeout so that the
	// timeout handler has a chance to respond before the server closes the connection.
	httpHandlerTimeout := defaultTimeout - 500*time.Millisecond //nolint:mnd // 500ms
	return http.TimeoutHandler(h, httpHandlerTimeout, timeoutBody)
}
