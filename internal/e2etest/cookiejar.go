package e2etest

import (
	"github.com/myrjola/veritruth/internal/errors"
	"net/http"
	"net/http/cookiejar"
	"net/url"
)

// plainHTTPCookieJar accepts Secure cookies from plain HTTP servers such as the local test server. The session
// and CSRF cookies are Secure, and the standard jar would never send them back over http://.
type plainHTTPCookieJar struct {
	jar *cookiejar.Jar
}

func newPlainHTTPCookieJar() (*plainHTTPCookieJar, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, errors.Wrap(err, "new cookie jar")
	}
	return &plainHTTPCookieJar{jar: jar}, nil
}

// SetCookies clears the Secure flag only for http URLs. Deployments served over HTTPS keep it.
func (j *plainHTTPCookieJar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	if u.Scheme == "http" {
		for _, cookie := range cookies {
			cookie.Secure = false
		}
	}
	j.jar.SetCookies(u, cookies)
}

func (j *plainHTTPCookieJar) Cookies(u *url.URL) []*http.Cookie {
	return j.jar.Cookies(u)
}
