// Package session provides the in-memory cookie store shared by all
// requests of a single run.
package session

import (
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/net/publicsuffix"
)

// Jar is an http.CookieJar that, besides storing cookies for sending
// them back, keeps track of the latest accepted value of every cookie
// name so that the whole session can be reported at the end.
type Jar struct {
	jar *cookiejar.Jar

	mu     sync.Mutex
	values map[string]string
	now    func() time.Time
}

// NewJar returns an empty Jar. Domain and path scoping is left to
// net/http/cookiejar using the public suffix list.
func NewJar() (*Jar, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, err
	}
	return &Jar{
		jar:    jar,
		values: map[string]string{},
		now:    time.Now,
	}, nil
}

func (j *Jar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	j.jar.SetCookies(u, cookies)

	j.mu.Lock()
	defer j.mu.Unlock()
	now := j.now()
	for _, c := range cookies {
		if c.Name == "" {
			continue
		}
		if c.MaxAge < 0 || (!c.Expires.IsZero() && !c.Expires.After(now)) {
			delete(j.values, c.Name)
			continue
		}
		if j.holds(u, c) {
			j.values[c.Name] = c.Value
		}
	}
}

// holds reports whether the underlying jar accepted c when it was set
// for u. Cookies rejected there, eg. for a foreign domain, are never sent
// back and must not show up in the snapshot either.
func (j *Jar) holds(u *url.URL, c *http.Cookie) bool {
	check := &url.URL{Scheme: "https", Host: u.Host, Path: u.Path}
	if strings.HasPrefix(c.Path, "/") {
		check.Path = c.Path
	}
	for _, stored := range j.jar.Cookies(check) {
		if stored.Name == c.Name && stored.Value == c.Value {
			return true
		}
	}
	return false
}

func (j *Jar) Cookies(u *url.URL) []*http.Cookie {
	return j.jar.Cookies(u)
}

// Snapshot returns a copy of all cookie names and values seen so far.
func (j *Jar) Snapshot() map[string]string {
	j.mu.Lock()
	defer j.mu.Unlock()
	s := make(map[string]string, len(j.values))
	for k, v := range j.values {
		s[k] = v
	}
	return s
}
