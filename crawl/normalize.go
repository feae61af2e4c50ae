package crawl

import (
	"net/url"
	"strings"
)

// NormalizeURL canonicalizes a URL for visited-set deduplication: the scheme
// and host are lowercased, the default port is stripped, the fragment is
// dropped, and a trailing slash is removed. URLs differing only in those
// respects address the same page and must not be crawled twice.
func NormalizeURL(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""

	if host, port, ok := strings.Cut(u.Host, ":"); ok {
		if (u.Scheme == "http" && port == "80") || (u.Scheme == "https" && port == "443") {
			u.Host = host
		}
	}

	if strings.HasSuffix(u.Path, "/") {
		u.Path = strings.TrimRight(u.Path, "/")
	}

	return u.String(), nil
}

// SameOrigin reports whether two already-normalized URLs share a host.
func SameOrigin(a, b string) bool {
	ua, err := url.Parse(a)
	if err != nil {
		return false
	}
	ub, err := url.Parse(b)
	if err != nil {
		return false
	}
	return ua.Host == ub.Host
}
