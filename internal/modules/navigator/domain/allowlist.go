package domain

import (
	"net/url"
	"strings"
)

// AllowList decides which locations the navigator may rewrite.
type AllowList struct {
	// Domain admits itself and every subdomain.
	Domain string
	// AllowLoopback admits http://localhost, http://127.0.0.1 and http://[::1].
	AllowLoopback bool
	AllowFile     bool
}

var loopbackHosts = map[string]struct{}{
	"localhost": {},
	"127.0.0.1": {},
	"::1":       {},
}

func (a AllowList) Allows(u *url.URL) bool {
	if u == nil {
		return false
	}
	scheme := strings.ToLower(u.Scheme)
	if scheme == "file" {
		return a.AllowFile
	}
	host := strings.ToLower(strings.TrimSuffix(u.Hostname(), "."))
	if scheme == "http" && a.AllowLoopback {
		if _, ok := loopbackHosts[host]; ok {
			return true
		}
	}
	domain := strings.ToLower(strings.Trim(a.Domain, "."))
	if domain == "" || host == "" {
		return false
	}
	return host == domain || strings.HasSuffix(host, "."+domain)
}
