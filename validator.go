package main

import (
	"net/url"
	"strings"
)

// Hosts accepted for incoming video URLs. Matching is exact on the
// lower-cased host, never suffix or substring.
var allowedHosts = map[string]struct{}{
	"www.youtube.com": {},
	"youtube.com":     {},
	"youtu.be":        {},
}

const playlistMarker = "&list"

// validateURL reports whether raw is an acceptable video page URL and
// returns its canonical form. Unparsable input is simply invalid.
//
// Canonicalization cuts the string at the first "&list" occurrence to drop
// playlist context. This is a plain substring cut: a URL carrying "&list"
// inside an encoded parameter value gets mis-truncated. Known limitation.
func validateURL(raw string) (string, bool) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", false
	}
	if _, ok := allowedHosts[strings.ToLower(u.Host)]; !ok {
		return "", false
	}
	if i := strings.Index(raw, playlistMarker); i != -1 {
		raw = raw[:i]
	}
	return raw, true
}
