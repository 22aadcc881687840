package knowledge

import (
	"crypto/sha1"
	"encoding/hex"
	"net/url"
	"strings"
	"time"
)

// trackingParams are stripped during URL normalization so the same article
// reached through different campaigns deduplicates to one entry.
var trackingParams = map[string]struct{}{
	"utm_source":   {},
	"utm_medium":   {},
	"utm_campaign": {},
	"utm_term":     {},
	"utm_content":  {},
	"ref":          {},
	"fbclid":       {},
	"gclid":        {},
}

// NormalizeURL canonicalizes a URL for deduplication: lowercase scheme and
// host, tracking query params and fragment removed, trailing slash trimmed.
// Unparseable input is returned trimmed as-is.
func NormalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw
	}
	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""
	q := u.Query()
	for k := range q {
		if _, ok := trackingParams[strings.ToLower(k)]; ok {
			q.Del(k)
		}
	}
	u.RawQuery = q.Encode()
	u.Path = strings.TrimRight(u.Path, "/")
	return u.String()
}

// StableID derives a content-stable identifier from an item's identifying
// fields. Two fetches of the same entry, guid present or not, hash the same.
func StableID(guid, title, link string, published time.Time) string {
	h := sha1.New()
	h.Write([]byte(strings.TrimSpace(guid)))
	h.Write([]byte{0})
	h.Write([]byte(strings.ToLower(strings.TrimSpace(title))))
	h.Write([]byte{0})
	h.Write([]byte(NormalizeURL(link)))
	h.Write([]byte{0})
	if !published.IsZero() {
		h.Write([]byte(published.UTC().Format(time.RFC3339)))
	}
	return hex.EncodeToString(h.Sum(nil))[:16]
}
