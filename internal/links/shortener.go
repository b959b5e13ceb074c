package links

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Provider is one external shortening endpoint. Providers are capability
// equivalent and tried in fixed order with a single attempt each.
type Provider struct {
	Name string
	// RequestURL builds the GET request for a long URL.
	RequestURL func(longURL string) string
	// ParseResponse extracts the short URL from a 2xx response body.
	ParseResponse func(body []byte) (string, bool)
}

// DefaultProviders mirrors the provider chain of the original tool:
// shrtco.de, then is.gd, then tinyurl.
func DefaultProviders() []Provider {
	return []Provider{
		ShrtcodeProvider("https://api.shrtco.de"),
		SimpleTextProvider("is.gd", "https://is.gd/create.php?format=simple&url="),
		SimpleTextProvider("tinyurl", "https://tinyurl.com/api-create.php?url="),
	}
}

// ShrtcodeProvider answers JSON: {"ok":true,"result":{"full_short_link":...}}.
func ShrtcodeProvider(base string) Provider {
	return Provider{
		Name: "shrtco.de",
		RequestURL: func(longURL string) string {
			return base + "/v2/shorten?url=" + url.QueryEscape(longURL)
		},
		ParseResponse: func(body []byte) (string, bool) {
			var payload struct {
				OK     bool `json:"ok"`
				Result struct {
					FullShortLink string `json:"full_short_link"`
				} `json:"result"`
			}
			if err := json.Unmarshal(body, &payload); err != nil {
				return "", false
			}
			if !payload.OK || payload.Result.FullShortLink == "" {
				return "", false
			}
			return payload.Result.FullShortLink, true
		},
	}
}

// SimpleTextProvider answers the short URL as a plain-text body.
func SimpleTextProvider(name, prefix string) Provider {
	return Provider{
		Name: name,
		RequestURL: func(longURL string) string {
			return prefix + url.QueryEscape(longURL)
		},
		ParseResponse: func(body []byte) (string, bool) {
			short := strings.TrimSpace(string(body))
			if !strings.HasPrefix(short, "http") {
				return "", false
			}
			return short, true
		},
	}
}

// Shortener tries each provider once, first success wins. Exhaustion is not
// an error; the long URL stays fully functional without a short form.
type Shortener struct {
	client    *http.Client
	providers []Provider
}

func NewShortener(client *http.Client, providers ...Provider) *Shortener {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	if len(providers) == 0 {
		providers = DefaultProviders()
	}
	return &Shortener{client: client, providers: providers}
}

// Shorten returns the short URL or "" when every provider fails.
func (s *Shortener) Shorten(ctx context.Context, longURL string) string {
	for _, p := range s.providers {
		if short, ok := s.tryProvider(ctx, p, longURL); ok {
			return short
		}
	}
	return ""
}

func (s *Shortener) tryProvider(ctx context.Context, p Provider, longURL string) (string, bool) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.RequestURL(longURL), nil)
	if err != nil {
		return "", false
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", false
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return "", false
	}
	return p.ParseResponse(body)
}
