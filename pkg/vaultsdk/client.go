package vaultsdk

import (
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"
)

// Client talks to a vault server. It keeps the consent and session cookies
// in its jar, so one Client acts as one browser.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a client with an empty cookie jar.
func NewClient(baseURL string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
			Jar:     jar,
		},
	}, nil
}
