// Package curse is a small client for the CurseForge core api.
// Every request needs an api key which is sent in the `x-api-key` header
package curse

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
)

// DefaultApiURL is the base url of the public CurseForge core api
const DefaultApiURL = "https://api.curseforge.com"

var (
	// ErrResourceNotFound is returned if curseforge answered with 404
	ErrResourceNotFound = errors.New("resource not found")
	// ErrUnauthorized is returned if the api key was rejected
	ErrUnauthorized = errors.New("curseforge rejected the api key")
	// ErrRateLimited is returned if curseforge answered with 429
	ErrRateLimited = errors.New("rate limited by curseforge")
)

type Client struct {
	r *resty.Client
}

// New returns a new CurseForge client that uses the given http client and api key.
// `httpClient` may be nil
func New(httpClient *http.Client, apiKey string) *Client {
	var r *resty.Client
	if httpClient == nil {
		r = resty.New()
	} else {
		r = resty.NewWithClient(httpClient)
	}

	r.SetBaseURL(DefaultApiURL).
		SetHeader("x-api-key", apiKey).
		SetHeader("Accept", "application/json")

	return &Client{r: r}
}

// NewWithBaseURL is like New but talks to the api at baseURL
func NewWithBaseURL(httpClient *http.Client, apiKey string, baseURL string) *Client {
	c := New(httpClient, apiKey)
	c.r.SetBaseURL(baseURL)
	return c
}

// checkResponse maps non 2xx responses to errors
func checkResponse(res *resty.Response) error {
	if res.IsSuccess() {
		return nil
	}
	switch res.StatusCode() {
	case http.StatusNotFound:
		return ErrResourceNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusTooManyRequests:
		return ErrRateLimited
	default:
		return fmt.Errorf("unexpected status code: %d", res.StatusCode())
	}
}
