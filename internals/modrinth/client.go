package modrinth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
)

const DefaultApiURL = "https://api.modrinth.com/"

var (
	// ErrInvalidFileHash is returned when the hash is neither a sha1 nor a sha512 hash
	ErrInvalidFileHash = errors.New("invalid file hash")
	// A generic error that is returned if a resource was not found
	ErrResourceNotFound = errors.New("resource not found")
	// ErrRateLimited is returned when modrinth answers with 429
	ErrRateLimited = errors.New("rate limited by modrinth")
)

type Client struct {
	http    *http.Client
	baseURL *url.URL
}

func New(httpClient *http.Client) *Client {
	parsedDefaultURL, _ := url.Parse(DefaultApiURL)

	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		http:    httpClient,
		baseURL: parsedDefaultURL,
	}
}

// NewWithBaseURL is like New but talks to a different api (eg. a staging server)
func NewWithBaseURL(httpClient *http.Client, baseURL string) (*Client, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}
	client := New(httpClient)
	client.baseURL = parsed
	return client, nil
}

// url joins the addedPath to the baseURL (panics if new path can not be parsed)
func (c *Client) url(addedPath ...string) *url.URL {
	joined, err := url.JoinPath(c.baseURL.String(), addedPath...)
	if err != nil {
		panic(err)
	}

	url, err := url.Parse(joined)
	if err != nil {
		panic(err)
	}

	return url
}

// postJSON posts v as json to url with context support
func (c *Client) postJSON(ctx context.Context, url string, v interface{}) (*http.Response, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	return c.http.Do(req)
}

// decode is a helper that decodes json, and checks the status code.
// It always closes the body
func decode(res *http.Response, v interface{}) error {
	defer res.Body.Close()

	if res.StatusCode != 200 {
		switch res.StatusCode {
		case 404:
			return ErrResourceNotFound
		case 429:
			return ErrRateLimited
		default:
			return fmt.Errorf("unexpected status code: %d", res.StatusCode)
		}
	}

	if err := json.NewDecoder(res.Body).Decode(v); err != nil {
		return err
	}

	return nil
}
