package upstream

import (
	"context"
	"net/url"
)

// HelloSalutBaseURL is the public Hello Salut API.
const HelloSalutBaseURL = "https://hellosalut.stefanbohacek.dev/"

// HelloSalut returns a greeting in the language spoken where an IP address
// is located.
type HelloSalut struct {
	*Client
}

// NewHelloSalut creates a Hello Salut client.
func NewHelloSalut(baseURL string, opts ...Option) *HelloSalut {
	if baseURL == "" {
		baseURL = HelloSalutBaseURL
	}
	return &HelloSalut{Client: NewClient(baseURL, opts...)}
}

// Greeting is the raw answer. Hello may contain HTML entities.
type Greeting struct {
	Code  string `json:"code"`
	Hello string `json:"hello"`
}

func (c *HelloSalut) Greet(ctx context.Context, ip string) (Greeting, error) {
	var out Greeting
	if err := c.get(ctx, "/", url.Values{"ip": {ip}}, &out); err != nil {
		return Greeting{}, err
	}
	return out, nil
}
