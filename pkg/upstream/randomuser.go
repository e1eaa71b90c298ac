package upstream

import (
	"context"
	"errors"
	"net/url"
	"strconv"
	"strings"
)

// RandomUserBaseURL is the public randomuser.me API.
const RandomUserBaseURL = "https://randomuser.me/api/"

// RandomUser talks to the randomuser.me API.
type RandomUser struct {
	*Client
}

// NewRandomUser creates a randomuser.me client.
func NewRandomUser(baseURL string, opts ...Option) *RandomUser {
	if baseURL == "" {
		baseURL = RandomUserBaseURL
	}
	return &RandomUser{Client: NewClient(baseURL, opts...)}
}

// Query selects a batch of users. The same seed always yields the same users.
type Query struct {
	Results int
	Seed    string
	Include []string // e.g. name, dob, email, login
}

func (q Query) values() url.Values {
	v := url.Values{}
	if q.Results > 0 {
		v.Set("results", strconv.Itoa(q.Results))
	}
	if q.Seed != "" {
		v.Set("seed", q.Seed)
	}
	if len(q.Include) > 0 {
		v.Set("inc", strings.Join(q.Include, ","))
	}
	return v
}

type User struct {
	Name struct {
		Title string `json:"title"`
		First string `json:"first"`
		Last  string `json:"last"`
	} `json:"name"`
	DOB struct {
		Date string `json:"date"`
		Age  int    `json:"age"`
	} `json:"dob"`
	Email string `json:"email"`
	Login struct {
		UUID     string `json:"uuid"`
		Username string `json:"username"`
		Password *string `json:"password"` // nil when the field is absent
		Salt     string `json:"salt"`
		MD5      string `json:"md5"`
		SHA1     string `json:"sha1"`
		SHA256   string `json:"sha256"`
	} `json:"login"`
}

type usersResponse struct {
	Results []User `json:"results"`
	Error   string `json:"error"`
	Info    struct {
		Seed    string `json:"seed"`
		Results int    `json:"results"`
	} `json:"info"`
}

// Users fetches one batch. The API reports some failures in a 200 body with
// an "error" field; those are returned as errors too.
func (c *RandomUser) Users(ctx context.Context, q Query) ([]User, error) {
	var out usersResponse
	if err := c.get(ctx, "/", q.values(), &out); err != nil {
		return nil, err
	}
	if out.Error != "" {
		return nil, errors.New("randomuser: " + out.Error)
	}
	return out.Results, nil
}
