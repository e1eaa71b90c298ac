package upstream

import (
	"context"
	"fmt"
	"net/url"
)

// NagerBaseURL is the public Nager.Date v3 API.
const NagerBaseURL = "https://date.nager.at/api/v3"

// Nager talks to the Nager.Date public holiday API.
type Nager struct {
	*Client
}

// NewNager creates a Nager.Date client.
func NewNager(baseURL string, opts ...Option) *Nager {
	if baseURL == "" {
		baseURL = NagerBaseURL
	}
	return &Nager{Client: NewClient(baseURL, opts...)}
}

type Country struct {
	CountryCode string `json:"countryCode"`
	Name        string `json:"name"`
}

type Holiday struct {
	Date        string   `json:"date"`
	LocalName   string   `json:"localName"`
	Name        string   `json:"name"`
	CountryCode string   `json:"countryCode"`
	Global      bool     `json:"global"`
	Types       []string `json:"types"`
}

// AvailableCountries lists every country Nager.Date has data for.
func (c *Nager) AvailableCountries(ctx context.Context) ([]Country, error) {
	var out []Country
	if err := c.get(ctx, "/AvailableCountries", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// PublicHolidays lists the public holidays of a country in a year.
func (c *Nager) PublicHolidays(ctx context.Context, year int, countryCode string) ([]Holiday, error) {
	var out []Holiday
	path := fmt.Sprintf("/PublicHolidays/%d/%s", year, url.PathEscape(countryCode))
	if err := c.get(ctx, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
