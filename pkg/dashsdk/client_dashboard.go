package dashsdk

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

// Login checks identifier and password against the server's directory.
func (c *SDKClient) Login(ctx context.Context, identifier, password string) (*LoginResponse, error) {
	form := url.Values{}
	form.Set("identifier", identifier)
	form.Set("password", password)

	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/login", strings.NewReader(form.Encode()),
		map[string]string{"Content-Type": "application/x-www-form-urlencoded"})
	if err != nil {
		return nil, err
	}

	var out LoginResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *SDKClient) Greeting(ctx context.Context) (*GreetingResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/v1/greeting", nil, nil)
	if err != nil {
		return nil, err
	}

	var out GreetingResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *SDKClient) Countries(ctx context.Context) ([]CountryResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/v1/countries", nil, nil)
	if err != nil {
		return nil, err
	}

	var out []CountryResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

// Holidays fetches the per-year holiday counts for country.
func (c *SDKClient) Holidays(ctx context.Context, country string) (*HolidaySeriesResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/v1/holidays/"+url.PathEscape(country), nil, nil)
	if err != nil {
		return nil, err
	}

	var out HolidaySeriesResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
