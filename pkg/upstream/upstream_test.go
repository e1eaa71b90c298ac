package upstream_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/holidash/pkg/upstream"
	"github.com/aussiebroadwan/holidash/pkg/upstream/upstreamtest"
	"github.com/stretchr/testify/require"
)

func TestRandomUser_Users(t *testing.T) {
	t.Parallel()
	fake := upstreamtest.NewRandomUser(t)
	client := upstream.NewRandomUser(fake.URL + "/api/")

	users, err := client.Users(context.Background(), upstream.Query{
		Results: 3,
		Seed:    "usageai",
		Include: []string{"name", "dob", "email", "login"},
	})
	require.NoError(t, err)
	require.Len(t, users, 3)

	require.Equal(t, "user-0@example.com", users[0].Email)
	require.Equal(t, "First1", users[1].Name.First)
	require.Equal(t, "salt-2", users[2].Login.Salt)
	require.NotNil(t, users[2].Login.Password)
	require.Equal(t, "pass-2", *users[2].Login.Password)

	q := fake.LastQuery()
	require.Contains(t, q, "results=3")
	require.Contains(t, q, "seed=usageai")
	require.Contains(t, q, "inc=name%2Cdob%2Cemail%2Clogin")
}

func TestRandomUser_Errors(t *testing.T) {
	t.Parallel()

	t.Run("non-2xx", func(t *testing.T) {
		fake := upstreamtest.NewRandomUser(t)
		fake.Status.Store(http.StatusServiceUnavailable)

		_, err := upstream.NewRandomUser(fake.URL).Users(context.Background(), upstream.Query{Results: 1})
		require.Error(t, err)
		require.True(t, upstream.IsStatus(err, http.StatusServiceUnavailable))
	})

	t.Run("truncated body", func(t *testing.T) {
		fake := upstreamtest.NewRandomUser(t)
		fake.Truncate.Store(true)

		_, err := upstream.NewRandomUser(fake.URL).Users(context.Background(), upstream.Query{Results: 5})
		require.ErrorContains(t, err, "failed to decode response")
	})

	t.Run("error in 200 body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"error":"Uh oh, something has gone wrong."}`))
		}))
		t.Cleanup(srv.Close)

		_, err := upstream.NewRandomUser(srv.URL).Users(context.Background(), upstream.Query{Results: 1})
		require.ErrorContains(t, err, "something has gone wrong")
	})
}

func TestNager(t *testing.T) {
	t.Parallel()
	fake := upstreamtest.NewDashboard(t)
	client := upstream.NewNager(fake.NagerURL())
	ctx := context.Background()

	countries, err := client.AvailableCountries(ctx)
	require.NoError(t, err)
	require.Equal(t, []upstream.Country{{CountryCode: "AU", Name: "Australia"}, {CountryCode: "FR", Name: "France"}}, countries)

	holidays, err := client.PublicHolidays(ctx, 2024, "AU")
	require.NoError(t, err)
	require.Len(t, holidays, upstreamtest.HolidayCount(2024))
	require.Equal(t, "AU", holidays[0].CountryCode)

	_, err = client.PublicHolidays(ctx, 2024, "ZZ")
	require.True(t, upstream.IsStatus(err, http.StatusNotFound))
}

func TestNager_NoContent(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(srv.Close)

	holidays, err := upstream.NewNager(srv.URL).PublicHolidays(context.Background(), 2020, "AQ")
	require.NoError(t, err)
	require.Empty(t, holidays)
}

func TestHelloSalut_Greet(t *testing.T) {
	t.Parallel()
	fake := upstreamtest.NewDashboard(t)
	fake.Greeting = "Bonjour &amp; bienvenue"

	g, err := upstream.NewHelloSalut(fake.HelloURL()).Greet(context.Background(), "203.0.113.7")
	require.NoError(t, err)
	require.Equal(t, "fr", g.Code)
	require.Equal(t, "Bonjour &amp; bienvenue", g.Hello)
	require.Equal(t, []string{"203.0.113.7"}, fake.GreetedIPs())
}

func TestClient_Timeout(t *testing.T) {
	t.Parallel()
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() {
		close(release)
		srv.Close()
	})

	client := upstream.NewHelloSalut(srv.URL, upstream.WithTimeout(50*time.Millisecond))
	_, err := client.Greet(context.Background(), "1.2.3.4")
	require.ErrorContains(t, err, "failed to send request")
}

func TestStatusError(t *testing.T) {
	t.Parallel()
	err := &upstream.StatusError{StatusCode: http.StatusBadGateway, Body: strings.Repeat("x", 3)}
	require.Equal(t, "upstream returned 502 Bad Gateway: xxx", err.Error())
	require.False(t, upstream.IsStatus(err, http.StatusNotFound))
}
