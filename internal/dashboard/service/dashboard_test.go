package service

import (
	"context"
	"net/netip"
	"testing"
	"time"

	"github.com/aussiebroadwan/holidash/internal/dashboard/domain"
	"github.com/aussiebroadwan/holidash/pkg/upstream"
	"github.com/aussiebroadwan/holidash/pkg/upstream/upstreamtest"
	"github.com/stretchr/testify/require"
)

func newDashboard(t *testing.T) (*upstreamtest.Dashboard, *DashboardService) {
	t.Helper()
	fake := upstreamtest.NewDashboard(t)
	svc := NewDashboardService(upstream.NewNager(fake.NagerURL()), upstream.NewHelloSalut(fake.HelloURL()), 0)
	svc.Now = func() time.Time { return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC) }
	return fake, svc
}

func TestGreeting(t *testing.T) {
	fake, svc := newDashboard(t)
	fake.Greeting = "Gr&uuml;&szlig; Gott"
	svc.RandomAddr = func() netip.Addr { return netip.MustParseAddr("203.0.113.9") }

	g, err := svc.Greeting(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Grüß Gott", g.Text)
	require.Equal(t, "203.0.113.9", g.Address)
	require.Equal(t, []string{"203.0.113.9"}, fake.GreetedIPs())
}

func TestGreeting_RandomAddress(t *testing.T) {
	fake, svc := newDashboard(t)

	for range 3 {
		_, err := svc.Greeting(context.Background())
		require.NoError(t, err)
	}
	for _, ip := range fake.GreetedIPs() {
		addr, err := netip.ParseAddr(ip)
		require.NoError(t, err)
		require.True(t, addr.Is4())
	}
}

func TestGreeting_UpstreamDown(t *testing.T) {
	fake, svc := newDashboard(t)
	fake.Close()

	_, err := svc.Greeting(context.Background())
	require.ErrorIs(t, err, ErrUpstreamUnavailable)
}

func TestCountries(t *testing.T) {
	_, svc := newDashboard(t)

	countries, err := svc.Countries(context.Background())
	require.NoError(t, err)
	require.Equal(t, []domain.Country{{Code: "AU", Name: "Australia"}, {Code: "FR", Name: "France"}}, countries)
}

func TestHolidaySeries(t *testing.T) {
	fake, svc := newDashboard(t)

	series, err := svc.HolidaySeries(context.Background(), " au ")
	require.NoError(t, err)
	require.Equal(t, "AU", series.Country)
	require.Len(t, series.Points, 11)
	require.EqualValues(t, 11, fake.HolidayCalls.Load())

	for i, p := range series.Points {
		require.Equal(t, 2015+i, p.Year)
		require.Equal(t, upstreamtest.HolidayCount(p.Year), p.Holidays)
	}
}

func TestHolidaySeries_CustomYears(t *testing.T) {
	_, svc := newDashboard(t)
	svc.Years = 2

	series, err := svc.HolidaySeries(context.Background(), "FR")
	require.NoError(t, err)
	require.Equal(t, []int{2023, 2024, 2025}, []int{series.Points[0].Year, series.Points[1].Year, series.Points[2].Year})
}

func TestHolidaySeries_InvalidCountry(t *testing.T) {
	fake, svc := newDashboard(t)

	for _, code := range []string{"", "A", "AUS", "ZZ", "12"} {
		_, err := svc.HolidaySeries(context.Background(), code)
		require.ErrorIs(t, err, ErrInvalidCountry, code)
	}
	require.Zero(t, fake.HolidayCalls.Load(), "invalid codes must not reach the upstream")
}

func TestHolidaySeries_UnsupportedCountry(t *testing.T) {
	_, svc := newDashboard(t)

	// DE is a valid code the fake does not know, so it answers 404.
	_, err := svc.HolidaySeries(context.Background(), "DE")
	require.ErrorIs(t, err, ErrInvalidCountry)
}

func TestHolidaySeries_FailFast(t *testing.T) {
	fake, svc := newDashboard(t)
	fake.FailYear.Store(2020)

	series, err := svc.HolidaySeries(context.Background(), "AU")
	require.ErrorIs(t, err, ErrUpstreamUnavailable)
	require.ErrorContains(t, err, "year 2020")
	require.Empty(t, series.Points)
}
