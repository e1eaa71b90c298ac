package service

import (
	"context"
	"encoding/binary"
	"fmt"
	"html"
	"math/rand/v2"
	"net/http"
	"net/netip"
	"strings"
	"time"

	"github.com/aussiebroadwan/holidash/internal/dashboard/domain"
	"github.com/aussiebroadwan/holidash/pkg/upstream"
	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultHolidayYears is how many years before the current one a series covers.
	DefaultHolidayYears = 10
	defaultFetchLimit   = 4
)

// HolidayAPI is the subset of Nager.Date the dashboard uses.
type HolidayAPI interface {
	AvailableCountries(ctx context.Context) ([]upstream.Country, error)
	PublicHolidays(ctx context.Context, year int, countryCode string) ([]upstream.Holiday, error)
}

// GreetingAPI is the subset of Hello Salut the dashboard uses.
type GreetingAPI interface {
	Greet(ctx context.Context, ip string) (upstream.Greeting, error)
}

// DashboardService backs the greeting and holiday chart. Every call goes to
// the upstream APIs; nothing is cached.
type DashboardService struct {
	holidays HolidayAPI
	greeter  GreetingAPI
	validate *validator.Validate

	Years      int
	FetchLimit int
	Now        func() time.Time
	RandomAddr func() netip.Addr
}

func NewDashboardService(holidays HolidayAPI, greeter GreetingAPI, years int) *DashboardService {
	if years <= 0 {
		years = DefaultHolidayYears
	}
	return &DashboardService{
		holidays:   holidays,
		greeter:    greeter,
		validate:   validator.New(),
		Years:      years,
		FetchLimit: defaultFetchLimit,
		Now:        time.Now,
		RandomAddr: randomIPv4,
	}
}

// Greeting fetches a salutation for a random IPv4 address.
func (s *DashboardService) Greeting(ctx context.Context) (domain.Greeting, error) {
	addr := s.RandomAddr().String()

	g, err := s.greeter.Greet(ctx, addr)
	if err != nil {
		return domain.Greeting{}, fmt.Errorf("%w: greeting: %w", ErrUpstreamUnavailable, err)
	}
	return domain.Greeting{Text: html.UnescapeString(g.Hello), Address: addr}, nil
}

func (s *DashboardService) Countries(ctx context.Context) ([]domain.Country, error) {
	list, err := s.holidays.AvailableCountries(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: countries: %w", ErrUpstreamUnavailable, err)
	}

	out := make([]domain.Country, 0, len(list))
	for _, c := range list {
		out = append(out, domain.Country{Code: c.CountryCode, Name: c.Name})
	}
	return out, nil
}

// HolidaySeries counts public holidays for every year from Years ago up to
// and including the current year. Years are fetched concurrently and the
// first failure cancels the rest.
func (s *DashboardService) HolidaySeries(ctx context.Context, code string) (domain.HolidaySeries, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if err := s.validate.Var(code, "required,iso3166_1_alpha2"); err != nil {
		return domain.HolidaySeries{}, fmt.Errorf("%w: %q", ErrInvalidCountry, code)
	}

	current := s.Now().Year()
	first := current - s.Years
	points := make([]domain.HolidayPoint, s.Years+1)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(s.FetchLimit, 1))

	for i := range points {
		year := first + i
		g.Go(func() error {
			list, err := s.holidays.PublicHolidays(gctx, year, code)
			if err != nil {
				return fmt.Errorf("year %d: %w", year, err)
			}
			points[i] = domain.HolidayPoint{Year: year, Holidays: len(list)}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		if upstream.IsStatus(err, http.StatusNotFound) {
			return domain.HolidaySeries{}, fmt.Errorf("%w: %q is not supported: %w", ErrInvalidCountry, code, err)
		}
		return domain.HolidaySeries{}, fmt.Errorf("%w: holidays: %w", ErrUpstreamUnavailable, err)
	}

	return domain.HolidaySeries{Country: code, Points: points}, nil
}

func randomIPv4() netip.Addr {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], rand.Uint32())
	return netip.AddrFrom4(b)
}
