// Package upstreamtest provides in-process fakes of the upstream APIs.
package upstreamtest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
)

// RandomUser fakes randomuser.me. Users are generated deterministically from
// their index: user-<i>@example.com, salt salt-<i>, password pass-<i>.
type RandomUser struct {
	*httptest.Server

	// Status, when non-zero, is returned instead of a user batch.
	Status atomic.Int32
	// Truncate cuts the body in half to simulate a connection dropped
	// mid-response.
	Truncate atomic.Bool
	// Short, when positive, caps the batch size below what was asked for.
	Short atomic.Int32
	// Offset shifts generated indexes so reloads can return new users.
	Offset atomic.Int32
	// Duplicate makes the last user reuse the first user's email.
	Duplicate atomic.Bool

	Calls   atomic.Int32
	mu      sync.Mutex
	lastURL string
}

// NewRandomUser starts a fake randomuser.me server closed with t.Cleanup.
func NewRandomUser(t testing.TB) *RandomUser {
	f := &RandomUser{}
	f.Server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.Close)
	return f
}

// LastQuery returns the raw query of the most recent request.
func (f *RandomUser) LastQuery() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastURL
}

func (f *RandomUser) serve(w http.ResponseWriter, r *http.Request) {
	f.Calls.Add(1)
	f.mu.Lock()
	f.lastURL = r.URL.RawQuery
	f.mu.Unlock()

	if code := f.Status.Load(); code != 0 {
		http.Error(w, `{"error":"Uh oh, something has gone wrong."}`, int(code))
		return
	}

	n, _ := strconv.Atoi(r.URL.Query().Get("results"))
	if short := int(f.Short.Load()); short > 0 && short < n {
		n = short
	}

	off := int(f.Offset.Load())
	results := make([]map[string]any, 0, n)
	for i := range n {
		results = append(results, User(off+i))
	}
	if f.Duplicate.Load() && n > 1 {
		results[n-1]["email"] = results[0]["email"]
	}

	body, _ := json.Marshal(map[string]any{
		"results": results,
		"info":    map[string]any{"seed": r.URL.Query().Get("seed"), "results": n, "page": 1, "version": "1.4"},
	})
	if f.Truncate.Load() {
		body = body[:len(body)/2]
	}

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(body)
}

// User returns the payload the fake serves at index i.
func User(i int) map[string]any {
	return map[string]any{
		"name":  map[string]any{"title": "Ms", "first": fmt.Sprintf("First%d", i), "last": fmt.Sprintf("Last%d", i)},
		"dob":   map[string]any{"date": fmt.Sprintf("1980-01-%02dT10:00:00.000Z", i%28+1), "age": 44},
		"email": Email(i),
		"login": map[string]any{
			"uuid":     fmt.Sprintf("uuid-%d", i),
			"username": fmt.Sprintf("user%d", i),
			"password": Password(i),
			"salt":     fmt.Sprintf("salt-%d", i),
		},
	}
}

func Email(i int) string    { return fmt.Sprintf("user-%d@example.com", i) }
func Password(i int) string { return fmt.Sprintf("pass-%d", i) }

// Dashboard fakes both Nager.Date and Hello Salut on one server.
type Dashboard struct {
	*httptest.Server

	// FailYear makes PublicHolidays for that year answer 500.
	FailYear atomic.Int32
	// Greeting is served by the Hello Salut endpoint.
	Greeting string

	HolidayCalls atomic.Int32
	mu           sync.Mutex
	greetedIPs   []string
}

// NewDashboard starts the fake. Nager lives under /nager, Hello Salut under
// /hello/. Every year has (year mod 5) + 8 holidays.
func NewDashboard(t testing.TB) *Dashboard {
	f := &Dashboard{Greeting: "Bonjour"}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /nager/AvailableCountries", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, []map[string]string{
			{"countryCode": "AU", "name": "Australia"},
			{"countryCode": "FR", "name": "France"},
		})
	})
	mux.HandleFunc("GET /nager/PublicHolidays/{year}/{code}", func(w http.ResponseWriter, r *http.Request) {
		f.HolidayCalls.Add(1)
		year, err := strconv.Atoi(r.PathValue("year"))
		if err != nil {
			http.Error(w, "bad year", http.StatusBadRequest)
			return
		}
		if int(f.FailYear.Load()) == year {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		if strings.ToUpper(r.PathValue("code")) != "AU" && strings.ToUpper(r.PathValue("code")) != "FR" {
			http.NotFound(w, r)
			return
		}
		writeJSON(w, Holidays(year, r.PathValue("code")))
	})
	mux.HandleFunc("GET /hello/", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.greetedIPs = append(f.greetedIPs, r.URL.Query().Get("ip"))
		f.mu.Unlock()
		writeJSON(w, map[string]string{"code": "fr", "hello": f.Greeting})
	})

	f.Server = httptest.NewServer(mux)
	t.Cleanup(f.Close)
	return f
}

// NagerURL and HelloURL are the base URLs to hand to the clients.
func (f *Dashboard) NagerURL() string { return f.URL + "/nager" }
func (f *Dashboard) HelloURL() string { return f.URL + "/hello/" }

// GreetedIPs returns every ip query parameter seen so far.
func (f *Dashboard) GreetedIPs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.greetedIPs...)
}

// HolidayCount is how many holidays the fake reports for year.
func HolidayCount(year int) int { return year%5 + 8 }

// Holidays builds the fake's holiday list for year.
func Holidays(year int, code string) []map[string]any {
	out := make([]map[string]any, HolidayCount(year))
	for i := range out {
		out[i] = map[string]any{
			"date":        fmt.Sprintf("%d-01-%02d", year, i+1),
			"localName":   fmt.Sprintf("Holiday %d", i),
			"name":        fmt.Sprintf("Holiday %d", i),
			"countryCode": strings.ToUpper(code),
			"global":      true,
			"types":       []string{"Public"},
		}
	}
	return out
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
