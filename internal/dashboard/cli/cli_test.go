package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aussiebroadwan/holidash/internal/dashboard/app"
	"github.com/aussiebroadwan/holidash/internal/dashboard/domain"
	"github.com/aussiebroadwan/holidash/pkg/upstream/upstreamtest"
	"github.com/stretchr/testify/require"
)

// setup points the configuration at in-process fakes.
func setup(t *testing.T) (*upstreamtest.RandomUser, *upstreamtest.Dashboard) {
	t.Helper()
	users := upstreamtest.NewRandomUser(t)
	dash := upstreamtest.NewDashboard(t)

	t.Setenv("DASH_STORE_DRIVER", "memory")
	t.Setenv("DASH_USER_COUNT", "5")
	t.Setenv("DASH_RANDOMUSER_URL", users.URL)
	t.Setenv("DASH_NAGER_URL", dash.NagerURL())
	t.Setenv("DASH_HELLOSALUT_URL", dash.HelloURL())
	t.Setenv("DASH_CREDENTIAL_SCHEME", "argon2id")
	return users, dash
}

func run(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	args = append(args, "--env-file", filepath.Join(t.TempDir(), "none.env"))

	var stdout, stderr bytes.Buffer
	code := Execute(context.Background(), args, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestLoginCommand(t *testing.T) {
	setup(t)

	code, out, errOut := run(t, upstreamtest.Email(2)+"\n"+upstreamtest.Password(2)+"\n", "login")
	require.Equal(t, 0, code, errOut)
	require.Contains(t, out, "First name:    First2")
	require.Contains(t, out, "Last name:     Last2")
	require.Contains(t, out, "Date of birth: 1980-01-03T10:00:00.000Z")
	require.NotContains(t, out, upstreamtest.Password(2)+"\n")
}

func TestUserMessage(t *testing.T) {
	require.Equal(t, "authentication failed", errAuthenticationFailed.Error())
	require.Equal(t, "Authentication failed", userMessage(fmt.Errorf("login: %w", errAuthenticationFailed)))
	require.Equal(t, "boom", userMessage(errors.New("boom")))
}

func TestLoginCommand_Failures(t *testing.T) {
	setup(t)

	tests := []struct {
		name  string
		stdin string
	}{
		{"wrong password", upstreamtest.Email(1) + "\nnope\n"},
		{"unknown identifier", "nobody@example.com\n" + upstreamtest.Password(1) + "\n"},
		{"password with padding", upstreamtest.Email(1) + "\n " + upstreamtest.Password(1) + " \n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, out, errOut := run(t, tt.stdin, "login")
			require.Equal(t, 1, code)
			require.Equal(t, "Authentication failed\n", errOut)
			require.NotContains(t, out, "First name")
		})
	}
}

func TestLoginCommand_UpstreamDown(t *testing.T) {
	users, _ := setup(t)
	users.Status.Store(500)

	code, _, errOut := run(t, "", "login")
	require.Equal(t, 1, code)
	require.Contains(t, errOut, "failed to load user directory")
}

func TestLoginCommand_Server(t *testing.T) {
	setup(t)

	cfg, err := app.LoadConfig(filepath.Join(t.TempDir(), "none.env"))
	require.NoError(t, err)
	cfg.LogOutput = &bytes.Buffer{}

	application, err := app.New(t.Context(), cfg)
	require.NoError(t, err)
	require.NoError(t, application.Bootstrap(t.Context()))
	t.Cleanup(func() { _ = application.Shutdown() })

	srv := httptest.NewServer(application.Handler())
	defer srv.Close()

	code, out, errOut := run(t, upstreamtest.Email(4)+"\n"+upstreamtest.Password(4)+"\n", "login", "--server", srv.URL)
	require.Equal(t, 0, code, errOut)
	require.Contains(t, out, "First name:    First4")

	code, _, errOut = run(t, upstreamtest.Email(4)+"\nwrong\n", "login", "--server", srv.URL)
	require.Equal(t, 1, code)
	require.Equal(t, "Authentication failed\n", errOut)
}

func TestGreetCommand(t *testing.T) {
	_, dash := setup(t)
	dash.Greeting = "Hallo"

	code, out, errOut := run(t, "", "greet")
	require.Equal(t, 0, code, errOut)
	require.True(t, strings.HasPrefix(out, "Hallo ("), out)
	require.Len(t, dash.GreetedIPs(), 1)
}

func TestCountriesCommand(t *testing.T) {
	setup(t)

	code, out, errOut := run(t, "", "countries")
	require.Equal(t, 0, code, errOut)
	require.Equal(t, "AU  Australia\nFR  France\n", out)
}

func TestHolidaysCommand(t *testing.T) {
	setup(t)
	t.Setenv("DASH_HOLIDAY_YEARS", "4")

	code, out, errOut := run(t, "", "holidays", "--country", "au")
	require.Equal(t, 0, code, errOut)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Equal(t, "Public holidays in AU", lines[0])
	require.Len(t, lines, 6)
}

func TestHolidaysCommand_Errors(t *testing.T) {
	setup(t)

	code, _, errOut := run(t, "", "holidays", "--country", "ZZZ")
	require.Equal(t, 1, code)
	require.Contains(t, errOut, "invalid country code")
	require.Equal(t, 1, strings.Count(errOut, "\n"), "a single message")

	code, _, errOut = run(t, "", "holidays")
	require.Equal(t, 1, code)
	require.Contains(t, errOut, "country")
}

func TestPrintSeries(t *testing.T) {
	var buf bytes.Buffer
	printSeries(&buf, domain.HolidaySeries{
		Country: "FR",
		Points:  []domain.HolidayPoint{{Year: 2023, Holidays: 10}, {Year: 2024, Holidays: 5}, {Year: 2025, Holidays: 0}},
	})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	require.Equal(t, barWidth, strings.Count(lines[1], "#"))
	require.Equal(t, barWidth/2, strings.Count(lines[2], "#"))
	require.Zero(t, strings.Count(lines[3], "#"))
	require.True(t, strings.HasPrefix(lines[1], "2023 | "))
	require.True(t, strings.HasSuffix(lines[2], " 5"))
}

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(bufio.NewReader(strings.NewReader("  jane@example.com \n")), "Identifier", &out)
	require.NoError(t, err)
	require.Equal(t, "jane@example.com", got)
	require.Equal(t, "Identifier\n> ", out.String())

	got, err = GetSimpleText(bufio.NewReader(strings.NewReader("lastline")), "Identifier", &out)
	require.NoError(t, err)
	require.Equal(t, "lastline", got)
}

func TestPromptPassword_Terminal(t *testing.T) {
	oldRead, oldTerm := readPassword, isTerminal
	t.Cleanup(func() { readPassword, isTerminal = oldRead, oldTerm })

	isTerminal = func(int) bool { return true }
	readPassword = func(int) ([]byte, error) { return []byte(" s3cret "), nil }

	var out bytes.Buffer
	pw, err := promptPassword(os.Stdin, bufio.NewReader(strings.NewReader("")), &out)
	require.NoError(t, err)
	require.Equal(t, " s3cret ", pw)
	require.Equal(t, "Password: \n", out.String())

	readPassword = func(int) ([]byte, error) { return nil, errors.New("boom") }
	_, err = GetPassword(&out, 0)
	require.Error(t, err)
}
