package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/aussiebroadwan/holidash/internal/dashboard/app"
	"github.com/aussiebroadwan/holidash/internal/dashboard/domain"
	"github.com/aussiebroadwan/holidash/internal/dashboard/service"
	"github.com/aussiebroadwan/holidash/pkg/dashsdk"
	"github.com/spf13/cobra"
)

var errAuthenticationFailed = errors.New("authentication failed")

func newServeCommand(opts *options) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Load the user directory and serve the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.config(cmd, false)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Port = port
			}

			application, err := app.New(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			return application.Run(cmd.Context())
		},
	}
	cmd.Flags().IntVar(&port, "port", 8080, "override PORT")
	return cmd
}

func newLoginCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Check an identifier and password against the user directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			out := cmd.OutOrStdout()
			reader := bufio.NewReader(in)

			var authenticate func(identifier, password string) (dashsdk.LoginResponse, error)

			if opts.server != "" {
				client := opts.client()
				authenticate = func(identifier, password string) (dashsdk.LoginResponse, error) {
					user, err := client.Login(cmd.Context(), identifier, password)
					if dashsdk.IsCode(err, dashsdk.ErrorCodeAuthenticationFailed) {
						return dashsdk.LoginResponse{}, errAuthenticationFailed
					}
					if err != nil {
						return dashsdk.LoginResponse{}, err
					}
					return *user, nil
				}
			} else {
				cfg, err := opts.config(cmd, true)
				if err != nil {
					return err
				}
				application, err := app.New(cmd.Context(), cfg)
				if err != nil {
					return err
				}
				defer func() { _ = application.Shutdown() }()

				if err := application.Bootstrap(cmd.Context()); err != nil {
					return err
				}

				authenticate = func(identifier, password string) (dashsdk.LoginResponse, error) {
					user, err := application.LoginService().Authenticate(cmd.Context(), identifier, password)
					if errors.Is(err, service.ErrAuthenticationFailed) {
						return dashsdk.LoginResponse{}, errAuthenticationFailed
					}
					if err != nil {
						return dashsdk.LoginResponse{}, err
					}
					return dashsdk.LoginResponse{FirstName: user.FirstName, LastName: user.LastName, DateOfBirth: user.DateOfBirth}, nil
				}
			}

			identifier, err := GetSimpleText(reader, "Identifier (email)", out)
			if err != nil {
				return fmt.Errorf("read identifier: %w", err)
			}
			password, err := promptPassword(in, reader, out)
			if err != nil {
				return fmt.Errorf("read password: %w", err)
			}

			user, err := authenticate(identifier, password)
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "First name:    %s\n", user.FirstName)
			fmt.Fprintf(out, "Last name:     %s\n", user.LastName)
			fmt.Fprintf(out, "Date of birth: %s\n", user.DateOfBirth)
			return nil
		},
	}
	opts.addServerFlag(cmd)
	return cmd
}

// dashboard builds a DashboardService that talks to the upstream APIs
// directly, without a store.
func dashboard(cmd *cobra.Command, opts *options) (*service.DashboardService, func(), error) {
	cfg, err := opts.config(cmd, true)
	if err != nil {
		return nil, nil, err
	}
	cfg.StoreDriver = app.DriverMemory

	application, err := app.New(cmd.Context(), cfg)
	if err != nil {
		return nil, nil, err
	}
	return application.DashboardService(), func() { _ = application.Shutdown() }, nil
}

func newGreetCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "greet",
		Short: "Print a greeting for a random IPv4 address",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var g domain.Greeting

			if opts.server != "" {
				resp, err := opts.client().Greeting(cmd.Context())
				if err != nil {
					return err
				}
				g = domain.Greeting{Text: resp.Greeting, Address: resp.Address}
			} else {
				svc, closeFn, err := dashboard(cmd, opts)
				if err != nil {
					return err
				}
				defer closeFn()

				if g, err = svc.Greeting(cmd.Context()); err != nil {
					return err
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", g.Text, g.Address)
			return nil
		},
	}
	opts.addServerFlag(cmd)
	return cmd
}

func newCountriesCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "countries",
		Short: "List countries with holiday data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var countries []domain.Country

			if opts.server != "" {
				resp, err := opts.client().Countries(cmd.Context())
				if err != nil {
					return err
				}
				for _, c := range resp {
					countries = append(countries, domain.Country{Code: c.Code, Name: c.Name})
				}
			} else {
				svc, closeFn, err := dashboard(cmd, opts)
				if err != nil {
					return err
				}
				defer closeFn()

				if countries, err = svc.Countries(cmd.Context()); err != nil {
					return err
				}
			}

			printCountries(cmd.OutOrStdout(), countries)
			return nil
		},
	}
	opts.addServerFlag(cmd)
	return cmd
}

func printCountries(w io.Writer, countries []domain.Country) {
	for _, c := range countries {
		fmt.Fprintf(w, "%s  %s\n", c.Code, c.Name)
	}
}

func newHolidaysCommand(opts *options) *cobra.Command {
	var country string

	cmd := &cobra.Command{
		Use:   "holidays",
		Short: "Chart public holidays per year for a country",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var series domain.HolidaySeries

			if opts.server != "" {
				resp, err := opts.client().Holidays(cmd.Context(), country)
				if err != nil {
					return err
				}
				series.Country = resp.Country
				for _, p := range resp.Points {
					series.Points = append(series.Points, domain.HolidayPoint{Year: p.Year, Holidays: p.Holidays})
				}
			} else {
				svc, closeFn, err := dashboard(cmd, opts)
				if err != nil {
					return err
				}
				defer closeFn()

				if series, err = svc.HolidaySeries(cmd.Context(), country); err != nil {
					return err
				}
			}

			printSeries(cmd.OutOrStdout(), series)
			return nil
		},
	}
	cmd.Flags().StringVar(&country, "country", "", "ISO 3166-1 alpha-2 country code, e.g. AU")
	_ = cmd.MarkFlagRequired("country")
	opts.addServerFlag(cmd)
	return cmd
}
