package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/holidash/internal/dashboard/service"
	"github.com/aussiebroadwan/holidash/pkg/dashsdk"
	"github.com/aussiebroadwan/holidash/pkg/httpx"
	"github.com/aussiebroadwan/holidash/pkg/slogx"
)

type DashboardHandler struct {
	DashboardService *service.DashboardService
}

// HandleGreeting godoc
//
//	@Summary		Random greeting
//	@Description	Greets a randomly chosen IPv4 address in the language of its country.
//	@Tags			Dashboard
//	@Produce		json
//	@Success		200	{object}	dashsdk.GreetingResponse
//	@Failure		502	{object}	dashsdk.ErrorResponse	"Greeting service unavailable"
//	@Router			/v1/greeting [get].
func (h *DashboardHandler) HandleGreeting(w http.ResponseWriter, r *http.Request) {
	g, err := h.DashboardService.Greeting(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, dashsdk.GreetingResponse{Greeting: g.Text, Address: g.Address})
}

// HandleCountries godoc
//
//	@Summary		Available countries
//	@Tags			Dashboard
//	@Produce		json
//	@Success		200	{array}		dashsdk.CountryResponse
//	@Failure		502	{object}	dashsdk.ErrorResponse	"Holiday service unavailable"
//	@Router			/v1/countries [get].
func (h *DashboardHandler) HandleCountries(w http.ResponseWriter, r *http.Request) {
	countries, err := h.DashboardService.Countries(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := make([]dashsdk.CountryResponse, 0, len(countries))
	for _, c := range countries {
		out = append(out, dashsdk.CountryResponse{Code: c.Code, Name: c.Name})
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleHolidays godoc
//
//	@Summary		Public holidays per year
//	@Description	Counts public holidays for each year of the last decade, current year included.
//	@Tags			Dashboard
//	@Produce		json
//	@Param			country	path		string	true	"ISO 3166-1 alpha-2 country code"
//	@Success		200		{object}	dashsdk.HolidaySeriesResponse
//	@Failure		400		{object}	dashsdk.ErrorResponse	"Invalid or unsupported country code"
//	@Failure		502		{object}	dashsdk.ErrorResponse	"Holiday service unavailable"
//	@Router			/v1/holidays/{country} [get].
func (h *DashboardHandler) HandleHolidays(w http.ResponseWriter, r *http.Request) {
	series, err := h.DashboardService.HolidaySeries(r.Context(), r.PathValue("country"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	resp := dashsdk.HolidaySeriesResponse{
		Country: series.Country,
		Points:  make([]dashsdk.HolidayPointResponse, 0, len(series.Points)),
	}
	for _, p := range series.Points {
		resp.Points = append(resp.Points, dashsdk.HolidayPointResponse{Year: p.Year, Holidays: p.Holidays})
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	log := slogx.FromContext(r.Context())

	switch {
	case errors.Is(err, service.ErrInvalidCountry):
		dashsdk.ErrInvalidCountry.WriteError(w)
	case errors.Is(err, service.ErrUpstreamUnavailable):
		log.Warn("upstream request failed", "error", err)
		dashsdk.ErrUpstreamUnavailable.WriteError(w)
	default:
		log.Error("dashboard request failed", "error", err)
		dashsdk.ErrServerError.WriteError(w)
	}
}
