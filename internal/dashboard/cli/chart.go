package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/aussiebroadwan/holidash/internal/dashboard/domain"
)

const barWidth = 40

// printSeries draws one horizontal bar per year, scaled to the busiest year.
func printSeries(w io.Writer, s domain.HolidaySeries) {
	fmt.Fprintf(w, "Public holidays in %s\n", s.Country)

	peak := 0
	for _, p := range s.Points {
		peak = max(peak, p.Holidays)
	}

	for _, p := range s.Points {
		n := 0
		if peak > 0 {
			n = p.Holidays * barWidth / peak
		}
		fmt.Fprintf(w, "%d | %-*s %d\n", p.Year, barWidth, strings.Repeat("#", n), p.Holidays)
	}
}
