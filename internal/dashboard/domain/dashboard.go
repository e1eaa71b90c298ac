package domain

// Greeting is a salutation in the language of a (random) network address.
type Greeting struct {
	Text    string
	Address string
}

type Country struct {
	Code string
	Name string
}

// HolidayPoint is the number of public holidays a country had in a year.
type HolidayPoint struct {
	Year     int
	Holidays int
}

// HolidaySeries is ordered by ascending year with no gaps.
type HolidaySeries struct {
	Country string
	Points  []HolidayPoint
}
