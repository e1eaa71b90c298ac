package dashsdk

// ErrorResponse is the JSON body of every error response.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// HealthChecks reports the state of each dependency checked by /readyz.
type HealthChecks struct {
	Database  string `json:"database"`
	Directory string `json:"directory"`
}

// HealthResponse is returned by /livez and /readyz.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// LoginResponse is the profile shown after a successful login.
type LoginResponse struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	DateOfBirth string `json:"date_of_birth"`
}

// GreetingResponse carries a salutation and the address it was chosen for.
type GreetingResponse struct {
	Greeting string `json:"greeting"`
	Address  string `json:"address"`
}

type CountryResponse struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type HolidayPointResponse struct {
	Year     int `json:"year"`
	Holidays int `json:"holidays"`
}

// HolidaySeriesResponse lists public holiday counts per year, oldest first.
type HolidaySeriesResponse struct {
	Country string                 `json:"country"`
	Points  []HolidayPointResponse `json:"points"`
}
