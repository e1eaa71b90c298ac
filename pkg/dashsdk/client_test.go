package dashsdk

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		status  int
		body    string
		code    string
		hasDesc bool
	}{
		{"typed error", http.StatusUnauthorized, `{"error":"authentication_failed","error_description":"Authentication failed"}`, ErrorCodeAuthenticationFailed, true},
		{"plain text", http.StatusBadGateway, "bad gateway", ErrorCodeServerError, true},
		{"empty body", http.StatusServiceUnavailable, "", ErrorCodeServerError, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewSDKClient(srv.URL).Greeting(t.Context())
			require.Error(t, err)
			require.True(t, IsCode(err, tt.code), err.Error())

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			require.Equal(t, tt.status, apiErr.StatusCode)
			require.NotEmpty(t, apiErr.Description)
		})
	}
}

func TestLoginRequest(t *testing.T) {
	t.Parallel()

	seen := make(chan *http.Request, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		seen <- r
		_, _ = w.Write([]byte(`{"first_name":"Jane","last_name":"Doe","date_of_birth":"1990-05-01"}`))
	}))
	defer srv.Close()

	user, err := NewSDKClient(srv.URL+"/").Login(t.Context(), "jane@example.com", "p&ss=word")
	require.NoError(t, err)
	require.Equal(t, &LoginResponse{FirstName: "Jane", LastName: "Doe", DateOfBirth: "1990-05-01"}, user)

	r := <-seen
	require.Equal(t, http.MethodPost, r.Method)
	require.Equal(t, "/v1/login", r.URL.Path)
	require.Equal(t, "jane@example.com", r.PostForm.Get("identifier"))
	require.Equal(t, "p&ss=word", r.PostForm.Get("password"))
}

func TestAPIErrorWriteError(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	ErrInvalidCountry.WriteError(rec)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	require.JSONEq(t, `{"error":"invalid_country","error_description":"country must be a supported ISO 3166-1 alpha-2 code"}`, rec.Body.String())
}
