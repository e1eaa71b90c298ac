package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/holidash/internal/dashboard/service"
	"github.com/aussiebroadwan/holidash/pkg/dashsdk"
	"github.com/aussiebroadwan/holidash/pkg/httpx"
	"github.com/aussiebroadwan/holidash/pkg/slogx"
)

type LoginHandler struct {
	LoginService *service.LoginService
	Directory    DirectoryStatus
}

// ServeHTTP checks a single login attempt.
//
//	@Summary		Check credentials
//	@Description	Verifies identifier and password against the user directory and returns the user's profile.
//	@Description	Every failure answers the same 401, whether the identifier is unknown or the password wrong.
//	@Tags			Login
//	@Accept			x-www-form-urlencoded
//	@Produce		json
//	@Param			identifier	formData	string					true	"User identifier (email)"
//	@Param			password	formData	string					true	"Password"
//	@Success		200			{object}	dashsdk.LoginResponse	"first_name, last_name, date_of_birth"
//	@Failure		400			{object}	dashsdk.ErrorResponse	"Malformed form body"
//	@Failure		401			{object}	dashsdk.ErrorResponse	"Authentication failed"
//	@Failure		429			{object}	dashsdk.ErrorResponse	"Too many attempts"
//	@Failure		503			{object}	dashsdk.ErrorResponse	"User directory not loaded yet"
//	@Router			/v1/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if err := r.ParseForm(); err != nil {
		dashsdk.ErrInvalidFormBody.WriteError(w)
		return
	}

	if !h.Directory.Ready() {
		dashsdk.ErrDirectoryNotAvailable.WriteError(w)
		return
	}

	user, err := h.LoginService.Authenticate(ctx, r.PostForm.Get("identifier"), r.PostForm.Get("password"))
	switch {
	case errors.Is(err, service.ErrAuthenticationFailed):
		dashsdk.ErrAuthenticationFailed.WriteError(w)
		return
	case err != nil:
		log.Error("login failed unexpectedly", "error", err)
		dashsdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, dashsdk.LoginResponse{
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		DateOfBirth: user.DateOfBirth,
	})
}
