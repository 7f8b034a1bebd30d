package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/apexgym/members/internal/domain"
	"github.com/apexgym/members/internal/service"
	"github.com/apexgym/members/internal/validation"
)

const sessionCookieName = "auth_token"

// AuthHandler handles signup, login, logout, and settings requests.
type AuthHandler struct {
	auth         *service.AuthService
	cookieSecure bool
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth *service.AuthService, cookieSecure bool) *AuthHandler {
	return &AuthHandler{auth: auth, cookieSecure: cookieSecure}
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   86400, // matches token lifetime
	})
}

func (h *AuthHandler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

// HandleIndex serves the anonymous welcome page payload.
// GET /
func (h *AuthHandler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"title": "Welcome to Apex Gym"})
}

// HandleSignupPage serves the signup form payload.
// GET /signup
func (h *AuthHandler) HandleSignupPage(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"title": "Sign up for Apex Gym Classes"})
}

// HandleSignup processes a signup form submission. On success the new
// member is signed in immediately and redirected home.
// POST /signup
func (h *AuthHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid form submission.")
		return
	}

	if errs := validation.Signup.Validate(r.PostFormValue); errs != nil {
		writeFieldErrors(w, http.StatusBadRequest, "signup", errs)
		return
	}

	// The schema already accepted the date format.
	dob, err := validation.ParseDate(r.PostFormValue("dob"))
	if err != nil {
		writeFieldErrors(w, http.StatusBadRequest, "signup", validation.Errors{
			{Field: "dob", Message: "must be a date in YYYY-MM-DD format"},
		})
		return
	}

	user, err := h.auth.Register(r.Context(), service.RegisterInput{
		FirstName: r.PostFormValue("firstName"),
		LastName:  r.PostFormValue("lastName"),
		DOB:       dob,
		Address:   r.PostFormValue("address"),
		Telephone: r.PostFormValue("telephone"),
		Email:     r.PostFormValue("email"),
		Medical:   r.PostFormValue("medical"),
		Password:  r.PostFormValue("password"),
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			writeFieldErrors(w, http.StatusConflict, "signup", validation.Errors{
				{Field: "email", Message: "is already registered"},
			})
			return
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, "Invalid signup details.")
			return
		}
		slog.Error("register user", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred. Please try again.")
		return
	}

	token, err := h.auth.MintToken(user)
	if err != nil {
		slog.Error("mint token after signup", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred. Please try again.")
		return
	}

	h.setSessionCookie(w, token)
	http.Redirect(w, r, "/home", http.StatusSeeOther)
}

// HandleLoginPage serves the login form payload.
// GET /login
func (h *AuthHandler) HandleLoginPage(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"title": "Login to Apex Gym Classes"})
}

// HandleLogin processes a login form submission.
// POST /login
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid form submission.")
		return
	}

	if errs := validation.Login.Validate(r.PostFormValue); errs != nil {
		writeFieldErrors(w, http.StatusBadRequest, "login", errs)
		return
	}

	user, err := h.auth.Login(r.Context(), r.PostFormValue("email"), r.PostFormValue("password"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmailNotRegistered):
			writeError(w, http.StatusUnauthorized, "Email address is not registered.")
		case errors.Is(err, domain.ErrPasswordMismatch):
			writeError(w, http.StatusUnauthorized, "Password mismatch.")
		default:
			slog.Error("login user", "error", err)
			writeError(w, http.StatusInternalServerError, "An unexpected error occurred. Please try again.")
		}
		return
	}

	token, err := h.auth.MintToken(user)
	if err != nil {
		slog.Error("mint token after login", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred. Please try again.")
		return
	}

	h.setSessionCookie(w, token)
	http.Redirect(w, r, "/home", http.StatusSeeOther)
}

// HandleLogout clears the session cookie and redirects home. It succeeds
// from any state.
// GET /logout
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	h.clearSessionCookie(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandleHome serves the authenticated member's home page payload.
// GET /home
func (h *AuthHandler) HandleHome(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{
		"title": "Apex Gym Authenticated",
		"user":  toUserDTO(user),
	})
}

// HandleSettingsPage serves the member's current profile.
// GET /settings
func (h *AuthHandler) HandleSettingsPage(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{
		"title":   "Client Settings",
		"user":    toUserDTO(user),
		"isAdmin": user.Role == domain.RoleAdmin,
	})
}

// HandleSettingsUpdate overwrites the member's profile from the submitted
// form, including the password. Role and identity are not editable here.
// POST /settings
func (h *AuthHandler) HandleSettingsUpdate(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid form submission.")
		return
	}

	if errs := validation.SettingsUpdate.Validate(r.PostFormValue); errs != nil {
		writeFieldErrors(w, http.StatusBadRequest, "settings", errs)
		return
	}

	_, err := h.auth.UpdateSettings(r.Context(), user.ID, service.SettingsInput{
		FirstName: r.PostFormValue("firstName"),
		LastName:  r.PostFormValue("lastName"),
		Address:   r.PostFormValue("address"),
		Telephone: r.PostFormValue("telephone"),
		Email:     r.PostFormValue("email"),
		Medical:   r.PostFormValue("medical"),
		Password:  r.PostFormValue("password"),
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			writeFieldErrors(w, http.StatusConflict, "settings", validation.Errors{
				{Field: "email", Message: "is already registered"},
			})
			return
		}
		slog.Error("update settings", "error", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred. Please try again.")
		return
	}

	http.Redirect(w, r, "/settings", http.StatusSeeOther)
}
