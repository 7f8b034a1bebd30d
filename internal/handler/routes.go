package handler

import (
	"net/http"

	"github.com/apexgym/members/internal/service"
)

// RegisterRoutes sets up all HTTP routes on the given mux. The limiter
// throttles the credential-bearing endpoints per client IP.
func RegisterRoutes(
	mux *http.ServeMux,
	auth *service.AuthService,
	admin *service.AdminService,
	pois *service.PoiService,
	limiter *service.RateLimiter,
	cookieSecure bool,
	publicDir string,
) {
	authHandler := NewAuthHandler(auth, cookieSecure)
	adminHandler := NewAdminHandler(admin)
	poiHandler := NewPoiHandler(pois)

	mux.HandleFunc("GET /healthz", HandleHealthz)

	// Anonymous routes.
	mux.HandleFunc("GET /{$}", authHandler.HandleIndex)
	mux.HandleFunc("GET /signup", authHandler.HandleSignupPage)
	mux.HandleFunc("GET /login", authHandler.HandleLoginPage)
	mux.Handle("POST /signup", RateLimit(limiter, http.HandlerFunc(authHandler.HandleSignup)))
	mux.Handle("POST /login", RateLimit(limiter, http.HandlerFunc(authHandler.HandleLogin)))
	mux.HandleFunc("GET /logout", authHandler.HandleLogout)

	// Authenticated routes.
	mux.Handle("GET /home", RequireAuth(auth, http.HandlerFunc(authHandler.HandleHome)))
	mux.Handle("GET /settings", RequireAuth(auth, http.HandlerFunc(authHandler.HandleSettingsPage)))
	mux.Handle("POST /settings", RequireAuth(auth, http.HandlerFunc(authHandler.HandleSettingsUpdate)))
	mux.Handle("GET /pois", RequireAuth(auth, http.HandlerFunc(poiHandler.HandleList)))
	mux.Handle("POST /pois", RequireAuth(auth, http.HandlerFunc(poiHandler.HandleCreate)))
	mux.Handle("POST /pois/{id}/images", RequireAuth(auth, http.HandlerFunc(poiHandler.HandleUploadImage)))
	mux.Handle("GET /pois/{id}/images", RequireAuth(auth, http.HandlerFunc(poiHandler.HandleListImages)))
	mux.Handle("GET /poi-images/{id}", RequireAuth(auth, http.HandlerFunc(poiHandler.HandleGetImage)))

	// Admin-only routes.
	mux.Handle("GET /admin-dashboard", RequireAdmin(auth, http.HandlerFunc(adminHandler.HandleDashboard)))
	mux.Handle("GET /view-user/{id}", RequireAdmin(auth, http.HandlerFunc(adminHandler.HandleViewUser)))
	mux.Handle("POST /view-user/{id}", RequireAdmin(auth, http.HandlerFunc(adminHandler.HandleViewUser)))
	mux.Handle("POST /delete-user/{id}", RequireAdmin(auth, http.HandlerFunc(adminHandler.HandleDeleteUser)))

	// Everything else serves public assets.
	if publicDir != "" {
		mux.Handle("GET /", http.FileServer(http.Dir(publicDir)))
	}
}
