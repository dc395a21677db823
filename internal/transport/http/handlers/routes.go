package handlers

import "net/http"

type Handlers struct {
	Auth   *AuthHandler
	Users  *UserHandler
	Tweets *TweetHandler
}

// RegisterRoutes mounts the REST API on mux. protect wraps every mutating
// route after signup; pass nil to leave them open.
func RegisterRoutes(mux *http.ServeMux, h Handlers, protect func(http.Handler) http.Handler) {
	if protect == nil {
		protect = func(next http.Handler) http.Handler { return next }
	}

	// Public
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"Twitter Api": "Working"})
	})
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("POST /api/v1/auth/signup", h.Users.Register)
	mux.HandleFunc("POST /api/v1/auth/login", h.Auth.Login)

	// Users
	mux.HandleFunc("GET /api/v1/users", h.Users.List)
	mux.HandleFunc("GET /api/v1/users/{user_name}", h.Users.Get)
	mux.Handle("PATCH /api/v1/users/{user_name}", protect(http.HandlerFunc(h.Users.Update)))
	mux.Handle("DELETE /api/v1/users/{user_name}", protect(http.HandlerFunc(h.Users.Delete)))

	// Tweets
	mux.HandleFunc("GET /api/v1/tweets", h.Tweets.List)
	mux.HandleFunc("GET /api/v1/tweets/{tweet_id}", h.Tweets.Get)
	mux.Handle("POST /api/v1/tweets", protect(http.HandlerFunc(h.Tweets.Post)))
	mux.Handle("PATCH /api/v1/tweets/{tweet_id}", protect(http.HandlerFunc(h.Tweets.Edit)))
	mux.Handle("DELETE /api/v1/tweets/{tweet_id}", protect(http.HandlerFunc(h.Tweets.Delete)))
}
