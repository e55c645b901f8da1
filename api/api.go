package api

import (
	"net"
	"net/http"
	"sync"

	"golang.org/x/time/rate"

	"github.com/vlnch/anonbox/api/rest"
	"github.com/vlnch/anonbox/service"
	"github.com/vlnch/anonbox/store"
)

const (
	// Rate limiting for anonymous submissions: 1 message per second per
	// client address with a burst of 5
	submitsPerSecond = 1
	submitBurstLimit = 5

	// Crude bound on the limiter map; beyond this the map resets rather
	// than growing without limit.
	maxTrackedClients = 10000
)

type AnonboxAPI struct {
	restHandler *rest.Handler

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

func NewAnonboxAPI(documentStore store.DocumentStore) *AnonboxAPI {
	svc := service.NewService(documentStore)

	return &AnonboxAPI{
		restHandler: rest.NewHandler(svc),
		limiters:    make(map[string]*rate.Limiter),
	}
}

func (anonboxAPI *AnonboxAPI) RegisterRoutes(mux *http.ServeMux) {
	// Health check endpoint (no auth required)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	mux.HandleFunc("POST /api/auth/register", anonboxAPI.restHandler.HandleRegister)
	mux.HandleFunc("POST /api/auth/login", anonboxAPI.restHandler.HandleLogin)
	mux.Handle("POST /api/messages/{username}", anonboxAPI.limitSubmits(http.HandlerFunc(anonboxAPI.restHandler.HandleSubmit)))
	mux.HandleFunc("GET /api/messages", anonboxAPI.restHandler.HandleInbox)
}

// limitSubmits throttles anonymous message submission per client address.
func (anonboxAPI *AnonboxAPI) limitSubmits(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		addr := r.RemoteAddr
		if host, _, err := net.SplitHostPort(addr); err == nil {
			addr = host
		}
		if !anonboxAPI.limiterFor(addr).Allow() {
			http.Error(w, "Too many requests", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (anonboxAPI *AnonboxAPI) limiterFor(addr string) *rate.Limiter {
	anonboxAPI.mu.Lock()
	defer anonboxAPI.mu.Unlock()

	if len(anonboxAPI.limiters) > maxTrackedClients {
		anonboxAPI.limiters = make(map[string]*rate.Limiter)
	}

	limiter, ok := anonboxAPI.limiters[addr]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(submitsPerSecond), submitBurstLimit)
		anonboxAPI.limiters[addr] = limiter
	}
	return limiter
}

// WithCORS wraps a handler with the permissive CORS policy the browser
// frontend needs, answering preflight requests directly.
func WithCORS(next http.Handler, allowedOrigin string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
