// Package mockpos is an in-memory stand-in for the point-of-sale API, used to test the
// contract tests themselves. It implements only the responses the contract describes, plus
// knobs for injecting latency and failures.
package mockpos

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const tokenLifetime = time.Hour

// Server is an http.Handler serving the fake API.
type Server struct {
	router  chi.Router
	store   *memoryStore
	secret  []byte
	logger  *slog.Logger
	latency time.Duration
	faults  map[string]int
	mu      sync.RWMutex
}

type Option func(*Server)

// WithLatency delays every response.
func WithLatency(d time.Duration) Option {
	return func(s *Server) { s.latency = d }
}

// WithFault makes requests with the given method and exact path fail with status.
func WithFault(method, path string, status int) Option {
	return func(s *Server) { s.faults[faultKey(method, path)] = status }
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

func New(opts ...Option) *Server {
	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		panic(err)
	}
	s := &Server{
		store:  newMemoryStore(),
		secret: secret,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		faults: make(map[string]int),
	}
	for _, o := range opts {
		o(s)
	}

	r := chi.NewRouter()
	r.Use(s.requestLog)
	r.Use(s.faultInjection)
	r.Post("/registration", s.register)
	r.Post("/authentications", s.authenticate)
	r.Group(func(r chi.Router) {
		r.Use(s.requireBearer)
		r.Post("/categories", s.createCategory)
		r.Get("/categories", s.listCategories)
		r.Post("/products", s.createProduct)
		r.Get("/products", s.listProducts)
		r.Put("/products/{id}", s.updateProduct)
		r.Delete("/products/{id}", s.deleteProduct)
	})
	s.router = r
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// SetFault changes fault injection at runtime. A status of zero removes the fault.
func (s *Server) SetFault(method, path string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if status == 0 {
		delete(s.faults, faultKey(method, path))
		return
	}
	s.faults[faultKey(method, path)] = status
}

func faultKey(method, path string) string {
	return strings.ToUpper(method) + " " + path
}

func (s *Server) requestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("request", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}

func (s *Server) faultInjection(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.latency > 0 {
			time.Sleep(s.latency)
		}
		s.mu.RLock()
		status, ok := s.faults[faultKey(r.Method, r.URL.Path)]
		s.mu.RUnlock()
		if ok {
			writeFail(w, status, "injected fault")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requireBearer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || raw == "" {
			writeFail(w, http.StatusUnauthorized, "Missing authentication")
			return
		}
		_, err := jwt.Parse(raw, func(*jwt.Token) (interface{}, error) { return s.secret, nil },
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil {
			writeFail(w, http.StatusUnauthorized, "Invalid token")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) issueToken(u *user, kind string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": u.ID,
		"typ": kind,
		"jti": uuid.NewString(),
		"iat": now.Unix(),
		"exp": now.Add(tokenLifetime).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign %s token: %w", kind, err)
	}
	return signed, nil
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeSuccess(w http.ResponseWriter, status int, message string, data interface{}) {
	body := map[string]interface{}{"status": "success", "message": message}
	if data != nil {
		body["data"] = data
	}
	writeJSON(w, status, body)
}

func writeFail(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"status": "fail", "message": message})
}
