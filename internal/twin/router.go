package twin

import (
	"net/http"
	"time"

	"github.com/Adda-Baaj/petstore-client/internal/logger"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// Handler serves the pet-store API from a MemoryStore.
type Handler struct {
	store *MemoryStore
}

// NewHandler creates a handler over s.
func NewHandler(s *MemoryStore) *Handler {
	return &Handler{store: s}
}

// Routes mounts the pet-store routes.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/pet", h.CreatePet)
	r.Put("/pet", h.UpdatePet)
	r.Get("/pet/findByStatus", h.FindPetsByStatus)
	r.Get("/pet/{petId}", h.GetPet)
	r.Post("/pet/{petId}", h.UpdatePetWithForm)
	r.Delete("/pet/{petId}", h.DeletePet)

	r.Get("/store/inventory", h.Inventory)
	r.Post("/store/order", h.PlaceOrder)
	r.Get("/store/order/{orderId}", h.GetOrder)
	r.Delete("/store/order/{orderId}", h.DeleteOrder)

	r.Post("/user", h.CreateUser)
	r.Post("/user/createWithArray", h.CreateUsers)
	r.Post("/user/createWithList", h.CreateUsers)
	r.Get("/user/login", h.Login)
	r.Get("/user/logout", h.Logout)
	r.Get("/user/", h.EmptyUsername)
	r.Put("/user/", h.EmptyUsername)
	r.Delete("/user/", h.EmptyUsername)
	r.Get("/user/{username}", h.GetUser)
	r.Put("/user/{username}", h.UpdateUser)
	r.Delete("/user/{username}", h.DeleteUser)
}

// NewRouter builds the twin's router with request logging. Unknown routes
// and methods answer with the service's JSON error body.
func NewRouter(s *MemoryStore, log logger.Logger) *chi.Mux {
	if log == nil {
		log = logger.NopLogger{}
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(requestLog(log))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	NewHandler(s).Routes(r)
	return r
}

func requestLog(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			log.DebugObj("twin request", "twin_request", map[string]any{
				"request_id": chimw.GetReqID(r.Context()),
				"method":     r.Method,
				"path":       r.URL.Path,
				"status":     ww.Status(),
				"elapsed_ms": time.Since(start).Milliseconds(),
			})
		})
	}
}
