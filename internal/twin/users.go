package twin

import (
	"fmt"
	"net/http"
	"net/mail"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Adda-Baaj/petstore-client/pkg/petstore"
	"github.com/go-chi/chi/v5"
)

const sessionTTL = time.Hour

func validateUser(u petstore.User) string {
	switch {
	case strings.TrimSpace(u.Username) == "":
		return "Username is required"
	case u.Password == "":
		return "Password is required"
	case u.Email != "" && !validEmail(u.Email):
		return "Invalid email address"
	}
	return ""
}

// usernameParam returns the decoded {username} segment.
func usernameParam(r *http.Request) string {
	raw := chi.URLParam(r, "username")
	if name, err := url.PathUnescape(raw); err == nil {
		return name
	}
	return raw
}

func validEmail(addr string) bool {
	parsed, err := mail.ParseAddress(addr)
	return err == nil && parsed.Address == addr
}

// CreateUser handles POST /user.
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var u petstore.User
	if err := decodeJSON(r, &u); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if msg := validateUser(u); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	stored, ok := h.store.AddUsers([]petstore.User{u})
	if !ok {
		writeError(w, http.StatusConflict, "User already exists")
		return
	}
	writeMessage(w, strconv.FormatInt(stored[0].ID, 10))
}

// CreateUsers handles POST /user/createWithArray and /user/createWithList.
func (h *Handler) CreateUsers(w http.ResponseWriter, r *http.Request) {
	var batch []petstore.User
	if err := decodeJSON(r, &batch); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if len(batch) == 0 {
		writeError(w, http.StatusBadRequest, "User list is empty")
		return
	}
	for i, u := range batch {
		if msg := validateUser(u); msg != "" {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("users[%d]: %s", i, msg))
			return
		}
	}
	if _, ok := h.store.AddUsers(batch); !ok {
		writeError(w, http.StatusConflict, "User already exists")
		return
	}
	writeMessage(w, "ok")
}

// GetUser handles GET /user/{username}.
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	username := usernameParam(r)
	if username == "" {
		writeError(w, http.StatusBadRequest, "Invalid username supplied")
		return
	}
	u, ok := h.store.User(username)
	if !ok {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	writeJSON(w, http.StatusOK, u)
}

// UpdateUser handles PUT /user/{username}.
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	username := usernameParam(r)
	if username == "" {
		writeError(w, http.StatusBadRequest, "Invalid username supplied")
		return
	}
	var u petstore.User
	if err := decodeJSON(r, &u); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if u.Username == "" {
		u.Username = username
	}
	if u.Password == "" {
		if existing, ok := h.store.User(username); ok {
			u.Password = existing.Password
		}
	}
	if msg := validateUser(u); msg != "" {
		if _, ok := h.store.User(username); !ok {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	found, conflict := h.store.ReplaceUser(username, u)
	switch {
	case !found:
		writeError(w, http.StatusNotFound, "User not found")
	case conflict:
		writeError(w, http.StatusConflict, "User already exists")
	default:
		writeMessage(w, u.Username)
	}
}

// DeleteUser handles DELETE /user/{username}.
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	username := usernameParam(r)
	if username == "" {
		writeError(w, http.StatusBadRequest, "Invalid username supplied")
		return
	}
	if !h.store.DeleteUser(username) {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	writeMessage(w, username)
}

// EmptyUsername answers /user/ requests that carry no username.
func (h *Handler) EmptyUsername(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusBadRequest, "Invalid username supplied")
}

// Login handles GET /user/login?username=&password=.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	username, password := q.Get("username"), q.Get("password")
	if username == "" || password == "" {
		writeError(w, http.StatusBadRequest, "Invalid username/password supplied")
		return
	}
	u, ok := h.store.User(username)
	if !ok {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	if u.Password != password {
		writeError(w, http.StatusUnauthorized, "Invalid username/password supplied")
		return
	}

	session := h.store.NextSession()
	w.Header().Set("X-Rate-Limit", "5000")
	w.Header().Set("X-Expires-After", time.Now().Add(sessionTTL).UTC().Format(time.RFC1123))
	writeMessage(w, fmt.Sprintf("logged in user session:%d", session))
}

// Logout handles GET /user/logout.
func (h *Handler) Logout(w http.ResponseWriter, _ *http.Request) {
	writeMessage(w, "ok")
}
