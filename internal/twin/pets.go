package twin

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/Adda-Baaj/petstore-client/pkg/petstore"
	"github.com/go-chi/chi/v5"
)

const maxPetNameLen = 255

var petStatuses = map[string]bool{
	petstore.PetStatusAvailable: true,
	petstore.PetStatusPending:   true,
	petstore.PetStatusSold:      true,
}

func validateNewPet(p petstore.Pet) string {
	switch {
	case p.ID <= 0:
		return "Invalid ID supplied"
	case strings.TrimSpace(p.Name) == "":
		return "Pet name is required"
	case len(p.Name) > maxPetNameLen:
		return "Pet name is too long"
	case !petStatuses[p.Status]:
		return "Invalid status value"
	}
	return ""
}

// CreatePet handles POST /pet.
func (h *Handler) CreatePet(w http.ResponseWriter, r *http.Request) {
	var p petstore.Pet
	if err := decodeJSON(r, &p); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if msg := validateNewPet(p); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	if !h.store.AddPet(p) {
		writeError(w, http.StatusConflict, "Pet already exists")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// UpdatePet handles PUT /pet.
func (h *Handler) UpdatePet(w http.ResponseWriter, r *http.Request) {
	var p petstore.Pet
	if err := decodeJSON(r, &p); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	switch {
	case p.ID == 0:
		writeError(w, http.StatusBadRequest, "Invalid ID supplied")
		return
	case p.Name == "" && p.Status == "":
		writeError(w, http.StatusBadRequest, "Invalid input")
		return
	case strings.TrimSpace(p.Name) == "" || !petStatuses[p.Status]:
		writeError(w, http.StatusMethodNotAllowed, "Validation exception")
		return
	}
	if !h.store.ReplacePet(p) {
		writeError(w, http.StatusNotFound, "Pet not found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// UpdatePetWithForm handles POST /pet/{petId} with form fields name and status.
func (h *Handler) UpdatePetWithForm(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(chi.URLParam(r, "petId"))
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid ID supplied")
		return
	}
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusMethodNotAllowed, "Invalid input")
		return
	}
	name := strings.TrimSpace(r.PostForm.Get("name"))
	status := strings.TrimSpace(r.PostForm.Get("status"))

	if _, exists := h.store.Pet(id); !exists {
		writeError(w, http.StatusNotFound, "Pet not found")
		return
	}
	if name == "" || len(name) > maxPetNameLen || !petStatuses[status] {
		writeError(w, http.StatusMethodNotAllowed, "Invalid input")
		return
	}
	if _, ok := h.store.UpdatePet(id, func(p *petstore.Pet) {
		p.Name = name
		p.Status = status
	}); !ok {
		writeError(w, http.StatusNotFound, "Pet not found")
		return
	}
	writeMessage(w, strconv.FormatInt(id, 10))
}

// FindPetsByStatus handles GET /pet/findByStatus?status=a,b.
func (h *Handler) FindPetsByStatus(w http.ResponseWriter, r *http.Request) {
	var statuses []string
	for _, raw := range r.URL.Query()["status"] {
		for _, st := range strings.Split(raw, ",") {
			if st = strings.TrimSpace(st); st != "" {
				statuses = append(statuses, st)
			}
		}
	}
	if len(statuses) == 0 {
		writeError(w, http.StatusBadRequest, "Invalid status value")
		return
	}
	for _, st := range statuses {
		if !petStatuses[st] {
			writeError(w, http.StatusBadRequest, "Invalid status value")
			return
		}
	}
	writeJSON(w, http.StatusOK, h.store.PetsByStatus(statuses))
}

// GetPet handles GET /pet/{petId}.
func (h *Handler) GetPet(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(chi.URLParam(r, "petId"))
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid ID supplied")
		return
	}
	p, found := h.store.Pet(id)
	if !found {
		writeError(w, http.StatusNotFound, "Pet not found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// DeletePet handles DELETE /pet/{petId}. The api_key header is required.
func (h *Handler) DeletePet(w http.ResponseWriter, r *http.Request) {
	if strings.TrimSpace(r.Header.Get("api_key")) == "" {
		writeError(w, http.StatusUnauthorized, "API key is required")
		return
	}
	id, ok := parseID(chi.URLParam(r, "petId"))
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid ID supplied")
		return
	}
	if !h.store.DeletePet(id) {
		writeError(w, http.StatusNotFound, "Pet not found")
		return
	}
	writeMessage(w, strconv.FormatInt(id, 10))
}
