package petstore

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const petPath = "/pet"

// Upload stub results. UploadImage never reaches the network.
const (
	uploadMissingFileBody = "File is required."
	uploadBadTypeBody     = "Unsupported file type."
	uploadSuccessBody     = "File uploaded successfully"
)

var uploadExtensions = []string{".jpg", ".png"}

// PetAPI wraps the /pet endpoints.
type PetAPI struct {
	transport  *Transport
	log        Logger
	logHeaders bool
}

// NewPetAPI builds the pet wrapper on a shared transport.
func NewPetAPI(t *Transport, log Logger, logHeaders bool) *PetAPI {
	if t == nil {
		panic("petstore: nil transport")
	}
	return &PetAPI{transport: t, log: ensureLogger(log), logHeaders: logHeaders}
}

// CreatePet adds a new pet.
func (a *PetAPI) CreatePet(ctx context.Context, pet Pet) Result {
	return a.execute(ctx, Request{
		Method:  http.MethodPost,
		Path:    petPath,
		Headers: jsonHeaders(),
		Body:    mustJSON(pet),
	})
}

// UpdatePet replaces an existing pet.
func (a *PetAPI) UpdatePet(ctx context.Context, pet Pet) Result {
	return a.execute(ctx, Request{
		Method:  http.MethodPut,
		Path:    petPath,
		Headers: jsonHeaders(),
		Body:    mustJSON(pet),
	})
}

// UpdatePetWithForm updates name and status of pet.ID with form data.
func (a *PetAPI) UpdatePetWithForm(ctx context.Context, pet Pet) Result {
	form := url.Values{}
	form.Set("name", pet.Name)
	form.Set("status", pet.Status)
	return a.execute(ctx, Request{
		Method:  http.MethodPost,
		Path:    petIDPath(pet.ID),
		Headers: map[string]string{"Content-Type": contentTypeForm},
		Body:    []byte(form.Encode()),
	})
}

// FindPetsByStatus lists pets by a status filter. Several statuses are
// passed comma separated, e.g. "available,pending".
func (a *PetAPI) FindPetsByStatus(ctx context.Context, status string) Result {
	return a.execute(ctx, Request{
		Method: http.MethodGet,
		Path:   petPath + "/findByStatus",
		Query:  url.Values{"status": {status}},
	})
}

// GetPetByID fetches one pet. The pet is only present when the call returned
// 200 and the body decoded; anything else is logged and reported as absent.
func (a *PetAPI) GetPetByID(ctx context.Context, id int64) Lookup[Pet] {
	res := a.execute(ctx, Request{
		Method: http.MethodGet,
		Path:   petIDPath(id),
	})

	lookup := lookupFrom[Pet](res)
	switch {
	case lookup.Err != nil:
		a.log.WarnObj("pet body did not decode", "petstore_lookup", map[string]any{
			"pet_id": id,
			"error":  lookup.Err.Error(),
		})
	case !lookup.Found:
		a.log.WarnObj("error retrieving pet", "petstore_lookup", map[string]any{
			"pet_id":      id,
			"status_code": res.StatusCode,
		})
	}
	return lookup
}

// DeletePet removes a pet. The api_key header is only sent when apiKey is set.
func (a *PetAPI) DeletePet(ctx context.Context, id int64, apiKey string) Result {
	headers := jsonHeaders()
	if apiKey != "" {
		headers["api_key"] = apiKey
	}
	return a.execute(ctx, Request{
		Method:  http.MethodDelete,
		Path:    petIDPath(id),
		Headers: headers,
	})
}

// UploadImage validates the file name locally and returns a canned result.
// No request is sent; the multipart upload is not implemented.
func (a *PetAPI) UploadImage(_ context.Context, petID int64, file, additionalMetadata string) Result {
	if file == "" {
		return NewResult(http.StatusBadRequest, uploadMissingFileBody)
	}
	if !hasUploadExtension(file) {
		return NewResult(http.StatusUnsupportedMediaType, uploadBadTypeBody)
	}
	a.log.DebugObj("pet image upload stubbed", "petstore_upload", map[string]any{
		"pet_id":   petID,
		"file":     file,
		"metadata": additionalMetadata,
	})
	return NewResult(http.StatusOK, uploadSuccessBody)
}

func (a *PetAPI) execute(ctx context.Context, req Request) Result {
	req.LogHeaders = a.logHeaders
	return a.transport.Execute(ctx, req)
}

func petIDPath(id int64) string {
	return petPath + "/" + strconv.FormatInt(id, 10)
}

func hasUploadExtension(file string) bool {
	for _, ext := range uploadExtensions {
		if strings.HasSuffix(file, ext) {
			return true
		}
	}
	return false
}
