package controllers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"petcare/internal/models"
	"petcare/internal/persistence"
	"petcare/internal/providers"
	"petcare/internal/services"
	"time"

	json "github.com/goccy/go-json"
)

const (
	maxRequestBodySize = 1 << 20
	ackTimeout         = 5 * time.Second
)

type ApiController struct {
	logger providers.Logger
	ids    providers.IDGenerator
	cache  providers.CacheProviderInterface
	pets   services.PetStoreInterface
	tasks  services.TaskStoreInterface
	users  services.UserStoreInterface
	scans  services.ScanServiceInterface
	views  services.ViewServiceInterface
}

type errorResponse struct {
	Error  string              `json:"error"`
	Fields []models.FieldError `json:"fields,omitempty"`
}

// mutationResponse carries the changed record together with whether its
// write reached storage before the request returned.
type mutationResponse struct {
	Persisted bool `json:"persisted"`
	Data      any  `json:"data,omitempty"`
}

func NewApiController(logger providers.Logger, ids providers.IDGenerator, cache providers.CacheProviderInterface, pets services.PetStoreInterface, tasks services.TaskStoreInterface, users services.UserStoreInterface, scans services.ScanServiceInterface, views services.ViewServiceInterface) *ApiController {
	return &ApiController{
		logger: logger,
		ids:    ids,
		cache:  cache,
		pets:   pets,
		tasks:  tasks,
		users:  users,
		scans:  scans,
		views:  views,
	}
}

func (ac *ApiController) writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		ac.logger.Errorf(providers.TypeApp, "Error marshalling response: %s", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err = w.Write(data); err != nil {
		ac.logger.Errorf(providers.TypeApp, "Error writing response: %s", err)
	}
}

func (ac *ApiController) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		ac.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "validation failed", Fields: verr.Errors})
	case errors.Is(err, models.ErrNotFound):
		ac.writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, models.ErrAlreadyExists):
		ac.writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	case errors.Is(err, models.ErrScanQuotaExhausted):
		ac.writeJSON(w, http.StatusPaymentRequired, errorResponse{Error: err.Error()})
	default:
		ac.logger.Errorf(providers.GetLogTypeByRequestType(r.Method), "%s %s: %s", r.Method, r.URL.Path, err)
		ac.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func (ac *ApiController) notFound(w http.ResponseWriter, what, id string) {
	ac.writeJSON(w, http.StatusNotFound, errorResponse{Error: what + " " + id + ": " + models.ErrNotFound.Error()})
}

// decode reads a JSON body into v. A malformed body is answered with 400
// and reported as false.
func (ac *ApiController) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	err := json.NewDecoder(r.Body).Decode(v)
	if err != nil && !errors.Is(err, io.EOF) {
		ac.logger.Debugf(providers.TypePost, "Error decoding body: %s", err)
		ac.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed request body"})
		return false
	}
	return true
}

// respondMutation waits for the write behind ack. A write that fails or
// does not finish in time still leaves the change applied in memory, so
// the client gets 202 instead of an error.
func (ac *ApiController) respondMutation(w http.ResponseWriter, r *http.Request, status int, ack *persistence.Ack, data any) {
	ctx, cancel := context.WithTimeout(r.Context(), ackTimeout)
	defer cancel()

	if err := ack.Wait(ctx); err != nil {
		ac.logger.Warnf(providers.TypeStorage, "%s %s: change kept in memory only: %s", r.Method, r.URL.Path, err)
		ac.writeJSON(w, http.StatusAccepted, mutationResponse{Persisted: false, Data: data})
		return
	}
	ac.writeJSON(w, status, mutationResponse{Persisted: true, Data: data})
}

// viewCacheKey ties a cached read to the request and to the revision of
// every store, so any mutation makes earlier entries unreachable.
func (ac *ApiController) viewCacheKey(r *http.Request) string {
	return fmt.Sprintf("view:%s:%d.%d.%d:%s", ac.tasks.Today(),
		ac.pets.Revision(), ac.tasks.Revision(), ac.users.Revision(), r.URL.RequestURI())
}

func (ac *ApiController) serveFromCacheOrCompute(w http.ResponseWriter, cacheKey string, compute func() any) {
	if data, ok := ac.cache.Get(cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	gson, err := json.Marshal(compute())
	if err != nil {
		ac.logger.Errorf(providers.TypeGet, "Error marshalling response: %s", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ac.cache.Set(cacheKey, gson)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

func queryID(r *http.Request) string {
	return r.URL.Query().Get("id")
}

// parseDateParam accepts YYYY-MM-DD or "today". An absent value yields a
// zero date.
func parseDateParam(value string, today models.Date) (models.Date, error) {
	switch value {
	case "":
		return models.Date{}, nil
	case "today":
		return today, nil
	}
	d, err := models.ParseDate(value)
	if err != nil {
		return models.Date{}, models.NewValidationError("date", "must be YYYY-MM-DD or today")
	}
	return d, nil
}
