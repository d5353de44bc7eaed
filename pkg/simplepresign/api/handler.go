// Package api exposes presigned URL issuance over HTTP: a signing endpoint
// plus read access to the issuance audit log.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/tendant/simple-presign/pkg/simplepresign"
	"github.com/tendant/simple-presign/pkg/simplepresign/config"
	"github.com/tendant/simple-presign/pkg/simplepresign/urllog"
)

// SignHandler handles HTTP requests for presigned URL issuance
type SignHandler struct {
	signer          *simplepresign.Signer
	store           urllog.Store
	defaultValidity int
}

// NewSignHandler creates a new sign handler. The store may be nil, in which
// case issuances are not recorded.
func NewSignHandler(signer *simplepresign.Signer, store urllog.Store, defaultValidityMinutes int) *SignHandler {
	if defaultValidityMinutes <= 0 {
		defaultValidityMinutes = simplepresign.DefaultValidityMinutes
	}
	return &SignHandler{
		signer:          signer,
		store:           store,
		defaultValidity: defaultValidityMinutes,
	}
}

// Routes returns the routes for signing and the issuance log
func (h *SignHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/sign", h.SignURL)
	r.Get("/urls", h.ListEntries)
	r.Get("/urls/{id}", h.GetEntry)
	r.Delete("/urls/expired", h.PurgeExpired)

	return r
}

// SignURLRequest is the request body for signing a URL
type SignURLRequest struct {
	Bucket          string `json:"bucket"`
	ObjectKey       string `json:"object_key"`
	ValidityMinutes int    `json:"validity_minutes,omitempty"`
	ExtraQueryParam string `json:"extra_query_param,omitempty"`
}

// SignURLResponse is the response body for a signed URL
type SignURLResponse struct {
	URL       string    `json:"url"`
	Method    string    `json:"method"`
	SignedAt  time.Time `json:"signed_at"`
	ExpiresAt time.Time `json:"expires_at"`
	EntryID   string    `json:"entry_id,omitempty"`
}

// EntryResponse is the response body for an issuance log entry
type EntryResponse struct {
	ID          string    `json:"id"`
	Bucket      string    `json:"bucket"`
	ObjectKey   string    `json:"object_key"`
	Host        string    `json:"host"`
	AccessKeyID string    `json:"access_key_id"`
	URLDigest   string    `json:"url_digest"`
	SignedAt    time.Time `json:"signed_at"`
	ExpiresAt   time.Time `json:"expires_at"`
	CreatedAt   time.Time `json:"created_at"`
}

func entryResponse(entry *urllog.Entry) EntryResponse {
	return EntryResponse{
		ID:          entry.ID.String(),
		Bucket:      entry.Bucket,
		ObjectKey:   entry.ObjectKey,
		Host:        entry.Host,
		AccessKeyID: entry.AccessKeyID,
		URLDigest:   entry.URLDigest,
		SignedAt:    entry.SignedAt,
		ExpiresAt:   entry.ExpiresAt,
		CreatedAt:   entry.CreatedAt,
	}
}

// SignURL mints a presigned GET URL and records the issuance
func (h *SignHandler) SignURL(w http.ResponseWriter, r *http.Request) {
	var req SignURLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	bucket := strings.TrimSpace(req.Bucket)
	objectKey := strings.TrimSpace(req.ObjectKey)
	if err := config.ValidateBucketName(bucket); err != nil {
		slog.Error("Rejected sign request", "bucket", bucket, "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := config.ValidateObjectKey(objectKey); err != nil {
		slog.Error("Rejected sign request", "object_key", objectKey, "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	validity := req.ValidityMinutes
	if validity == 0 {
		validity = h.defaultValidity
	}

	signReq := simplepresign.SignRequest{
		Bucket:          bucket,
		ObjectKey:       objectKey,
		ValidityMinutes: validity,
		ExtraQueryParam: req.ExtraQueryParam,
	}

	result, err := h.signer.Presign(signReq)
	if err != nil {
		if simplepresign.IsInputError(err) {
			slog.Error("Invalid sign request", "bucket", req.Bucket, "object_key", req.ObjectKey, "error", err)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		slog.Error("Failed to sign URL", "bucket", req.Bucket, "object_key", req.ObjectKey, "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := SignURLResponse{
		URL:       result.URL,
		Method:    result.Method,
		SignedAt:  result.SignedAt,
		ExpiresAt: result.ExpiresAt,
	}

	if h.store != nil {
		entry, err := urllog.NewEntry(signReq, result, h.signer.AccessKeyID())
		if err != nil {
			slog.Error("Failed to build log entry", "error", err)
			http.Error(w, "failed to record issuance", http.StatusInternalServerError)
			return
		}
		if err := h.store.Create(r.Context(), entry); err != nil {
			slog.Error("Failed to record issuance", "error", err)
			http.Error(w, "failed to record issuance", http.StatusInternalServerError)
			return
		}
		resp.EntryID = entry.ID.String()
	}

	slog.Info("Presigned URL issued", "bucket", req.Bucket, "object_key", req.ObjectKey, "expires_at", result.ExpiresAt)
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, resp)
}

// GetEntry retrieves an issuance log entry by ID
func (h *SignHandler) GetEntry(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		http.Error(w, "issuance log not configured", http.StatusNotFound)
		return
	}

	idStr := chi.URLParam(r, "id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		slog.Error("Invalid entry ID", "entry_id", idStr, "error", err)
		http.Error(w, "Invalid entry ID", http.StatusBadRequest)
		return
	}

	entry, err := h.store.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, urllog.ErrEntryNotFound) {
			http.Error(w, "entry not found", http.StatusNotFound)
			return
		}
		slog.Error("Failed to get entry", "entry_id", idStr, "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	render.JSON(w, r, entryResponse(entry))
}

// PurgeExpiredResponse reports how many entries a purge removed
type PurgeExpiredResponse struct {
	Removed int `json:"removed"`
}

// PurgeExpired deletes issuance log entries whose URLs are no longer valid
func (h *SignHandler) PurgeExpired(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		http.Error(w, "issuance log not configured", http.StatusNotFound)
		return
	}

	removed, err := h.store.DeleteExpired(r.Context(), time.Now().UTC())
	if err != nil {
		slog.Error("Failed to purge expired entries", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	slog.Info("Purged expired url log entries", "removed", removed)
	render.JSON(w, r, PurgeExpiredResponse{Removed: removed})
}

// ListEntries lists issuance log entries, newest first. Supported query
// parameters: bucket, object_key, active (only currently valid URLs), limit.
func (h *SignHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		http.Error(w, "issuance log not configured", http.StatusNotFound)
		return
	}

	filter := urllog.Filter{
		Bucket:    r.URL.Query().Get("bucket"),
		ObjectKey: r.URL.Query().Get("object_key"),
	}

	if activeStr := r.URL.Query().Get("active"); activeStr != "" {
		active, err := strconv.ParseBool(activeStr)
		if err != nil {
			http.Error(w, "Invalid active parameter", http.StatusBadRequest)
			return
		}
		if active {
			filter.ActiveAt = time.Now().UTC()
		}
	}

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 0 {
			http.Error(w, "Invalid limit parameter", http.StatusBadRequest)
			return
		}
		filter.Limit = limit
	}

	entries, err := h.store.List(r.Context(), filter)
	if err != nil {
		slog.Error("Failed to list entries", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := make([]EntryResponse, 0, len(entries))
	for _, entry := range entries {
		resp = append(resp, entryResponse(entry))
	}

	render.JSON(w, r, resp)
}
