package labeling

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/labelworks/labeler/pkg/common/logger"
)

type HTTPHandler struct {
	service *Service
	maxBody int64
}

func NewHTTPHandler(service *Service, maxBody int64) *HTTPHandler {
	return &HTTPHandler{service: service, maxBody: maxBody}
}

func (h *HTTPHandler) Register(router *mux.Router) {
	router.HandleFunc("/label", h.handleLabel).Methods(http.MethodPost)
	router.HandleFunc("/upload", h.handleUpload).Methods(http.MethodPost)
	router.HandleFunc("/data", h.handleList).Methods(http.MethodGet)
	router.HandleFunc("/data/{id}", h.handleUpdate).Methods(http.MethodPut)
	router.HandleFunc("/stats", h.handleStats).Methods(http.MethodGet)
	router.HandleFunc("/uploads", h.handleListUploads).Methods(http.MethodGet)
}

func (h *HTTPHandler) handleLabel(w http.ResponseWriter, r *http.Request) {
	if h.maxBody > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBody)
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rec, err := h.service.Submit(r.Context(), req.Text)
	if err != nil {
		if IsValidationError(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		logger.Log.WithError(err).Error("failed to label text")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, rec)
}

func (h *HTTPHandler) handleUpload(w http.ResponseWriter, r *http.Request) {
	if h.maxBody > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBody)
	}
	if err := r.ParseMultipartForm(h.maxBody); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	result, err := h.service.SubmitBatch(r.Context(), header.Filename, file)
	if err != nil {
		if IsValidationError(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		logger.Log.WithError(err).Error("failed to ingest csv batch")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *HTTPHandler) handleList(w http.ResponseWriter, r *http.Request) {
	recs, err := h.service.List(r.Context())
	if err != nil {
		logger.Log.WithError(err).Error("failed to list records")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if recs == nil {
		recs = []Record{}
	}
	writeJSON(w, http.StatusOK, recs)
}

func (h *HTTPHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	if h.maxBody > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBody)
	}
	id := mux.Vars(r)["id"]

	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rec, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		if IsValidationError(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "record not found")
			return
		}
		logger.Log.WithError(err).Error("failed to update record")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, rec)
}

func (h *HTTPHandler) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		logger.Log.WithError(err).Error("failed to compute stats")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *HTTPHandler) handleListUploads(w http.ResponseWriter, r *http.Request) {
	ups, err := h.service.ListUploads(r.Context())
	if err != nil {
		logger.Log.WithError(err).Error("failed to list uploads")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if ups == nil {
		ups = []Upload{}
	}
	writeJSON(w, http.StatusOK, ups)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
