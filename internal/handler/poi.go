package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/apexgym/members/internal/domain"
	"github.com/apexgym/members/internal/service"
)

// PoiHandler handles members' points of interest and attached images.
type PoiHandler struct {
	pois *service.PoiService
}

// NewPoiHandler creates a new PoiHandler.
func NewPoiHandler(pois *service.PoiService) *PoiHandler {
	return &PoiHandler{pois: pois}
}

// HandleList returns the member's own points of interest.
// GET /pois
func (h *PoiHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	pois, err := h.pois.ListForUser(r.Context(), user.ID)
	if err != nil {
		slog.Error("list pois", "error", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred. Please try again.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"pois": toPoiDTOs(pois)})
}

// HandleCreate records a new point of interest for the member.
// POST /pois
func (h *PoiHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid form submission.")
		return
	}

	poi, err := h.pois.Create(r.Context(), user.ID,
		r.PostFormValue("name"),
		r.PostFormValue("description"),
		r.PostFormValue("category"),
	)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, "Name and a known category are required.")
			return
		}
		slog.Error("create poi", "error", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred. Please try again.")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"poi": toPoiDTO(poi)})
}

// HandleUploadImage stores a multipart image upload against one of the
// member's points of interest.
// POST /pois/{id}/images
func (h *PoiHandler) HandleUploadImage(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	poiID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid record id.")
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "File too large.")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No image file provided.")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		slog.Error("read upload", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred. Please try again.")
		return
	}

	image, err := h.pois.AttachImage(r.Context(), user.ID, poiID,
		header.Filename, header.Header.Get("Content-Type"), data)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusNotFound, "Record not found.")
		case errors.Is(err, domain.ErrForbidden):
			writeError(w, http.StatusForbidden, "You do not own this record.")
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, "Only JPEG and PNG images up to 10MB are accepted.")
		default:
			slog.Error("attach image", "error", err, "poi_id", poiID)
			writeError(w, http.StatusInternalServerError, "An unexpected error occurred. Please try again.")
		}
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"image": toPoiImageDTO(image)})
}

// HandleListImages returns image metadata for one point of interest.
// GET /pois/{id}/images
func (h *PoiHandler) HandleListImages(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	poiID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid record id.")
		return
	}

	images, err := h.pois.ListImages(r.Context(), user, poiID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusNotFound, "Record not found.")
		case errors.Is(err, domain.ErrForbidden):
			writeError(w, http.StatusForbidden, "You do not own this record.")
		default:
			slog.Error("list images", "error", err, "poi_id", poiID)
			writeError(w, http.StatusInternalServerError, "An unexpected error occurred. Please try again.")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"images": toPoiImageDTOs(images)})
}

// HandleGetImage serves stored image bytes. Members see their own
// images; admins see all.
// GET /poi-images/{id}
func (h *PoiHandler) HandleGetImage(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	imageID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid image id.")
		return
	}

	data, contentType, err := h.pois.GetImage(r.Context(), user, imageID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusNotFound, "Image not found.")
		case errors.Is(err, domain.ErrForbidden):
			writeError(w, http.StatusForbidden, "You do not own this image.")
		default:
			slog.Error("get image", "error", err, "image_id", imageID)
			writeError(w, http.StatusInternalServerError, "An unexpected error occurred. Please try again.")
		}
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		slog.Error("write image response", "error", err)
	}
}
