package controllers

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/estatehq/sales-service/internal/dtos"
	"github.com/estatehq/sales-service/internal/storage"
	"github.com/estatehq/sales-service/internal/utils"
)

// uploads are plan scans and facade photos; 15MB covers a high-res scan
const maxUploadBytes = 15 << 20

var allowedImageExts = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

type UploadController struct {
	store storage.Store
}

func NewUploadController(store storage.Store) *UploadController {
	return &UploadController{store: store}
}

// POST /api/v1/admin/upload
// Multipart form with a single "file" field. Responds with the URL to embed.
func (c *UploadController) UploadHandler(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "File too large or malformed form", nil, err)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Missing file field", nil, err)
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	contentType, ok := allowedImageExts[ext]
	if !ok {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Only jpg, png and webp images are accepted", nil, nil)
		return
	}

	key := fmt.Sprintf("%s%s", uuid.New(), ext)
	url, err := c.store.Save(r.Context(), key, file, contentType)
	if err != nil {
		utils.Logger.WithError(err).Error("Upload failed")
		utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Could not store file", nil, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, dtos.UploadResponse{URL: url})
}
