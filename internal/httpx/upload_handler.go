package httpx

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"path"
	"time"

	"github.com/accurateastro/astro-backend/internal/objstore"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const maxUploadBytes = 2 << 20

var imageExt = map[string]string{
	"image/jpeg": "jpg",
	"image/jpg":  "jpg",
	"image/png":  "png",
	"image/webp": "webp",
	"image/gif":  "gif",
}

type UploadHandler struct {
	Store *objstore.Store
	Log   *zap.Logger
}

func (h *UploadHandler) Register(r chi.Router, mw *AuthMiddleware) {
	r.Group(func(g chi.Router) {
		g.Use(mw.Authenticate, mw.RequireAdmin)
		g.Post("/api/upload/blog-image", h.upload)
		g.Delete("/api/upload/blog-image", h.remove)
	})
}

func (h *UploadHandler) upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		fail(w, http.StatusBadRequest, "File too large. Maximum size is 2MB.")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		fail(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	ext, ok := imageExt[contentType]
	if !ok {
		fail(w, http.StatusBadRequest, "Invalid file type. Only JPEG, PNG, WebP and GIF images are allowed.")
		return
	}

	folder := r.FormValue("folder")
	if folder == "" {
		folder = "blog-images"
	}
	prefix := r.FormValue("blogId")
	if prefix == "" {
		prefix = "temp"
	}
	objectName := fmt.Sprintf("%s/%s-%d-%s.%s",
		folder, prefix, time.Now().UnixMilli(), randHex(4), ext)

	url, err := h.Store.Upload(r.Context(), objectName, file, header.Size, contentType)
	if err != nil {
		h.Log.Error("image upload failed", zap.String("object", objectName), zap.Error(err))
		fail(w, http.StatusInternalServerError, "Failed to upload image")
		return
	}
	writeJSON(w, http.StatusOK, envelope{
		"success":  true,
		"message":  "Image uploaded successfully",
		"imageUrl": url,
		"fileName": objectName,
	})
}

func (h *UploadHandler) remove(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FileName string `json:"fileName"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	// Clean the name so a crafted path cannot reach outside the bucket prefix.
	name := path.Clean(req.FileName)
	if name == "" || name == "." || name[0] == '/' || name[0] == '.' {
		fail(w, http.StatusBadRequest, "File name is required")
		return
	}
	if err := h.Store.Remove(r.Context(), name); err != nil {
		h.Log.Error("image delete failed", zap.String("object", name), zap.Error(err))
		fail(w, http.StatusInternalServerError, "Failed to delete image")
		return
	}
	writeJSON(w, http.StatusOK, envelope{"success": true, "message": "Image deleted successfully"})
}

func randHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
