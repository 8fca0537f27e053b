package middleware

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// UploadedImagesKey is the context key under which stored image paths are
// passed to the handler.
const UploadedImagesKey = "uploaded_images"

const (
	uploadFieldName = "images"
	maxUploadFiles  = 5
	maxUploadSize   = 5 << 20 // 5MB per file
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
}

// ImageStorage persists an uploaded file and returns its public path.
// Satisfied by the service package's storage backends.
type ImageStorage interface {
	Save(ctx context.Context, fileName string, data []byte, contentType string) (string, error)
}

// Upload parses a multipart form, enforces the upload contract (at most 5
// images, 5MB each, JPEG/PNG/GIF only) and stores accepted files before the
// handler runs. Stored paths are exposed under UploadedImagesKey.
func Upload(storage ImageStorage) gin.HandlerFunc {
	return func(c *gin.Context) {
		form, err := c.MultipartForm()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid multipart form"})
			c.Abort()
			return
		}

		files := form.File[uploadFieldName]
		if len(files) > maxUploadFiles {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": fmt.Sprintf("at most %d images are allowed", maxUploadFiles),
			})
			c.Abort()
			return
		}

		var paths []string
		for _, header := range files {
			if header.Size > maxUploadSize {
				c.JSON(http.StatusBadRequest, gin.H{
					"error": fmt.Sprintf("file %s exceeds the %dMB size limit", header.Filename, maxUploadSize>>20),
				})
				c.Abort()
				return
			}

			contentType := header.Header.Get("Content-Type")
			if !allowedImageTypes[contentType] {
				c.JSON(http.StatusBadRequest, gin.H{
					"error": "Invalid file type. Only JPEG, PNG and GIF are allowed.",
				})
				c.Abort()
				return
			}

			file, err := header.Open()
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read upload"})
				c.Abort()
				return
			}
			data, err := io.ReadAll(file)
			file.Close()
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read upload"})
				c.Abort()
				return
			}

			fileName := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), header.Filename)
			path, err := storage.Save(c.Request.Context(), fileName, data, contentType)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store upload"})
				c.Abort()
				return
			}
			paths = append(paths, path)
		}

		c.Set(UploadedImagesKey, paths)
		c.Next()
	}
}
