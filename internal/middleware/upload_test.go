package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingStorage struct {
	saved []string
}

func (s *recordingStorage) Save(_ context.Context, fileName string, _ []byte, _ string) (string, error) {
	s.saved = append(s.saved, fileName)
	return "/uploads/" + fileName, nil
}

func uploadRouter(storage ImageStorage) (*gin.Engine, *[]string) {
	gin.SetMode(gin.TestMode)
	var captured []string
	r := gin.New()
	r.POST("/upload", Upload(storage), func(c *gin.Context) {
		if paths, ok := c.Get(UploadedImagesKey); ok {
			captured, _ = paths.([]string)
		}
		c.JSON(http.StatusOK, gin.H{"paths": captured})
	})
	return r, &captured
}

func multipartBody(t *testing.T, files []struct {
	name        string
	contentType string
	size        int
}) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, f := range files {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition",
			fmt.Sprintf(`form-data; name="images"; filename="%s"`, f.name))
		header.Set("Content-Type", f.contentType)
		part, err := w.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write(bytes.Repeat([]byte("x"), f.size))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestUploadStoresAcceptedFiles(t *testing.T) {
	storage := &recordingStorage{}
	r, captured := uploadRouter(storage)

	body, contentType := multipartBody(t, []struct {
		name        string
		contentType string
		size        int
	}{
		{"cake.jpg", "image/jpeg", 128},
		{"cake.png", "image/png", 64},
	})

	req := httptest.NewRequest("POST", "/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.Len(t, *captured, 2)
	assert.True(t, strings.HasSuffix((*captured)[0], "-cake.jpg"))
	require.Len(t, storage.saved, 2)
	assert.True(t, strings.HasSuffix(storage.saved[1], "-cake.png"))
}

func TestUploadRejectsBadType(t *testing.T) {
	storage := &recordingStorage{}
	r, _ := uploadRouter(storage)

	body, contentType := multipartBody(t, []struct {
		name        string
		contentType string
		size        int
	}{
		{"notes.pdf", "application/pdf", 32},
	})

	req := httptest.NewRequest("POST", "/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Invalid file type. Only JPEG, PNG and GIF are allowed.", resp["error"])
	assert.Empty(t, storage.saved)
}

func TestUploadRejectsTooManyFiles(t *testing.T) {
	storage := &recordingStorage{}
	r, _ := uploadRouter(storage)

	var files []struct {
		name        string
		contentType string
		size        int
	}
	for i := 0; i < maxUploadFiles+1; i++ {
		files = append(files, struct {
			name        string
			contentType string
			size        int
		}{fmt.Sprintf("img%d.jpg", i), "image/jpeg", 16})
	}

	body, contentType := multipartBody(t, files)
	req := httptest.NewRequest("POST", "/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, storage.saved)
}

func TestUploadAllowsNoFiles(t *testing.T) {
	storage := &recordingStorage{}
	r, captured := uploadRouter(storage)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("title", "No Images"))
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/upload", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, *captured)
	assert.Empty(t, storage.saved)
}
