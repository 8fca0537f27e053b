package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/recipeshare/backend/internal/database"
	"github.com/recipeshare/backend/internal/service"
)

// testServer bundles the router and services backing a handler test.
type testServer struct {
	Router      *gin.Engine
	DB          *gorm.DB
	AuthService *service.AuthService
}

// setupTestServer builds a router over an in-memory database with the full
// middleware chain and a temp-dir image store.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	authService := service.NewAuthService(db, "test-secret")
	recipeService := service.NewRecipeService(db)
	storage := &service.LocalImageStorage{Dir: t.TempDir()}

	authHandler := NewAuthHandler(authService)
	recipeHandler := NewRecipeHandler(recipeService, authService, storage, nil)

	router := gin.New()
	apiGroup := router.Group("/api")
	authHandler.RegisterRoutes(apiGroup)
	recipeHandler.RegisterRoutes(apiGroup)

	return &testServer{
		Router:      router,
		DB:          db,
		AuthService: authService,
	}
}

// createTestUser registers a user and returns their ID and a valid token.
func createTestUser(t *testing.T, ts *testServer, username string) (uuid.UUID, string) {
	t.Helper()

	email := fmt.Sprintf("%s@example.com", username)
	token, err := ts.AuthService.Register(email, "testpassword123", username)
	if err != nil {
		t.Fatalf("failed to register test user %s: %v", username, err)
	}

	claims, err := ts.AuthService.ValidateToken(token)
	if err != nil {
		t.Fatalf("failed to validate test token: %v", err)
	}
	return claims.UserID, token
}

// recipeForm is the multipart payload of a create request. Array fields are
// JSON-encoded into form values the way the browser client submits them.
type recipeForm struct {
	Title        string
	Description  string
	Ingredients  []string
	Instructions []string
	Category     string
	Difficulty   string
	PrepTime     string
	CookTime     string
	Servings     string
	Tags         []string
	Dietary      []string
	ImageCount   int
}

func validRecipeForm() recipeForm {
	return recipeForm{
		Title:        "Chocolate Cake",
		Description:  "Rich and moist chocolate cake",
		Ingredients:  []string{"2 cups flour", "1 cup cocoa", "3 eggs"},
		Instructions: []string{"Mix dry ingredients", "Add eggs", "Bake 30 minutes"},
		Category:     "dessert",
		Difficulty:   "medium",
		PrepTime:     "20",
		CookTime:     "30",
		Servings:     "8",
		Tags:         []string{"chocolate", "baking"},
		Dietary:      []string{"vegetarian"},
	}
}

func encodeRecipeForm(t *testing.T, form recipeForm) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := map[string]string{
		"title":       form.Title,
		"description": form.Description,
		"category":    form.Category,
		"difficulty":  form.Difficulty,
		"prepTime":    form.PrepTime,
		"cookTime":    form.CookTime,
		"servings":    form.Servings,
	}
	for name, value := range fields {
		if value == "" {
			continue
		}
		if err := w.WriteField(name, value); err != nil {
			t.Fatalf("failed to write field %s: %v", name, err)
		}
	}
	for name, values := range map[string][]string{
		"ingredients":  form.Ingredients,
		"instructions": form.Instructions,
		"tags":         form.Tags,
		"dietary":      form.Dietary,
	} {
		if values == nil {
			continue
		}
		encoded, err := json.Marshal(values)
		if err != nil {
			t.Fatalf("failed to encode %s: %v", name, err)
		}
		if err := w.WriteField(name, string(encoded)); err != nil {
			t.Fatalf("failed to write field %s: %v", name, err)
		}
	}

	for i := 0; i < form.ImageCount; i++ {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="images"; filename="photo%d.jpg"`, i))
		header.Set("Content-Type", "image/jpeg")
		part, err := w.CreatePart(header)
		if err != nil {
			t.Fatalf("failed to create image part: %v", err)
		}
		if _, err := part.Write([]byte("fake-jpeg-bytes")); err != nil {
			t.Fatalf("failed to write image part: %v", err)
		}
	}

	if err := w.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}
	return &buf, w.FormDataContentType()
}

// postRecipe submits a create request and returns the recorder.
func postRecipe(t *testing.T, ts *testServer, token string, form recipeForm) *httptest.ResponseRecorder {
	t.Helper()

	body, contentType := encodeRecipeForm(t, form)
	req := httptest.NewRequest("POST", "/api/recipes", body)
	req.Header.Set("Content-Type", contentType)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	ts.Router.ServeHTTP(w, req)
	return w
}

// doJSON performs a JSON request with an optional bearer token.
func doJSON(t *testing.T, ts *testServer, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		req = httptest.NewRequest(method, path, bytes.NewReader(data))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	ts.Router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response body %q: %v", w.Body.String(), err)
	}
	return body
}
