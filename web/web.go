// Package web embeds the browser client: a list/search page, a creation
// form and a recipe detail view, all talking to the JSON API with fetch.
package web

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed static
var staticFS embed.FS

// Register mounts the client under /app and redirects / to it.
func Register(router *gin.Engine) {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}

	router.StaticFS("/app", http.FS(sub))
	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/app")
	})
}
