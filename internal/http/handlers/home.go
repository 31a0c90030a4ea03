package handlers

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Templates returns the parsed page templates for gin's HTML renderer.
func Templates() *template.Template {
	return template.Must(template.ParseFS(templatesFS, "templates/*.html"))
}

type HomeHandler struct {
	title string
}

func NewHomeHandler(title string) *HomeHandler {
	if title == "" {
		title = "Catálogo"
	}
	return &HomeHandler{title: title}
}

// Index needs the engine to be loaded with Templates().
func (h *HomeHandler) Index(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, "index.html", gin.H{"Title": h.title})
}

func Hello(ctx *gin.Context) {
	ctx.String(http.StatusOK, "Hello World!")
}
