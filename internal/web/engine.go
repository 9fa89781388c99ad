package web

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/gofiber/template/html/v2"
)

//go:embed views/*.html views/layouts/*.html
var viewsFS embed.FS

// NewEngine returns the template engine over the embedded views, so the
// binary renders without a views directory on disk.
func NewEngine() (*html.Engine, error) {
	sub, err := fs.Sub(viewsFS, "views")
	if err != nil {
		return nil, err
	}
	return html.NewFileSystem(http.FS(sub), ".html"), nil
}
