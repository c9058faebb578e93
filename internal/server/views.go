package server

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/gofiber/template/html/v2"
)

//go:embed views
var viewsFS embed.FS

// newViewEngine builds the HTML template engine from the embedded views
// directory. Views are pure presentation; all state arrives via the bind map.
func newViewEngine() *html.Engine {
	sub, err := fs.Sub(viewsFS, "views")
	if err != nil {
		// The views directory is embedded at compile time.
		panic(err)
	}
	return html.NewFileSystem(http.FS(sub), ".html")
}
