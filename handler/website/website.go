// Package website serves static files from a public directory.
package website

import (
	"log"
	"path/filepath"
	"strings"

	"github.com/indigo-web/reqline/http"
	"github.com/indigo-web/reqline/http/method"
	"github.com/indigo-web/reqline/http/mime"
	"github.com/indigo-web/reqline/http/status"
	"github.com/pkg/errors"
)

// Handler answers GET requests with files from the root. Aliases map request paths to
// file names, e.g. "/" to "index.html". Everything else, including other methods, files
// outside the root and directories, results in 404 Not Found.
type Handler struct {
	root    string
	aliases map[string]string
}

// New returns a handler serving the root. The root must exist.
func New(root string, aliases map[string]string) (*Handler, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.Wrapf(err, "public path %q", root)
	}

	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, errors.Wrapf(err, "public path %q", root)
	}

	return &Handler{
		root:    resolved,
		aliases: aliases,
	}, nil
}

func (h *Handler) Handle(request *http.Request) *http.Response {
	if request.Method != method.GET {
		return http.NewResponse().Code(status.NotFound)
	}

	file, found := h.aliases[request.Path]
	if !found {
		file = request.Path
	}

	path, err := h.resolve(file)
	if err != nil {
		return http.NewResponse().Error(err)
	}

	return http.NewResponse().File(path)
}

func (h *Handler) HandleError(err error) *http.Response {
	return http.NewResponse().
		Code(http.ErrorCode(err)).
		ContentType(mime.Plain).
		String(err.Error())
}

// Root returns the resolved public directory.
func (h *Handler) Root() string {
	return h.root
}

// resolve returns the real path of the file, following symlinks. Both the requested and
// the real path must be located inside the root, and the file must exist.
func (h *Handler) resolve(file string) (string, error) {
	joined := filepath.Join(h.root, filepath.FromSlash(file))
	if !h.contains(joined) {
		log.Printf("directory traversal attack attempted: %q", file)
		return "", status.ErrNotFound
	}

	path, err := filepath.EvalSymlinks(joined)
	if err != nil {
		return "", status.ErrNotFound
	}

	if !h.contains(path) {
		log.Printf("directory traversal attack attempted: %q", file)
		return "", status.ErrNotFound
	}

	return path, nil
}

func (h *Handler) contains(path string) bool {
	return path == h.root || strings.HasPrefix(path, h.root+string(filepath.Separator))
}
