package tinify

import (
	"mime"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/shestakovda/errx"
)

// ResultMeta describes an image without its data, as returned by Store.
type ResultMeta struct {
	head http.Header
}

func (m *ResultMeta) Width() int       { return headerInt(m.head, HeaderImageWidth) }
func (m *ResultMeta) Height() int      { return headerInt(m.head, HeaderImageHeight) }
func (m *ResultMeta) Location() string { return m.head.Get(HeaderLocation) }

// Result is a downloaded image.
type Result struct {
	ResultMeta
	data []byte
}

func (r *Result) Data() []byte      { return r.data }
func (r *Result) ToBuffer() []byte  { return r.data }
func (r *Result) MediaType() string { return r.head.Get(HeaderContentType) }

// Size falls back to the data length when Content-Length is missing.
func (r *Result) Size() int {
	if n := headerInt(r.head, HeaderContentLength); n > 0 {
		return n
	}

	return len(r.data)
}

// Extension is the media subtype, "png" for "image/png".
func (r *Result) Extension() string {
	mt, _, err := mime.ParseMediaType(r.MediaType())
	if err != nil {
		return ""
	}

	if i := strings.IndexByte(mt, '/'); i >= 0 {
		return mt[i+1:]
	}

	return ""
}

func (r *Result) ToFile(path string) error {
	if err := os.WriteFile(path, r.data, 0o644); err != nil {
		return ErrBadFile.WithReason(err).WithDebug(errx.Debug{
			"path": path,
		})
	}

	return nil
}

func headerInt(h http.Header, name string) int {
	n, err := strconv.Atoi(strings.TrimSpace(h.Get(name)))
	if err != nil {
		return 0
	}

	return n
}
