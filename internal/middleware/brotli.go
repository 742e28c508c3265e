package middleware

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/gin-gonic/gin"
)

// brotliWriter holds the whole body back until the handler chain returns,
// so the encoding can be chosen from the final size and content type.
type brotliWriter struct {
	gin.ResponseWriter
	buf bytes.Buffer
}

func (w *brotliWriter) Write(data []byte) (int, error) {
	return w.buf.Write(data)
}

func (w *brotliWriter) WriteString(s string) (int, error) {
	return w.buf.WriteString(s)
}

// WriteHeaderNow is deferred to finish.
func (w *brotliWriter) WriteHeaderNow() {}

func (w *brotliWriter) finish(minLength int) error {
	out := w.ResponseWriter
	out.Header().Add("Vary", "Accept-Encoding")

	body := w.buf.Bytes()
	if len(body) < minLength || !isJSON(out.Header().Get("Content-Type")) {
		if len(body) == 0 {
			out.WriteHeaderNow()
			return nil
		}
		_, err := out.Write(body)
		return err
	}

	out.Header().Set("Content-Encoding", "br")
	out.Header().Del("Content-Length")
	bw := brotli.NewWriterLevel(out, brotli.DefaultCompression)
	if _, err := bw.Write(body); err != nil {
		return err
	}
	return bw.Close()
}

// Brotli compresses JSON responses of at least minLength bytes for clients
// that accept br. Spreadsheet downloads are already zip-compressed and pass
// through untouched.
func Brotli(minLength int) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !acceptsBrotli(c.Request) {
			c.Next()
			return
		}

		bw := &brotliWriter{ResponseWriter: c.Writer}
		c.Writer = bw
		c.Next()
		c.Writer = bw.ResponseWriter

		if err := bw.finish(minLength); err != nil {
			_ = c.Error(err)
		}
	}
}

func isJSON(contentType string) bool {
	return strings.HasPrefix(contentType, "application/json")
}

func acceptsBrotli(r *http.Request) bool {
	ae := r.Header.Get("Accept-Encoding")
	for _, enc := range strings.Split(ae, ",") {
		enc, _, _ = strings.Cut(enc, ";")
		if strings.TrimSpace(strings.ToLower(enc)) == "br" {
			return true
		}
	}
	return false
}
