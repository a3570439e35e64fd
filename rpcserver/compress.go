package rpcserver

import (
	"io"
	"net/http"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/gin-gonic/gin"
	"github.com/klauspost/compress/gzip"
)

const (
	ENCODING_BROTLI = "br"
	ENCODING_GZIP   = "gzip"
)

type compressWriter struct {
	gin.ResponseWriter
	w io.WriteCloser
}

func (p *compressWriter) WriteHeader(code int) {
	p.Header().Del(CONTENT_LENGTH)
	p.ResponseWriter.WriteHeader(code)
}

func (p *compressWriter) Write(data []byte) (int, error) {
	p.Header().Del(CONTENT_LENGTH)
	return p.w.Write(data)
}

func (p *compressWriter) WriteString(s string) (int, error) {
	return p.Write([]byte(s))
}

// negotiateEncoding picks br over gzip, skipping codings with q=0.
func negotiateEncoding(accept string) string {
	var br, gz bool
	for _, part := range strings.Split(accept, ",") {
		fields := strings.Split(strings.TrimSpace(part), ";")
		name := strings.ToLower(strings.TrimSpace(fields[0]))
		disabled := false
		for _, param := range fields[1:] {
			param = strings.ReplaceAll(param, " ", "")
			if param == "q=0" || param == "q=0.0" || param == "q=0.00" || param == "q=0.000" {
				disabled = true
			}
		}
		if disabled {
			continue
		}
		switch name {
		case ENCODING_BROTLI:
			br = true
		case ENCODING_GZIP:
			gz = true
		}
	}
	if br {
		return ENCODING_BROTLI
	}
	if gz {
		return ENCODING_GZIP
	}
	return ""
}

// CompressionMiddleware compresses response bodies with brotli or gzip
// according to Accept-Encoding.
func CompressionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		encoding := negotiateEncoding(c.GetHeader(ACCEPT_ENCODING))
		if encoding == "" || c.Request.Method == http.MethodHead {
			c.Next()
			return
		}

		var w io.WriteCloser
		switch encoding {
		case ENCODING_BROTLI:
			w = brotli.NewWriterLevel(c.Writer, brotli.DefaultCompression)
		case ENCODING_GZIP:
			gw, err := gzip.NewWriterLevel(c.Writer, gzip.DefaultCompression)
			if err != nil {
				c.Next()
				return
			}
			w = gw
		}

		c.Header(CONTENT_ENCODING, encoding)
		c.Writer.Header().Add(VARY, "Accept-Encoding")
		c.Writer = &compressWriter{ResponseWriter: c.Writer, w: w}
		defer w.Close()

		c.Next()
	}
}
