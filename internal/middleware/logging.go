// Package middleware holds the gin middleware stack.
package middleware

import (
	"bytes"
	"io"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shankar1om/AI-Powered-Customer-Support-Chat-Application/pkg/log"
)

// maxLoggedBody bounds request/response bodies in log lines. Chat turns and
// document content can be large.
const maxLoggedBody = 2048

type bodyLogWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w bodyLogWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// RequestLogger logs each request with latency, status and truncated
// bodies. Multipart uploads skip body capture.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		var requestBody string
		if c.Request.Body != nil && c.ContentType() == "application/json" {
			raw, err := io.ReadAll(c.Request.Body)
			if err == nil {
				requestBody = truncateBody(raw)
				c.Request.Body = io.NopCloser(bytes.NewBuffer(raw))
			}
		}

		blw := &bodyLogWriter{ResponseWriter: c.Writer, body: bytes.NewBufferString("")}
		c.Writer = blw

		c.Next()

		log.Infow("request completed",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start).String(),
			"client_ip", c.ClientIP(),
			"request_body", requestBody,
			"response_body", truncateBody(blw.body.Bytes()),
		)
	}
}

func truncateBody(b []byte) string {
	if len(b) > maxLoggedBody {
		return string(b[:maxLoggedBody]) + "...(truncated)"
	}
	return string(b)
}
