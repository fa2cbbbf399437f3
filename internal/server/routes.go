package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/danmuck/dot11dec/internal/capture"
	"github.com/danmuck/dot11dec/internal/dot11"
	"github.com/danmuck/dot11dec/internal/observability"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const version = "0.1.0"

type hexRequest struct {
	Hex string `json:"hex"`
}

type decodeFailure struct {
	Error  string `json:"error"`
	Reason string `json:"reason"`
	Offset int    `json:"offset"`
	State  string `json:"state,omitempty"`
}

func (s *Server) RegisterRoutes() {
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"uptime":  time.Since(s.appeared).String(),
			"service": s.cfg.Name,
			"version": version,
		})
	})

	s.router.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"ready":   true,
			"service": s.cfg.Name,
		})
	})

	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	s.router.POST("/decode", s.handleDecode)
}

// handleDecode accepts raw frame bytes, or {"hex": "..."} when the request
// is JSON.
func (s *Server) handleDecode(c *gin.Context) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, s.cfg.MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "request body too large"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	buf := body
	if strings.HasPrefix(c.ContentType(), "application/json") {
		var req hexRequest
		if err := json.Unmarshal(body, &req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json: " + err.Error()})
			return
		}
		if buf, err = capture.ParseHex(req.Hex); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid hex: " + err.Error()})
			return
		}
	}

	f, err := dot11.Decode(buf)
	reason := dot11.Reason(err)
	c.Set(observability.ContextDecodeReason, reason)
	if err != nil {
		observability.RecordDecode(s.cfg.Name, "", reason, 0, false)
		out := decodeFailure{Error: err.Error(), Reason: reason, Offset: dot11.Offset(err)}
		var de *dot11.DecodeError
		if errors.As(err, &de) {
			out.State = de.State.String()
		}
		c.JSON(http.StatusUnprocessableEntity, out)
		return
	}

	observability.RecordDecode(s.cfg.Name, f.Control.Type.Kind.String(), "", len(f.Body), true)
	c.JSON(http.StatusOK, dot11.Summarize(f, s.cfg.IncludeBody))
}
