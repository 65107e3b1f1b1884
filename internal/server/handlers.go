package server

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nao1215/phishscan/internal/analyzer"
	"github.com/nao1215/phishscan/internal/model"
)

// scanRequest is the body of POST /scan.
type scanRequest struct {
	URL string `json:"url"`
}

// scan analyzes the posted URL.
//
//	400 {"error": "No input provided"}  body empty, url missing or empty
//	200 Report                          analysis succeeded
//	500 {"error": msg}                  body unreadable or analysis failed
func (s *Server) scan(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.cfg.MaxBodySize)

	var req scanRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		s.logger.Warn("failed to decode scan request", "error", err, "requestID", c.GetString(requestIDKey))
		c.JSON(http.StatusInternalServerError, errorBody(err.Error()))
		return
	}
	if req.URL == "" {
		c.JSON(http.StatusBadRequest, errorBody(NoInputMessage))
		return
	}

	report, err := s.analyzer.Analyze(req.URL)
	if err != nil {
		s.metrics.ObserveError()
		s.logger.Warn("scan failed", "url", req.URL, "error", err, "requestID", c.GetString(requestIDKey))
		c.JSON(http.StatusInternalServerError, errorBody(err.Error()))
		return
	}

	s.metrics.ObserveReport(report)
	c.JSON(http.StatusOK, report)
}

// threatGuide is one entry of the education page.
type threatGuide struct {
	Tag  model.ThreatTag
	Info model.ThreatInfo
}

// index renders the scanner page.
func (s *Server) index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{
		"Title": "PhishScan",
	})
}

// education renders the academy page describing each detection layer.
func (s *Server) education(c *gin.Context) {
	tags := model.ThreatTags()
	guides := make([]threatGuide, len(tags))
	for i, tag := range tags {
		guides[i] = threatGuide{Tag: tag, Info: model.GetThreatInfo(tag)}
	}

	c.HTML(http.StatusOK, "education.html", gin.H{
		"Title":  "PhishScan Academy",
		"Layers": analyzer.LayerNames(),
		"Guides": guides,
	})
}

// healthz reports liveness.
func (s *Server) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
