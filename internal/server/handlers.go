package server

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/nareshchaudhary/career-agent/internal/resume"
	"github.com/nareshchaudhary/career-agent/internal/types"
)

const rateLimitAnswer = "Rate limit exceeded. Please wait a moment before sending more queries."

// queryRequest is the body accepted by POST /query.
type queryRequest struct {
	Query             string `json:"query"`
	UseProfileContext bool   `json:"use_profile_context"`
	ResumeBuilder     bool   `json:"resume_builder"`
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	key := s.sessionKey(r)
	if !s.queryLimiter.Allow(key) {
		writeJSON(w, http.StatusTooManyRequests, types.Response{
			Answer:  rateLimitAnswer,
			Sources: []string{},
		})
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, int64(s.cfg.MaxQueryBytes)+1))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read request body")
		return
	}
	if len(body) > s.cfg.MaxQueryBytes {
		writeError(w, http.StatusRequestEntityTooLarge, "query payload too large")
		return
	}

	var req queryRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	sess, release := s.sessions.Acquire(key)
	resp := sess.Respond(r.Context(), req.Query, req.UseProfileContext, req.ResumeBuilder)
	release()

	visitor := VisitorID(key)
	detail := ""
	if s.cfg.CaptureQueryText {
		detail = req.Query
	}
	s.monitor.RecordQuery(visitor, detail)
	if resp.ResumeBuild != nil {
		s.monitor.RecordBuild(visitor, "")
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleResumeUpload(w http.ResponseWriter, r *http.Request) {
	key := s.sessionKey(r)
	if !s.uploadLimiter.Allow(key) {
		writeJSON(w, http.StatusTooManyRequests, map[string]any{
			"ok":      false,
			"message": "Upload rate limit exceeded. Please wait before retrying.",
		})
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.cfg.MaxUploadBytes); err != nil {
		writeJSON(w, http.StatusRequestEntityTooLarge, map[string]any{
			"ok":      false,
			"message": "Uploaded file is too large.",
		})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"ok":      false,
			"message": "No file provided. Attach a resume as multipart field \"file\".",
		})
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"ok":      false,
			"message": "Failed to read uploaded file.",
		})
		return
	}

	text, err := resume.ExtractText(header.Filename, content)
	if err != nil {
		var ufe *resume.UnsupportedFormatError
		if errors.As(err, &ufe) {
			writeJSON(w, http.StatusBadRequest, map[string]any{
				"ok":      false,
				"message": ufe.Error(),
			})
			return
		}
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"ok":      false,
			"message": "Failed to extract resume text.",
		})
		return
	}

	sess, release := s.sessions.Acquire(key)
	result := sess.SetResume(text, header.Filename)
	release()

	s.monitor.RecordUpload(VisitorID(key), header.Filename)
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":       result.Uploaded,
		"uploaded": result.Uploaded,
		"name":     result.Name,
		"message":  result.Message,
	})
}

func (s *Server) handleResumeStatus(w http.ResponseWriter, r *http.Request) {
	sess, release := s.sessions.Acquire(s.sessionKey(r))
	status := sess.ResumeStatus()
	release()
	writeJSON(w, http.StatusOK, status)
}

func (s *Server) handleResumeClear(w http.ResponseWriter, r *http.Request) {
	sess, release := s.sessions.Acquire(s.sessionKey(r))
	status := sess.ClearResume()
	release()
	writeJSON(w, http.StatusOK, status)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.eng.Status())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleMonitoringSummary(w http.ResponseWriter, r *http.Request) {
	if !s.authorizeMonitoring(w, r) {
		return
	}
	writeJSON(w, http.StatusOK, s.monitor.Summary())
}

func (s *Server) handleMonitoringQueries(w http.ResponseWriter, r *http.Request) {
	if !s.authorizeMonitoring(w, r) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"events": s.monitor.QueryEvents()})
}

// authorizeMonitoring enforces the X-Monitor-Key header with a constant-time
// comparison. A deployment that requires a key but has none configured is a
// misconfiguration and fails closed.
func (s *Server) authorizeMonitoring(w http.ResponseWriter, r *http.Request) bool {
	if !s.cfg.MonitoringKeyRequired {
		return true
	}
	if s.cfg.MonitoringAPIKey == "" {
		writeError(w, http.StatusInternalServerError, "monitoring key required but not configured")
		return false
	}
	got := r.Header.Get("X-Monitor-Key")
	if subtle.ConstantTimeCompare([]byte(got), []byte(s.cfg.MonitoringAPIKey)) != 1 {
		writeError(w, http.StatusUnauthorized, "invalid monitoring key")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
