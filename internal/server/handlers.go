package server

import (
	"context"
	"fmt"
	"io"
	"log"
	"mime"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-docgen/internal/db"
	"github.com/jonathan/resume-docgen/internal/export"
	"github.com/jonathan/resume-docgen/internal/source"
	"github.com/jonathan/resume-docgen/internal/types"
)

// maxBodyBytes caps resume request bodies.
const maxBodyBytes = 4 << 20

// HealthResponse represents the response for /health
type HealthResponse struct {
	Status  string `json:"status"`
	Storage bool   `json:"storage"`
}

// ResumeResponse represents a stored resume without its content
type ResumeResponse struct {
	ID         string                  `json:"id"`
	FirstName  string                  `json:"first_name"`
	LastName   string                  `json:"last_name"`
	CreatedAt  string                  `json:"created_at"`
	Incomplete []types.IncompleteEntry `json:"incomplete,omitempty"`
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, HealthResponse{Status: "ok", Storage: s.store != nil})
}

// handleExport renders the resume posted in the body
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(r.PathValue("format"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.writeError(w, err)
		return
	}

	artifact, err := s.generator.GenerateFrom(r.Context(), source.Bytes{Name: "request body", Raw: raw}, format)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.attachment(w, artifact)
}

// handleCreateResume validates and stores a resume
func (s *Server) handleCreateResume(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, ErrStoreUnavailable)
		return
	}

	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.writeError(w, err)
		return
	}

	data, err := source.Decode("request body", raw)
	if err != nil {
		s.writeError(w, err)
		return
	}
	cleaned, err := source.Clean(raw)
	if err != nil {
		s.writeError(w, err)
		return
	}

	resume, err := s.store.CreateResume(r.Context(), data.FirstName, data.LastName, cleaned)
	if err != nil {
		s.writeError(w, err)
		return
	}

	log.Printf("[server] stored resume %s", resume.ID)
	w.Header().Set("Location", "/resumes/"+resume.ID.String())
	s.jsonResponse(w, http.StatusCreated, ResumeResponse{
		ID:         resume.ID.String(),
		FirstName:  resume.FirstName,
		LastName:   resume.LastName,
		CreatedAt:  resume.CreatedAt.Format(time.RFC3339),
		Incomplete: data.IncompleteEntries(),
	})
}

// handleListResumes lists stored resumes, newest first
func (s *Server) handleListResumes(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, ErrStoreUnavailable)
		return
	}

	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			s.writeError(w, &ErrValidation{Field: "limit", Message: "must be a positive integer"})
			return
		}
		limit = n
	}

	resumes, err := s.store.ListResumes(r.Context(), limit)
	if err != nil {
		s.writeError(w, err)
		return
	}

	out := make([]ResumeResponse, 0, len(resumes))
	for _, resume := range resumes {
		out = append(out, ResumeResponse{
			ID:        resume.ID.String(),
			FirstName: resume.FirstName,
			LastName:  resume.LastName,
			CreatedAt: resume.CreatedAt.Format(time.RFC3339),
		})
	}
	s.jsonResponse(w, http.StatusOK, out)
}

// handleGetResume returns the stored resume document
func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, ErrStoreUnavailable)
		return
	}
	id, err := parseID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	resume, err := s.store.GetResume(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(resume.Content); err != nil {
		log.Printf("[server] error writing resume %s: %v", id, err)
	}
}

// handleExportStored renders a stored resume and records the export
func (s *Server) handleExportStored(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, ErrStoreUnavailable)
		return
	}
	id, err := parseID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	format, err := export.ParseFormat(r.PathValue("format"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	artifact, err := s.generator.GenerateFrom(r.Context(), source.Stored{Store: s.store, ID: id}, format)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.recordExport(r.Context(), id, artifact)
	s.attachment(w, artifact)
}

// recordExport stores export metadata; a failure is logged and does not fail the request
func (s *Server) recordExport(ctx context.Context, id uuid.UUID, artifact *export.Artifact) {
	err := s.store.RecordExport(ctx, &db.Export{
		ResumeID:  id,
		Format:    string(artifact.Format),
		Engine:    artifact.Engine,
		Filename:  artifact.Filename,
		SizeBytes: int64(len(artifact.Data)),
	})
	if err != nil {
		log.Printf("[server] failed to record export of %s: %v", id, err)
	}
}

// attachment writes a generated document as a download
func (s *Server) attachment(w http.ResponseWriter, artifact *export.Artifact) {
	w.Header().Set("Content-Type", artifact.ContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": artifact.Filename}))
	w.Header().Set("Content-Length", strconv.Itoa(len(artifact.Data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(artifact.Data); err != nil {
		log.Printf("[server] error writing %s: %v", artifact.Filename, err)
	}
}

func parseID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return uuid.Nil, &ErrValidation{Field: "id", Message: fmt.Sprintf("invalid resume id %q", r.PathValue("id"))}
	}
	return id, nil
}
