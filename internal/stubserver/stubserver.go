// Package stubserver is a development stand-in for the remote scoring
// backend. It mirrors the real service's HTTP surface (multipart /process,
// structured error bodies, /health) and serves sample job listing pages so
// the extraction pipeline can be exercised end to end without the real
// deployment. The analysis it returns is deterministic and fake.
package stubserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const (
	// maxResumeBytes matches the real backend's upload cap.
	maxResumeBytes = 5 << 20
)

// skillLexicon drives the fake analysis: lexicon terms found in the job
// description come back as "suggested skills" and raise the fake score.
var skillLexicon = []string{
	"go", "python", "java", "typescript", "react", "kubernetes", "docker",
	"terraform", "postgres", "redis", "kafka", "grpc", "aws", "gcp", "sql",
}

// Server is the stub backend.
type Server struct {
	router chi.Router
}

// New creates a stub server with all routes registered.
func New() *Server {
	s := &Server{}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/health", s.handleHealth)
	r.Post("/process", s.handleProcess)
	r.Get("/jobs/sample", s.handleSamplePage)
	r.Get("/jobs/sparse", s.handleSparsePage)
	s.router = r

	return s
}

// Router exposes the underlying handler, for mounting and for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "healthy",
		"version": "stub",
	})
}

// handleProcess enforces the real backend's request contract and returns a
// deterministic canned analysis.
func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxResumeBytes); err != nil {
		writeDetailError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("resume")
	if err != nil {
		writeDetailError(w, http.StatusBadRequest, "Please upload a valid file")
		return
	}
	defer func() { _ = file.Close() }()

	switch strings.ToLower(filepath.Ext(header.Filename)) {
	case ".pdf", ".docx":
	default:
		writeDetailError(w, http.StatusBadRequest,
			"File type not allowed. Allowed types: pdf, docx")
		return
	}
	if header.Size > maxResumeBytes {
		writeDetailError(w, http.StatusRequestEntityTooLarge,
			"File exceeds maximum size of 5.0MB")
		return
	}

	jdText := r.FormValue("jd_text")
	skills := matchedSkills(jdText)
	score := fakeScore(skills)

	writeJSON(w, http.StatusOK, map[string]any{
		"success":          true,
		"jd_text":          jdText,
		"ats_score":        score,
		"suggested_skills": skills,
		"improvement_recommendation": []map[string]string{
			{
				"issue":  "Summary section is generic",
				"advice": "Lead with the two or three skills this posting repeats most.",
			},
			{
				"issue":  "Bullets lack measurable outcomes",
				"advice": "Attach a number to each bullet: latency, throughput, revenue, or headcount.",
			},
		},
	})
}

// matchedSkills returns lexicon terms present in the job description,
// sorted for determinism.
func matchedSkills(jdText string) []string {
	lower := strings.ToLower(jdText)
	found := []string{}
	for _, skill := range skillLexicon {
		if containsWord(lower, skill) {
			found = append(found, skill)
		}
	}
	sort.Strings(found)
	return found
}

// containsWord reports whether word occurs in text on word boundaries, so
// "go" does not match inside "google".
func containsWord(text, word string) bool {
	idx := 0
	for {
		i := strings.Index(text[idx:], word)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(word)
		beforeOK := start == 0 || !isWordChar(text[start-1])
		afterOK := end == len(text) || !isWordChar(text[end])
		if beforeOK && afterOK {
			return true
		}
		idx = start + 1
	}
}

func isWordChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= '0' && c <= '9'
}

func fakeScore(skills []string) float64 {
	score := 45 + 5*float64(len(skills))
	if score > 95 {
		score = 95
	}
	return score
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeDetailError mirrors the real backend's error body shape.
func writeDetailError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{
		"detail": map[string]string{"message": message},
	})
}

// handleSamplePage serves a LinkedIn-shaped listing whose body sits right
// next to the section heading, behind two decorative siblings.
func (s *Server) handleSamplePage(w http.ResponseWriter, _ *http.Request) {
	writeHTML(w, samplePage)
}

// handleSparsePage serves a layout where the body is nested in a wrapping
// card, exercising the ancestor-search tier.
func (s *Server) handleSparsePage(w http.ResponseWriter, _ *http.Request) {
	writeHTML(w, sparsePage)
}

func writeHTML(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, body)
}
