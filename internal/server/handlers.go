package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/resume-rewriter/internal/highlight"
	"github.com/jonathan/resume-rewriter/internal/types"
)

var validate = validator.New()

// RewriteBody is the request body for /v1/rewrite/{content_type}. The content type comes
// from the path.
type RewriteBody struct {
	Fragments []string              `json:"fragments"`
	Hints     types.Hints           `json:"hints"`
	Contract  *types.FormatContract `json:"contract,omitempty"`
}

// BatchBody is the request body for /v1/rewrite-batch.
type BatchBody struct {
	Requests []types.RewriteRequest `json:"requests" validate:"required,min=1,max=50"`
}

// BatchResponse carries one result per request, in request order.
type BatchResponse struct {
	Results []types.RewriteResult `json:"results"`
}

// HighlightsBody is the request body for /v1/highlights. Keywords override the content
// type's list when given.
type HighlightsBody struct {
	Text        string            `json:"text" validate:"required"`
	ContentType types.ContentType `json:"content_type,omitempty" validate:"omitempty,oneof=work_bullet work_profile consulting_summary tech_summary bullet_batch structured"`
	Keywords    []string          `json:"keywords,omitempty"`
}

// HighlightsResponse is returned by /v1/highlights.
type HighlightsResponse struct {
	Highlights []string `json:"highlights"`
}

// handleRewrite rewrites the fragments of one content type. Fallbacks are still 200: the
// result's state and error say why generated text was not used.
func (s *Server) handleRewrite(w http.ResponseWriter, r *http.Request) {
	ct := types.ContentType(r.PathValue("content_type"))
	if _, ok := s.orchestrator.Profile(ct); !ok || ct == types.ContentStructured {
		s.errorResponse(w, r, &ErrUnsupportedContentType{ContentType: string(ct)})
		return
	}

	var body RewriteBody
	if err := decodeBody(w, r, &body); err != nil {
		s.errorResponse(w, r, err)
		return
	}

	req := types.RewriteRequest{
		ContentType: ct,
		Fragments:   body.Fragments,
		Hints:       body.Hints,
		Contract:    body.Contract,
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, r, validationError(err))
		return
	}

	result := s.orchestrator.Rewrite(r.Context(), s.settings.GenerationSettings(), req)
	s.jsonResponse(w, http.StatusOK, result)
}

// handleRewriteStructured rewrites a summary and labeled fields.
func (s *Server) handleRewriteStructured(w http.ResponseWriter, r *http.Request) {
	var req types.StructuredRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.errorResponse(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, r, validationError(err))
		return
	}

	result := s.orchestrator.RewriteStructured(r.Context(), s.settings.GenerationSettings(), req)
	s.jsonResponse(w, http.StatusOK, result)
}

// handleRewriteBatch rewrites several requests concurrently. Invalid entries are reported in
// their own result rather than failing the batch.
func (s *Server) handleRewriteBatch(w http.ResponseWriter, r *http.Request) {
	var body BatchBody
	if err := decodeBody(w, r, &body); err != nil {
		s.errorResponse(w, r, err)
		return
	}
	if err := validate.Struct(&body); err != nil {
		s.errorResponse(w, r, validationError(err))
		return
	}

	settings := s.settings.GenerationSettings()
	results := s.orchestrator.RewriteAll(r.Context(), settings, body.Requests, s.concurrency)
	s.jsonResponse(w, http.StatusOK, BatchResponse{Results: results})
}

// handleHighlights extracts emphasis spans from finalized text without any generation call.
func (s *Server) handleHighlights(w http.ResponseWriter, r *http.Request) {
	var body HighlightsBody
	if err := decodeBody(w, r, &body); err != nil {
		s.errorResponse(w, r, err)
		return
	}
	if err := validate.Struct(&body); err != nil {
		s.errorResponse(w, r, validationError(err))
		return
	}

	keywords := body.Keywords
	if len(keywords) == 0 && body.ContentType != "" {
		keywords = s.keywordsFor(body.ContentType)
	}
	s.jsonResponse(w, http.StatusOK, HighlightsResponse{Highlights: highlight.Extract(body.Text, keywords)})
}

func (s *Server) keywordsFor(ct types.ContentType) []string {
	if p, ok := s.orchestrator.Profile(ct); ok {
		return p.Keywords
	}
	return nil
}

// decodeBody decodes a bounded JSON body, rejecting unknown fields.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return &ErrInvalidBody{Cause: err}
	}
	return nil
}
