// Package chi registers the HTTP API on a chi router.
package chi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/docsearch/internal/domain"
	domsearch "github.com/kailas-cloud/docsearch/internal/domain/search"
	documentuc "github.com/kailas-cloud/docsearch/internal/usecase/document"
	healthuc "github.com/kailas-cloud/docsearch/internal/usecase/health"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Server exposes the document and health services over HTTP.
type Server struct {
	documents     *documentuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	validate      *validator.Validate
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(documents *documentuc.Service, health *healthuc.Service, logger *zap.Logger) *Server {
	s := &Server{
		documents: documents,
		health:    health,
		logger:    logger,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrArticleNotFound, http.StatusNotFound, "Article not found"),
		sentinelHandler(domain.ErrUserNotFound, http.StatusNotFound, "User not found"),
		sentinelHandler(domain.ErrInvalidQuery, http.StatusBadRequest, ""),
	}
	return s
}

// Routes registers all endpoints on the given router.
func (s *Server) Routes(r chi.Router) {
	r.Get("/", s.root)

	r.Route("/documents", func(r chi.Router) {
		r.Post("/articles", s.createArticle)
		r.Get("/articles", s.searchArticles)
		r.Get("/articles/{id}", s.getArticle)
		r.Put("/articles/{id}", s.updateArticle)
		r.Delete("/articles/{id}", s.deleteArticle)

		r.Post("/users", s.createUser)
		r.Get("/users/{id}", s.getUser)
	})

	r.Route("/health", func(r chi.Router) {
		r.Get("/", s.healthCheck)
		r.Get("/elasticsearch", s.elasticsearchHealth)
	})

	r.Get("/metrics", s.metrics)
}

func (s *Server) root(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, messageResponse{Message: "Document search API is running!"})
}

// createArticle handles POST /documents/articles.
func (s *Server) createArticle(w http.ResponseWriter, r *http.Request) {
	var req createArticleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := s.validate.Struct(req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, validationDetail(err))
		return
	}

	created, err := s.documents.CreateArticle(r.Context(), articleFromCreate(req))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, articleToResponse(created))
}

// getArticle handles GET /documents/articles/{id}.
func (s *Server) getArticle(w http.ResponseWriter, r *http.Request) {
	a, err := s.documents.GetArticle(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, articleToResponse(a))
}

// updateArticle handles PUT /documents/articles/{id}.
func (s *Server) updateArticle(w http.ResponseWriter, r *http.Request) {
	var req updateArticleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := s.validate.Struct(req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, validationDetail(err))
		return
	}

	updated, err := s.documents.UpdateArticle(r.Context(), chi.URLParam(r, "id"), patchFromUpdate(req))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, articleToResponse(updated))
}

// deleteArticle handles DELETE /documents/articles/{id}.
func (s *Server) deleteArticle(w http.ResponseWriter, r *http.Request) {
	if err := s.documents.DeleteArticle(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "Article deleted successfully"})
}

// searchArticles handles GET /documents/articles.
func (s *Server) searchArticles(w http.ResponseWriter, r *http.Request) {
	params, err := searchParamsFromQuery(r)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	articles, err := s.documents.SearchArticles(r.Context(), params)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]articleResponse, len(articles))
	for i, a := range articles {
		items[i] = articleToResponse(a)
	}

	writeJSON(w, http.StatusOK, items)
}

// createUser handles POST /documents/users.
func (s *Server) createUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := s.validate.Struct(req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, validationDetail(err))
		return
	}

	created, err := s.documents.CreateUser(r.Context(), userFromCreate(req))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, userToResponse(created))
}

// getUser handles GET /documents/users/{id}.
func (s *Server) getUser(w http.ResponseWriter, r *http.Request) {
	u, err := s.documents.GetUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, userToResponse(u))
}

// healthCheck handles GET /health.
func (s *Server) healthCheck(w http.ResponseWriter, r *http.Request) {
	if s.health.Check(r.Context()) != healthuc.Healthy {
		writeError(w, http.StatusServiceUnavailable, "Elasticsearch is not healthy")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status":        "healthy",
		"elasticsearch": "connected",
	})
}

// elasticsearchHealth handles GET /health/elasticsearch. Reports the backend
// status in the body; the HTTP status is 200 either way.
func (s *Server) elasticsearchHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"elasticsearch": string(s.health.Check(r.Context())),
	})
}

// metrics handles GET /metrics.
func (s *Server) metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// searchParamsFromQuery parses and validates search parameters from the query
// string. Repeated tags are accepted under both "tags" and "tags[]".
func searchParamsFromQuery(r *http.Request) (domsearch.Params, error) {
	q := r.URL.Query()

	limit, err := intParam(q.Get("limit"), "limit")
	if err != nil {
		return domsearch.Params{}, err
	}
	offset, err := intParam(q.Get("offset"), "offset")
	if err != nil {
		return domsearch.Params{}, err
	}

	tags := q["tags"]
	tags = append(tags, q["tags[]"]...)

	return domsearch.New(q.Get("query"), q.Get("category"), tags, limit, offset)
}

func intParam(raw, name string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", name, domain.ErrInvalidQuery)
	}
	return v, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorResponse{Detail: detail})
}

// validationDetail flattens validator errors into a single client message.
func validationDetail(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Validation failed"
	}

	detail := "Validation failed:"
	for _, fe := range verrs {
		detail += " field '" + fe.Field() + "' failed on '" + fe.Tag() + "';"
	}
	return detail[:len(detail)-1]
}

// safeDomainMessage returns a sentinel error message for the client without
// exposing internals.
func safeDomainMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrArticleNotFound):
		return "Article not found"
	case errors.Is(err, domain.ErrUserNotFound):
		return "User not found"
	default:
		return "Internal server error"
	}
}

// sentinelHandler returns an errorHandler that matches a single sentinel
// error. An empty message means "use the wrapped error text" so validation
// errors keep their specific cause.
func sentinelHandler(sentinel error, status int, msg string) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		detail := msg
		if detail == "" {
			detail = err.Error()
		}
		writeError(w, status, detail)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	for _, h := range s.errorHandlers {
		if h(w, err) {
			s.logger.Warn("domain error", zap.Error(err))
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, safeDomainMessage(err))
}
