// Package fakeserver runs an in-process imitation of the eSignBase API for
// tests. It issues tokens, serves templates, documents and credits from
// memory and records every request it receives.
package fakeserver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/jrsteele09/go-esignbase/internal/utils"
	"github.com/jrsteele09/go-esignbase/oauth2"
)

const (
	DefaultClientID     = "test-client-id"
	DefaultClientSecret = "test-client-secret"
	DefaultUserName     = "jane.doe@example.com"
	DefaultPassword     = "password123"
	DefaultAccessToken  = "fake-access-token"
)

// RecordedRequest is a copy of a request received by the server.
type RecordedRequest struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	// Form holds the parsed body of form-encoded requests.
	Form url.Values
	Body []byte
}

// Server is a fake eSignBase API bound to IPv4 loopback.
type Server struct {
	*httptest.Server

	lock      sync.RWMutex
	requests  []RecordedRequest
	overrides map[string]http.HandlerFunc

	clientID     string
	clientSecret string
	userName     string
	password     string

	tokens    []string
	issued    int
	valid     map[string]struct{}
	expiresIn int

	templates []map[string]any
	documents map[string]map[string]any
	docOrder  []string
	credits   map[string]any
}

type Option func(*Server)

// WithClient sets the client id and secret the token endpoint accepts.
func WithClient(id, secret string) Option {
	return func(s *Server) {
		s.clientID = id
		s.clientSecret = secret
	}
}

// WithUser sets the username and password accepted for the authorization code grant.
func WithUser(userName, password string) Option {
	return func(s *Server) {
		s.userName = userName
		s.password = password
	}
}

// WithTokens sets the access tokens issued by successive token requests.
// Once exhausted the last token is issued again.
func WithTokens(tokens ...string) Option {
	return func(s *Server) {
		s.tokens = tokens
	}
}

// WithExpiresIn sets the expires_in of issued tokens, in seconds.
func WithExpiresIn(seconds int) Option {
	return func(s *Server) {
		s.expiresIn = seconds
	}
}

func WithTemplates(templates ...map[string]any) Option {
	return func(s *Server) {
		s.templates = templates
	}
}

func WithCredits(credits map[string]any) Option {
	return func(s *Server) {
		s.credits = credits
	}
}

// New starts a fake server and closes it when the test ends.
func New(tb testing.TB, opts ...Option) *Server {
	tb.Helper()

	s := &Server{
		overrides:    make(map[string]http.HandlerFunc),
		clientID:     DefaultClientID,
		clientSecret: DefaultClientSecret,
		userName:     DefaultUserName,
		password:     DefaultPassword,
		tokens:       []string{DefaultAccessToken},
		valid:        make(map[string]struct{}),
		expiresIn:    3600,
		documents:    make(map[string]map[string]any),
		credits:      map[string]any{"credits": float64(100)},
	}
	for _, opt := range opts {
		opt(s)
	}
	if len(s.tokens) == 0 {
		s.tokens = []string{DefaultAccessToken}
	}

	mux := http.NewServeMux()
	s.route(mux, "POST /oauth2/token", s.issueToken)
	s.route(mux, "GET /api/templates", s.authorized(s.listTemplates))
	s.route(mux, "GET /api/template/{id}", s.authorized(s.getTemplate))
	s.route(mux, "GET /api/documents", s.authorized(s.listDocuments))
	s.route(mux, "GET /api/document/{id}", s.authorized(s.getDocument))
	s.route(mux, "POST /api/document", s.authorized(s.createDocument))
	s.route(mux, "DELETE /api/document/{id}", s.authorized(s.deleteDocument))
	s.route(mux, "GET /api/document/download/{id}", s.authorized(s.downloadDocument))
	s.route(mux, "GET /api/credits", s.authorized(s.getCredits))

	listener, err := net.Listen("tcp4", "127.0.0.1:0")
	if err != nil {
		tb.Fatalf("failed to create IPv4 listener: %v", err)
	}
	s.Server = httptest.NewUnstartedServer(s.record(mux))
	s.Server.Listener = listener
	s.Server.Start()
	tb.Cleanup(s.Server.Close)

	return s
}

// Handle replaces the built-in handler for pattern, e.g. "GET /api/credits".
func (s *Server) Handle(pattern string, h http.HandlerFunc) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.overrides[pattern] = h
}

// Requests returns every request received so far, oldest first.
func (s *Server) Requests() []RecordedRequest {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return append([]RecordedRequest(nil), s.requests...)
}

// RequestsTo returns the recorded requests whose path equals path.
func (s *Server) RequestsTo(path string) []RecordedRequest {
	var matched []RecordedRequest
	for _, r := range s.Requests() {
		if r.Path == path {
			matched = append(matched, r)
		}
	}
	return matched
}

// LastRequest returns the most recent request. ok is false when none arrived.
func (s *Server) LastRequest() (req RecordedRequest, ok bool) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	if len(s.requests) == 0 {
		return RecordedRequest{}, false
	}
	return s.requests[len(s.requests)-1], true
}

// AddDocument stores doc and returns its id, generating one when doc has none.
func (s *Server) AddDocument(doc map[string]any) string {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.addDocumentLocked(doc)
}

func (s *Server) addDocumentLocked(doc map[string]any) string {
	id, _ := doc["id"].(string)
	if id == "" {
		id = uuid.New().String()
		doc["id"] = id
	}
	if _, exists := s.documents[id]; !exists {
		s.docOrder = append(s.docOrder, id)
	}
	s.documents[id] = doc
	return id
}

// Document returns a stored document.
func (s *Server) Document(id string) (map[string]any, bool) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	doc, ok := s.documents[id]
	return doc, ok
}

func (s *Server) route(mux *http.ServeMux, pattern string, h http.HandlerFunc) {
	mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		s.lock.RLock()
		override, ok := s.overrides[pattern]
		s.lock.RUnlock()
		if ok {
			override(w, r)
			return
		}
		h(w, r)
	})
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body.Close()

		rec := RecordedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.Query(),
			Header: r.Header.Clone(),
			Body:   body,
		}
		if strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
			rec.Form, _ = url.ParseQuery(string(body))
		}

		s.lock.Lock()
		s.requests = append(s.requests, rec)
		s.lock.Unlock()

		r.Body = io.NopCloser(bytes.NewReader(body))
		next.ServeHTTP(w, r)
	})
}

func (s *Server) issueToken(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeOAuthError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	if r.PostForm.Get("client_id") != s.clientID || r.PostForm.Get("client_secret") != s.clientSecret {
		writeOAuthError(w, http.StatusUnauthorized, "invalid_client", "unknown client or wrong secret")
		return
	}

	switch oauth2.GrantType(r.PostForm.Get("grant_type")) {
	case oauth2.ClientCredentialsGrant:
	case oauth2.AuthorizationCodeGrant:
		if r.PostForm.Get("username") != s.userName || r.PostForm.Get("password") != s.password {
			writeOAuthError(w, http.StatusUnauthorized, "invalid_grant", "invalid username or password")
			return
		}
	default:
		writeOAuthError(w, http.StatusBadRequest, "unsupported_grant_type", r.PostForm.Get("grant_type"))
		return
	}

	s.lock.Lock()
	token := s.tokens[min(s.issued, len(s.tokens)-1)]
	s.issued++
	s.valid[token] = struct{}{}
	s.lock.Unlock()

	writeJSON(w, http.StatusOK, oauth2.TokenResponse{
		AccessToken: utils.Ptr(token),
		TokenType:   "bearer",
		ExpiresIn:   s.expiresIn,
		Scope:       r.PostForm.Get("scope"),
	})
}

func (s *Server) authorized(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		s.lock.RLock()
		_, known := s.valid[token]
		s.lock.RUnlock()
		if !ok || !known {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"message": "invalid or missing access token"})
			return
		}
		next(w, r)
	}
}

func (s *Server) listTemplates(w http.ResponseWriter, r *http.Request) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	templates := s.templates
	if templates == nil {
		templates = []map[string]any{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"templates": templates})
}

func (s *Server) getTemplate(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	s.lock.RLock()
	defer s.lock.RUnlock()
	for _, t := range s.templates {
		if t["id"] == id {
			writeJSON(w, http.StatusOK, t)
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]any{"message": fmt.Sprintf("template %s not found", id)})
}

func (s *Server) listDocuments(w http.ResponseWriter, r *http.Request) {
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit < 0 {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "invalid limit"})
		return
	}
	offset, err := strconv.Atoi(r.URL.Query().Get("offset"))
	if err != nil || offset < 0 {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "invalid offset"})
		return
	}

	s.lock.RLock()
	defer s.lock.RUnlock()
	page := make([]map[string]any, 0, limit)
	for i := offset; i < len(s.docOrder) && len(page) < limit; i++ {
		page = append(page, s.documents[s.docOrder[i]])
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"documents": page,
		"total":     len(s.docOrder),
	})
}

func (s *Server) getDocument(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.Document(r.PathValue("id"))
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]any{"message": "document not found"})
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (s *Server) createDocument(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "invalid json body"})
		return
	}
	for _, field := range []string{"name", "template_id", "recipients"} {
		if _, ok := body[field]; !ok {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"message": field + " is required"})
			return
		}
	}

	s.lock.Lock()
	id := s.addDocumentLocked(map[string]any{
		"name":        body["name"],
		"template_id": body["template_id"],
		"recipients":  body["recipients"],
		"status":      "sent",
	})
	s.lock.Unlock()

	writeJSON(w, http.StatusCreated, map[string]any{"id": id, "name": body["name"]})
}

func (s *Server) deleteDocument(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	s.lock.Lock()
	defer s.lock.Unlock()
	if _, ok := s.documents[id]; !ok {
		writeJSON(w, http.StatusNotFound, map[string]any{"message": "document not found"})
		return
	}
	delete(s.documents, id)
	s.docOrder = removeID(s.docOrder, id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) downloadDocument(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, ok := s.Document(id); !ok {
		writeJSON(w, http.StatusNotFound, map[string]any{"message": "document not found"})
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, PDFContent(id))
}

func (s *Server) getCredits(w http.ResponseWriter, r *http.Request) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	writeJSON(w, http.StatusOK, s.credits)
}

// PDFContent is the body served by the download endpoint for id.
func PDFContent(id string) string {
	return "%PDF-1.4\n% fake document " + id + "\n%%EOF\n"
}

// DocumentIDs returns the ids of stored documents, sorted.
func (s *Server) DocumentIDs() []string {
	s.lock.RLock()
	defer s.lock.RUnlock()
	ids := append([]string(nil), s.docOrder...)
	sort.Strings(ids)
	return ids
}

func removeID(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

func writeOAuthError(w http.ResponseWriter, status int, code, description string) {
	writeJSON(w, status, map[string]string{
		"error":             code,
		"error_description": description,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
