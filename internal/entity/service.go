package entity

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"bank-admin-go/internal/model"
	"bank-admin-go/internal/request"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const (
	TotalCountHeader = "X-Total-Count"
	RequestIDHeader  = "X-Request-ID"
	mergePatchJSON   = "application/merge-patch+json"
)

// TokenSource supplies the bearer token attached to every request.
type TokenSource interface {
	Token() string
}

// Response is the envelope returned by single-entity calls. Body is nil when the
// server answered without one.
type Response[T any] struct {
	StatusCode int
	Header     http.Header
	Body       *T
}

// ListResponse is the envelope returned by Query.
type ListResponse[T any] struct {
	StatusCode int
	Header     http.Header
	Body       []T
	TotalCount int
}

// Service is a stateless REST client for one entity type. Every call is a fresh request.
type Service[T model.Entity] struct {
	kind        model.Kind[T]
	client      *http.Client
	tokens      TokenSource
	resourceURL string
}

func NewService[T model.Entity](kind model.Kind[T], endpoints EndpointResolver, client *http.Client, tokens TokenSource) *Service[T] {
	if client == nil {
		client = http.DefaultClient
	}

	return &Service[T]{
		kind:        kind,
		client:      client,
		tokens:      tokens,
		resourceURL: endpoints.EndpointFor(kind.Resource),
	}
}

func (s *Service[T]) Kind() model.Kind[T] {
	return s.kind
}

func (s *Service[T]) Create(ctx context.Context, e T) (Response[T], error) {
	if e.GetID() != nil {
		return Response[T]{}, fmt.Errorf("creating %s: %w", s.kind.Name, ErrAlreadyPersisted)
	}

	return s.send(ctx, http.MethodPost, s.resourceURL, e, "application/json")
}

func (s *Service[T]) Update(ctx context.Context, e T) (Response[T], error) {
	id := e.GetID()
	if id == nil {
		return Response[T]{}, fmt.Errorf("updating %s: %w", s.kind.Name, ErrNotPersisted)
	}

	return s.send(ctx, http.MethodPut, s.itemURL(*id), e, "application/json")
}

func (s *Service[T]) PartialUpdate(ctx context.Context, e T) (Response[T], error) {
	id := e.GetID()
	if id == nil {
		return Response[T]{}, fmt.Errorf("partially updating %s: %w", s.kind.Name, ErrNotPersisted)
	}

	return s.send(ctx, http.MethodPatch, s.itemURL(*id), e, mergePatchJSON)
}

// Find fetches one entity. A 404 is not an error here: the response comes back with
// a nil Body, which is how callers learn the entity does not exist.
func (s *Service[T]) Find(ctx context.Context, id int64) (Response[T], error) {
	url := s.itemURL(id)

	resp, err := s.do(ctx, http.MethodGet, url, nil, "")
	if err != nil {
		return Response[T]{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return Response[T]{StatusCode: resp.StatusCode, Header: resp.Header}, nil
	}
	if err := checkStatus(resp, http.MethodGet, url); err != nil {
		return Response[T]{}, err
	}

	return decodeResponse[T](resp)
}

func (s *Service[T]) Query(ctx context.Context, opts request.Encoder) (ListResponse[T], error) {
	url := s.resourceURL
	if opts != nil {
		if params := opts.Encode(); len(params) > 0 {
			url += "?" + params.Encode()
		}
	}

	resp, err := s.do(ctx, http.MethodGet, url, nil, "")
	if err != nil {
		return ListResponse[T]{}, err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp, http.MethodGet, url); err != nil {
		return ListResponse[T]{}, err
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return ListResponse[T]{}, fmt.Errorf("reading %s list: %w", s.kind.Name, err)
	}

	result := ListResponse[T]{StatusCode: resp.StatusCode, Header: resp.Header}
	if !emptyBody(raw) {
		if err := json.Unmarshal(raw, &result.Body); err != nil {
			return ListResponse[T]{}, fmt.Errorf("decoding %s list: %w", s.kind.Name, err)
		}
	}

	if total := resp.Header.Get(TotalCountHeader); total != "" {
		if n, err := strconv.Atoi(total); err == nil {
			result.TotalCount = n
		}
	}

	return result, nil
}

func (s *Service[T]) Delete(ctx context.Context, id int64) (Response[struct{}], error) {
	url := s.itemURL(id)

	resp, err := s.do(ctx, http.MethodDelete, url, nil, "")
	if err != nil {
		return Response[struct{}]{}, err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp, http.MethodDelete, url); err != nil {
		return Response[struct{}]{}, err
	}
	_, _ = io.Copy(io.Discard, resp.Body)

	return Response[struct{}]{StatusCode: resp.StatusCode, Header: resp.Header}, nil
}

func (s *Service[T]) MergeMissing(collection []T, candidates ...*T) []T {
	return MergeMissing(collection, candidates...)
}

func (s *Service[T]) itemURL(id int64) string {
	return fmt.Sprintf("%s/%d", s.resourceURL, id)
}

func (s *Service[T]) send(ctx context.Context, method, url string, e T, contentType string) (Response[T], error) {
	resp, err := s.do(ctx, method, url, e, contentType)
	if err != nil {
		return Response[T]{}, err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp, method, url); err != nil {
		return Response[T]{}, err
	}

	return decodeResponse[T](resp)
}

func (s *Service[T]) do(ctx context.Context, method, url string, body any, contentType string) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding %s: %w", s.kind.Name, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("building %s request: %w", method, err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)
	if body != nil {
		req.Header.Set("Content-Type", contentType)
	}
	if s.tokens != nil {
		if token := s.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	log.WithFields(log.Fields{
		"method":     method,
		"url":        url,
		"request_id": requestID,
	}).Debugf("REST request for %s", s.kind.Name)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, url, err)
	}

	return resp, nil
}

type problem struct {
	Title    string `json:"title"`
	ErrorKey string `json:"errorKey"`
}

func checkStatus(resp *http.Response, method, url string) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	httpErr := &HTTPError{
		Method:     method,
		URL:        url,
		StatusCode: resp.StatusCode,
		ErrorKey:   resp.Header.Get(ErrorHeader),
	}

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	var p problem
	if json.Unmarshal(raw, &p) == nil {
		httpErr.Title = p.Title
		if httpErr.ErrorKey == "" {
			httpErr.ErrorKey = p.ErrorKey
		}
	}

	return httpErr
}

func decodeResponse[T any](resp *http.Response) (Response[T], error) {
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response[T]{}, fmt.Errorf("reading response body: %w", err)
	}

	result := Response[T]{StatusCode: resp.StatusCode, Header: resp.Header}
	if emptyBody(raw) {
		return result, nil
	}

	var body T
	if err := json.Unmarshal(raw, &body); err != nil {
		return Response[T]{}, fmt.Errorf("decoding response body: %w", err)
	}
	result.Body = &body

	return result, nil
}

func emptyBody(raw []byte) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
