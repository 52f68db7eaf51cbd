package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/fitnesspro/fitnesspro-backend/internal/clients"
	"github.com/fitnesspro/fitnesspro-backend/pkg/enums"
)

type stubClientService struct {
	lastQuery clients.ListQuery
	lastID    uuid.UUID
	err       error
}

func (s *stubClientService) List(ctx context.Context, query clients.ListQuery) (*clients.ListPage, error) {
	s.lastQuery = query
	return &clients.ListPage{}, s.err
}

func (s *stubClientService) Get(ctx context.Context, id uuid.UUID) (*clients.ClientDTO, error) {
	s.lastID = id
	return &clients.ClientDTO{ID: id}, s.err
}

func (s *stubClientService) CreateRecord(ctx context.Context, input clients.CreateRecordInput) (*clients.ClientDTO, error) {
	return &clients.ClientDTO{}, s.err
}

func (s *stubClientService) Update(ctx context.Context, id uuid.UUID, input clients.UpdateClientInput) (*clients.ClientDTO, error) {
	s.lastID = id
	return &clients.ClientDTO{ID: id}, s.err
}

func (s *stubClientService) Delete(ctx context.Context, id uuid.UUID) error {
	s.lastID = id
	return s.err
}

func TestListClientsParsesQuery(t *testing.T) {
	svc := &stubClientService{}
	handler := ListClients(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/clients?search=jo&status=Attivo&limit=5", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.lastQuery.Search != "jo" {
		t.Fatalf("expected search forwarded, got %q", svc.lastQuery.Search)
	}
	if svc.lastQuery.Status == nil || *svc.lastQuery.Status != enums.ClientStatusActive {
		t.Fatalf("expected Attivo status filter, got %+v", svc.lastQuery.Status)
	}
	if svc.lastQuery.Page.Limit != 5 {
		t.Fatalf("expected limit 5, got %d", svc.lastQuery.Page.Limit)
	}
}

func TestListClientsRejectsUnknownStatus(t *testing.T) {
	svc := &stubClientService{}
	handler := ListClients(svc, nil)

	// Status tokens are the stored Italian labels; anything else is a 400.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/clients?status=active", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
	if svc.lastQuery.Status != nil {
		t.Fatalf("expected service untouched, got %+v", svc.lastQuery.Status)
	}
}

func TestListClientsRejectsBadLimit(t *testing.T) {
	handler := ListClients(&stubClientService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/clients?limit=nope", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestGetClientRejectsMalformedID(t *testing.T) {
	handler := GetClient(&stubClientService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/clients/not-a-uuid", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", "not-a-uuid")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestGetClientForwardsID(t *testing.T) {
	svc := &stubClientService{}
	handler := GetClient(svc, nil)

	id := uuid.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/clients/"+id.String(), nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id.String())
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.lastID != id {
		t.Fatalf("expected id forwarded, got %s", svc.lastID)
	}
}
