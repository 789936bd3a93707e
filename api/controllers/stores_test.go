package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/ratewise/ratewise-backend/api/middleware"
	"github.com/ratewise/ratewise-backend/internal/ratings"
	"github.com/ratewise/ratewise-backend/internal/stores"
	"github.com/ratewise/ratewise-backend/pkg/enums"
	pkgerrors "github.com/ratewise/ratewise-backend/pkg/errors"
	"github.com/ratewise/ratewise-backend/pkg/types"
)

type stubStoreService struct {
	views     []stores.StoreView
	store     *stores.StoreDTO
	dashboard *stores.DashboardDTO
	stats     *stores.StatsDTO
	err       error

	gotQuery stores.ListQuery
	gotRole  enums.Role
	gotInput stores.CreateStoreInput
}

func (s *stubStoreService) List(_ context.Context, _ uuid.UUID, role enums.Role, query stores.ListQuery) ([]stores.StoreView, error) {
	s.gotRole = role
	s.gotQuery = query
	return s.views, s.err
}

func (s *stubStoreService) Create(_ context.Context, input stores.CreateStoreInput) (*stores.StoreDTO, error) {
	s.gotInput = input
	return s.store, s.err
}

func (s *stubStoreService) Dashboard(context.Context, uuid.UUID) (*stores.DashboardDTO, error) {
	return s.dashboard, s.err
}

func (s *stubStoreService) Stats(context.Context) (*stores.StatsDTO, error) {
	return s.stats, s.err
}

type stubRatingService struct {
	dto *ratings.RatingDTO
	err error

	gotStoreID uuid.UUID
	gotValue   int
}

func (s *stubRatingService) Submit(_ context.Context, _ uuid.UUID, storeID uuid.UUID, value int) (*ratings.RatingDTO, error) {
	s.gotStoreID = storeID
	s.gotValue = value
	return s.dto, s.err
}

func authedRequest(method, target, body string, role enums.Role) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	ctx := middleware.WithUserID(req.Context(), uuid.NewString())
	ctx = middleware.WithRole(ctx, string(role))
	return req.WithContext(ctx)
}

func TestStoresListParsesQuery(t *testing.T) {
	svc := &stubStoreService{views: []stores.StoreView{}}
	handler := StoresList(svc, nil)

	req := authedRequest(http.MethodGet, "/api/v1/stores?search=coffee&sort=rating:desc", "", enums.RoleNormal)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.gotQuery.Search != "coffee" {
		t.Fatalf("expected search coffee, got %q", svc.gotQuery.Search)
	}
	if svc.gotQuery.Sort.Field != stores.SortFieldRating || !svc.gotQuery.Sort.Desc {
		t.Fatalf("sort not forwarded: %+v", svc.gotQuery.Sort)
	}
	if svc.gotRole != enums.RoleNormal {
		t.Fatalf("expected normal role, got %s", svc.gotRole)
	}
}

func TestStoresListRejectsBadSort(t *testing.T) {
	svc := &stubStoreService{}
	handler := StoresList(svc, nil)

	req := authedRequest(http.MethodGet, "/api/v1/stores?sort=address:up", "", enums.RoleNormal)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestStoresListRequiresUserContext(t *testing.T) {
	handler := StoresList(&stubStoreService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/stores", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestStoreCreateDecodesOwner(t *testing.T) {
	created := &stores.StoreDTO{ID: uuid.New(), Name: "Corner Shop"}
	svc := &stubStoreService{store: created}
	handler := StoreCreate(svc, nil)

	ownerID := uuid.New()
	body := `{"name":"Corner Shop","email":"corner@example.com","address":"12 Maple Street","owner_id":"` + ownerID.String() + `"}`
	req := authedRequest(http.MethodPost, "/api/v1/stores", body, enums.RoleAdmin)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.gotInput.OwnerID == nil || *svc.gotInput.OwnerID != ownerID {
		t.Fatalf("owner id not forwarded: %+v", svc.gotInput)
	}
}

func TestStoreCreateRejectsInvalidBody(t *testing.T) {
	handler := StoreCreate(&stubStoreService{}, nil)

	req := authedRequest(http.MethodPost, "/api/v1/stores", `{"name":"","email":"not-an-email"}`, enums.RoleAdmin)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestRatingSubmit(t *testing.T) {
	storeID := uuid.New()
	svc := &stubRatingService{dto: &ratings.RatingDTO{ID: uuid.New(), StoreID: storeID, Value: 4}}
	handler := RatingSubmit(svc, nil)

	body := `{"store_id":"` + storeID.String() + `","rating":4}`
	req := authedRequest(http.MethodPost, "/api/v1/stores/rating", body, enums.RoleNormal)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.gotStoreID != storeID || svc.gotValue != 4 {
		t.Fatalf("submission not forwarded: %+v", svc)
	}
}

func TestRatingSubmitMapsServiceErrors(t *testing.T) {
	svc := &stubRatingService{err: pkgerrors.New(pkgerrors.CodeNotFound, "store not found")}
	handler := RatingSubmit(svc, nil)

	body := `{"store_id":"` + uuid.NewString() + `","rating":3}`
	req := authedRequest(http.MethodPost, "/api/v1/stores/rating", body, enums.RoleNormal)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}

	var envelope types.ErrorEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if envelope.Error.Code != string(pkgerrors.CodeNotFound) {
		t.Fatalf("unexpected code %s", envelope.Error.Code)
	}
}

func TestStoreDashboard(t *testing.T) {
	svc := &stubStoreService{dashboard: &stores.DashboardDTO{StoreName: "Corner Shop", AverageRating: 4.5}}
	handler := StoreDashboard(svc, nil)

	req := authedRequest(http.MethodGet, "/api/v1/stores/dashboard", "", enums.RoleStoreOwner)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), `"storeName":"Corner Shop"`) {
		t.Fatalf("dashboard payload missing: %s", resp.Body.String())
	}
}

func TestStoresStats(t *testing.T) {
	svc := &stubStoreService{stats: &stores.StatsDTO{Users: 5, Stores: 3, Ratings: 11}}
	handler := StoresStats(svc, nil)

	req := authedRequest(http.MethodGet, "/api/v1/stores/stats", "", enums.RoleAdmin)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), `"ratings":11`) {
		t.Fatalf("stats payload missing: %s", resp.Body.String())
	}
}
