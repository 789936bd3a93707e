package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/ratewise/ratewise-backend/internal/auth"
	"github.com/ratewise/ratewise-backend/internal/ratings"
	"github.com/ratewise/ratewise-backend/internal/stores"
	"github.com/ratewise/ratewise-backend/internal/users"
	pkgauth "github.com/ratewise/ratewise-backend/pkg/auth"
	"github.com/ratewise/ratewise-backend/pkg/config"
	"github.com/ratewise/ratewise-backend/pkg/enums"
)

type stubAuthService struct{}

func (stubAuthService) Signup(context.Context, auth.SignupInput) (*auth.SessionDTO, error) {
	return &auth.SessionDTO{Token: "jwt"}, nil
}

func (stubAuthService) Login(context.Context, string, string) (*auth.SessionDTO, error) {
	return &auth.SessionDTO{Token: "jwt"}, nil
}

func (stubAuthService) ChangePassword(context.Context, auth.ChangePasswordInput) error {
	return nil
}

type stubStoreService struct{}

func (stubStoreService) List(context.Context, uuid.UUID, enums.Role, stores.ListQuery) ([]stores.StoreView, error) {
	return []stores.StoreView{}, nil
}

func (stubStoreService) Create(context.Context, stores.CreateStoreInput) (*stores.StoreDTO, error) {
	return &stores.StoreDTO{ID: uuid.New()}, nil
}

func (stubStoreService) Dashboard(context.Context, uuid.UUID) (*stores.DashboardDTO, error) {
	return &stores.DashboardDTO{}, nil
}

func (stubStoreService) Stats(context.Context) (*stores.StatsDTO, error) {
	return &stores.StatsDTO{}, nil
}

type stubUserService struct{}

func (stubUserService) List(context.Context, users.ListQuery) ([]users.AdminUserView, error) {
	return []users.AdminUserView{}, nil
}

func (stubUserService) Create(context.Context, users.CreateUserInput) (*users.UserDTO, error) {
	return &users.UserDTO{ID: uuid.New()}, nil
}

type stubRatingService struct{}

func (stubRatingService) Submit(context.Context, uuid.UUID, uuid.UUID, int) (*ratings.RatingDTO, error) {
	return &ratings.RatingDTO{ID: uuid.New()}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
		JWT: config.JWTConfig{Secret: "secret", Issuer: "issuer", ExpirationMinutes: 60},
	}
}

func testRouter(t *testing.T) http.Handler {
	t.Helper()
	return NewRouter(Dependencies{
		Config:        testConfig(),
		AuthService:   stubAuthService{},
		StoreService:  stubStoreService{},
		UserService:   stubUserService{},
		RatingService: stubRatingService{},
	})
}

func mintToken(t *testing.T, role enums.Role) string {
	t.Helper()
	token, err := pkgauth.MintAccessToken(testConfig().JWT, time.Now(), pkgauth.AccessTokenPayload{
		UserID: uuid.New(),
		Role:   role,
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestHealthLive(t *testing.T) {
	router := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	router := testRouter(t)

	for _, target := range []string{
		"/api/v1/stores",
		"/api/v1/stores/stats",
		"/api/v1/stores/dashboard",
		"/api/v1/users",
	} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401 got %d", target, resp.Code)
		}
	}
}

func TestRoleGuards(t *testing.T) {
	router := testRouter(t)

	cases := []struct {
		method string
		target string
		role   enums.Role
		want   int
	}{
		{http.MethodGet, "/api/v1/stores", enums.RoleNormal, http.StatusOK},
		{http.MethodGet, "/api/v1/stores/stats", enums.RoleNormal, http.StatusForbidden},
		{http.MethodGet, "/api/v1/stores/stats", enums.RoleAdmin, http.StatusOK},
		{http.MethodGet, "/api/v1/stores/dashboard", enums.RoleNormal, http.StatusForbidden},
		{http.MethodGet, "/api/v1/stores/dashboard", enums.RoleStoreOwner, http.StatusOK},
		{http.MethodGet, "/api/v1/users", enums.RoleStoreOwner, http.StatusForbidden},
		{http.MethodGet, "/api/v1/users", enums.RoleAdmin, http.StatusOK},
	}

	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, tc.target, nil)
		req.Header.Set("Authorization", "Bearer "+mintToken(t, tc.role))
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != tc.want {
			t.Fatalf("%s %s as %s: expected %d got %d", tc.method, tc.target, tc.role, tc.want, resp.Code)
		}
	}
}

func TestSignupRouteIsPublic(t *testing.T) {
	router := testRouter(t)

	body := `{"name":"Margaret Atwood of Ontario Province","email":"margaret@example.com","password":"Sup3rSecret!"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/signup", strings.NewReader(body))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
}
