package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ateliernoir/ateliernoir-backend/api/middleware"
	"github.com/ateliernoir/ateliernoir-backend/internal/cart"
	"github.com/ateliernoir/ateliernoir-backend/internal/content"
	"github.com/ateliernoir/ateliernoir-backend/internal/customers"
	"github.com/ateliernoir/ateliernoir-backend/internal/notifications"
	"github.com/ateliernoir/ateliernoir-backend/internal/orders"
	"github.com/ateliernoir/ateliernoir-backend/internal/products"
	"github.com/ateliernoir/ateliernoir-backend/internal/reviews"
	pkgauth "github.com/ateliernoir/ateliernoir-backend/pkg/auth"
	"github.com/ateliernoir/ateliernoir-backend/pkg/auth/session"
	"github.com/ateliernoir/ateliernoir-backend/pkg/config"
	"github.com/ateliernoir/ateliernoir-backend/pkg/db/models"
	"github.com/ateliernoir/ateliernoir-backend/pkg/logger"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error { return nil }

type stubSessionChecker struct{}

func (stubSessionChecker) HasSession(ctx context.Context, accessID string) (bool, error) {
	return true, nil
}

type stubCustomersService struct{}

func (stubCustomersService) Register(ctx context.Context, req customers.RegisterRequest) (*customers.AuthResponse, error) {
	return &customers.AuthResponse{}, nil
}

func (stubCustomersService) Login(ctx context.Context, req customers.LoginRequest) (*customers.AuthResponse, error) {
	return &customers.AuthResponse{}, nil
}

func (stubCustomersService) Refresh(ctx context.Context, req customers.RefreshRequest) (*customers.AuthResponse, error) {
	return &customers.AuthResponse{}, nil
}

func (stubCustomersService) Logout(ctx context.Context, accessID string) error { return nil }

func (stubCustomersService) Me(ctx context.Context, customerID uuid.UUID) (*customers.CustomerDTO, error) {
	return &customers.CustomerDTO{ID: customerID}, nil
}

type stubProductsService struct{}

func (stubProductsService) List(ctx context.Context, filter products.ListFilter) (products.ProductPage, error) {
	return products.ProductPage{Items: []products.ProductSummary{}}, nil
}

func (stubProductsService) GetDetail(ctx context.Context, id uuid.UUID) (products.ProductDetail, error) {
	return products.ProductDetail{}, nil
}

func (stubProductsService) SnapshotForCart(ctx context.Context, productID uuid.UUID, size, color string) (products.Snapshot, error) {
	return products.Snapshot{}, nil
}

type stubCartService struct{}

func (stubCartService) Get(ctx context.Context, ownerKey string) (cart.Cart, error) {
	return cart.Cart{}, nil
}

func (stubCartService) AddItem(ctx context.Context, ownerKey string, input cart.AddItemInput) (cart.Cart, error) {
	return cart.Cart{}, nil
}

func (stubCartService) RemoveItem(ctx context.Context, ownerKey string, productID uuid.UUID, size, color string) (cart.Cart, error) {
	return cart.Cart{}, nil
}

func (stubCartService) UpdateQuantity(ctx context.Context, ownerKey string, productID uuid.UUID, size, color string, quantity int) (cart.Cart, error) {
	return cart.Cart{}, nil
}

func (stubCartService) ApplyCoupon(ctx context.Context, ownerKey, code string) (cart.Cart, error) {
	return cart.Cart{}, nil
}

func (stubCartService) RemoveCoupon(ctx context.Context, ownerKey string) (cart.Cart, error) {
	return cart.Cart{}, nil
}

func (stubCartService) Clear(ctx context.Context, ownerKey string) error { return nil }

func (stubCartService) Merge(ctx context.Context, fromOwnerKey, toOwnerKey string) (cart.Cart, error) {
	return cart.Cart{}, nil
}

type stubWishlistService struct{}

func (stubWishlistService) Get(ctx context.Context, ownerKey string) ([]uuid.UUID, error) {
	return []uuid.UUID{}, nil
}

func (stubWishlistService) AddItem(ctx context.Context, ownerKey string, customerID *uuid.UUID, productID uuid.UUID) ([]uuid.UUID, error) {
	return []uuid.UUID{productID}, nil
}

func (stubWishlistService) RemoveItem(ctx context.Context, ownerKey string, customerID *uuid.UUID, productID uuid.UUID) ([]uuid.UUID, error) {
	return []uuid.UUID{}, nil
}

func (stubWishlistService) Sync(ctx context.Context, ownerKey string, customerID uuid.UUID) ([]uuid.UUID, error) {
	return []uuid.UUID{}, nil
}

type stubOrdersService struct{}

func (stubOrdersService) Track(ctx context.Context, orderNumber, email string) (*orders.TrackedOrder, error) {
	return &orders.TrackedOrder{Order: &models.Order{}}, nil
}

func (stubOrdersService) ListMine(ctx context.Context, params orders.ListParams) (*orders.ListResult, error) {
	return &orders.ListResult{}, nil
}

type stubContentService struct{}

func (stubContentService) Home(ctx context.Context) (*content.HomeContent, error) {
	return &content.HomeContent{}, nil
}

func (stubContentService) Announcements(ctx context.Context) ([]models.Announcement, error) {
	return []models.Announcement{}, nil
}

type stubReviewsService struct{}

func (stubReviewsService) Submit(ctx context.Context, req reviews.SubmitRequest) (*models.Review, error) {
	return &models.Review{}, nil
}

func (stubReviewsService) ListByProduct(ctx context.Context, params reviews.ListParams) (*reviews.ListResult, error) {
	return &reviews.ListResult{}, nil
}

type stubNotificationsService struct{}

func (stubNotificationsService) Notify(ctx context.Context, params notifications.NotifyParams) (*models.Notification, error) {
	return &models.Notification{}, nil
}

func (stubNotificationsService) List(ctx context.Context, params notifications.ListParams) (*notifications.ListResult, error) {
	return &notifications.ListResult{}, nil
}

func (stubNotificationsService) MarkRead(ctx context.Context, customerID, notificationID uuid.UUID) error {
	return nil
}

func (stubNotificationsService) MarkAllRead(ctx context.Context, customerID uuid.UUID) (int64, error) {
	return 0, nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
		JWT: config.JWTConfig{
			Secret:                 "secret",
			Issuer:                 "issuer",
			ExpirationMinutes:      60,
			RefreshTokenTTLMinutes: 120,
		},
	}
}

func newTestRouter(cfg *config.Config) http.Handler {
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: logger.ParseLevel("debug"), Output: io.Discard})
	return NewRouter(Deps{
		Config:        cfg,
		Logger:        logg,
		DB:            stubPinger{},
		Sessions:      stubSessionChecker{},
		Customers:     stubCustomersService{},
		Products:      stubProductsService{},
		Cart:          stubCartService{},
		Wishlist:      stubWishlistService{},
		Orders:        stubOrdersService{},
		Content:       stubContentService{},
		Reviews:       stubReviewsService{},
		Notifications: stubNotificationsService{},
	})
}

func buildToken(t *testing.T, cfg *config.Config, customerID uuid.UUID) string {
	t.Helper()
	token, err := pkgauth.MintAccessToken(cfg.JWT, time.Now(), pkgauth.AccessTokenPayload{
		CustomerID: customerID,
		Email:      "noir@example.com",
		JTI:        session.NewAccessID(),
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestHealthLive(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for liveness got %d", resp.Code)
	}
}

func TestCatalogIsPublic(t *testing.T) {
	router := newTestRouter(testConfig())
	for _, path := range []string{
		"/api/v1/products",
		"/api/v1/content/home",
		"/api/v1/content/announcements",
	} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("expected 200 for %s got %d", path, resp.Code)
		}
	}
}

func TestCartMintsGuestSession(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for guest cart got %d", resp.Code)
	}
	minted := resp.Header().Get(middleware.SessionHeader)
	if minted == "" {
		t.Fatal("expected guest session header to be minted")
	}
	if _, err := uuid.Parse(minted); err != nil {
		t.Fatalf("expected minted session to be a uuid got %q", minted)
	}
}

func TestCartKeepsGuestSession(t *testing.T) {
	router := newTestRouter(testConfig())
	sessionID := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.Header.Set(middleware.SessionHeader, sessionID)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if echoed := resp.Header().Get(middleware.SessionHeader); echoed != sessionID {
		t.Fatalf("expected session %q to be echoed got %q", sessionID, echoed)
	}
}

func TestCartRejectsInvalidBearer(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for invalid bearer got %d", resp.Code)
	}
}

func TestMeRequiresToken(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token got %d", resp.Code)
	}
}

func TestMeSucceedsWithToken(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, uuid.New()))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 with token got %d", resp.Code)
	}
}

func TestOrderHistoryRequiresToken(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token got %d", resp.Code)
	}
}

func TestOrderTrackingIsPublic(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/track?number=AN-1001&email=noir@example.com", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for guest tracking got %d", resp.Code)
	}
}

func TestWishlistServesGuests(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/wishlist", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for guest wishlist got %d", resp.Code)
	}
}

func TestNotificationsRequireToken(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/notifications", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token got %d", resp.Code)
	}
}
