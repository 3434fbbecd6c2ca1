package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"taskboard/internal/tenant"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func resetMemoryLimiter() {
	rlMu.Lock()
	clients = make(map[string]*clientInfo)
	rlMu.Unlock()
}

func serve(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSimpleRateLimit(t *testing.T) {
	resetMemoryLimiter()

	r := gin.New()
	r.GET("/x", RateLimit(2, time.Minute), func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 2; i++ {
		if w := serve(r, httptest.NewRequest("GET", "/x", nil)); w.Code != http.StatusOK {
			t.Fatalf("request %d: status %d", i, w.Code)
		}
	}
	if w := serve(r, httptest.NewRequest("GET", "/x", nil)); w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", w.Code)
	}
}

func TestRateLimitDisabled(t *testing.T) {
	resetMemoryLimiter()

	r := gin.New()
	r.GET("/x", RateLimit(0, time.Minute), func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 5; i++ {
		if w := serve(r, httptest.NewRequest("GET", "/x", nil)); w.Code != http.StatusOK {
			t.Fatalf("request %d: status %d", i, w.Code)
		}
	}
}

func TestTenantRateLimitSeparatesTenants(t *testing.T) {
	resetMemoryLimiter()

	r := gin.New()
	r.POST("/x",
		Tenant(tenant.NewHeaderResolver("", tenant.DefaultID)),
		TenantRateLimit(1, time.Minute),
		func(c *gin.Context) { c.Status(http.StatusCreated) },
	)

	post := func(tenantID string) int {
		req := httptest.NewRequest("POST", "/x", nil)
		req.Header.Set("X-Tenant-Id", tenantID)
		return serve(r, req).Code
	}

	if got := post("1"); got != http.StatusCreated {
		t.Fatalf("tenant 1 first write: %d", got)
	}
	if got := post("1"); got != http.StatusTooManyRequests {
		t.Fatalf("tenant 1 second write: %d, want 429", got)
	}
	if got := post("2"); got != http.StatusCreated {
		t.Fatalf("tenant 2 should have its own budget, got %d", got)
	}
}

type failingResolver struct{}

func (failingResolver) Resolve(*http.Request) (int64, error) { return 0, tenant.ErrUnresolved }

func TestTenantMiddleware(t *testing.T) {
	var seen int64
	r := gin.New()
	r.GET("/x", Tenant(tenant.NewHeaderResolver("", tenant.DefaultID)), func(c *gin.Context) {
		seen, _ = tenant.FromContext(c.Request.Context())
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest("GET", "/x", nil)
	req.Header.Set("X-Tenant-Id", "8")
	serve(r, req)
	if seen != 8 {
		t.Fatalf("tenant = %d, want 8", seen)
	}

	serve(r, httptest.NewRequest("GET", "/x", nil))
	if seen != 1 {
		t.Fatalf("tenant = %d, want default 1", seen)
	}

	denied := gin.New()
	denied.GET("/x", Tenant(failingResolver{}), func(c *gin.Context) { c.Status(http.StatusOK) })
	if w := serve(denied, httptest.NewRequest("GET", "/x", nil)); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS("https://app.example", "X-Tenant-Id"))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest("OPTIONS", "/x", nil)
	req.Header.Set("Origin", "https://app.example")
	w := serve(r, req)
	if w.Code != http.StatusNoContent {
		t.Fatalf("preflight status %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://app.example" {
		t.Fatalf("allow origin = %q", got)
	}
	if got := w.Header().Get("Access-Control-Allow-Credentials"); got != "true" {
		t.Fatalf("allow credentials = %q", got)
	}

	req = httptest.NewRequest("GET", "/x", nil)
	req.Header.Set("Origin", "https://evil.example")
	w = serve(r, req)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("unexpected allow origin %q", got)
	}
}

func TestCORSWithoutAllowlist(t *testing.T) {
	r := gin.New()
	r.Use(CORS("", "X-Tenant-Id"))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest("GET", "/x", nil)
	req.Header.Set("Origin", "https://anywhere.example")
	w := serve(r, req)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("allow origin = %q, want *", got)
	}
	if got := w.Header().Get("Access-Control-Allow-Credentials"); got != "" {
		t.Fatalf("credentials must not be allowed without an allowlist, got %q", got)
	}
}

func TestRequestLoggerSetsRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestLogger())
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(r, httptest.NewRequest("GET", "/x", nil))
	if w.Header().Get(RequestIDHeader) == "" {
		t.Fatal("expected a generated request id")
	}

	req := httptest.NewRequest("GET", "/x", nil)
	req.Header.Set(RequestIDHeader, "abc")
	w = serve(r, req)
	if got := w.Header().Get(RequestIDHeader); got != "abc" {
		t.Fatalf("request id = %q, want abc", got)
	}
}
