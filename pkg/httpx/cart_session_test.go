package httpx_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Gunvolt24/storefront-cart/pkg/httpx"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newSessionRouter(gotID *string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(httpx.CartSessionMiddleware(httpx.CartSessionOptions{
		CookieName: "cart_id",
		MaxAge:     7 * 24 * time.Hour,
	}))
	r.GET("/", func(c *gin.Context) {
		*gotID, _ = httpx.CartID(c)
		c.Status(http.StatusNoContent)
	})
	return r
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, ck := range w.Result().Cookies() {
		if ck.Name == "cart_id" {
			return ck
		}
	}
	t.Fatalf("cookie cart_id не выставлена")
	return nil
}

func TestCartSession_IssuesCookieWhenMissing(t *testing.T) {
	var got string
	r := newSessionRouter(&got)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/", http.NoBody))

	ck := sessionCookie(t, w)
	_, err := uuid.Parse(ck.Value)
	require.NoError(t, err)
	require.Equal(t, ck.Value, got)
	require.True(t, ck.HttpOnly)
	require.Equal(t, http.SameSiteLaxMode, ck.SameSite)
	require.Equal(t, 7*24*60*60, ck.MaxAge)
}

func TestCartSession_KeepsValidCookie(t *testing.T) {
	var got string
	r := newSessionRouter(&got)
	id := uuid.New().String()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/", http.NoBody)
	req.AddCookie(&http.Cookie{Name: "cart_id", Value: id})
	r.ServeHTTP(w, req)

	require.Equal(t, id, got)
	require.Equal(t, id, sessionCookie(t, w).Value)
}

func TestCartSession_ReplacesGarbageCookie(t *testing.T) {
	var got string
	r := newSessionRouter(&got)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/", http.NoBody)
	req.AddCookie(&http.Cookie{Name: "cart_id", Value: "../../etc/passwd"})
	r.ServeHTTP(w, req)

	require.NotEqual(t, "../../etc/passwd", got)
	_, err := uuid.Parse(got)
	require.NoError(t, err)
}
