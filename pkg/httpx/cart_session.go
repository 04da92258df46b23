package httpx

import (
	"net/http"
	"time"

	"github.com/Gunvolt24/storefront-cart/pkg/ctxmeta"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CartSessionOptions — параметры cookie корзины.
type CartSessionOptions struct {
	CookieName string
	MaxAge     time.Duration
	Secure     bool
}

// CartSessionMiddleware — привязывает запрос к слоту корзины.
// Берёт UUID из cookie; при отсутствии или мусоре выдаёт новый.
// Cookie продлевается на каждом запросе: срок жизни совпадает со сроком слота.
func CartSessionMiddleware(opts CartSessionOptions) gin.HandlerFunc {
	if opts.CookieName == "" {
		opts.CookieName = "cart_id"
	}
	maxAge := int(opts.MaxAge / time.Second)

	return func(c *gin.Context) {
		cartID := ""
		if raw, err := c.Cookie(opts.CookieName); err == nil {
			if id, perr := uuid.Parse(raw); perr == nil {
				cartID = id.String()
			}
		}
		if cartID == "" {
			cartID = uuid.New().String()
		}

		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(opts.CookieName, cartID, maxAge, "/", "", opts.Secure, true)

		c.Request = c.Request.WithContext(ctxmeta.WithCartID(c.Request.Context(), cartID))
		c.Next()
	}
}

// CartID — идентификатор корзины текущего запроса.
func CartID(c *gin.Context) (string, bool) {
	return ctxmeta.CartIDFromContext(c.Request.Context())
}
