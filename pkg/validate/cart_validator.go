package validate

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/Gunvolt24/storefront-cart/internal/domain"
	"github.com/Gunvolt24/storefront-cart/internal/ports"
	"github.com/go-playground/validator/v10"
)

// Проверка, что CartValidator удовлетворяет интерфейсу ports.CartValidator.
var _ ports.CartValidator = (*CartValidator)(nil)

// ErrInvalidCart — базовая (sentinel error) ошибка валидации корзины.
var ErrInvalidCart = errors.New("cart validation failed")

// CartValidator — правила строк корзины (теги validate) + уникальность id.
type CartValidator struct {
	v *validator.Validate
}

// NewCartValidator — конструктор CartValidator.
// Возвращает ErrInvalidCart (с обёрнутой причиной) при любой проблеме.
func NewCartValidator() *CartValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	// в сообщениях — имена полей как в JSON
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &CartValidator{v: v}
}

// Validate — 1 <= quantity <= stock для каждой строки, id уникальны.
func (cv *CartValidator) Validate(ctx context.Context, cart domain.Cart) error {
	seen := make(map[string]struct{}, len(cart))
	for i := range cart {
		if msg := cv.checkItem(ctx, &cart[i]); msg != "" {
			return fmt.Errorf("%w: items[%d].%s", ErrInvalidCart, i, msg)
		}
		if _, dup := seen[cart[i].ID]; dup {
			return fmt.Errorf("%w: items[%d].id %q повторяется", ErrInvalidCart, i, cart[i].ID)
		}
		seen[cart[i].ID] = struct{}{}
	}
	return nil
}

// ValidateItem — проверка одной строки (без уникальности).
func (cv *CartValidator) ValidateItem(ctx context.Context, item domain.CartItem) error {
	if msg := cv.checkItem(ctx, &item); msg != "" {
		return fmt.Errorf("%w: %s", ErrInvalidCart, msg)
	}
	return nil
}

// checkItem — текст первой нарушенной проверки или "".
func (cv *CartValidator) checkItem(ctx context.Context, item *domain.CartItem) string {
	err := cv.v.StructCtx(ctx, item)
	if err == nil {
		return ""
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		if fe.Param() != "" {
			return fmt.Sprintf("%s нарушает правило %s=%s", fe.Field(), fe.Tag(), fe.Param())
		}
		return fmt.Sprintf("%s нарушает правило %s", fe.Field(), fe.Tag())
	}
	return err.Error()
}
