package validate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/Gunvolt24/storefront-cart/internal/domain"
	"github.com/Gunvolt24/storefront-cart/internal/ports"
	"github.com/go-playground/validator/v10"
)

// ErrInvalidEvent — событие оформления заказа не прошло разбор или проверку.
var ErrInvalidEvent = errors.New("checkout event validation failed")

var eventValidator = validator.New(validator.WithRequiredStructEnabled())

// DecodeCart — строгий разбор слота корзины: только JSON-массив строк,
// неизвестные поля и мусор после массива — ошибка.
func DecodeCart(raw []byte) (domain.Cart, error) {
	var cart domain.Cart
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cart); err != nil {
		return nil, fmt.Errorf("%w: invalid json: %v", ErrInvalidCart, err)
	}
	// гарантируем отсутствие данных после массива
	if err := dec.Decode(new(struct{})); err != io.EOF {
		return nil, fmt.Errorf("%w: invalid json: trailing data", ErrInvalidCart)
	}
	return cart.Clone(), nil
}

// ValidateCartFromJSON — разбор и проверка инвариантов корзины.
func ValidateCartFromJSON(ctx context.Context, cv ports.CartValidator, raw []byte) (domain.Cart, error) {
	cart, err := DecodeCart(raw)
	if err != nil {
		return nil, err
	}
	if err := cv.Validate(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// DecodeCheckoutEvent — разбор события из топика оформленных заказов.
// Лишние поля допустимы: схему события ведёт сервис заказов.
func DecodeCheckoutEvent(ctx context.Context, raw []byte) (domain.CheckoutEvent, error) {
	var ev domain.CheckoutEvent
	if err := json.Unmarshal(raw, &ev); err != nil {
		return domain.CheckoutEvent{}, fmt.Errorf("%w: invalid json: %v", ErrInvalidEvent, err)
	}
	if err := eventValidator.StructCtx(ctx, &ev); err != nil {
		return domain.CheckoutEvent{}, fmt.Errorf("%w: %v", ErrInvalidEvent, err)
	}
	return ev, nil
}
