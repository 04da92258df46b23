package ports

import "context"

// CartStorage — сохранённый слот корзины (JSON-массив строк) с истечением срока.
// Срок жизни слота задаётся реализацией и отсчитывается от последней записи.
type CartStorage interface {
	// Load — содержимое слота; (nil, nil), если слота нет или он истёк.
	Load(ctx context.Context, cartID string) ([]byte, error)

	// Save — перезаписать слот и продлить срок жизни.
	Save(ctx context.Context, cartID string, payload []byte) error

	// Delete — удалить слот целиком (не путать с записью пустого массива).
	Delete(ctx context.Context, cartID string) error
}

// ExpiredSlotPurger — хранилища, которым нужна явная чистка истёкших слотов.
type ExpiredSlotPurger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}
