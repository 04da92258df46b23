//go:build integration

package testutil

import (
	"context"
	"fmt"
	"time"

	pgrepo "github.com/Gunvolt24/storefront-cart/internal/repo/postgres"
)

// ApplyMigrationsGoose — применяет вшитые миграции из <repo_root>/migrations.
func ApplyMigrationsGoose(dsn string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := pgrepo.Migrate(ctx, dsn); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}
