// Package bootstrap opens the persistence backend selected by configuration
// and prepares its schema, so the binaries share one startup path.
package bootstrap

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/tbourn/tweeter-backend/internal/config"
	"github.com/tbourn/tweeter-backend/internal/mongostore"
	"github.com/tbourn/tweeter-backend/internal/observability"
	"github.com/tbourn/tweeter-backend/internal/repo"
	"github.com/tbourn/tweeter-backend/internal/services"
)

// OpenStore connects to the configured backend, migrates the SQL schema or
// creates the Mongo indexes, and returns a ready store. The caller closes it.
func OpenStore(ctx context.Context, sc config.StoreConfig) (services.Store, error) {
	switch sc.Driver {
	case config.DriverSQLite:
		db, err := repo.OpenSQLite(sc.DatabaseURL, sc.Debug)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		return prepareSQL(db)

	case config.DriverPostgres:
		db, err := repo.OpenPostgres(sc.DatabaseURL, sc.Debug)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		return prepareSQL(db)

	case config.DriverMongo:
		st, err := mongostore.Connect(ctx, sc.DatabaseURL, sc.MongoDB)
		if err != nil {
			return nil, fmt.Errorf("connect mongo: %w", err)
		}
		if err := st.EnsureIndexes(ctx); err != nil {
			_ = st.Close(ctx)
			return nil, fmt.Errorf("mongo indexes: %w", err)
		}
		return st, nil
	}
	return nil, fmt.Errorf("unknown store driver %q", sc.Driver)
}

func prepareSQL(db *gorm.DB) (services.Store, error) {
	st := repo.NewStore(db)
	if err := observability.InstrumentGORM(db); err != nil {
		_ = st.Close(context.Background())
		return nil, fmt.Errorf("instrument gorm: %w", err)
	}
	if err := repo.AutoMigrate(db); err != nil {
		_ = st.Close(context.Background())
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return st, nil
}
