package paintstore

import (
	"context"
	"fmt"

	"github.com/Faultbox/meshpaint/internal/config"
	"github.com/Faultbox/meshpaint/internal/paintsync"
)

// Store is a paintsync.Store that can also enumerate and overwrite models.
type Store interface {
	paintsync.Store
	Replace(ctx context.Context, modelID string, edits map[string]string) error
	Models(ctx context.Context) ([]string, error)
}

var (
	_ Store = (*JSONStore)(nil)
	_ Store = (*SQLiteStore)(nil)
	_ Store = (*paintsync.MemoryStore)(nil)
)

// Open creates the store selected by cfg. The returned close function is
// never nil.
func Open(cfg config.PaintConfig) (Store, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Store {
	case config.StoreJSON:
		return NewJSONStore(cfg.JSONPath), noop, nil
	case config.StoreSQLite:
		s, err := OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, noop, err
		}
		return s, s.Close, nil
	case config.StoreMemory:
		return paintsync.NewMemoryStore(), noop, nil
	default:
		return nil, noop, fmt.Errorf("unknown paint store %q", cfg.Store)
	}
}
