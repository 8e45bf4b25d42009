// Command seed-db creates the database schema and loads the item catalog
// from a JSON file. Files ending in .gz are decompressed on the fly.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	pgzip "github.com/klauspost/pgzip"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/storefront-labs/storefront/internal/domain/item"
	"github.com/storefront-labs/storefront/internal/repository"
)

// insertWorkers bounds concurrent catalog inserts.
const insertWorkers = 8

type itemJSON struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
}

func main() {
	var (
		databaseURL string
		itemsFile   string
	)

	flag.StringVar(&databaseURL, "database-url", "", "PostgreSQL connection URL (or DATABASE_URL env)")
	flag.StringVar(&itemsFile, "items-file", "db/seed/items.json", "path to items JSON file (.gz supported)")
	flag.Parse()

	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		slog.Error("database URL is required: set --database-url or DATABASE_URL")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, databaseURL, itemsFile); err != nil {
		slog.Error("seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("seed completed successfully")
}

func run(ctx context.Context, databaseURL, itemsFile string) error {
	slog.Info("connecting to database")

	pool, err := repository.NewPool(ctx, databaseURL)
	if err != nil {
		return errors.Wrap(err, "connect to database")
	}
	defer pool.Close()

	slog.Info("running migrations")

	if err := repository.RunMigrations(ctx, pool); err != nil {
		return errors.Wrap(err, "run migrations")
	}

	items, err := loadItems(itemsFile)
	if err != nil {
		return errors.Wrap(err, "load items")
	}

	slog.Info("seeding items", slog.Int("count", len(items)))

	repo := repository.NewItemRepository(pool)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(insertWorkers)
	for _, it := range items {
		g.Go(func() error {
			if err := repo.Upsert(gctx, &it); err != nil {
				return errors.Wrapf(err, "upsert item %q", it.Name)
			}
			return nil
		})
	}
	return g.Wait()
}

// loadItems reads and decodes the items file. Rows without an id get a fresh
// UUID so the same file can seed a brand-new database.
func loadItems(path string) ([]item.Item, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := pgzip.NewReader(f)
		if err != nil {
			return nil, errors.Wrapf(err, "gzip reader for %s", path)
		}
		defer gz.Close()
		r = gz
	}

	var rows []itemJSON
	if err := json.NewDecoder(r).Decode(&rows); err != nil {
		return nil, errors.Wrap(err, "decode items")
	}

	items := make([]item.Item, len(rows))
	for i, row := range rows {
		id := row.ID
		if id == "" {
			id = uuid.New().String()
		}
		if row.Price.IsNegative() {
			return nil, errors.Errorf("item %q has negative price %s", row.Name, row.Price)
		}
		items[i] = item.Item{
			ID:          id,
			Name:        row.Name,
			Description: row.Description,
			Price:       row.Price,
		}
	}
	return items, nil
}
