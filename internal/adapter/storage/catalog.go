package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/vintagefinds/storefront/internal/core/domain"
	"github.com/vintagefinds/storefront/internal/core/port"
)

var _ port.CatalogStorage = (*CatalogRepository)(nil)

type CatalogRepository struct {
	sqldb sqldb
}

func NewCatalogRepository(sqldb sqldb) CatalogRepository {
	return CatalogRepository{sqldb}
}

// StoreProducts upserts catalog snapshots. Variants are replaced as a
// set: a snapshot is authoritative for its product.
func (r CatalogRepository) StoreProducts(
	ctx context.Context, ps []domain.Product,
) (storeErr error) {
	const op = "CatalogRepository.StoreProducts"
	log := slog.With("op", op)

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	tx, err := r.sqldb.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: failed to begin tx: %w", op, err)
	}

	defer func() {
		if storeErr == nil {
			if err := tx.Commit(); err != nil {
				storeErr = fmt.Errorf("%s: failed to commit: %w", op, err)
			}
			return
		}

		if err := tx.Rollback(); err != nil {
			log.Error("failed to rollback tx", "err", err)
		}
	}()

	const productQuery = `
		INSERT INTO products (
			product_id, slug, title, description, brand, condition,
			images, featured, price, compare_at, in_stock, currency, options
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (product_id) DO UPDATE SET
			slug = EXCLUDED.slug,
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			brand = EXCLUDED.brand,
			condition = EXCLUDED.condition,
			images = EXCLUDED.images,
			featured = EXCLUDED.featured,
			price = EXCLUDED.price,
			compare_at = EXCLUDED.compare_at,
			in_stock = EXCLUDED.in_stock,
			currency = EXCLUDED.currency,
			options = EXCLUDED.options;
	`

	// ordinal keeps declaration order, the deterministic tie-break
	// for malformed catalogs with duplicate combinations
	const variantQuery = `
		INSERT INTO variants (
			variant_id, product_id, ordinal, option_values,
			price, compare_at, stock, image
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`

	for _, p := range ps {
		imgB, _ := json.Marshal(p.Images)
		optB, _ := json.Marshal(optionsToRows(p.Options))

		_, err := tx.ExecContext(ctx, productQuery,
			p.ID, p.Slug, p.Title, p.Description, p.Brand, p.Condition,
			string(imgB), p.Featured, p.Price, p.CompareAt,
			p.InStock, p.Currency, string(optB),
		)
		if err != nil {
			return fmt.Errorf("%s: failed to upsert product: %w", op, err)
		}

		_, err = tx.ExecContext(ctx,
			`DELETE FROM variants WHERE product_id = $1;`, p.ID,
		)
		if err != nil {
			return fmt.Errorf("%s: failed to clear variants: %w", op, err)
		}

		for i, v := range p.Variants {
			ovB, _ := json.Marshal(v.OptionValues)
			_, err := tx.ExecContext(ctx, variantQuery,
				v.ID, p.ID, i, string(ovB),
				v.Price, v.CompareAt, v.Stock, v.Image,
			)
			if err != nil {
				return fmt.Errorf("%s: failed to insert variant: %w", op, err)
			}
		}
	}

	return nil
}

func (r CatalogRepository) ProductBySlug(
	ctx context.Context, slug string,
) (domain.Product, error) {
	const op = "CatalogRepository.ProductBySlug"

	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	const productQuery = `
		SELECT
			product_id, slug, title, description, brand, condition,
			images, featured, price, compare_at, in_stock, currency, options
		FROM products
		WHERE slug = $1;`

	var (
		p         domain.Product
		imagesS   string
		optionsS  string
		compareAt sql.NullFloat64
	)
	err := r.sqldb.QueryRowContext(ctx, productQuery, slug).Scan(
		&p.ID, &p.Slug, &p.Title, &p.Description, &p.Brand, &p.Condition,
		&imagesS, &p.Featured, &p.Price, &compareAt,
		&p.InStock, &p.Currency, &optionsS,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Product{}, fmt.Errorf("%s: %w", op, domain.ErrProductNotFound)
		}
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	if compareAt.Valid {
		p.CompareAt = &compareAt.Float64
	}

	if err := json.Unmarshal([]byte(imagesS), &p.Images); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	var optRows []optionRow
	if err := json.Unmarshal([]byte(optionsS), &optRows); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	p.Options = optionsFromRows(optRows)

	p.Variants, err = r.readVariants(ctx, p.ID)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	return p, nil
}

func (r CatalogRepository) readVariants(
	ctx context.Context, productID string,
) ([]domain.Variant, error) {
	const op = "CatalogRepository.readVariants"

	const variantQuery = `
		SELECT variant_id, option_values, price, compare_at, stock, image
		FROM variants
		WHERE product_id = $1
		ORDER BY ordinal ASC;`

	rows, err := r.sqldb.QueryContext(ctx, variantQuery, productID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var vs []domain.Variant
	for rows.Next() {
		var (
			v         domain.Variant
			ovS       string
			compareAt sql.NullFloat64
		)
		err := rows.Scan(
			&v.ID, &ovS, &v.Price, &compareAt, &v.Stock, &v.Image,
		)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if compareAt.Valid {
			v.CompareAt = &compareAt.Float64
		}
		if err := json.Unmarshal([]byte(ovS), &v.OptionValues); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		vs = append(vs, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return vs, nil
}

type optionRow struct {
	Name     string            `json:"name"`
	Values   []string          `json:"values"`
	Swatches map[string]string `json:"swatches,omitempty"`
}

func optionsToRows(opts []domain.Option) []optionRow {
	rows := make([]optionRow, len(opts))
	for i, o := range opts {
		rows[i] = optionRow{Name: o.Name, Values: o.Values, Swatches: o.Swatches}
	}
	return rows
}

func optionsFromRows(rows []optionRow) []domain.Option {
	opts := make([]domain.Option, len(rows))
	for i, r := range rows {
		opts[i] = domain.Option{Name: r.Name, Values: r.Values, Swatches: r.Swatches}
	}
	return opts
}
