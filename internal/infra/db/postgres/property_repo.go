package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"property-marketplace/internal/domain"
	"property-marketplace/internal/domain/model"
	"property-marketplace/internal/domain/ports/repository"
)

// Ensure interface compliance at compile time
var _ repository.PropertyRepository = (*propertyRepo)(nil)

type propertyRepo struct{ pool *pgxpool.Pool }

func NewPropertyRepo(pool *pgxpool.Pool) *propertyRepo {
	return &propertyRepo{pool: pool}
}

const propertyColumns = `id, owner_user_id, title, description, type, listing_type, bedrooms, bathrooms, area, price, location, address, status, images, features, created_at`

func (r *propertyRepo) Save(ctx context.Context, tx repository.Tx, p *model.Property) error {
	const q = `
INSERT INTO properties (id, owner_user_id, title, description, type, listing_type, bedrooms, bathrooms, area, price, location, address, status, images, features, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
ON CONFLICT (id) DO UPDATE SET
  title        = EXCLUDED.title,
  description  = EXCLUDED.description,
  type         = EXCLUDED.type,
  listing_type = EXCLUDED.listing_type,
  bedrooms     = EXCLUDED.bedrooms,
  bathrooms    = EXCLUDED.bathrooms,
  area         = EXCLUDED.area,
  price        = EXCLUDED.price,
  location     = EXCLUDED.location,
  address      = EXCLUDED.address,
  status       = EXCLUDED.status,
  images       = EXCLUDED.images,
  features     = EXCLUDED.features;`
	_, err := execSQL(ctx, r.pool, tx, q,
		p.ID, p.OwnerUserID, p.Title, p.Description, p.Type, string(p.ListingType),
		p.Bedrooms, p.Bathrooms, p.Area, p.Price, p.Location, p.Address,
		string(p.Status), p.Images, p.Features, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("save property: %w", err)
	}
	return nil
}

func (r *propertyRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Property, error) {
	q := `SELECT ` + propertyColumns + ` FROM properties WHERE id=$1;`
	row, err := pickRow(ctx, r.pool, tx, q, id)
	if err != nil {
		return nil, err
	}
	return scanProperty(row)
}

func (r *propertyRepo) List(ctx context.Context, tx repository.Tx, f repository.PropertyFilter) ([]*model.Property, error) {
	var (
		where []string
		args  []interface{}
	)
	add := func(cond string, v interface{}) {
		args = append(args, v)
		where = append(where, cond+"$"+strconv.Itoa(len(args)))
	}
	if f.Status != "" {
		add("status=", string(f.Status))
	}
	if f.ListingType != "" {
		add("listing_type=", string(f.ListingType))
	}
	if f.Location != "" {
		add("location=", f.Location)
	}
	if f.OwnerUserID != "" {
		add("owner_user_id=", f.OwnerUserID)
	}

	q := `SELECT ` + propertyColumns + ` FROM properties`
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	args = append(args, f.Limit)
	q += " ORDER BY created_at DESC LIMIT $" + strconv.Itoa(len(args)) + ";"

	rows, err := queryRows(ctx, r.pool, tx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list properties: %w", err)
	}
	defer rows.Close()

	var out []*model.Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *propertyRepo) Delete(ctx context.Context, tx repository.Tx, id string) error {
	const q = `DELETE FROM properties WHERE id=$1;`
	cmd, err := execSQL(ctx, r.pool, tx, q, id)
	if err != nil {
		return fmt.Errorf("delete property: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanProperty(row pgx.Row) (*model.Property, error) {
	p := &model.Property{}
	var listingType, status string
	if err := row.Scan(&p.ID, &p.OwnerUserID, &p.Title, &p.Description, &p.Type, &listingType,
		&p.Bedrooms, &p.Bathrooms, &p.Area, &p.Price, &p.Location, &p.Address,
		&status, &p.Images, &p.Features, &p.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrReadDatabaseRow
	}
	p.ListingType = model.ListingType(listingType)
	p.Status = model.PropertyStatus(status)
	return p, nil
}
