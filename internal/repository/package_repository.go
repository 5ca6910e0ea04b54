package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/viamundo/travel-sales-api/internal/model"
)

// PackageRepo provides access to the travel package catalog. The
// public site browses active packages; the admin panel searches the
// whole catalog when assembling quotes.
type PackageRepo struct{ DB *sql.DB }

// NewPackageRepo returns a PackageRepo bound to the given database.
func NewPackageRepo(db *sql.DB) *PackageRepo { return &PackageRepo{DB: db} }

const packageColumns = "id, title, destination, description, base_price_cents, currency_code, is_active, created_at, updated_at"

// Create inserts a catalog package and populates the generated ID
// and timestamps.
func (r *PackageRepo) Create(ctx context.Context, p *model.TravelPackage) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO packages (title, destination, description, base_price_cents, currency_code, is_active) VALUES (?,?,?,?,?,?)",
		p.Title, p.Destination, p.Description, p.BasePriceCents, p.CurrencyCode, p.IsActive)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	return r.DB.QueryRowContext(ctx,
		"SELECT created_at, updated_at FROM packages WHERE id=?",
		p.ID).Scan(&p.CreatedAt, &p.UpdatedAt)
}

// GetByID fetches a single package. sql.ErrNoRows when absent.
func (r *PackageRepo) GetByID(ctx context.Context, id uint64) (model.TravelPackage, error) {
	var p model.TravelPackage
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+packageColumns+" FROM packages WHERE id=? LIMIT 1",
		id).Scan(&p.ID, &p.Title, &p.Destination, &p.Description, &p.BasePriceCents, &p.CurrencyCode, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

// ListActive returns every active package for the public catalog,
// newest first.
// List returns the whole catalog, inactive packages included, for
// the operator view.
func (r *PackageRepo) List(ctx context.Context) ([]model.TravelPackage, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+packageColumns+" FROM packages ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPackages(rows)
}

func (r *PackageRepo) ListActive(ctx context.Context) ([]model.TravelPackage, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+packageColumns+" FROM packages WHERE is_active = TRUE ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPackages(rows)
}

// Search matches packages whose title or destination contains q.
// When activeOnly is set, inactive packages are filtered out; the
// admin quote builder searches everything.
func (r *PackageRepo) Search(ctx context.Context, q string, activeOnly bool) ([]model.TravelPackage, error) {
	like := "%" + strings.TrimSpace(q) + "%"
	query := "SELECT " + packageColumns + " FROM packages WHERE (title LIKE ? OR destination LIKE ?)"
	args := []interface{}{like, like}
	if activeOnly {
		query += " AND is_active = TRUE"
	}
	query += " ORDER BY title LIMIT 20"
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPackages(rows)
}

func scanPackages(rows *sql.Rows) ([]model.TravelPackage, error) {
	out := make([]model.TravelPackage, 0)
	for rows.Next() {
		var p model.TravelPackage
		if err := rows.Scan(&p.ID, &p.Title, &p.Destination, &p.Description, &p.BasePriceCents, &p.CurrencyCode, &p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
