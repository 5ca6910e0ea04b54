package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/viamundo/travel-sales-api/internal/model"
)

// CustomerRepo provides CRUD and search over the customers table.
// Customers are referenced by quotes and bookings and are never
// deleted through the sales flow.
type CustomerRepo struct{ DB *sql.DB }

// NewCustomerRepo returns a CustomerRepo bound to the given database.
func NewCustomerRepo(db *sql.DB) *CustomerRepo { return &CustomerRepo{DB: db} }

// Create inserts a customer and populates the generated ID and
// timestamps on the provided record. Duplicate emails surface as
// ErrConflict.
func (r *CustomerRepo) Create(ctx context.Context, c *model.Customer) error {
	c.Email = strings.ToLower(strings.TrimSpace(c.Email))
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO customers (full_name, email, phone) VALUES (?,?,?)",
		c.FullName, c.Email, c.Phone)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrConflict
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)
	return r.DB.QueryRowContext(ctx,
		"SELECT created_at, updated_at FROM customers WHERE id=?",
		c.ID).Scan(&c.CreatedAt, &c.UpdatedAt)
}

// GetByID fetches a single customer. sql.ErrNoRows when absent.
func (r *CustomerRepo) GetByID(ctx context.Context, id uint64) (model.Customer, error) {
	var c model.Customer
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, full_name, email, phone, created_at, updated_at FROM customers WHERE id=? LIMIT 1",
		id).Scan(&c.ID, &c.FullName, &c.Email, &c.Phone, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

// List returns all customers ordered by name.
func (r *CustomerRepo) List(ctx context.Context) ([]model.Customer, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, full_name, email, phone, created_at, updated_at FROM customers ORDER BY full_name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCustomers(rows)
}

// Search matches customers whose name, email or phone contains q,
// case-insensitively, capped at 20 rows for the admin autocomplete.
func (r *CustomerRepo) Search(ctx context.Context, q string) ([]model.Customer, error) {
	like := "%" + strings.TrimSpace(q) + "%"
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, full_name, email, phone, created_at, updated_at
		 FROM customers
		 WHERE full_name LIKE ? OR email LIKE ? OR phone LIKE ?
		 ORDER BY full_name
		 LIMIT 20`,
		like, like, like)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCustomers(rows)
}

func scanCustomers(rows *sql.Rows) ([]model.Customer, error) {
	out := make([]model.Customer, 0)
	for rows.Next() {
		var c model.Customer
		if err := rows.Scan(&c.ID, &c.FullName, &c.Email, &c.Phone, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// isDuplicateKey detects MySQL error 1062 (duplicate entry for a
// unique index) without importing the driver's error types.
func isDuplicateKey(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "1062")
}
