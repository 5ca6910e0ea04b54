package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/viamundo/travel-sales-api/internal/model"
	"github.com/viamundo/travel-sales-api/internal/utils"
)

// QuoteRepo persists quotes and their line items. A quote and its
// items are always written in a single transaction so a failure can
// never leave orphaned items behind. Status changes go through the
// guarded transition table; there is no way to set an arbitrary
// status.
type QuoteRepo struct{ DB *sql.DB }

// NewQuoteRepo returns a QuoteRepo bound to the given database.
func NewQuoteRepo(db *sql.DB) *QuoteRepo { return &QuoteRepo{DB: db} }

// CustomerPart is the customer slice embedded in detail responses.
type CustomerPart struct {
	ID       uint64 `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

// QuoteItemPart is a quote line as returned to API clients.
type QuoteItemPart struct {
	ID             uint64     `json:"id"`
	PackageID      *uint64    `json:"package_id,omitempty"`
	Title          string     `json:"title"`
	UnitPriceCents int64      `json:"unit_price_cents"`
	Quantity       int        `json:"quantity"`
	Adults         int        `json:"adults"`
	Children       int        `json:"children"`
	TravelDate     *time.Time `json:"travel_date,omitempty"`
	SubtotalCents  int64      `json:"subtotal_cents"`
}

// QuoteDetail is a quote with its customer and ordered items joined
// in, as returned by Get for detail views.
type QuoteDetail struct {
	ID               uint64            `json:"id"`
	QuoteNumber      string            `json:"quote_number"`
	Customer         CustomerPart      `json:"customer"`
	Status           model.QuoteStatus `json:"status"`
	TotalAmountCents int64             `json:"total_amount_cents"`
	CurrencyCode     string            `json:"currency_code"`
	ValidUntil       *time.Time        `json:"valid_until,omitempty"`
	Notes            *string           `json:"notes,omitempty"`
	CreatedAt        time.Time         `json:"created_at"`
	Items            []QuoteItemPart   `json:"items"`
}

// Create inserts a quote and all of its items atomically, generating
// a unique quote number. The generated IDs, folio and timestamps are
// populated on the provided record. A folio collision (unique index
// violation) is retried once with a fresh suffix.
func (r *QuoteRepo) Create(ctx context.Context, q *model.Quote) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := insertQuoteTx(ctx, tx, q); err != nil {
		return err
	}
	if err := insertQuoteItemsTx(ctx, tx, q.ID, q.Items); err != nil {
		return err
	}
	if err := tx.QueryRowContext(ctx,
		"SELECT created_at, updated_at FROM quotes WHERE id=?",
		q.ID).Scan(&q.CreatedAt, &q.UpdatedAt); err != nil {
		return err
	}
	return tx.Commit()
}

func insertQuoteTx(ctx context.Context, tx *sql.Tx, q *model.Quote) error {
	const ins = `INSERT INTO quotes (quote_number, customer_id, status, total_amount_cents, currency_code, valid_until, notes)
	             VALUES (?,?,?,?,?,?,?)`
	for attempt := 0; ; attempt++ {
		q.QuoteNumber = utils.NewQuoteNumber(time.Now())
		res, err := tx.ExecContext(ctx, ins,
			q.QuoteNumber, q.CustomerID, q.Status, q.TotalAmountCents, q.CurrencyCode, q.ValidUntil, q.Notes)
		if err != nil {
			if isDuplicateKey(err) && attempt == 0 {
				continue // folio collision, retry once with a new suffix
			}
			return err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		q.ID = uint64(id)
		return nil
	}
}

// insertQuoteItemsTx bulk-inserts all items of a quote in a single
// statement. An empty slice is a no-op; BuildQuote rejects it before
// persistence anyway.
func insertQuoteItemsTx(ctx context.Context, tx *sql.Tx, quoteID uint64, items []model.QuoteItem) error {
	if len(items) == 0 {
		return nil
	}
	query := `INSERT INTO quote_items (quote_id, package_id, title, unit_price_cents, quantity, adults, children, travel_date, subtotal_cents, position) VALUES `
	args := make([]interface{}, 0, len(items)*10)
	for i, it := range items {
		if i > 0 {
			query += ","
		}
		query += "(?,?,?,?,?,?,?,?,?,?)"
		args = append(args, quoteID, it.PackageID, it.Title, it.UnitPriceCents, it.Quantity, it.Adults, it.Children, it.TravelDate, it.SubtotalCents, it.Position)
	}
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}

// Get returns a quote with its customer and ordered items.
// sql.ErrNoRows when the quote does not exist.
func (r *QuoteRepo) Get(ctx context.Context, id uint64) (*QuoteDetail, error) {
	const q = `SELECT q.id, q.quote_number, q.status, q.total_amount_cents, q.currency_code,
	                  q.valid_until, q.notes, q.created_at,
	                  c.id, c.full_name, c.email, c.phone
	           FROM quotes q
	           JOIN customers c ON c.id = q.customer_id
	           WHERE q.id = ?`
	var det QuoteDetail
	var validUntil sql.NullTime
	var notes sql.NullString
	err := r.DB.QueryRowContext(ctx, q, id).Scan(
		&det.ID, &det.QuoteNumber, &det.Status, &det.TotalAmountCents, &det.CurrencyCode,
		&validUntil, &notes, &det.CreatedAt,
		&det.Customer.ID, &det.Customer.FullName, &det.Customer.Email, &det.Customer.Phone,
	)
	if err != nil {
		return nil, err
	}
	if validUntil.Valid {
		t := validUntil.Time.UTC()
		det.ValidUntil = &t
	}
	if notes.Valid {
		n := notes.String
		det.Notes = &n
	}
	det.Items, err = r.itemParts(ctx, det.ID)
	if err != nil {
		return nil, err
	}
	return &det, nil
}

func (r *QuoteRepo) itemParts(ctx context.Context, quoteID uint64) ([]QuoteItemPart, error) {
	const q = `SELECT id, package_id, title, unit_price_cents, quantity, adults, children, travel_date, subtotal_cents
	           FROM quote_items
	           WHERE quote_id = ?
	           ORDER BY position`
	rows, err := r.DB.QueryContext(ctx, q, quoteID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := make([]QuoteItemPart, 0)
	for rows.Next() {
		var it QuoteItemPart
		var pkgID sql.NullInt64
		var travel sql.NullTime
		if err := rows.Scan(&it.ID, &pkgID, &it.Title, &it.UnitPriceCents, &it.Quantity, &it.Adults, &it.Children, &travel, &it.SubtotalCents); err != nil {
			return nil, err
		}
		if pkgID.Valid {
			v := uint64(pkgID.Int64)
			it.PackageID = &v
		}
		if travel.Valid {
			t := travel.Time.UTC()
			it.TravelDate = &t
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// List returns all quotes ordered by creation time descending with
// only the customer name joined in. Items are deliberately omitted;
// the dashboard list never needs them.
func (r *QuoteRepo) List(ctx context.Context) ([]model.QuoteSummary, error) {
	const q = `SELECT q.id, q.quote_number, c.full_name, q.status, q.total_amount_cents, q.currency_code, q.valid_until, q.created_at
	           FROM quotes q
	           JOIN customers c ON c.id = q.customer_id
	           ORDER BY q.created_at DESC, q.id DESC`
	rows, err := r.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.QuoteSummary, 0)
	for rows.Next() {
		var s model.QuoteSummary
		var validUntil sql.NullTime
		if err := rows.Scan(&s.ID, &s.QuoteNumber, &s.CustomerName, &s.Status, &s.TotalAmountCents, &s.CurrencyCode, &validUntil, &s.CreatedAt); err != nil {
			return nil, err
		}
		if validUntil.Valid {
			t := validUntil.Time.UTC()
			s.ValidUntil = &t
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// SetStatus moves a quote to next if the transition table allows it.
// The current status is read under a row lock and the UPDATE is
// compare-and-set on it, so two concurrent admin actions cannot both
// win. Returns model.ErrInvalidTransition for illegal moves and
// sql.ErrNoRows when the quote does not exist.
func (r *QuoteRepo) SetStatus(ctx context.Context, id uint64, next model.QuoteStatus) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var current model.QuoteStatus
	if err := tx.QueryRowContext(ctx,
		"SELECT status FROM quotes WHERE id=? FOR UPDATE", id).Scan(&current); err != nil {
		return err
	}
	if !current.CanTransition(next) {
		return model.ErrInvalidTransition
	}
	if _, err := tx.ExecContext(ctx,
		"UPDATE quotes SET status=?, updated_at=NOW() WHERE id=? AND status=?",
		next, id, current); err != nil {
		return err
	}
	return tx.Commit()
}

// loadQuoteForUpdateTx fetches a quote with its items inside tx,
// locking the quote row for the duration of the transaction. Used by
// the booking conversion so the quote status cannot change between
// the check and the insert.
func loadQuoteForUpdateTx(ctx context.Context, tx *sql.Tx, id uint64) (model.Quote, error) {
	var q model.Quote
	var validUntil sql.NullTime
	var notes sql.NullString
	err := tx.QueryRowContext(ctx,
		`SELECT id, quote_number, customer_id, status, total_amount_cents, currency_code, valid_until, notes, created_at, updated_at
		 FROM quotes WHERE id=? FOR UPDATE`, id).Scan(
		&q.ID, &q.QuoteNumber, &q.CustomerID, &q.Status, &q.TotalAmountCents, &q.CurrencyCode,
		&validUntil, &notes, &q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		return q, err
	}
	if validUntil.Valid {
		t := validUntil.Time.UTC()
		q.ValidUntil = &t
	}
	if notes.Valid {
		n := notes.String
		q.Notes = &n
	}
	rows, err := tx.QueryContext(ctx,
		`SELECT id, package_id, title, unit_price_cents, quantity, adults, children, travel_date, subtotal_cents, position
		 FROM quote_items WHERE quote_id=? ORDER BY position`, id)
	if err != nil {
		return q, err
	}
	defer rows.Close()
	for rows.Next() {
		var it model.QuoteItem
		var pkgID sql.NullInt64
		var travel sql.NullTime
		if err := rows.Scan(&it.ID, &pkgID, &it.Title, &it.UnitPriceCents, &it.Quantity, &it.Adults, &it.Children, &travel, &it.SubtotalCents, &it.Position); err != nil {
			return q, err
		}
		it.QuoteID = q.ID
		if pkgID.Valid {
			v := uint64(pkgID.Int64)
			it.PackageID = &v
		}
		if travel.Valid {
			t := travel.Time.UTC()
			it.TravelDate = &t
		}
		q.Items = append(q.Items, it)
	}
	return q, rows.Err()
}
