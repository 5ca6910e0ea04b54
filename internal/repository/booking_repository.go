package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/viamundo/travel-sales-api/internal/model"
	"github.com/viamundo/travel-sales-api/internal/sales"
	"github.com/viamundo/travel-sales-api/internal/utils"
)

// BookingRepo persists bookings, their line items and status changes.
// Bookings are created either by converting a quote (at most once per
// quote) or directly through the admin "new order" flow. Both paths
// write the booking and all items in a single transaction.
type BookingRepo struct{ DB *sql.DB }

// NewBookingRepo returns a BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{DB: db} }

// BookingItemPart is a booking line as returned to API clients.
type BookingItemPart struct {
	ID             uint64     `json:"id"`
	Title          string     `json:"title"`
	TravelDate     *time.Time `json:"travel_date,omitempty"`
	Adults         int        `json:"adults"`
	Children       int        `json:"children"`
	Quantity       int        `json:"quantity"`
	UnitPriceCents int64      `json:"unit_price_cents"`
	SubtotalCents  int64      `json:"subtotal_cents"`
}

// BookingDetail is a booking with its customer and ordered items
// joined in, as returned by Get for detail views.
type BookingDetail struct {
	ID               uint64              `json:"id"`
	BookingCode      string              `json:"booking_code"`
	QuoteID          *uint64             `json:"quote_id,omitempty"`
	Customer         CustomerPart        `json:"customer"`
	Status           model.BookingStatus `json:"status"`
	TotalAmountCents int64               `json:"total_amount_cents"`
	PaidAmountCents  int64               `json:"paid_amount_cents"`
	PendingCents     int64               `json:"pending_cents"`
	CurrencyCode     string              `json:"currency_code"`
	Notes            *string             `json:"notes,omitempty"`
	CreatedAt        time.Time           `json:"created_at"`
	Items            []BookingItemPart   `json:"items"`
}

// ConvertFromQuote materializes a booking from a quote inside one
// transaction: the quote row is locked, its convertibility checked,
// the booking and items inserted and the quote marked ACCEPTED. The
// unique index on bookings.quote_id makes the conversion idempotent
// under concurrent submits; the loser gets ErrQuoteAlreadyConverted.
// sql.ErrNoRows when the quote does not exist.
func (r *BookingRepo) ConvertFromQuote(ctx context.Context, quoteID uint64) (*model.Booking, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	q, err := loadQuoteForUpdateTx(ctx, tx, quoteID)
	if err != nil {
		return nil, err
	}
	if !sales.CanConvert(q.Status) {
		return nil, ErrQuoteNotConvertible
	}
	b, err := sales.DraftFromQuote(q)
	if err != nil {
		return nil, err
	}
	if err := insertBookingTx(ctx, tx, &b); err != nil {
		if isDuplicateKey(err) {
			// the quote_id unique index fired: another session won the race
			return nil, ErrQuoteAlreadyConverted
		}
		return nil, err
	}
	if err := insertBookingItemsTx(ctx, tx, b.ID, b.Items); err != nil {
		return nil, err
	}
	if _, err := tx.ExecContext(ctx,
		"UPDATE quotes SET status=?, updated_at=NOW() WHERE id=?",
		model.QuoteAccepted, q.ID); err != nil {
		return nil, err
	}
	if err := tx.QueryRowContext(ctx,
		"SELECT created_at, updated_at FROM bookings WHERE id=?",
		b.ID).Scan(&b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &b, nil
}

// Create inserts a directly-created booking (no source quote) and all
// of its items atomically.
func (r *BookingRepo) Create(ctx context.Context, b *model.Booking) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := insertBookingTx(ctx, tx, b); err != nil {
		return err
	}
	if err := insertBookingItemsTx(ctx, tx, b.ID, b.Items); err != nil {
		return err
	}
	if err := tx.QueryRowContext(ctx,
		"SELECT created_at, updated_at FROM bookings WHERE id=?",
		b.ID).Scan(&b.CreatedAt, &b.UpdatedAt); err != nil {
		return err
	}
	return tx.Commit()
}

func insertBookingTx(ctx context.Context, tx *sql.Tx, b *model.Booking) error {
	const ins = `INSERT INTO bookings (booking_code, quote_id, customer_id, status, total_amount_cents, paid_amount_cents, currency_code, notes)
	             VALUES (?,?,?,?,?,?,?,?)`
	for attempt := 0; ; attempt++ {
		b.BookingCode = utils.NewBookingCode(time.Now())
		res, err := tx.ExecContext(ctx, ins,
			b.BookingCode, b.QuoteID, b.CustomerID, b.Status, b.TotalAmountCents, b.PaidAmountCents, b.CurrencyCode, b.Notes)
		if err != nil {
			// retry only folio collisions; a quote_id duplicate must
			// surface to the caller as a conversion conflict
			if isDuplicateKey(err) && attempt == 0 && b.QuoteID == nil {
				continue
			}
			return err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		b.ID = uint64(id)
		return nil
	}
}

func insertBookingItemsTx(ctx context.Context, tx *sql.Tx, bookingID uint64, items []model.BookingItem) error {
	if len(items) == 0 {
		return nil
	}
	query := `INSERT INTO booking_items (booking_id, title, travel_date, adults, children, quantity, unit_price_cents, subtotal_cents, position) VALUES `
	args := make([]interface{}, 0, len(items)*9)
	for i, it := range items {
		if i > 0 {
			query += ","
		}
		query += "(?,?,?,?,?,?,?,?,?)"
		args = append(args, bookingID, it.Title, it.TravelDate, it.Adults, it.Children, it.Quantity, it.UnitPriceCents, it.SubtotalCents, it.Position)
	}
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}

// Get returns a booking with its customer and ordered items.
// sql.ErrNoRows when the booking does not exist.
func (r *BookingRepo) Get(ctx context.Context, id uint64) (*BookingDetail, error) {
	const q = `SELECT b.id, b.booking_code, b.quote_id, b.status, b.total_amount_cents, b.paid_amount_cents,
	                  b.currency_code, b.notes, b.created_at,
	                  c.id, c.full_name, c.email, c.phone
	           FROM bookings b
	           JOIN customers c ON c.id = b.customer_id
	           WHERE b.id = ?`
	var det BookingDetail
	var quoteID sql.NullInt64
	var notes sql.NullString
	err := r.DB.QueryRowContext(ctx, q, id).Scan(
		&det.ID, &det.BookingCode, &quoteID, &det.Status, &det.TotalAmountCents, &det.PaidAmountCents,
		&det.CurrencyCode, &notes, &det.CreatedAt,
		&det.Customer.ID, &det.Customer.FullName, &det.Customer.Email, &det.Customer.Phone,
	)
	if err != nil {
		return nil, err
	}
	if quoteID.Valid {
		v := uint64(quoteID.Int64)
		det.QuoteID = &v
	}
	if notes.Valid {
		n := notes.String
		det.Notes = &n
	}
	det.PendingCents = det.TotalAmountCents - det.PaidAmountCents
	det.Items, err = r.itemParts(ctx, det.ID)
	if err != nil {
		return nil, err
	}
	return &det, nil
}

func (r *BookingRepo) itemParts(ctx context.Context, bookingID uint64) ([]BookingItemPart, error) {
	const q = `SELECT id, title, travel_date, adults, children, quantity, unit_price_cents, subtotal_cents
	           FROM booking_items
	           WHERE booking_id = ?
	           ORDER BY position`
	rows, err := r.DB.QueryContext(ctx, q, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := make([]BookingItemPart, 0)
	for rows.Next() {
		var it BookingItemPart
		var travel sql.NullTime
		if err := rows.Scan(&it.ID, &it.Title, &travel, &it.Adults, &it.Children, &it.Quantity, &it.UnitPriceCents, &it.SubtotalCents); err != nil {
			return nil, err
		}
		if travel.Valid {
			t := travel.Time.UTC()
			it.TravelDate = &t
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// List returns all bookings ordered by creation time descending with
// the customer name joined in. Items are omitted for list views.
func (r *BookingRepo) List(ctx context.Context) ([]model.BookingSummary, error) {
	const q = `SELECT b.id, b.booking_code, c.full_name, b.status, b.total_amount_cents, b.paid_amount_cents, b.currency_code, b.created_at
	           FROM bookings b
	           JOIN customers c ON c.id = b.customer_id
	           ORDER BY b.created_at DESC, b.id DESC`
	rows, err := r.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.BookingSummary, 0)
	for rows.Next() {
		var s model.BookingSummary
		if err := rows.Scan(&s.ID, &s.BookingCode, &s.CustomerName, &s.Status, &s.TotalAmountCents, &s.PaidAmountCents, &s.CurrencyCode, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// SetStatus moves a booking to next if the transition table allows
// it, using the same locked compare-and-set shape as quotes.
func (r *BookingRepo) SetStatus(ctx context.Context, id uint64, next model.BookingStatus) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var current model.BookingStatus
	if err := tx.QueryRowContext(ctx,
		"SELECT status FROM bookings WHERE id=? FOR UPDATE", id).Scan(&current); err != nil {
		return err
	}
	if !current.CanTransition(next) {
		return model.ErrInvalidTransition
	}
	if _, err := tx.ExecContext(ctx,
		"UPDATE bookings SET status=?, updated_at=NOW() WHERE id=? AND status=?",
		next, id, current); err != nil {
		return err
	}
	return tx.Commit()
}
