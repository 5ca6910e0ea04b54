package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/viamundo/travel-sales-api/internal/model"
)

// PaymentRepo is the append-only payment ledger. Registering a
// payment and bumping the booking balance happen in one transaction,
// and the balance increment is a single guarded UPDATE so that two
// admin sessions racing on the same booking can never push paid past
// total. Payments have no edit or void path.
type PaymentRepo struct{ DB *sql.DB }

// NewPaymentRepo returns a PaymentRepo bound to the given database.
func NewPaymentRepo(db *sql.DB) *PaymentRepo { return &PaymentRepo{DB: db} }

// initialPaymentStatus decides whether money is already in hand.
// Provider-mediated channels start PENDING until confirmed; the rest
// are recorded as PAID on the spot.
func initialPaymentStatus(method model.PaymentMethod) model.PaymentStatus {
	switch method {
	case model.MethodCard, model.MethodMercadoPago:
		return model.PaymentPending
	}
	return model.PaymentPaid
}

// Register appends a payment to a booking's ledger and increments its
// paid balance atomically. The increment is compare-and-set against
// the total inside the UPDATE itself (no read-modify-write), so an
// amount that would overshoot leaves the balance untouched and fails
// with model.ErrOverpayment. sql.ErrNoRows when the booking does not
// exist. On success the updated booking and the stored payment are
// returned.
func (r *PaymentRepo) Register(ctx context.Context, bookingID uint64, amountCents int64, method model.PaymentMethod, providerRef, notes string) (*model.Booking, *model.Payment, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		`UPDATE bookings
		 SET paid_amount_cents = paid_amount_cents + ?, updated_at = NOW()
		 WHERE id = ? AND paid_amount_cents + ? <= total_amount_cents`,
		amountCents, bookingID, amountCents)
	if err != nil {
		return nil, nil, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, nil, err
	}
	if affected == 0 {
		// distinguish a missing booking from an overpayment
		var exists uint64
		if err := tx.QueryRowContext(ctx,
			"SELECT id FROM bookings WHERE id=?", bookingID).Scan(&exists); err != nil {
			return nil, nil, err // sql.ErrNoRows: booking absent
		}
		return nil, nil, model.ErrOverpayment
	}

	b, err := scanBookingTx(ctx, tx, bookingID)
	if err != nil {
		return nil, nil, err
	}

	p := &model.Payment{
		BookingID:    bookingID,
		AmountCents:  amountCents,
		CurrencyCode: b.CurrencyCode,
		Method:       method,
		Status:       initialPaymentStatus(method),
		Notes:        notes,
	}
	if providerRef != "" {
		p.ProviderReference = &providerRef
	}
	ins, err := tx.ExecContext(ctx,
		`INSERT INTO payments (booking_id, amount_cents, currency_code, method, status, provider_reference, notes)
		 VALUES (?,?,?,?,?,?,?)`,
		p.BookingID, p.AmountCents, p.CurrencyCode, p.Method, p.Status, p.ProviderReference, p.Notes)
	if err != nil {
		return nil, nil, err
	}
	id, err := ins.LastInsertId()
	if err != nil {
		return nil, nil, err
	}
	p.ID = uint64(id)
	if err := tx.QueryRowContext(ctx,
		"SELECT created_at FROM payments WHERE id=?", p.ID).Scan(&p.CreatedAt); err != nil {
		return nil, nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, nil, err
	}
	return b, p, nil
}

func scanBookingTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Booking, error) {
	var b model.Booking
	var quoteID sql.NullInt64
	var notes sql.NullString
	err := tx.QueryRowContext(ctx,
		`SELECT id, booking_code, quote_id, customer_id, status, total_amount_cents, paid_amount_cents, currency_code, notes, created_at, updated_at
		 FROM bookings WHERE id=?`, id).Scan(
		&b.ID, &b.BookingCode, &quoteID, &b.CustomerID, &b.Status, &b.TotalAmountCents, &b.PaidAmountCents, &b.CurrencyCode, &notes, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if quoteID.Valid {
		v := uint64(quoteID.Int64)
		b.QuoteID = &v
	}
	if notes.Valid {
		n := notes.String
		b.Notes = &n
	}
	return &b, nil
}

// PaymentPart is a ledger row as returned to API clients.
type PaymentPart struct {
	ID                uint64              `json:"id"`
	BookingID         uint64              `json:"booking_id"`
	AmountCents       int64               `json:"amount_cents"`
	CurrencyCode      string              `json:"currency_code"`
	Method            model.PaymentMethod `json:"method"`
	Status            model.PaymentStatus `json:"status"`
	ProviderReference *string             `json:"provider_reference,omitempty"`
	Notes             string              `json:"notes,omitempty"`
	CreatedAt         time.Time           `json:"created_at"`
}

// PaymentReportRow extends PaymentPart with booking and customer
// context for the global payments report.
type PaymentReportRow struct {
	PaymentPart
	BookingCode  string `json:"booking_code"`
	CustomerName string `json:"customer_name"`
}

// ListForBooking returns a booking's payments in chronological order
// (the ledger view). An empty slice when none exist; the booking's
// existence is the caller's concern.
func (r *PaymentRepo) ListForBooking(ctx context.Context, bookingID uint64) ([]PaymentPart, error) {
	const q = `SELECT id, booking_id, amount_cents, currency_code, method, status, provider_reference, notes, created_at
	           FROM payments
	           WHERE booking_id = ?
	           ORDER BY created_at ASC, id ASC`
	rows, err := r.DB.QueryContext(ctx, q, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]PaymentPart, 0)
	for rows.Next() {
		var p PaymentPart
		var ref sql.NullString
		if err := rows.Scan(&p.ID, &p.BookingID, &p.AmountCents, &p.CurrencyCode, &p.Method, &p.Status, &ref, &p.Notes, &p.CreatedAt); err != nil {
			return nil, err
		}
		if ref.Valid {
			v := ref.String
			p.ProviderReference = &v
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// ListAll returns every payment joined with its booking code and
// customer name for the global payments report, newest first.
// Read-only; no mutation.
func (r *PaymentRepo) ListAll(ctx context.Context) ([]PaymentReportRow, error) {
	const q = `SELECT p.id, p.booking_id, p.amount_cents, p.currency_code, p.method, p.status, p.provider_reference, p.notes, p.created_at,
	                  b.booking_code, c.full_name
	           FROM payments p
	           JOIN bookings b ON b.id = p.booking_id
	           JOIN customers c ON c.id = b.customer_id
	           ORDER BY p.created_at DESC, p.id DESC`
	rows, err := r.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]PaymentReportRow, 0)
	for rows.Next() {
		var p PaymentReportRow
		var ref sql.NullString
		if err := rows.Scan(&p.ID, &p.BookingID, &p.AmountCents, &p.CurrencyCode, &p.Method, &p.Status, &ref, &p.Notes, &p.CreatedAt, &p.BookingCode, &p.CustomerName); err != nil {
			return nil, err
		}
		if ref.Valid {
			v := ref.String
			p.ProviderReference = &v
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
