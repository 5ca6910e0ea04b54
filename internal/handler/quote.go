package handler

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/viamundo/travel-sales-api/internal/model"
	"github.com/viamundo/travel-sales-api/internal/queue"
	"github.com/viamundo/travel-sales-api/internal/repository"
	"github.com/viamundo/travel-sales-api/internal/sales"
	queue_publisher "github.com/viamundo/travel-sales-api/internal/service"
)

// QuoteHandler bundles dependencies for quote endpoints.
type QuoteHandler struct {
	Quotes    *repository.QuoteRepo
	Customers *repository.CustomerRepo
	Packages  *repository.PackageRepo
}

func NewQuoteHandler(q *repository.QuoteRepo, c *repository.CustomerRepo, p *repository.PackageRepo) *QuoteHandler {
	if q == nil || c == nil || p == nil {
		panic("NewQuoteHandler: nil dependency")
	}
	return &QuoteHandler{Quotes: q, Customers: c, Packages: p}
}

// ----- DTOs -----

type quoteItemReq struct {
	PackageID      *uint64 `json:"package_id"`
	Title          string  `json:"title"`
	UnitPriceCents int64   `json:"unit_price_cents"`
	Quantity       int     `json:"quantity"`
	Adults         int     `json:"adults"`
	Children       int     `json:"children"`
	TravelDate     string  `json:"travel_date"` // "2006-01-02" or RFC 3339
}

type createQuoteReq struct {
	CustomerID   uint64         `json:"customer_id"`
	CurrencyCode string         `json:"currency_code"`
	ValidityDays int            `json:"validity_days"`
	Notes        string         `json:"notes"`
	Items        []quoteItemReq `json:"items"`
}

type setStatusReq struct {
	Status string `json:"status"`
}

// itemsFromReq turns request lines into domain items, resolving
// package references. A referenced package that does not exist is a
// validation error, not a 404: the quote itself is what the client is
// addressing. Shared with the direct booking path.
func itemsFromReq(ctx context.Context, packages *repository.PackageRepo, in []quoteItemReq) ([]model.QuoteItem, error) {
	items := make([]model.QuoteItem, 0, len(in))
	for _, ir := range in {
		travelDate, err := parseDate(ir.TravelDate)
		if err != nil {
			return nil, errors.New("travel_date must be YYYY-MM-DD")
		}
		var pkg *model.TravelPackage
		if ir.PackageID != nil && *ir.PackageID != 0 {
			p, err := packages.GetByID(ctx, *ir.PackageID)
			if err != nil {
				if err == sql.ErrNoRows {
					return nil, errors.New("referenced package does not exist")
				}
				return nil, err
			}
			pkg = &p
		}
		it := sales.NewItemFromPackage(pkg, ir.UnitPriceCents, ir.Adults, ir.Children, ir.Quantity, travelDate)
		if t := strings.TrimSpace(ir.Title); t != "" {
			it.Title = t
		}
		items = append(items, it)
	}
	return items, nil
}

// Create assembles and persists a new DRAFT quote.
func (h *QuoteHandler) Create(c echo.Context) error {
	var req createQuoteReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	cust, err := h.Customers.GetByID(ctx, req.CustomerID)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "customer not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	items, err := itemsFromReq(ctx, h.Packages, req.Items)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	qm, err := sales.BuildQuote(req.CustomerID, req.CurrencyCode, items, req.ValidityDays, req.Notes, time.Now())
	if err != nil {
		if errors.Is(err, sales.ErrValidation) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "build quote failed"})
	}

	if err := h.Quotes.Create(ctx, &qm); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create quote failed"})
	}

	// Event delivery is best effort. The quote is committed either way.
	if err := queue_publisher.PublishQuoteCreated(ctx, queue.QuoteCreatedEvent{
		QuoteID:          qm.ID,
		QuoteNumber:      qm.QuoteNumber,
		CustomerID:       cust.ID,
		CustomerName:     cust.FullName,
		TotalAmountCents: qm.TotalAmountCents,
		CurrencyCode:     qm.CurrencyCode,
		ItemCount:        len(qm.Items),
		CreatedAt:        qm.CreatedAt.UTC().Format(time.RFC3339),
	}); err != nil {
		log.Printf("publish quote.created: %v", err)
	}

	detail, err := h.Quotes.Get(ctx, qm.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load quote failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"item": detail})
}

// List returns all quotes, newest first.
func (h *QuoteHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Quotes.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items, "count": len(items)})
}

// Get returns one quote with customer and items joined in.
func (h *QuoteHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	detail, err := h.Quotes.Get(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "quote not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": detail})
}

// SetStatus moves a quote along its lifecycle. Illegal transitions
// come back as 409 so clients can distinguish them from bad input.
func (h *QuoteHandler) SetStatus(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req setStatusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	next, err := model.ParseQuoteStatus(req.Status)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Quotes.SetStatus(ctx, id, next); err != nil {
		switch {
		case err == sql.ErrNoRows:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "quote not found"})
		case errors.Is(err, model.ErrInvalidTransition):
			return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
		case err == repository.ErrConflict:
			return c.JSON(http.StatusConflict, echo.Map{"error": "quote changed concurrently, retry"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
		}
	}

	detail, err := h.Quotes.Get(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load quote failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": detail})
}
