package handler

import (
	"context"
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/viamundo/travel-sales-api/internal/model"
	"github.com/viamundo/travel-sales-api/internal/repository"
)

// CustomerHandler bundles dependencies for customer endpoints.
type CustomerHandler struct {
	Customers *repository.CustomerRepo
}

func NewCustomerHandler(r *repository.CustomerRepo) *CustomerHandler {
	if r == nil {
		panic("NewCustomerHandler: nil dependency")
	}
	return &CustomerHandler{Customers: r}
}

type customerReq struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

// customerItem is the customer shape returned to API clients.
type customerItem struct {
	ID        uint64    `json:"id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}

func toCustomerItem(c model.Customer) customerItem {
	return customerItem{ID: c.ID, FullName: c.FullName, Email: c.Email, Phone: c.Phone, CreatedAt: c.CreatedAt}
}

func toCustomerItems(cs []model.Customer) []customerItem {
	out := make([]customerItem, len(cs))
	for i, c := range cs {
		out[i] = toCustomerItem(c)
	}
	return out
}

// Create registers a new customer. Email is unique.
func (h *CustomerHandler) Create(c echo.Context) error {
	var req customerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.FullName = strings.TrimSpace(req.FullName)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Phone = strings.TrimSpace(req.Phone)
	if req.FullName == "" || req.Email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "full_name/email required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	cust := model.Customer{FullName: req.FullName, Email: req.Email, Phone: req.Phone}
	if err := h.Customers.Create(ctx, &cust); err != nil {
		if err == repository.ErrConflict {
			return c.JSON(http.StatusConflict, echo.Map{"error": "email already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create customer failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"item": toCustomerItem(cust)})
}

// List returns all customers ordered by name. With a non-empty ?q= it
// searches name, email and phone instead.
func (h *CustomerHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	var (
		customers []model.Customer
		err       error
	)
	if q := strings.TrimSpace(c.QueryParam("q")); q != "" {
		customers, err = h.Customers.Search(ctx, q)
	} else {
		customers, err = h.Customers.List(ctx)
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	items := toCustomerItems(customers)
	return c.JSON(http.StatusOK, echo.Map{"items": items, "count": len(items)})
}

// Get returns one customer by ID.
func (h *CustomerHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	cust, err := h.Customers.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "customer not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": toCustomerItem(cust)})
}
