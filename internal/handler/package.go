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

// PackageHandler serves the travel package catalog. Create and the
// unfiltered listing live behind auth; Browse is the public,
// cacheable surface.
type PackageHandler struct {
	Packages *repository.PackageRepo
}

func NewPackageHandler(r *repository.PackageRepo) *PackageHandler {
	if r == nil {
		panic("NewPackageHandler: nil dependency")
	}
	return &PackageHandler{Packages: r}
}

type packageReq struct {
	Title          string `json:"title"`
	Destination    string `json:"destination"`
	Description    string `json:"description"`
	BasePriceCents int64  `json:"base_price_cents"`
	CurrencyCode   string `json:"currency_code"`
	IsActive       *bool  `json:"is_active"`
}

// packageItem is the package shape returned to API clients.
type packageItem struct {
	ID             uint64 `json:"id"`
	Title          string `json:"title"`
	Destination    string `json:"destination"`
	Description    string `json:"description,omitempty"`
	BasePriceCents int64  `json:"base_price_cents"`
	CurrencyCode   string `json:"currency_code"`
	IsActive       bool   `json:"is_active"`
}

func toPackageItem(p model.TravelPackage) packageItem {
	return packageItem{
		ID:             p.ID,
		Title:          p.Title,
		Destination:    p.Destination,
		Description:    p.Description,
		BasePriceCents: p.BasePriceCents,
		CurrencyCode:   p.CurrencyCode,
		IsActive:       p.IsActive,
	}
}

func toPackageItems(ps []model.TravelPackage) []packageItem {
	out := make([]packageItem, len(ps))
	for i, p := range ps {
		out[i] = toPackageItem(p)
	}
	return out
}

// Create adds a catalog package. New packages default to active.
func (h *PackageHandler) Create(c echo.Context) error {
	var req packageReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Title = strings.TrimSpace(req.Title)
	req.Destination = strings.TrimSpace(req.Destination)
	req.CurrencyCode = strings.ToUpper(strings.TrimSpace(req.CurrencyCode))
	if req.Title == "" || req.Destination == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title/destination required"})
	}
	if req.BasePriceCents < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "base_price_cents cannot be negative"})
	}
	if len(req.CurrencyCode) != 3 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "currency_code must be a 3-letter ISO code"})
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	pkg := model.TravelPackage{
		Title:          req.Title,
		Destination:    req.Destination,
		Description:    strings.TrimSpace(req.Description),
		BasePriceCents: req.BasePriceCents,
		CurrencyCode:   req.CurrencyCode,
		IsActive:       active,
	}
	if err := h.Packages.Create(ctx, &pkg); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create package failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"item": toPackageItem(pkg)})
}

// List returns the catalog for operators, active and inactive alike.
// With ?q= it searches title and destination.
func (h *PackageHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	var (
		pkgs []model.TravelPackage
		err  error
	)
	if q := strings.TrimSpace(c.QueryParam("q")); q != "" {
		pkgs, err = h.Packages.Search(ctx, q, false)
	} else {
		pkgs, err = h.Packages.List(ctx)
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	items := toPackageItems(pkgs)
	return c.JSON(http.StatusOK, echo.Map{"items": items, "count": len(items)})
}

// Get returns one package by ID.
func (h *PackageHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	pkg, err := h.Packages.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "package not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": toPackageItem(pkg)})
}

// BrowseOne is the public package detail. Inactive packages are not
// visible here; only operators see them.
func (h *PackageHandler) BrowseOne(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	pkg, err := h.Packages.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "package not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !pkg.IsActive {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "package not found"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": toPackageItem(pkg)})
}

// Browse is the public catalog: active packages only, optionally
// filtered by ?q= on title and destination. Responses are cacheable.
func (h *PackageHandler) Browse(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	var (
		pkgs []model.TravelPackage
		err  error
	)
	if q := strings.TrimSpace(c.QueryParam("q")); q != "" {
		pkgs, err = h.Packages.Search(ctx, q, true)
	} else {
		pkgs, err = h.Packages.ListActive(ctx)
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	items := toPackageItems(pkgs)
	return c.JSON(http.StatusOK, echo.Map{"items": items, "count": len(items)})
}
