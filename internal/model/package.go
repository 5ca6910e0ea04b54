package model

import "time"

// TravelPackage is a catalog entry the agency offers: a destination
// with a base price used to pre-fill quote line items. Packages are
// browsable publicly; only active packages appear in search results.
//
// Fields:
//  ID              – primary key identifier.
//  Title           – short name shown in listings.
//  Destination     – destination city or region.
//  Description     – longer marketing text.
//  BasePriceCents  – per-person base price in cents.
//  CurrencyCode    – ISO 4217 code (e.g. MXN, USD).
//  IsActive        – whether the package is currently offered.
//  CreatedAt       – creation timestamp.
//  UpdatedAt       – last update timestamp.
type TravelPackage struct {
	ID             uint64    // packages.id
	Title          string    // packages.title
	Destination    string    // packages.destination
	Description    string    // packages.description
	BasePriceCents int64     // packages.base_price_cents
	CurrencyCode   string    // packages.currency_code
	IsActive       bool      // packages.is_active
	CreatedAt      time.Time // packages.created_at
	UpdatedAt      time.Time // packages.updated_at
}
