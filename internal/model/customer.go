package model

import "time"

// Customer is a person the agency sells to. Quotes and bookings
// reference customers by foreign key and never own them; deleting
// customers is not part of the sales flow.
//
// Fields:
//  ID        – primary key identifier.
//  FullName  – display name used on folios and reports.
//  Email     – contact email (unique).
//  Phone     – contact phone number.
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Customer struct {
	ID        uint64    // customers.id
	FullName  string    // customers.full_name
	Email     string    // customers.email
	Phone     string    // customers.phone
	CreatedAt time.Time // customers.created_at
	UpdatedAt time.Time // customers.updated_at
}
