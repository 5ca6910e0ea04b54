package database

import (
	"context"
	"database/sql"
	"fmt"
)

// schemaStatements creates the sales schema when it does not exist
// yet. Statement order respects foreign key dependencies. The unique
// index on bookings.quote_id is what enforces at-most-one booking per
// quote at the storage level.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		email         VARCHAR(255) NOT NULL,
		full_name     VARCHAR(255) NOT NULL DEFAULT '',
		password_hash VARCHAR(255) NOT NULL,
		role          ENUM('ADMIN','AGENT') NOT NULL DEFAULT 'AGENT',
		is_active     BOOLEAN NOT NULL DEFAULT TRUE,
		created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		UNIQUE KEY uq_users_email (email)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS refresh_tokens (
		id         BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		user_id    BIGINT UNSIGNED NOT NULL,
		token_hash CHAR(64) NOT NULL,
		expires_at DATETIME NOT NULL,
		revoked_at DATETIME NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		KEY idx_refresh_tokens_hash (token_hash),
		CONSTRAINT fk_refresh_tokens_user FOREIGN KEY (user_id) REFERENCES users(id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS customers (
		id         BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		full_name  VARCHAR(255) NOT NULL,
		email      VARCHAR(255) NOT NULL,
		phone      VARCHAR(64) NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		UNIQUE KEY uq_customers_email (email)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS packages (
		id               BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		title            VARCHAR(255) NOT NULL,
		destination      VARCHAR(255) NOT NULL,
		description      TEXT NOT NULL,
		base_price_cents BIGINT NOT NULL DEFAULT 0,
		currency_code    CHAR(3) NOT NULL,
		is_active        BOOLEAN NOT NULL DEFAULT TRUE,
		created_at       DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at       DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		KEY idx_packages_active (is_active)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS quotes (
		id                 BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		quote_number       VARCHAR(32) NOT NULL,
		customer_id        BIGINT UNSIGNED NOT NULL,
		status             ENUM('DRAFT','SENT','ACCEPTED','REJECTED','EXPIRED') NOT NULL DEFAULT 'DRAFT',
		total_amount_cents BIGINT NOT NULL,
		currency_code      CHAR(3) NOT NULL,
		valid_until        DATETIME NULL,
		notes              TEXT NULL,
		created_at         DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at         DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		UNIQUE KEY uq_quotes_number (quote_number),
		KEY idx_quotes_created (created_at),
		CONSTRAINT fk_quotes_customer FOREIGN KEY (customer_id) REFERENCES customers(id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS quote_items (
		id               BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		quote_id         BIGINT UNSIGNED NOT NULL,
		package_id       BIGINT UNSIGNED NULL,
		title            VARCHAR(255) NOT NULL,
		unit_price_cents BIGINT NOT NULL,
		quantity         INT NOT NULL,
		adults           INT NOT NULL,
		children         INT NOT NULL,
		travel_date      DATETIME NULL,
		subtotal_cents   BIGINT NOT NULL,
		position         INT NOT NULL DEFAULT 0,
		KEY idx_quote_items_quote (quote_id),
		CONSTRAINT fk_quote_items_quote FOREIGN KEY (quote_id) REFERENCES quotes(id),
		CONSTRAINT fk_quote_items_package FOREIGN KEY (package_id) REFERENCES packages(id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS bookings (
		id                 BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		booking_code       VARCHAR(32) NOT NULL,
		quote_id           BIGINT UNSIGNED NULL,
		customer_id        BIGINT UNSIGNED NOT NULL,
		status             ENUM('PENDING','CONFIRMED','CANCELLED','COMPLETED','ON_HOLD') NOT NULL DEFAULT 'PENDING',
		total_amount_cents BIGINT NOT NULL,
		paid_amount_cents  BIGINT NOT NULL DEFAULT 0,
		currency_code      CHAR(3) NOT NULL,
		notes              TEXT NULL,
		created_at         DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at         DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		UNIQUE KEY uq_bookings_code (booking_code),
		UNIQUE KEY uq_bookings_quote (quote_id),
		KEY idx_bookings_created (created_at),
		CONSTRAINT fk_bookings_quote FOREIGN KEY (quote_id) REFERENCES quotes(id),
		CONSTRAINT fk_bookings_customer FOREIGN KEY (customer_id) REFERENCES customers(id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS booking_items (
		id               BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		booking_id       BIGINT UNSIGNED NOT NULL,
		title            VARCHAR(255) NOT NULL,
		travel_date      DATETIME NULL,
		adults           INT NOT NULL,
		children         INT NOT NULL,
		quantity         INT NOT NULL,
		unit_price_cents BIGINT NOT NULL,
		subtotal_cents   BIGINT NOT NULL,
		position         INT NOT NULL DEFAULT 0,
		KEY idx_booking_items_booking (booking_id),
		CONSTRAINT fk_booking_items_booking FOREIGN KEY (booking_id) REFERENCES bookings(id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS payments (
		id                 BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		booking_id         BIGINT UNSIGNED NOT NULL,
		amount_cents       BIGINT NOT NULL,
		currency_code      CHAR(3) NOT NULL,
		method             ENUM('TRANSFER','CARD','CASH','BANK_DEPOSIT','MERCADO_PAGO') NOT NULL,
		status             ENUM('PENDING','PAID') NOT NULL DEFAULT 'PAID',
		provider_reference VARCHAR(255) NULL,
		notes              VARCHAR(512) NOT NULL DEFAULT '',
		created_at         DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		KEY idx_payments_booking (booking_id),
		KEY idx_payments_created (created_at),
		CONSTRAINT fk_payments_booking FOREIGN KEY (booking_id) REFERENCES bookings(id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// EnsureSchema applies the schema idempotently at startup.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
