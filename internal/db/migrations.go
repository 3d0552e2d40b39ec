package db

import (
	"fmt"

	"gorm.io/gorm"
)

var migrationStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	`CREATE TABLE IF NOT EXISTS clients (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255) NOT NULL DEFAULT '',
		phone VARCHAR(64) NOT NULL DEFAULT '',
		address TEXT NOT NULL DEFAULT '',
		company VARCHAR(255) NOT NULL DEFAULT '',
		notes TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_clients_name ON clients (LOWER(name));`,
	`CREATE TABLE IF NOT EXISTS items (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		name VARCHAR(255) NOT NULL,
		category VARCHAR(32) NOT NULL,
		unit VARCHAR(32) NOT NULL DEFAULT 'pcs',
		unit_price NUMERIC(18,2) NOT NULL DEFAULT 0,
		volume_m3 NUMERIC(18,3) NOT NULL DEFAULT 0,
		description TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_items_name ON items (LOWER(name));`,
	`CREATE INDEX IF NOT EXISTS idx_items_category ON items (category);`,
	`CREATE TABLE IF NOT EXISTS bookings (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		client_id UUID NOT NULL REFERENCES clients(id) ON DELETE RESTRICT,
		quote_id UUID,
		move_date TIMESTAMPTZ NOT NULL,
		pickup_address TEXT NOT NULL,
		delivery_address TEXT NOT NULL,
		status VARCHAR(32) NOT NULL DEFAULT 'pending',
		items JSONB NOT NULL DEFAULT '[]',
		notes TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_bookings_client_id ON bookings (client_id);`,
	`CREATE INDEX IF NOT EXISTS idx_bookings_move_date ON bookings (move_date);`,
	`CREATE TABLE IF NOT EXISTS quotes (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		quote_number VARCHAR(32) NOT NULL,
		client_id UUID NOT NULL REFERENCES clients(id) ON DELETE RESTRICT,
		items JSONB NOT NULL DEFAULT '[]',
		additional_charges JSONB NOT NULL DEFAULT '[]',
		discounts JSONB NOT NULL DEFAULT '[]',
		subtotal NUMERIC(18,2) NOT NULL DEFAULT 0,
		total_discount NUMERIC(18,2) NOT NULL DEFAULT 0,
		total_additional_charges NUMERIC(18,2) NOT NULL DEFAULT 0,
		vat_percentage NUMERIC(5,2) NOT NULL DEFAULT 15,
		vat_amount NUMERIC(18,2) NOT NULL DEFAULT 0,
		grand_total NUMERIC(18,2) NOT NULL DEFAULT 0,
		status VARCHAR(32) NOT NULL DEFAULT 'draft',
		valid_until TIMESTAMPTZ,
		move_date TIMESTAMPTZ,
		pickup_address TEXT NOT NULL DEFAULT '',
		delivery_address TEXT NOT NULL DEFAULT '',
		notes TEXT NOT NULL DEFAULT '',
		terms_and_conditions TEXT NOT NULL DEFAULT '',
		converted_booking_id UUID REFERENCES bookings(id) ON DELETE SET NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_quotes_quote_number ON quotes (quote_number);`,
	`CREATE INDEX IF NOT EXISTS idx_quotes_client_id ON quotes (client_id);`,
	`CREATE INDEX IF NOT EXISTS idx_quotes_status ON quotes (status);`,
	`CREATE TABLE IF NOT EXISTS invoices (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		invoice_number VARCHAR(32) NOT NULL,
		booking_id UUID NOT NULL REFERENCES bookings(id) ON DELETE RESTRICT,
		client_id UUID NOT NULL REFERENCES clients(id) ON DELETE RESTRICT,
		items JSONB NOT NULL DEFAULT '[]',
		extra_charges JSONB NOT NULL DEFAULT '[]',
		subtotal NUMERIC(18,2) NOT NULL DEFAULT 0,
		total_additional_charges NUMERIC(18,2) NOT NULL DEFAULT 0,
		vat_percentage NUMERIC(5,2) NOT NULL DEFAULT 15,
		vat_amount NUMERIC(18,2) NOT NULL DEFAULT 0,
		grand_total NUMERIC(18,2) NOT NULL DEFAULT 0,
		status VARCHAR(32) NOT NULL DEFAULT 'draft',
		payment_status VARCHAR(32) NOT NULL DEFAULT 'unpaid',
		amount_paid NUMERIC(18,2) NOT NULL DEFAULT 0,
		signature JSONB,
		delivery_confirmed BOOLEAN NOT NULL DEFAULT FALSE,
		delivery_confirmed_at TIMESTAMPTZ,
		issue_date TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		due_date TIMESTAMPTZ,
		notes TEXT NOT NULL DEFAULT '',
		terms_and_conditions TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_invoices_invoice_number ON invoices (invoice_number);`,
	`CREATE INDEX IF NOT EXISTS idx_invoices_booking_id ON invoices (booking_id);`,
	`CREATE INDEX IF NOT EXISTS idx_invoices_status ON invoices (status);`,
	`CREATE INDEX IF NOT EXISTS idx_invoices_payment_status ON invoices (payment_status);`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
