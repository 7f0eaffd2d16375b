package storage

import (
	"database/sql"
	"fmt"
)

// InitDB initializes the database schema.
// PRE: db is a valid database connection
// POST: All tables are created, WAL mode enabled
func InitDB(db *sql.DB) error {
	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	// Enable foreign key enforcement
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	// Create tables
	schema := `
	CREATE TABLE IF NOT EXISTS user (
		id TEXT PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL DEFAULT '',
		role TEXT NOT NULL DEFAULT 'staff',
		created_at TEXT NOT NULL,
		failed_logins INTEGER NOT NULL DEFAULT 0,
		locked_until TEXT
	);

	CREATE TABLE IF NOT EXISTS member (
		id TEXT PRIMARY KEY,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		phone TEXT,
		date_of_birth TEXT,
		join_date TEXT NOT NULL,
		membership_type TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'Active'
	);

	CREATE TABLE IF NOT EXISTS fitness_class (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT,
		instructor TEXT NOT NULL,
		schedule TEXT NOT NULL,
		duration_minutes INTEGER NOT NULL,
		capacity INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS class_registration (
		id TEXT PRIMARY KEY,
		member_id TEXT NOT NULL,
		class_id TEXT NOT NULL,
		registration_date TEXT NOT NULL,
		FOREIGN KEY (member_id) REFERENCES member(id),
		FOREIGN KEY (class_id) REFERENCES fitness_class(id)
	);

	CREATE TABLE IF NOT EXISTS payment (
		id TEXT PRIMARY KEY,
		member_id TEXT NOT NULL,
		amount_cents INTEGER NOT NULL,
		payment_date TEXT NOT NULL,
		method TEXT,
		status TEXT NOT NULL DEFAULT 'Completed',
		notes TEXT,
		FOREIGN KEY (member_id) REFERENCES member(id)
	);

	CREATE TABLE IF NOT EXISTS fee_reminder (
		id TEXT PRIMARY KEY,
		member_id TEXT NOT NULL,
		reminder_date TEXT NOT NULL,
		amount_cents INTEGER NOT NULL,
		status TEXT NOT NULL DEFAULT 'Pending',
		notes TEXT,
		FOREIGN KEY (member_id) REFERENCES member(id)
	);

	CREATE TABLE IF NOT EXISTS attendance_device (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		device_type TEXT NOT NULL,
		location TEXT,
		is_active INTEGER NOT NULL DEFAULT 1,
		last_sync TEXT
	);

	CREATE TABLE IF NOT EXISTS attendance_record (
		id TEXT PRIMARY KEY,
		member_id TEXT NOT NULL,
		device_id TEXT,
		check_in TEXT NOT NULL,
		check_out TEXT,
		type TEXT NOT NULL DEFAULT 'biometric',
		notes TEXT,
		FOREIGN KEY (member_id) REFERENCES member(id),
		FOREIGN KEY (device_id) REFERENCES attendance_device(id)
	);

	CREATE INDEX IF NOT EXISTS idx_fee_reminder_status_date ON fee_reminder(status, reminder_date);
	CREATE INDEX IF NOT EXISTS idx_attendance_check_in ON attendance_record(check_in);
	CREATE INDEX IF NOT EXISTS idx_registration_member_class ON class_registration(member_id, class_id);
	`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}
