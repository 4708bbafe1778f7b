package sqlite

import (
	"fmt"
	"os"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS doctors (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	email      TEXT NOT NULL,
	specialty  TEXT,
	department TEXT,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS available_slots (
	id               TEXT PRIMARY KEY,
	doctor_id        TEXT NOT NULL REFERENCES doctors(id),
	slot_date        TEXT NOT NULL,
	slot_time        TEXT NOT NULL,
	duration_minutes INTEGER NOT NULL DEFAULT 30,
	location         TEXT NOT NULL DEFAULT '',
	is_booked        BOOLEAN NOT NULL DEFAULT FALSE,
	created_at       TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS appointments (
	id               TEXT PRIMARY KEY,
	booking_code     TEXT NOT NULL UNIQUE,
	slot_id          TEXT NOT NULL REFERENCES available_slots(id),
	patient_name     TEXT NOT NULL,
	patient_email    TEXT NOT NULL,
	patient_phone    TEXT NOT NULL,
	reason_for_visit TEXT NOT NULL,
	appointment_type TEXT NOT NULL,
	status           TEXT NOT NULL,
	created_at       TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at       TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_slots_doctor_date ON available_slots(doctor_id, slot_date);
`

func New() (*sqlx.DB, error) {
	path := os.Getenv("SQLITE_PATH")
	if path == "" {
		path = "health_assistant.db"
	}

	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	// modernc sqlite handles a single writer; keep the pool small.
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(time.Hour)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to bootstrap schema: %w", err)
	}

	return db, nil
}

type seedDoctor struct {
	ID         string
	Name       string
	Email      string
	Specialty  string
	Department string
}

var seedDoctors = []seedDoctor{
	{"doc-card-01", "Dr. Amara Sharma", "a.sharma@hospital.example", "cardiology", "Cardiology"},
	{"doc-card-02", "Dr. Rohan Iyer", "r.iyer@hospital.example", "cardiology", "Cardiology"},
	{"doc-neur-01", "Dr. Sana Verma", "s.verma@hospital.example", "neurology", "Neurology"},
	{"doc-pulm-01", "Dr. Maya Mehta", "m.mehta@hospital.example", "pulmonology", "Pulmonology"},
	{"doc-orth-01", "Dr. Arjun Rao", "a.rao@hospital.example", "orthopedics", "Orthopedics"},
	{"doc-derm-01", "Dr. Lena Kapoor", "l.kapoor@hospital.example", "dermatology", "Dermatology"},
	{"doc-gast-01", "Dr. Nikhil Joshi", "n.joshi@hospital.example", "gastroenterology", "Gastroenterology"},
	{"doc-endo-01", "Dr. Priya Nair", "p.nair@hospital.example", "endocrinology", "Endocrinology"},
	{"doc-genm-01", "Dr. Omar Haddad", "o.haddad@hospital.example", "general medicine", "General Medicine"},
	{"doc-genm-02", "Dr. Elena Petrova", "e.petrova@hospital.example", "general medicine", "General Medicine"},
}

var seedSlotTimes = []string{"09:00", "11:00", "14:00", "16:00"}

// Seed populates the doctor roster and a rolling week of open slots when
// the doctors table is empty. A non-empty table is left untouched, so
// restarts and pre-provisioned databases keep their data.
func Seed(db *sqlx.DB) error {
	var count int
	if err := db.Get(&count, "SELECT COUNT(*) FROM doctors"); err != nil {
		return fmt.Errorf("failed to inspect doctors table: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer tx.Rollback()

	for _, doctor := range seedDoctors {
		if _, err := tx.Exec(
			`INSERT INTO doctors (id, name, email, specialty, department) VALUES (?, ?, ?, ?, ?)`,
			doctor.ID, doctor.Name, doctor.Email, doctor.Specialty, doctor.Department,
		); err != nil {
			return fmt.Errorf("failed to seed doctor %s: %w", doctor.ID, err)
		}

		for day := 1; day <= 5; day++ {
			slotDate := time.Now().AddDate(0, 0, day).Format("2006-01-02")
			for i, slotTime := range seedSlotTimes {
				slotID := fmt.Sprintf("slot-%s-d%d-%d", doctor.ID, day, i)
				if _, err := tx.Exec(
					`INSERT INTO available_slots (id, doctor_id, slot_date, slot_time, duration_minutes, location)
					 VALUES (?, ?, ?, ?, 30, ?)`,
					slotID, doctor.ID, slotDate, slotTime, doctor.Department+" wing",
				); err != nil {
					return fmt.Errorf("failed to seed slot %s: %w", slotID, err)
				}
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seed transaction: %w", err)
	}

	return nil
}
