package entity

import "time"

type Doctor struct {
	ID         string    `db:"id"`
	Name       string    `db:"name"`
	Email      string    `db:"email"`
	Specialty  string    `db:"specialty"`
	Department string    `db:"department"`
	CreatedAt  time.Time `db:"created_at"`
}

type Slot struct {
	ID              string    `db:"id"`
	DoctorID        string    `db:"doctor_id"`
	SlotDate        string    `db:"slot_date"`
	SlotTime        string    `db:"slot_time"`
	DurationMinutes int       `db:"duration_minutes"`
	Location        string    `db:"location"`
	IsBooked        bool      `db:"is_booked"`
	CreatedAt       time.Time `db:"created_at"`
}

// SlotWithDoctor is the slot row joined with its doctor, as listed to
// callers.
type SlotWithDoctor struct {
	Slot
	DoctorName      string `db:"doctor_name"`
	DoctorSpecialty string `db:"doctor_specialty"`
}

type Appointment struct {
	ID              string    `db:"id"`
	BookingCode     string    `db:"booking_code"`
	SlotID          string    `db:"slot_id"`
	PatientName     string    `db:"patient_name"`
	PatientEmail    string    `db:"patient_email"`
	PatientPhone    string    `db:"patient_phone"`
	ReasonForVisit  string    `db:"reason_for_visit"`
	AppointmentType string    `db:"appointment_type"`
	Status          string    `db:"status"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

const (
	AppointmentStatusConfirmed = "confirmed"
	AppointmentStatusCancelled = "cancelled"
)
