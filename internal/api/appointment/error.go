package appointment

import "HealthAssistant/pkg/response"

var (
	ErrSlotNotFound      = response.NewError(404, "appointment slot not found")
	ErrSlotAlreadyBooked = response.NewError(409, "appointment slot is already booked")
	ErrDoctorNotFound    = response.NewError(404, "doctor not found")
	ErrBookingNotFound   = response.NewError(404, "booking not found")
	ErrBookingFailed     = response.NewError(500, "failed to book appointment")
)
