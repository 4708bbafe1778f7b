package appointment

type DoctorResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Specialty  string `json:"specialty,omitempty"`
	Department string `json:"department,omitempty"`
}

type SlotResponse struct {
	ID              string `json:"id"`
	DoctorID        string `json:"doctor_id"`
	DoctorName      string `json:"doctor_name"`
	DoctorSpecialty string `json:"doctor_specialty,omitempty"`
	SlotDate        string `json:"slot_date"`
	SlotTime        string `json:"slot_time"`
	DurationMinutes int    `json:"duration_minutes"`
	Location        string `json:"location"`
}

type BookingRequest struct {
	SlotID          string `json:"slot_id" validate:"required"`
	PatientName     string `json:"patient_name" validate:"required,min=2,max=100"`
	PatientEmail    string `json:"patient_email" validate:"required,email"`
	PatientPhone    string `json:"patient_phone" validate:"required,min=6,max=20"`
	ReasonForVisit  string `json:"reason_for_visit" validate:"required,min=3,max=500"`
	AppointmentType string `json:"appointment_type,omitempty" validate:"omitempty,oneof=in-person telemedicine"`
}

type AppointmentResponse struct {
	BookingID       string `json:"booking_id"`
	SlotID          string `json:"slot_id"`
	PatientName     string `json:"patient_name"`
	ReasonForVisit  string `json:"reason_for_visit"`
	AppointmentType string `json:"appointment_type"`
	Status          string `json:"status"`
}

type BookingResponse struct {
	BookingID          string                 `json:"booking_id"`
	Status             string                 `json:"status"`
	Message            string                 `json:"message"`
	AppointmentDetails map[string]interface{} `json:"appointment_details"`
}
