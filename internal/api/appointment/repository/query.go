package appointmentRepository

const (
	queryGetAllDoctors = `
		SELECT
			id, name, email, specialty, department, created_at
		FROM doctors
		ORDER BY name
	`

	queryGetDoctorsBySpecialty = `
		SELECT
			id, name, email, specialty, department, created_at
		FROM doctors
		WHERE LOWER(specialty) = LOWER(:specialty)
		ORDER BY name
	`

	queryCreateDoctor = `
		INSERT INTO doctors (
			id, name, email, specialty, department, created_at
		) VALUES (
			:id, :name, :email, :specialty, :department, :created_at
		)
	`

	queryGetAvailableSlots = `
		SELECT
			s.id, s.doctor_id, s.slot_date, s.slot_time,
			s.duration_minutes, s.location, s.is_booked, s.created_at,
			d.name AS doctor_name, d.specialty AS doctor_specialty
		FROM available_slots s
		JOIN doctors d ON s.doctor_id = d.id
		WHERE s.is_booked = FALSE AND (:doctor_id = '' OR s.doctor_id = :doctor_id)
		ORDER BY s.slot_date, s.slot_time
	`

	queryGetSlotByID = `
		SELECT
			s.id, s.doctor_id, s.slot_date, s.slot_time,
			s.duration_minutes, s.location, s.is_booked, s.created_at,
			d.name AS doctor_name, d.specialty AS doctor_specialty
		FROM available_slots s
		JOIN doctors d ON s.doctor_id = d.id
		WHERE s.id = :id
	`

	queryMarkSlotBooked = `
		UPDATE available_slots
		SET is_booked = TRUE
		WHERE id = :id
	`

	queryCreateSlot = `
		INSERT INTO available_slots (
			id, doctor_id, slot_date, slot_time,
			duration_minutes, location, is_booked, created_at
		) VALUES (
			:id, :doctor_id, :slot_date, :slot_time,
			:duration_minutes, :location, :is_booked, :created_at
		)
	`

	queryCreateAppointment = `
		INSERT INTO appointments (
			id, booking_code, slot_id, patient_name, patient_email,
			patient_phone, reason_for_visit, appointment_type, status,
			created_at, updated_at
		) VALUES (
			:id, :booking_code, :slot_id, :patient_name, :patient_email,
			:patient_phone, :reason_for_visit, :appointment_type, :status,
			:created_at, :updated_at
		)
	`

	queryGetAppointmentByBookingCode = `
		SELECT
			id, booking_code, slot_id, patient_name, patient_email,
			patient_phone, reason_for_visit, appointment_type, status,
			created_at, updated_at
		FROM appointments
		WHERE booking_code = :booking_code
	`
)
