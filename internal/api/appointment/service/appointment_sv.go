package appointmentService

import (
	"HealthAssistant/internal/api/appointment"
	appointmentRepository "HealthAssistant/internal/api/appointment/repository"
	"HealthAssistant/internal/entity"
	contextPkg "HealthAssistant/pkg/context"
	"HealthAssistant/pkg/smtp"
	"HealthAssistant/pkg/utils"
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

type IAppointmentService interface {
	GetDoctors(ctx context.Context, specialty string) ([]appointment.DoctorResponse, error)
	GetAvailableSlots(ctx context.Context, doctorID string) ([]appointment.SlotResponse, error)
	Book(ctx context.Context, req appointment.BookingRequest) (*appointment.BookingResponse, error)
	GetBooking(ctx context.Context, bookingCode string) (*appointment.AppointmentResponse, error)
}

type appointmentService struct {
	log             *logrus.Logger
	appointmentRepo appointmentRepository.Repository
	smtpMailer      smtp.ItfSmtp
	utils           utils.IUtils
}

func New(
	log *logrus.Logger,
	repo appointmentRepository.Repository,
	smtpMailer smtp.ItfSmtp,
	utils utils.IUtils,
) IAppointmentService {
	return &appointmentService{
		log:             log,
		appointmentRepo: repo,
		smtpMailer:      smtpMailer,
		utils:           utils,
	}
}

func (s *appointmentService) GetDoctors(ctx context.Context, specialty string) ([]appointment.DoctorResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.appointmentRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return nil, err
	}

	var doctors []entity.Doctor
	if specialty != "" {
		doctors, err = repo.Doctors.GetDoctorsBySpecialty(ctx, specialty)
	} else {
		doctors, err = repo.Doctors.GetAllDoctors(ctx)
	}
	if err != nil {
		return nil, err
	}

	responses := make([]appointment.DoctorResponse, 0, len(doctors))
	for _, doctor := range doctors {
		responses = append(responses, appointment.DoctorResponse{
			ID:         doctor.ID,
			Name:       doctor.Name,
			Email:      doctor.Email,
			Specialty:  doctor.Specialty,
			Department: doctor.Department,
		})
	}

	return responses, nil
}

func (s *appointmentService) GetAvailableSlots(ctx context.Context, doctorID string) ([]appointment.SlotResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.appointmentRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return nil, err
	}

	slots, err := repo.Slots.GetAvailableSlots(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	responses := make([]appointment.SlotResponse, 0, len(slots))
	for _, slot := range slots {
		responses = append(responses, appointment.SlotResponse{
			ID:              slot.ID,
			DoctorID:        slot.DoctorID,
			DoctorName:      slot.DoctorName,
			DoctorSpecialty: slot.DoctorSpecialty,
			SlotDate:        slot.SlotDate,
			SlotTime:        slot.SlotTime,
			DurationMinutes: slot.DurationMinutes,
			Location:        slot.Location,
		})
	}

	return responses, nil
}

func (s *appointmentService) Book(ctx context.Context, req appointment.BookingRequest) (*appointment.BookingResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.appointmentRepo.NewClient(true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return nil, err
	}
	defer repo.Rollback()

	slot, err := repo.Slots.GetSlotByID(ctx, req.SlotID)
	if err != nil {
		return nil, err
	}
	if slot.IsBooked {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"slot_id":    req.SlotID,
		}).Warn("Attempt to book an already-booked slot")
		return nil, appointment.ErrSlotAlreadyBooked
	}

	appointmentID, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to generate appointment ID")
		return nil, err
	}
	bookingCode, err := s.utils.NewBookingID()
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to generate booking code")
		return nil, err
	}

	appointmentType := req.AppointmentType
	if appointmentType == "" {
		appointmentType = "in-person"
	}

	now := time.Now()
	record := entity.Appointment{
		ID:              appointmentID,
		BookingCode:     bookingCode,
		SlotID:          slot.ID,
		PatientName:     req.PatientName,
		PatientEmail:    req.PatientEmail,
		PatientPhone:    req.PatientPhone,
		ReasonForVisit:  req.ReasonForVisit,
		AppointmentType: appointmentType,
		Status:          entity.AppointmentStatusConfirmed,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := repo.Appointments.CreateAppointment(ctx, record); err != nil {
		return nil, appointment.ErrBookingFailed
	}

	if err := repo.Slots.MarkSlotBooked(ctx, slot.ID); err != nil {
		return nil, appointment.ErrBookingFailed
	}

	if err := repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to commit booking transaction")
		return nil, appointment.ErrBookingFailed
	}

	s.log.WithFields(logrus.Fields{
		"request_id":   requestID,
		"booking_code": bookingCode,
		"slot_id":      slot.ID,
	}).Info("Appointment booked")

	s.sendConfirmationMail(requestID, slot, record)

	return &appointment.BookingResponse{
		BookingID: bookingCode,
		Status:    entity.AppointmentStatusConfirmed,
		Message:   "Appointment booked successfully!",
		AppointmentDetails: map[string]interface{}{
			"date":     slot.SlotDate,
			"time":     slot.SlotTime,
			"doctor":   slot.DoctorName,
			"location": slot.Location,
			"duration": slot.DurationMinutes,
		},
	}, nil
}

func (s *appointmentService) GetBooking(ctx context.Context, bookingCode string) (*appointment.AppointmentResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.appointmentRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return nil, err
	}

	record, err := repo.Appointments.GetAppointmentByBookingCode(ctx, bookingCode)
	if err != nil {
		return nil, err
	}

	return &appointment.AppointmentResponse{
		BookingID:       record.BookingCode,
		SlotID:          record.SlotID,
		PatientName:     record.PatientName,
		ReasonForVisit:  record.ReasonForVisit,
		AppointmentType: record.AppointmentType,
		Status:          record.Status,
	}, nil
}

// sendConfirmationMail is best-effort; a mail failure never fails the
// booking.
func (s *appointmentService) sendConfirmationMail(requestID string, slot entity.SlotWithDoctor, record entity.Appointment) {
	if s.smtpMailer == nil {
		return
	}

	err := s.smtpMailer.SendBookingConfirmation(record.PatientEmail, smtp.BookingMailDetails{
		PatientName: record.PatientName,
		DoctorName:  slot.DoctorName,
		Date:        slot.SlotDate,
		Time:        slot.SlotTime,
		Location:    slot.Location,
		BookingID:   record.BookingCode,
	})
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id":   requestID,
			"booking_code": record.BookingCode,
			"error":        err.Error(),
		}).Warn("Failed to send booking confirmation email")
	}
}
