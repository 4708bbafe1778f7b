package appointmentRepository

import (
	"HealthAssistant/internal/api/appointment"
	"HealthAssistant/internal/entity"
	contextPkg "HealthAssistant/pkg/context"
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

func (r *appointmentRepository) CreateAppointment(ctx context.Context, app entity.Appointment) error {
	requestID := contextPkg.GetRequestID(ctx)

	argsKV := map[string]interface{}{
		"id":               app.ID,
		"booking_code":     app.BookingCode,
		"slot_id":          app.SlotID,
		"patient_name":     app.PatientName,
		"patient_email":    app.PatientEmail,
		"patient_phone":    app.PatientPhone,
		"reason_for_visit": app.ReasonForVisit,
		"appointment_type": app.AppointmentType,
		"status":           app.Status,
		"created_at":       app.CreatedAt,
		"updated_at":       app.UpdatedAt,
	}

	query, args, err := sqlx.Named(queryCreateAppointment, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateAppointment")
		return err
	}
	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating appointment")
		return err
	}

	return nil
}

func (r *appointmentRepository) GetAppointmentByBookingCode(ctx context.Context, bookingCode string) (entity.Appointment, error) {
	requestID := contextPkg.GetRequestID(ctx)

	argsKV := map[string]interface{}{
		"booking_code": bookingCode,
	}

	query, args, err := sqlx.Named(queryGetAppointmentByBookingCode, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetAppointmentByBookingCode named query preparation err")
		return entity.Appointment{}, err
	}
	query = r.q.Rebind(query)

	var app entity.Appointment
	if err := r.q.QueryRowxContext(ctx, query, args...).StructScan(&app); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.Appointment{}, appointment.ErrBookingNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id":   requestID,
			"booking_code": bookingCode,
			"error":        err.Error(),
		}).Error("Database error when fetching appointment")
		return entity.Appointment{}, err
	}

	return app, nil
}
