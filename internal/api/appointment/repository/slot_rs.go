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

func (r *slotRepository) GetAvailableSlots(ctx context.Context, doctorID string) ([]entity.SlotWithDoctor, error) {
	requestID := contextPkg.GetRequestID(ctx)

	argsKV := map[string]interface{}{
		"doctor_id": doctorID,
	}

	query, args, err := sqlx.Named(queryGetAvailableSlots, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetAvailableSlots named query preparation err")
		return nil, err
	}
	query = r.q.Rebind(query)

	var slots []entity.SlotWithDoctor
	if err := r.q.SelectContext(ctx, &slots, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"doctor_id":  doctorID,
			"error":      err.Error(),
		}).Error("Database error when listing available slots")
		return nil, err
	}

	return slots, nil
}

func (r *slotRepository) GetSlotByID(ctx context.Context, slotID string) (entity.SlotWithDoctor, error) {
	requestID := contextPkg.GetRequestID(ctx)

	argsKV := map[string]interface{}{
		"id": slotID,
	}

	query, args, err := sqlx.Named(queryGetSlotByID, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetSlotByID named query preparation err")
		return entity.SlotWithDoctor{}, err
	}
	query = r.q.Rebind(query)

	var slot entity.SlotWithDoctor
	if err := r.q.QueryRowxContext(ctx, query, args...).StructScan(&slot); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.SlotWithDoctor{}, appointment.ErrSlotNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"slot_id":    slotID,
			"error":      err.Error(),
		}).Error("Database error when fetching slot")
		return entity.SlotWithDoctor{}, err
	}

	return slot, nil
}

func (r *slotRepository) MarkSlotBooked(ctx context.Context, slotID string) error {
	requestID := contextPkg.GetRequestID(ctx)

	argsKV := map[string]interface{}{
		"id": slotID,
	}

	query, args, err := sqlx.Named(queryMarkSlotBooked, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("MarkSlotBooked named query preparation err")
		return err
	}
	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"slot_id":    slotID,
			"error":      err.Error(),
		}).Error("Database error when marking slot booked")
		return err
	}

	return nil
}

func (r *slotRepository) CreateSlot(ctx context.Context, slot entity.Slot) error {
	requestID := contextPkg.GetRequestID(ctx)

	argsKV := map[string]interface{}{
		"id":               slot.ID,
		"doctor_id":        slot.DoctorID,
		"slot_date":        slot.SlotDate,
		"slot_time":        slot.SlotTime,
		"duration_minutes": slot.DurationMinutes,
		"location":         slot.Location,
		"is_booked":        slot.IsBooked,
		"created_at":       slot.CreatedAt,
	}

	query, args, err := sqlx.Named(queryCreateSlot, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateSlot")
		return err
	}
	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating slot")
		return err
	}

	return nil
}
