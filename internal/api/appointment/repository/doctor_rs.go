package appointmentRepository

import (
	"HealthAssistant/internal/entity"
	contextPkg "HealthAssistant/pkg/context"
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

func (r *doctorRepository) GetAllDoctors(ctx context.Context) ([]entity.Doctor, error) {
	requestID := contextPkg.GetRequestID(ctx)

	var doctors []entity.Doctor
	if err := r.q.SelectContext(ctx, &doctors, queryGetAllDoctors); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when listing doctors")
		return nil, err
	}

	return doctors, nil
}

func (r *doctorRepository) GetDoctorsBySpecialty(ctx context.Context, specialty string) ([]entity.Doctor, error) {
	requestID := contextPkg.GetRequestID(ctx)

	argsKV := map[string]interface{}{
		"specialty": specialty,
	}

	query, args, err := sqlx.Named(queryGetDoctorsBySpecialty, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetDoctorsBySpecialty named query preparation err")
		return nil, err
	}
	query = r.q.Rebind(query)

	var doctors []entity.Doctor
	if err := r.q.SelectContext(ctx, &doctors, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"specialty":  specialty,
			"error":      err.Error(),
		}).Error("Database error when listing doctors by specialty")
		return nil, err
	}

	return doctors, nil
}

func (r *doctorRepository) CreateDoctor(ctx context.Context, doctor entity.Doctor) error {
	requestID := contextPkg.GetRequestID(ctx)

	argsKV := map[string]interface{}{
		"id":         doctor.ID,
		"name":       doctor.Name,
		"email":      doctor.Email,
		"specialty":  doctor.Specialty,
		"department": doctor.Department,
		"created_at": doctor.CreatedAt,
	}

	query, args, err := sqlx.Named(queryCreateDoctor, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateDoctor")
		return err
	}
	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating doctor")
		return err
	}

	return nil
}
