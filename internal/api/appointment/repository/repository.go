package appointmentRepository

import (
	"HealthAssistant/internal/entity"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type SQLExecutor interface {
	sqlx.ExtContext
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row
	Rebind(query string) string
}

func New(db *sqlx.DB, log *logrus.Logger) Repository {
	return &repository{
		DB:  db,
		log: log,
	}
}

type repository struct {
	DB  *sqlx.DB
	log *logrus.Logger
}

type Repository interface {
	NewClient(tx bool) (Client, error)
}

func (r *repository) NewClient(tx bool) (Client, error) {
	var sqlExecutor SQLExecutor
	var commitFunc, rollbackFunc func() error

	sqlExecutor = r.DB

	if tx {
		var err error
		txx, err := r.DB.Beginx()
		if err != nil {
			return Client{}, err
		}

		sqlExecutor = txx
		commitFunc = txx.Commit
		rollbackFunc = txx.Rollback
	} else {
		commitFunc = func() error { return nil }
		rollbackFunc = func() error { return nil }
	}

	return Client{
		Doctors:      &doctorRepository{q: sqlExecutor, log: r.log},
		Slots:        &slotRepository{q: sqlExecutor, log: r.log},
		Appointments: &appointmentRepository{q: sqlExecutor, log: r.log},
		Commit:       commitFunc,
		Rollback:     rollbackFunc,
	}, nil
}

type Client struct {
	Doctors interface {
		GetAllDoctors(ctx context.Context) ([]entity.Doctor, error)
		GetDoctorsBySpecialty(ctx context.Context, specialty string) ([]entity.Doctor, error)
		CreateDoctor(ctx context.Context, doctor entity.Doctor) error
	}

	Slots interface {
		GetAvailableSlots(ctx context.Context, doctorID string) ([]entity.SlotWithDoctor, error)
		GetSlotByID(ctx context.Context, slotID string) (entity.SlotWithDoctor, error)
		MarkSlotBooked(ctx context.Context, slotID string) error
		CreateSlot(ctx context.Context, slot entity.Slot) error
	}

	Appointments interface {
		CreateAppointment(ctx context.Context, appointment entity.Appointment) error
		GetAppointmentByBookingCode(ctx context.Context, bookingCode string) (entity.Appointment, error)
	}

	Commit   func() error
	Rollback func() error
}

type doctorRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}

type slotRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}

type appointmentRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}
