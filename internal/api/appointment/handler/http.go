package appointmentHandler

import (
	appointmentService "HealthAssistant/internal/api/appointment/service"
	"HealthAssistant/internal/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type AppointmentHandler struct {
	log                *logrus.Logger
	validator          *validator.Validate
	middleware         middleware.Middleware
	appointmentService appointmentService.IAppointmentService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	as appointmentService.IAppointmentService,
) *AppointmentHandler {
	return &AppointmentHandler{
		log:                log,
		validator:          validate,
		middleware:         middleware,
		appointmentService: as,
	}
}

func (h *AppointmentHandler) Start(srv fiber.Router) {
	appointments := srv.Group("/appointments")
	appointments.Use(h.middleware.NewRateLimiter)

	appointments.Get("/doctors", h.GetDoctors)
	appointments.Get("/slots", h.GetAvailableSlots)
	appointments.Post("/book", h.BookAppointment)
	appointments.Get("/booking/:booking_code", h.GetBooking)
}
