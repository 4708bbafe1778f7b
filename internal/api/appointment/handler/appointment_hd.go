package appointmentHandler

import (
	"HealthAssistant/internal/api/appointment"
	contextPkg "HealthAssistant/pkg/context"
	"HealthAssistant/pkg/handlerUtil"
	"HealthAssistant/pkg/log"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"
)

func (h *AppointmentHandler) GetDoctors(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing get doctors request")

	specialty := ctx.Query("specialty")

	doctors, err := h.appointmentService.GetDoctors(c, specialty)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_doctors")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, fiber.Map{
			"doctors": doctors,
		})
	}
}

func (h *AppointmentHandler) GetAvailableSlots(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing get available slots request")

	doctorID := ctx.Query("doctor_id")

	slots, err := h.appointmentService.GetAvailableSlots(c, doctorID)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_available_slots")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, fiber.Map{
			"slots": slots,
		})
	}
}

func (h *AppointmentHandler) GetBooking(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	bookingCode := ctx.Params("booking_code")

	h.log.WithFields(log.Fields{
		"request_id":   requestID,
		"booking_code": bookingCode,
		"path":         ctx.Path(),
	}).Debug("Processing get booking request")

	booking, err := h.appointmentService.GetBooking(c, bookingCode)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_booking")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, booking)
	}
}

func (h *AppointmentHandler) BookAppointment(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 15*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing book appointment request")

	var req appointment.BookingRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	booking, err := h.appointmentService.Book(c, req)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "book_appointment")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusCreated, booking)
	}
}
