package handlerUtil

import (
	"HealthAssistant/internal/api/appointment"
	"HealthAssistant/internal/api/chat"
	"HealthAssistant/internal/api/insurance"
	"HealthAssistant/pkg/log"
	"HealthAssistant/pkg/response"
	"errors"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/sirupsen/logrus"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

type ErrorHandler struct {
	logger *logrus.Logger
}

func New(logger *logrus.Logger) *ErrorHandler {
	return &ErrorHandler{
		logger: logger,
	}
}

func (h *ErrorHandler) Handle(c *fiber.Ctx, requestID string, err error, path string, operation string) error {
	var respErr *response.Error
	if errors.As(err, &respErr) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"code":       respErr.Code,
			"path":       path,
			"operation":  operation,
		}).Warn("Operation failed with error response")
		return c.Status(respErr.Code).JSON(fiber.Map{"error": err.Error()})
	}

	// Chat domain errors
	if errors.Is(err, chat.ErrSessionNotFound) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Session not found")
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Session not found",
			"code":    "SESSION_NOT_FOUND",
		})
	}

	if errors.Is(err, chat.ErrExtractionFailed) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Error("Message classification failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to process message",
		})
	}

	if errors.Is(err, chat.ErrSessionStoreFailed) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Error("Session store unavailable")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Session store unavailable",
		})
	}

	// Insurance domain errors
	if errors.Is(err, insurance.ErrProviderNotSupported) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Insurance provider not supported")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Insurance provider not supported",
			"code":    "PROVIDER_NOT_SUPPORTED",
		})
	}

	if errors.Is(err, insurance.ErrProviderDataMissing) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Error("Insurance provider data unavailable")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Insurance provider data unavailable",
		})
	}

	if errors.Is(err, insurance.ErrPolicyNotFound) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Policy not found")
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Policy not found",
			"code":    "POLICY_NOT_FOUND",
		})
	}

	// Appointment domain errors
	if errors.Is(err, appointment.ErrSlotNotFound) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Appointment slot not found")
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Appointment slot not found",
			"code":    "SLOT_NOT_FOUND",
		})
	}

	if errors.Is(err, appointment.ErrSlotAlreadyBooked) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Slot already booked")
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": "Appointment slot is already booked",
			"code":    "SLOT_ALREADY_BOOKED",
		})
	}

	if errors.Is(err, appointment.ErrDoctorNotFound) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Doctor not found")
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Doctor not found",
			"code":    "DOCTOR_NOT_FOUND",
		})
	}

	if errors.Is(err, appointment.ErrBookingNotFound) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Booking not found")
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Booking not found",
			"code":    "BOOKING_NOT_FOUND",
		})
	}

	if errors.Is(err, appointment.ErrBookingFailed) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Error("Booking failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to book appointment",
		})
	}

	h.logger.WithFields(log.Fields{
		"request_id": requestID,
		"error":      err.Error(),
		"path":       path,
		"operation":  operation,
	}).Error("Unexpected error")

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "An unexpected error occurred",
	})
}

func (h *ErrorHandler) HandleValidationError(c *fiber.Ctx, requestID string, err error, path string) error {
	h.logger.WithFields(log.Fields{
		"request_id": requestID,
		"error":      err.Error(),
		"path":       path,
	}).Warn("Validation failed")

	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": "Validation failed: " + err.Error(),
		"code":  "VALIDATION_ERROR",
	})
}

func (h *ErrorHandler) HandleRequestTimeout(c *fiber.Ctx) error {
	return c.Status(fiber.StatusRequestTimeout).JSON(utils.StatusMessage(fiber.StatusRequestTimeout))
}

func (h *ErrorHandler) HandleSuccess(c *fiber.Ctx, statusCode int, data interface{}) error {
	if data == nil {
		return c.SendStatus(statusCode)
	}
	return c.Status(statusCode).JSON(data)
}
