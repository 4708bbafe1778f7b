package insuranceHandler

import (
	insuranceService "HealthAssistant/internal/api/insurance/service"
	"HealthAssistant/internal/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type InsuranceHandler struct {
	log              *logrus.Logger
	validator        *validator.Validate
	middleware       middleware.Middleware
	insuranceService insuranceService.IInsuranceService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	is insuranceService.IInsuranceService,
) *InsuranceHandler {
	return &InsuranceHandler{
		log:              log,
		validator:        validate,
		middleware:       middleware,
		insuranceService: is,
	}
}

func (h *InsuranceHandler) Start(srv fiber.Router) {
	insurance := srv.Group("/insurance")
	insurance.Use(h.middleware.NewRateLimiter)

	insurance.Post("/verify", h.VerifyPolicy)
	insurance.Get("/providers", h.GetProviders)
}
