package chatHandler

import (
	chatService "HealthAssistant/internal/api/chat/service"
	"HealthAssistant/internal/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type ChatHandler struct {
	log         *logrus.Logger
	validator   *validator.Validate
	middleware  middleware.Middleware
	chatService chatService.IChatService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	cs chatService.IChatService,
) *ChatHandler {
	return &ChatHandler{
		log:         log,
		validator:   validate,
		middleware:  middleware,
		chatService: cs,
	}
}

func (h *ChatHandler) Start(srv fiber.Router) {
	chat := srv.Group("/chat")
	chat.Use(h.middleware.NewRateLimiter)

	chat.Post("/", h.ProcessMessage)
	chat.Get("/capabilities", h.GetCapabilities)
	chat.Get("/conversation/:session_id", h.GetConversation)
	chat.Delete("/conversation/:session_id", h.ClearConversation)
}
