package config

import (
	"HealthAssistant/database/sqlite"
	appointmentHandler "HealthAssistant/internal/api/appointment/handler"
	appointmentRepository "HealthAssistant/internal/api/appointment/repository"
	appointmentService "HealthAssistant/internal/api/appointment/service"
	chatHandler "HealthAssistant/internal/api/chat/handler"
	chatRepository "HealthAssistant/internal/api/chat/repository"
	chatService "HealthAssistant/internal/api/chat/service"
	insuranceHandler "HealthAssistant/internal/api/insurance/handler"
	insuranceService "HealthAssistant/internal/api/insurance/service"
	"HealthAssistant/internal/middleware"
	"HealthAssistant/pkg/gemini"
	"HealthAssistant/pkg/redis"
	"HealthAssistant/pkg/smtp"
	"HealthAssistant/pkg/utils"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type ServerOption func(*Server) error

type Server struct {
	engine       *fiber.App
	db           *sqlx.DB
	log          *logrus.Logger
	middleware   middleware.Middleware
	validator    *validator.Validate
	utils        utils.IUtils
	handlers     []handler
	redisServer  redis.IRedis
	smtpMailer   smtp.ItfSmtp
	geminiClient gemini.IGemini
}

type handler interface {
	Start(srv fiber.Router)
}

func NewServer(options ...ServerOption) (*Server, error) {
	server := &Server{}

	for _, option := range options {
		if err := option(server); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if server.engine == nil {
		return nil, fmt.Errorf("fiber app is required")
	}
	if server.log == nil {
		return nil, fmt.Errorf("logger is required")
	}

	return server, nil
}

func WithFiber(fiberApp *fiber.App) ServerOption {
	return func(s *Server) error {
		s.engine = fiberApp
		return nil
	}
}

func WithLogger(logger *logrus.Logger) ServerOption {
	return func(s *Server) error {
		s.log = logger
		return nil
	}
}

func WithValidator(validator *validator.Validate) ServerOption {
	return func(s *Server) error {
		s.validator = validator
		return nil
	}
}

func WithDatabase() ServerOption {
	return func(s *Server) error {
		db, err := sqlite.New()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to connect to database: %v", err)
			}
			return fmt.Errorf("failed to create database connection: %w", err)
		}
		if err := sqlite.Seed(db); err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to seed database: %v", err)
			}
			return fmt.Errorf("failed to seed database: %w", err)
		}
		s.db = db
		return nil
	}
}

func WithRedisServer(redisServer redis.IRedis) ServerOption {
	return func(s *Server) error {
		s.redisServer = redisServer
		return nil
	}
}

func WithSMTPMailer(smtpMailer smtp.ItfSmtp) ServerOption {
	return func(s *Server) error {
		s.smtpMailer = smtpMailer
		return nil
	}
}

func WithMiddleware() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before middleware")
		}
		s.middleware = middleware.New(s.log)
		return nil
	}
}

// WithGeminiClient tolerates a missing API key: classification falls
// back to the rule path when no LLM is configured.
func WithGeminiClient() ServerOption {
	return func(s *Server) error {
		client, err := gemini.NewGeminiClient()
		if err != nil {
			if s.log != nil {
				s.log.Warnf("Gemini client unavailable, rule-based classification only: %v", err)
			}
			return nil
		}
		s.geminiClient = client
		return nil
	}
}

func WithUtils() ServerOption {
	return func(s *Server) error {
		s.utils = utils.New()
		return nil
	}
}

func (s *Server) RegisterHandler() {
	// Session store: in-memory by default, redis when configured.
	var sessionStore chatRepository.ISessionStore
	if os.Getenv("SESSION_STORE") == "redis" && s.redisServer != nil {
		sessionStore = chatRepository.NewRedisStore(s.redisServer, s.log)
	} else {
		sessionStore = chatRepository.NewMemoryStore(s.log)
	}

	// Insurance Domain
	insuranceServices := insuranceService.New(s.log, s.geminiClient)
	insuranceHandlers := insuranceHandler.New(s.log, s.validator, s.middleware, insuranceServices)

	// Appointment Domain
	appointmentRepo := appointmentRepository.New(s.db, s.log)
	appointmentServices := appointmentService.New(s.log, appointmentRepo, s.smtpMailer, s.utils)
	appointmentHandlers := appointmentHandler.New(s.log, s.validator, s.middleware, appointmentServices)

	// Chat Domain
	chatServices := chatService.New(s.log, sessionStore, s.geminiClient, insuranceServices, appointmentServices, s.utils)
	chatHandlers := chatHandler.New(s.log, s.validator, s.middleware, chatServices)

	s.setupHealthCheck()
	s.handlers = append(s.handlers, chatHandlers, insuranceHandlers, appointmentHandlers)
}

func (s *Server) Run() error {
	router := s.engine.Group("/api/v1")
	s.engine.Use(s.middleware.NewRequestIDMiddleware())
	s.engine.Use(middleware.LoggerConfig())

	for _, h := range s.handlers {
		h.Start(router)
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "3000"
	}

	return s.engine.Listen(fmt.Sprintf(":%s", port))
}

func (s *Server) setupHealthCheck() {
	s.engine.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{
			"message": "Server is Healthy!",
		})
	})
}
