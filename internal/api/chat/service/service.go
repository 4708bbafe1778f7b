package chatService

import (
	appointmentService "HealthAssistant/internal/api/appointment/service"
	"HealthAssistant/internal/api/chat"
	chatRepository "HealthAssistant/internal/api/chat/repository"
	insuranceService "HealthAssistant/internal/api/insurance/service"
	"HealthAssistant/internal/entity"
	contextPkg "HealthAssistant/pkg/context"
	"HealthAssistant/pkg/gemini"
	"HealthAssistant/pkg/utils"
	"context"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

type IChatService interface {
	ProcessMessage(ctx context.Context, req chat.ChatRequest) (*chat.ChatResponse, error)
	GetConversation(ctx context.Context, sessionID string) (*chat.ConversationResponse, error)
	ClearConversation(ctx context.Context, sessionID string) error
	GetCapabilities(ctx context.Context) chat.CapabilitiesResponse
}

type chatService struct {
	log               *logrus.Logger
	store             chatRepository.ISessionStore
	geminiClient      gemini.IGemini
	insurance         insuranceService.IInsuranceService
	appointments      appointmentService.IAppointmentService
	utils             utils.IUtils
	journeyMaxRetries int
}

func New(
	log *logrus.Logger,
	store chatRepository.ISessionStore,
	geminiClient gemini.IGemini,
	insurance insuranceService.IInsuranceService,
	appointments appointmentService.IAppointmentService,
	utils utils.IUtils,
) IChatService {
	maxRetries := 3
	if raw := os.Getenv("JOURNEY_MAX_RETRIES"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			maxRetries = parsed
		}
	}

	return &chatService{
		log:               log,
		store:             store,
		geminiClient:      geminiClient,
		insurance:         insurance,
		appointments:      appointments,
		utils:             utils,
		journeyMaxRetries: maxRetries,
	}
}

func (s *chatService) ProcessMessage(ctx context.Context, req chat.ChatRequest) (*chat.ChatResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)
	text := strings.TrimSpace(req.Message)
	if text == "" {
		return nil, chat.ErrEmptyMessage
	}

	sessionID := req.SessionID
	isNew := sessionID == ""
	if isNew {
		var err error
		sessionID, err = s.utils.NewSessionID()
		if err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Error("Failed to generate session ID")
			return nil, chat.ErrSessionStoreFailed
		}
	}

	// Turns within one session are strictly serialized; independent
	// sessions proceed in parallel.
	s.store.Lock(sessionID)
	defer s.store.Unlock(sessionID)

	var session entity.ChatSession
	if isNew {
		now := time.Now()
		session = entity.ChatSession{
			ID:        sessionID,
			Metadata:  req.Context,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.store.Create(ctx, session); err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"session_id": sessionID,
				"error":      err.Error(),
			}).Error("Failed to create session")
			return nil, err
		}
	} else {
		var err error
		session, err = s.store.Get(ctx, sessionID)
		if err != nil {
			return nil, err
		}
	}

	classification, err := s.classify(ctx, text, session.History)
	if err != nil {
		// Both classification paths unusable. Nothing is written to
		// history; the caller still gets a well-formed envelope.
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"session_id": sessionID,
			"error":      err.Error(),
		}).Error("Extraction failed on both paths")
		return s.apologyEnvelope(sessionID, text), nil
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"session_id": sessionID,
		"intent":     classification.Intent,
		"confidence": classification.Confidence,
		"source":     classification.Source,
	}).Info("Message classified")

	// The turn record is appended before dispatch so handlers and the
	// formatter see full context, even when the handler fails.
	session.History = append(session.History, entity.Turn{
		Role:       "user",
		Content:    text,
		Intent:     classification.Intent,
		Confidence: classification.Confidence,
		Timestamp:  time.Now(),
	})

	result, followUps := s.route(ctx, &session, text, classification)

	session.History = append(session.History, entity.Turn{
		Role:      "assistant",
		Content:   result.Message,
		Timestamp: time.Now(),
	})
	session.UpdatedAt = time.Now()

	if err := s.store.Save(ctx, session); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"session_id": sessionID,
			"error":      err.Error(),
		}).Error("Failed to persist session")
		return nil, err
	}

	return s.formatResponse(sessionID, text, classification, result, followUps, session.Journey), nil
}

func (s *chatService) GetConversation(ctx context.Context, sessionID string) (*chat.ConversationResponse, error) {
	s.store.Lock(sessionID)
	defer s.store.Unlock(sessionID)

	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	turns := make([]chat.TurnRecord, 0, len(session.History))
	for _, turn := range session.History {
		turns = append(turns, chat.TurnRecord{
			Role:       turn.Role,
			Content:    turn.Content,
			Intent:     string(turn.Intent),
			Confidence: turn.Confidence,
			Timestamp:  turn.Timestamp,
		})
	}

	return &chat.ConversationResponse{
		SessionID: session.ID,
		Turns:     turns,
		Journey:   journeyState(session.Journey),
		CreatedAt: session.CreatedAt,
		UpdatedAt: session.UpdatedAt,
	}, nil
}

func (s *chatService) ClearConversation(ctx context.Context, sessionID string) error {
	requestID := contextPkg.GetRequestID(ctx)

	s.store.Lock(sessionID)
	defer s.store.Unlock(sessionID)

	deleted, err := s.store.Delete(ctx, sessionID)
	if err != nil {
		return err
	}
	if !deleted {
		return chat.ErrSessionNotFound
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"session_id": sessionID,
	}).Info("Session cleared")

	return nil
}

func (s *chatService) GetCapabilities(ctx context.Context) chat.CapabilitiesResponse {
	return chat.CapabilitiesResponse{Capabilities: capabilityTable}
}
