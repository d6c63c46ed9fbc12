package service

import (
	"context"
	"time"

	"fashion-chatbot-be/internal/dto"
	"fashion-chatbot-be/internal/entity"
	"fashion-chatbot-be/internal/pkg/apperror"
	"fashion-chatbot-be/internal/pkg/logger"
	"fashion-chatbot-be/internal/repository/specification"
	"fashion-chatbot-be/internal/repository/unitofwork"
	"fashion-chatbot-be/pkg/dialogue"
	"fashion-chatbot-be/pkg/nlp"

	"github.com/google/uuid"
)

type IChatbotService interface {
	ProcessMessage(ctx context.Context, userId uuid.UUID, message string) (*dto.SendMessageResponse, error)
	GetHistory(ctx context.Context, userId uuid.UUID) (*dto.ChatHistoryResponse, error)
	UpdatePreferences(ctx context.Context, userId uuid.UUID, req *dto.UpdatePreferencesRequest) (*dto.UpdatePreferencesResponse, error)
}

type chatbotService struct {
	uowFactory unitofwork.RepositoryFactory
	responder  *dialogue.Responder
	logger     logger.ILogger
	now        func() time.Time
}

func NewChatbotService(uowFactory unitofwork.RepositoryFactory, catalog dialogue.Searcher, log logger.ILogger) IChatbotService {
	return &chatbotService{
		uowFactory: uowFactory,
		responder:  dialogue.NewResponder(catalog),
		logger:     log,
		now:        time.Now,
	}
}

func (s *chatbotService) ProcessMessage(ctx context.Context, userId uuid.UUID, message string) (*dto.SendMessageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NotFound("Không tìm thấy người dùng")
	}

	classified := nlp.Classify(message)
	entities := nlp.Extract(message)

	reply, err := s.responder.Respond(ctx, dialogue.Request{
		Intent:   classified.Intent,
		Entities: entities,
		Text:     message,
		User:     user,
	})
	if err != nil {
		return nil, err
	}

	if err := s.appendExchange(ctx, userId, message, reply.Message); err != nil {
		return nil, err
	}

	s.logger.Info("CHATBOT", "Message processed", map[string]interface{}{
		"user_id":    userId.String(),
		"intent":     string(classified.Intent),
		"confidence": classified.Confidence,
		"products":   len(reply.Products),
	})

	actions := reply.Actions
	if actions == nil {
		actions = []dialogue.Action{}
	}
	return &dto.SendMessageResponse{
		Success: true,
		Response: &dto.ChatReplyDTO{
			Message:    reply.Message,
			Products:   toProductDTOs(reply.Products),
			Actions:    actions,
			Intent:     string(classified.Intent),
			Confidence: classified.Confidence,
		},
	}, nil
}

// appendExchange stores both turns under the user lock and caps the transcript.
func (s *chatbotService) appendExchange(ctx context.Context, userId uuid.UUID, userText, assistantText string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	locked, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId}, specification.ForUpdate{})
	if err != nil {
		return err
	}
	if locked == nil {
		return apperror.NotFound("Không tìm thấy người dùng")
	}

	asked := s.now()
	turns := []entity.ChatTurn{
		{Id: uuid.New(), UserId: userId, Role: entity.ChatRoleUser, Content: userText, Timestamp: asked},
		{Id: uuid.New(), UserId: userId, Role: entity.ChatRoleAssistant, Content: assistantText, Timestamp: asked.Add(time.Millisecond)},
	}
	if err := uow.ChatTurnRepository().Append(ctx, turns...); err != nil {
		return err
	}
	if err := uow.ChatTurnRepository().Trim(ctx, userId, entity.MaxTranscriptTurns); err != nil {
		return err
	}
	return uow.Commit()
}

func (s *chatbotService) GetHistory(ctx context.Context, userId uuid.UUID) (*dto.ChatHistoryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	turns, err := uow.ChatTurnRepository().FindByUser(ctx, userId)
	if err != nil {
		return nil, err
	}

	history := make([]*dto.ChatTurnDTO, 0, len(turns))
	for _, t := range turns {
		history = append(history, &dto.ChatTurnDTO{
			Role:      string(t.Role),
			Content:   t.Content,
			Timestamp: t.Timestamp,
		})
	}
	return &dto.ChatHistoryResponse{Success: true, History: history}, nil
}

func (s *chatbotService) UpdatePreferences(ctx context.Context, userId uuid.UUID, req *dto.UpdatePreferencesRequest) (*dto.UpdatePreferencesResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId}, specification.ForUpdate{})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NotFound("Không tìm thấy người dùng")
	}

	prefs := toPreferencesEntity(req.Preferences)
	if err := uow.UserRepository().UpdatePreferences(ctx, userId, prefs); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}
	user.Preferences = prefs

	return &dto.UpdatePreferencesResponse{
		Success: true,
		User: &dto.UserDTO{
			Id:          user.Id.String(),
			Username:    user.Username,
			Email:       user.Email,
			Preferences: toPreferencesDTO(user.Preferences),
		},
	}, nil
}
