package mapper

import (
	"fashion-chatbot-be/internal/entity"
	"fashion-chatbot-be/internal/model"
)

type ChatTurnMapper struct{}

func NewChatTurnMapper() *ChatTurnMapper {
	return &ChatTurnMapper{}
}

func (m *ChatTurnMapper) ToEntity(t *model.ChatTurn) entity.ChatTurn {
	return entity.ChatTurn{
		Id:        t.Id,
		UserId:    t.UserId,
		Role:      entity.ChatRole(t.Role),
		Content:   t.Content,
		Timestamp: t.Timestamp,
	}
}

func (m *ChatTurnMapper) ToModel(t entity.ChatTurn) *model.ChatTurn {
	return &model.ChatTurn{
		Id:        t.Id,
		UserId:    t.UserId,
		Role:      string(t.Role),
		Content:   t.Content,
		Timestamp: t.Timestamp,
	}
}

func (m *ChatTurnMapper) ToEntities(turns []*model.ChatTurn) []entity.ChatTurn {
	out := make([]entity.ChatTurn, len(turns))
	for i, t := range turns {
		out[i] = m.ToEntity(t)
	}
	return out
}
