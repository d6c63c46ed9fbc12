package mapper

import (
	"fashion-chatbot-be/internal/entity"
	"fashion-chatbot-be/internal/model"

	"gorm.io/datatypes"
)

type UserMapper struct{}

func NewUserMapper() *UserMapper {
	return &UserMapper{}
}

func (m *UserMapper) ToEntity(u *model.User) *entity.User {
	if u == nil {
		return nil
	}
	prefs := u.Preferences.Data()
	return &entity.User{
		Id:          u.Id,
		Username:    u.Username,
		Email:       u.Email,
		Preferences: m.PreferencesToEntity(prefs),
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

func (m *UserMapper) ToModel(u *entity.User) *model.User {
	if u == nil {
		return nil
	}
	return &model.User{
		Id:          u.Id,
		Username:    u.Username,
		Email:       u.Email,
		Preferences: datatypes.NewJSONType(m.PreferencesToModel(u.Preferences)),
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

func (m *UserMapper) PreferencesToEntity(p model.UserPreferences) entity.UserPreferences {
	out := entity.UserPreferences{
		Size:            p.Size,
		FavoriteColors:  p.FavoriteColors,
		PreferredStyles: p.PreferredStyles,
	}
	if p.Budget != nil {
		out.Budget = &entity.Budget{Min: p.Budget.Min, Max: p.Budget.Max}
	}
	return out
}

func (m *UserMapper) PreferencesToModel(p entity.UserPreferences) model.UserPreferences {
	out := model.UserPreferences{
		Size:            p.Size,
		FavoriteColors:  p.FavoriteColors,
		PreferredStyles: p.PreferredStyles,
	}
	if p.Budget != nil {
		out.Budget = &model.Budget{Min: p.Budget.Min, Max: p.Budget.Max}
	}
	return out
}
