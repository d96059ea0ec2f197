package domain

import "github.com/google/uuid"

// Ownable - сущность с владельцем и видимостью.
// Пустой владелец означает официальную (системную) сущность.
type Ownable interface {
	UserID() uuid.UUID
	IsPublic() bool
	IsOfficial() bool
	IsOwnedBy(userID uuid.UUID) bool
	CanBeAccessedBy(userID uuid.UUID) bool
	CanBeEditedBy(userID uuid.UUID) bool
}

// ownership встраивается в агрегаты и реализует Ownable.
type ownership struct {
	userID   uuid.UUID
	isPublic bool
}

func (o ownership) UserID() uuid.UUID { return o.userID }
func (o ownership) IsPublic() bool    { return o.isPublic }
func (o ownership) IsOfficial() bool  { return o.userID == uuid.Nil }

func (o ownership) IsOwnedBy(userID uuid.UUID) bool {
	return !o.IsOfficial() && userID != uuid.Nil && o.userID == userID
}

// CanBeAccessedBy: официальные и публичные доступны всем, приватные только владельцу.
// uuid.Nil означает анонимного читателя.
func (o ownership) CanBeAccessedBy(userID uuid.UUID) bool {
	if o.IsOfficial() || o.isPublic {
		return true
	}
	return o.IsOwnedBy(userID)
}

// CanBeEditedBy: официальные не редактирует никто, остальные только владелец.
func (o ownership) CanBeEditedBy(userID uuid.UUID) bool {
	return o.IsOwnedBy(userID)
}
