package service

import (
	"context"
	"fmt"

	"github.com/Gaaaybe/Aetherium/internal/domain"
	"github.com/Gaaaybe/Aetherium/internal/interfaces"
	"github.com/Gaaaybe/Aetherium/internal/models"
)

// requirePeculiarity проверяет, что peculiaridade из домена существует.
// Для непеculiar домена проверка пропускается.
func requirePeculiarity(ctx context.Context, repo interfaces.PeculiarityRepository, dominio domain.Domain) error {
	id, ok := dominio.PeculiarID()
	if !ok {
		return nil
	}
	peculiarity, err := repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load peculiarity %s: %w", id, err)
	}
	if peculiarity == nil {
		return models.InvalidVisibility("referenced peculiarity was not found")
	}
	return nil
}

// toggleVisibility переключает видимость, если want задан и отличается от текущей.
// Ошибки домена (официальная сущность) превращаются в ErrInvalidVisibility.
func toggleVisibility[T interface{ IsPublic() bool }](current T, want *bool, makePublic, makePrivate func() (T, error)) (T, error) {
	if want == nil || *want == current.IsPublic() {
		return current, nil
	}
	flip := makePrivate
	if *want {
		flip = makePublic
	}
	next, err := flip()
	if err != nil {
		var zero T
		return zero, models.InvalidVisibility(err.Error())
	}
	return next, nil
}
