package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"

	"github.com/Gaaaybe/Aetherium/internal/domain"
	"github.com/Gaaaybe/Aetherium/internal/models"

	"go.uber.org/zap"
)

// Имена файлов официального каталога.
const (
	EffectsCatalogFile       = "efeitos.json"
	ModificationsCatalogFile = "modificacoes.json"
)

// CatalogData - официальный каталог в том виде, в каком он лежит в JSON.
type CatalogData struct {
	Effects       []domain.EffectBase
	Modifications []domain.ModificationBase
}

// ImportResult - итог импорта каталога.
type ImportResult struct {
	EffectsCreated       int
	EffectsSkipped       int
	ModificationsCreated int
	ModificationsSkipped int
}

// ReadCatalog читает efeitos.json и modificacoes.json из fsys.
func ReadCatalog(fsys fs.FS) (CatalogData, error) {
	var data CatalogData
	if err := readJSONFile(fsys, EffectsCatalogFile, &data.Effects); err != nil {
		return CatalogData{}, err
	}
	if err := readJSONFile(fsys, ModificationsCatalogFile, &data.Modifications); err != nil {
		return CatalogData{}, err
	}
	return data, nil
}

func readJSONFile(fsys fs.FS, name string, target any) error {
	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return nil
}

// ImportCatalog проверяет и сохраняет каждую запись. Невалидная запись прерывает импорт,
// повторный импорт того же каталога ничего не меняет.
func (s *catalogServiceImpl) ImportCatalog(ctx context.Context, catalog CatalogData) (ImportResult, error) {
	var result ImportResult
	for _, e := range catalog.Effects {
		e.Custom = false
		effect, err := domain.NewEffectBase(e)
		if err != nil {
			return result, fmt.Errorf("invalid effect %q: %w", e.ID, err)
		}
		switch err := s.effectRepo.Create(ctx, effect); {
		case err == nil:
			result.EffectsCreated++
		case errors.Is(err, models.ErrAlreadyExists):
			result.EffectsSkipped++
		default:
			return result, fmt.Errorf("failed to import effect %q: %w", e.ID, err)
		}
	}
	for _, m := range catalog.Modifications {
		m.Custom = false
		modification, err := domain.NewModificationBase(m)
		if err != nil {
			return result, fmt.Errorf("invalid modification %q: %w", m.ID, err)
		}
		switch err := s.modificationRepo.Create(ctx, modification); {
		case err == nil:
			result.ModificationsCreated++
		case errors.Is(err, models.ErrAlreadyExists):
			result.ModificationsSkipped++
		default:
			return result, fmt.Errorf("failed to import modification %q: %w", m.ID, err)
		}
	}
	s.logger.Info("Catalog imported",
		zap.Int("effectsCreated", result.EffectsCreated),
		zap.Int("effectsSkipped", result.EffectsSkipped),
		zap.Int("modificationsCreated", result.ModificationsCreated),
		zap.Int("modificationsSkipped", result.ModificationsSkipped),
	)
	return result, nil
}
