package service

import (
	"context"
	"fmt"

	"github.com/Gaaaybe/Aetherium/internal/domain"
	"github.com/Gaaaybe/Aetherium/internal/interfaces"
	"github.com/Gaaaybe/Aetherium/internal/metrics"
	"github.com/Gaaaybe/Aetherium/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CostInput - эффекты и глобальные модификации силы в порядке применения.
type CostInput struct {
	Effects             []domain.AppliedEffect
	GlobalModifications []domain.AppliedModification
}

// CostResult - итоговая стоимость и стоимость каждого эффекта по его id.
type CostResult struct {
	CustoTotal     domain.PowerCost
	CustoPorEfeito map[uuid.UUID]domain.PowerCost
}

// ApplyTo возвращает копии эффектов с рассчитанной стоимостью.
func (r CostResult) ApplyTo(effects []domain.AppliedEffect) []domain.AppliedEffect {
	out := make([]domain.AppliedEffect, len(effects))
	for i, e := range effects {
		if custo, ok := r.CustoPorEfeito[e.ID()]; ok {
			e = e.WithCost(custo)
		}
		out[i] = e
	}
	return out
}

// PowerCostCalculator считает стоимость силы по каталогу эффектов и модификаций.
type PowerCostCalculator interface {
	Calculate(ctx context.Context, input CostInput) (CostResult, error)
}

type powerCostCalculatorImpl struct {
	effectRepo       interfaces.EffectRepository
	modificationRepo interfaces.ModificationRepository
	logger           *zap.Logger
}

func NewPowerCostCalculator(
	effectRepo interfaces.EffectRepository,
	modificationRepo interfaces.ModificationRepository,
	logger *zap.Logger,
) PowerCostCalculator {
	return &powerCostCalculatorImpl{
		effectRepo:       effectRepo,
		modificationRepo: modificationRepo,
		logger:           logger.Named("PowerCostCalculator"),
	}
}

// Calculate применяет правила в порядке входа:
// базовая стоимость × grau, конфигурация × grau, локальные модификации × grau эффекта,
// затем глобальные модификации наращивают итог PdA по очереди (total += custoMod × total).
// Espaços - простая сумма по эффектам, PE всегда 0.
func (c *powerCostCalculatorImpl) Calculate(ctx context.Context, input CostInput) (CostResult, error) {
	result, err := c.calculate(ctx, input)
	if err != nil {
		metrics.CostCalculationsTotal.WithLabelValues(metrics.StatusFailure).Inc()
		return CostResult{}, err
	}
	metrics.CostCalculationsTotal.WithLabelValues(metrics.StatusSuccess).Inc()
	return result, nil
}

func (c *powerCostCalculatorImpl) calculate(ctx context.Context, input CostInput) (CostResult, error) {
	logFields := []zap.Field{
		zap.Int("effects", len(input.Effects)),
		zap.Int("globalModifications", len(input.GlobalModifications)),
	}
	c.logger.Debug("Calculating power cost", logFields...)

	lookup := newCatalogLookup(c.effectRepo, c.modificationRepo)
	perEffect := make(map[uuid.UUID]domain.PowerCost, len(input.Effects))
	totalPdA, totalEspacos := 0, 0

	for _, effect := range input.Effects {
		base, err := lookup.effect(ctx, effect.EffectBaseID())
		if err != nil {
			c.logger.Warn("Effect lookup failed", append(logFields, zap.String("effectBaseID", effect.EffectBaseID()), zap.Error(err))...)
			return CostResult{}, err
		}

		grau := effect.Grau()
		pda := base.CustoBase * grau
		espacos := base.CustoBase * grau

		if id := effect.ConfiguracaoID(); id != "" {
			if opt, ok := base.GetConfiguracao(id); ok {
				pda += opt.ModificadorCusto * grau
			}
		}

		for _, mod := range effect.Modifications() {
			custoMod, err := lookup.modificationCost(ctx, mod)
			if err != nil {
				c.logger.Warn("Local modification lookup failed", append(logFields, zap.String("modificationBaseID", mod.ModificationBaseID()), zap.Error(err))...)
				return CostResult{}, err
			}
			pda += custoMod * grau
		}

		custo, err := domain.NewPowerCost(max(pda, 0), 0, max(espacos, 0))
		if err != nil {
			return CostResult{}, fmt.Errorf("effect %s: %w", effect.EffectBaseID(), err)
		}
		perEffect[effect.ID()] = custo
		totalPdA += custo.PdA()
		totalEspacos += custo.Espacos()
	}

	for _, mod := range input.GlobalModifications {
		custoMod, err := lookup.modificationCost(ctx, mod)
		if err != nil {
			c.logger.Warn("Global modification lookup failed", append(logFields, zap.String("modificationBaseID", mod.ModificationBaseID()), zap.Error(err))...)
			return CostResult{}, err
		}
		totalPdA = compoundPdA(totalPdA, custoMod)
	}

	total, err := domain.NewPowerCost(max(totalPdA, 0), 0, max(totalEspacos, 0))
	if err != nil {
		return CostResult{}, fmt.Errorf("power total: %w", err)
	}

	c.logger.Debug("Power cost calculated", append(logFields, zap.Int("pda", total.PdA()), zap.Int("espacos", total.Espacos()))...)
	return CostResult{CustoTotal: total, CustoPorEfeito: perEffect}, nil
}

// pdaOverflow - значение, к которому прижимается итог за пределами MaxPdA.
const pdaOverflow = domain.MaxPdA + 1

// compoundPdA считает total + custoMod × total без переполнения int.
// Итог за пределами MaxPdA прижимается к ±pdaOverflow со знаком произведения,
// нулевой множитель по-прежнему обнуляет итог.
func compoundPdA(total, custoMod int) int {
	factor := 1 + custoMod
	if total == 0 || factor == 0 {
		return 0
	}
	sign := 1
	if (total < 0) != (factor < 0) {
		sign = -1
	}
	if absInt(total) > domain.MaxPdA || absInt(factor) > pdaOverflow {
		return sign * pdaOverflow
	}
	product := total * factor
	if absInt(product) > domain.MaxPdA {
		return sign * pdaOverflow
	}
	return product
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// catalogLookup запоминает записи каталога на время одного расчета.
type catalogLookup struct {
	effectRepo       interfaces.EffectRepository
	modificationRepo interfaces.ModificationRepository
	effects          map[string]*domain.EffectBase
	modifications    map[string]*domain.ModificationBase
}

func newCatalogLookup(effectRepo interfaces.EffectRepository, modificationRepo interfaces.ModificationRepository) *catalogLookup {
	return &catalogLookup{
		effectRepo:       effectRepo,
		modificationRepo: modificationRepo,
		effects:          make(map[string]*domain.EffectBase),
		modifications:    make(map[string]*domain.ModificationBase),
	}
}

func (l *catalogLookup) effect(ctx context.Context, id string) (*domain.EffectBase, error) {
	if e, ok := l.effects[id]; ok {
		return e, nil
	}
	e, err := l.effectRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load effect %s: %w", id, err)
	}
	if e == nil {
		return nil, fmt.Errorf("effect %s: %w", id, models.ErrResourceNotFound)
	}
	l.effects[id] = e
	return e, nil
}

// modificationCost возвращает custoFixo + custoPorGrau × (grau ?? 1).
func (l *catalogLookup) modificationCost(ctx context.Context, mod domain.AppliedModification) (int, error) {
	id := mod.ModificationBaseID()
	m, ok := l.modifications[id]
	if !ok {
		var err error
		m, err = l.modificationRepo.FindByID(ctx, id)
		if err != nil {
			return 0, fmt.Errorf("failed to load modification %s: %w", id, err)
		}
		if m == nil {
			return 0, fmt.Errorf("modification %s: %w", id, models.ErrResourceNotFound)
		}
		l.modifications[id] = m
	}
	return m.CustoFixo + m.CustoPorGrau*mod.GrauOrDefault(), nil
}

// CostService - прикладной сценарий расчета стоимости без сохранения.
type CostService interface {
	CalculatePowerCost(ctx context.Context, effects []domain.AppliedEffect, globalModifications []domain.AppliedModification) (CostResult, error)
}

type costServiceImpl struct {
	calculator PowerCostCalculator
}

func NewCostService(calculator PowerCostCalculator) CostService {
	return &costServiceImpl{calculator: calculator}
}

func (s *costServiceImpl) CalculatePowerCost(ctx context.Context, effects []domain.AppliedEffect, globalModifications []domain.AppliedModification) (CostResult, error) {
	return s.calculator.Calculate(ctx, CostInput{Effects: effects, GlobalModifications: globalModifications})
}
