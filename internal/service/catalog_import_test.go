package service_test

import (
	"testing"
	"testing/fstest"

	"github.com/Gaaaybe/Aetherium/internal/domain"
	"github.com/Gaaaybe/Aetherium/internal/repository"
	"github.com/Gaaaybe/Aetherium/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const effectsJSON = `[
  {"id": "dano", "nome": "Dano", "custoBase": 1, "descricao": "Causa dano",
   "parametrosPadrao": {"acao": 2, "alcance": 1, "duracao": 0}, "categorias": ["ofensivo"],
   "configuracoes": {"tipo": "select", "label": "Tipo", "opcoes": [
     {"id": "fisico", "nome": "Físico", "modificadorCusto": 0, "descricao": "Dano físico"}]}},
  {"id": "voo", "nome": "Voo", "custoBase": 2, "descricao": "Permite voar",
   "parametrosPadrao": {"acao": 1, "alcance": 0, "duracao": 2}, "categorias": ["movimento"], "custom": true}
]`

const modificationsJSON = `[
  {"id": "area", "nome": "Área", "tipo": "extra", "custoFixo": 0, "custoPorGrau": 1,
   "descricao": "Afeta uma área", "categoria": "alcance"}
]`

func TestReadCatalog(t *testing.T) {
	t.Run("reads both files", func(t *testing.T) {
		data, err := service.ReadCatalog(fstest.MapFS{
			service.EffectsCatalogFile:       {Data: []byte(effectsJSON)},
			service.ModificationsCatalogFile: {Data: []byte(modificationsJSON)},
		})
		require.NoError(t, err)
		require.Len(t, data.Effects, 2)
		require.Len(t, data.Modifications, 1)
		assert.Equal(t, domain.ModificationExtra, data.Modifications[0].Tipo)
		require.NotNil(t, data.Effects[0].Configuracoes)
		assert.Equal(t, "fisico", data.Effects[0].Configuracoes.Opcoes[0].ID)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := service.ReadCatalog(fstest.MapFS{
			service.EffectsCatalogFile: {Data: []byte(effectsJSON)},
		})
		assert.ErrorContains(t, err, service.ModificationsCatalogFile)
	})

	t.Run("broken json", func(t *testing.T) {
		_, err := service.ReadCatalog(fstest.MapFS{
			service.EffectsCatalogFile:       {Data: []byte(`[{"id": `)},
			service.ModificationsCatalogFile: {Data: []byte(modificationsJSON)},
		})
		assert.ErrorContains(t, err, "failed to parse")
	})
}

func TestImportCatalog(t *testing.T) {
	data, err := service.ReadCatalog(fstest.MapFS{
		service.EffectsCatalogFile:       {Data: []byte(effectsJSON)},
		service.ModificationsCatalogFile: {Data: []byte(modificationsJSON)},
	})
	require.NoError(t, err)

	effects := repository.NewInMemoryEffectRepository()
	mods := repository.NewInMemoryModificationRepository()
	svc := service.NewCatalogService(effects, mods, zap.NewNop())

	result, err := svc.ImportCatalog(t.Context(), data)
	require.NoError(t, err)
	assert.Equal(t, service.ImportResult{EffectsCreated: 2, ModificationsCreated: 1}, result)

	voo, err := effects.FindByID(t.Context(), "voo")
	require.NoError(t, err)
	assert.False(t, voo.Custom, "imported entries are official")

	again, err := svc.ImportCatalog(t.Context(), data)
	require.NoError(t, err)
	assert.Equal(t, service.ImportResult{EffectsSkipped: 2, ModificationsSkipped: 1}, again)

	t.Run("invalid entry aborts", func(t *testing.T) {
		bad := service.CatalogData{Effects: []domain.EffectBase{{ID: "quebrado", Nome: "Quebrado", CustoBase: -1, Descricao: "x"}}}
		_, err := svc.ImportCatalog(t.Context(), bad)
		assert.ErrorContains(t, err, "quebrado")
	})
}
