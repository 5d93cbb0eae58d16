package usecase_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/almacen-pro/internal/application/dto"
	"github.com/tu-usuario/almacen-pro/internal/application/usecase"
	"github.com/tu-usuario/almacen-pro/internal/domain"
)

func newPriceUC(st *store) *usecase.PriceUseCase {
	return usecase.NewPriceUseCase(&memPriceRepo{st: st}, &memProductRepo{st: st})
}

func TestPriceCreate_Valido(t *testing.T) {
	st := seedStore()
	uc := newPriceUC(st)

	out, err := uc.Create(dto.CreatePriceRequest{
		ProductID:     testProductID,
		MRP:           decimal.NewFromFloat(15_000),
		MWP:           decimal.NewFromFloat(11_500),
		EffectiveFrom: "2025-02-01",
	})
	require.NoError(t, err)
	assert.Equal(t, testProductID, out.ProductID)
	assert.Equal(t, "2025-02-01", out.EffectiveFrom.Format("2006-01-02"))
	assert.True(t, out.MRP.Equal(decimal.NewFromFloat(15_000)))
}

// Sin effective_from el precio rige desde ahora.
func TestPriceCreate_FechaPorDefecto(t *testing.T) {
	uc := newPriceUC(seedStore())

	out, err := uc.Create(dto.CreatePriceRequest{
		ProductID: testProductID,
		MRP:       decimal.NewFromFloat(15_000),
		MWP:       decimal.NewFromFloat(11_500),
	})
	require.NoError(t, err)
	assert.False(t, out.EffectiveFrom.IsZero())
}

func TestPriceCreate_MontosNegativos(t *testing.T) {
	uc := newPriceUC(seedStore())

	_, err := uc.Create(dto.CreatePriceRequest{
		ProductID: testProductID,
		MRP:       decimal.NewFromFloat(-1),
		MWP:       decimal.NewFromFloat(11_500),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPriceCreate_ProductoInexistente(t *testing.T) {
	uc := newPriceUC(seedStore())

	_, err := uc.Create(dto.CreatePriceRequest{
		ProductID: "99999999-9999-9999-9999-999999999999",
		MRP:       decimal.NewFromFloat(1),
		MWP:       decimal.NewFromFloat(1),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPriceUpdate_MergeParcial(t *testing.T) {
	st := seedStore()
	uc := newPriceUC(st)

	created, err := uc.Create(dto.CreatePriceRequest{
		ProductID: testProductID,
		MRP:       decimal.NewFromFloat(15_000),
		MWP:       decimal.NewFromFloat(11_500),
	})
	require.NoError(t, err)

	newMRP := decimal.NewFromFloat(16_000)
	out, err := uc.Update(created.ID, dto.UpdatePriceRequest{MRP: &newMRP})
	require.NoError(t, err)

	assert.True(t, out.MRP.Equal(newMRP))
	assert.True(t, out.MWP.Equal(decimal.NewFromFloat(11_500)), "el campo ausente no debe cambiar")

	negative := decimal.NewFromFloat(-5)
	_, err = uc.Update(created.ID, dto.UpdatePriceRequest{MWP: &negative})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPriceListByProduct(t *testing.T) {
	st := seedStore()
	uc := newPriceUC(st)

	for _, d := range []string{"2025-01-01", "2025-02-01"} {
		_, err := uc.Create(dto.CreatePriceRequest{
			ProductID:     testProductID,
			MRP:           decimal.NewFromFloat(15_000),
			MWP:           decimal.NewFromFloat(11_500),
			EffectiveFrom: d,
		})
		require.NoError(t, err)
	}

	list, err := uc.ListByProduct(testProductID)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}
