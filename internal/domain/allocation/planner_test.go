package allocation_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/almacen-pro/internal/domain"
	"github.com/tu-usuario/almacen-pro/internal/domain/allocation"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

var baseTime = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

// line construye una línea con stored_on y expiry relativos en días a baseTime.
func line(id string, qty int64, storedDay, expiryDay int) allocation.Line {
	return allocation.Line{
		LineID:       id,
		BatchID:      "batch-" + id,
		BatchNo:      "LOT-" + id,
		PalletID:     "pallet-" + id,
		QuantityLeft: qty,
		StoredOn:     baseTime.AddDate(0, 0, storedDay).UnixNano(),
		ExpiryUnix:   baseTime.AddDate(0, 0, expiryDay).Unix(),
	}
}

func deductTotal(steps []allocation.Step) int64 {
	var total int64
	for _, s := range steps {
		total += s.Deduct
	}
	return total
}

// ──────────────────────────────────────────────────────────────────────────────
// Ordenamiento
// ──────────────────────────────────────────────────────────────────────────────

// FIFO: la línea almacenada hace más tiempo sale primero, aunque venza después.
func TestOrder_FIFO_PorFechaDeAlmacenado(t *testing.T) {
	lines := []allocation.Line{
		line("b", 10, 5, 30), // almacenada después
		line("a", 10, 1, 90), // almacenada primero, vence último
	}

	ordered := allocation.Order(lines, allocation.PolicyFIFO)

	assert.Equal(t, "a", ordered[0].LineID, "FIFO debe priorizar la línea más antigua")
	assert.Equal(t, "b", ordered[1].LineID)
}

// FEFO: el lote que vence antes sale primero, aunque haya llegado después.
func TestOrder_FEFO_PorFechaDeVencimiento(t *testing.T) {
	lines := []allocation.Line{
		line("a", 10, 1, 90),
		line("b", 10, 5, 30), // vence primero
	}

	ordered := allocation.Order(lines, allocation.PolicyFEFO)

	assert.Equal(t, "b", ordered[0].LineID, "FEFO debe priorizar el lote que vence antes")
	assert.Equal(t, "a", ordered[1].LineID)
}

// FEFO con empate de vencimiento: desempata por stored_on ascendente.
func TestOrder_FEFO_EmpateDesempataPorAlmacenado(t *testing.T) {
	lines := []allocation.Line{
		line("b", 10, 5, 30),
		line("a", 10, 1, 30), // mismo vencimiento, almacenada antes
	}

	ordered := allocation.Order(lines, allocation.PolicyFEFO)

	assert.Equal(t, "a", ordered[0].LineID)
	assert.Equal(t, "b", ordered[1].LineID)
}

// Order no debe mutar el slice de entrada.
func TestOrder_NoMutaEntrada(t *testing.T) {
	lines := []allocation.Line{
		line("b", 10, 5, 30),
		line("a", 10, 1, 90),
	}

	_ = allocation.Order(lines, allocation.PolicyFIFO)

	assert.Equal(t, "b", lines[0].LineID, "el slice original debe conservar su orden")
}

func TestFromFIFOFlag(t *testing.T) {
	assert.Equal(t, allocation.PolicyFIFO, allocation.FromFIFOFlag(true))
	assert.Equal(t, allocation.PolicyFEFO, allocation.FromFIFOFlag(false))
}

// ──────────────────────────────────────────────────────────────────────────────
// Plan
// ──────────────────────────────────────────────────────────────────────────────

// El plan reparte exactamente la cantidad solicitada a través de varias líneas
// y marca como agotadas solo las líneas que quedan en cero.
func TestPlan_RepartoExactoYAgotamiento(t *testing.T) {
	lines := []allocation.Line{
		line("a", 10, 1, 30),
		line("b", 20, 2, 60),
		line("c", 30, 3, 90),
	}

	steps, err := allocation.Plan(lines, 25, allocation.PolicyFIFO)
	require.NoError(t, err)
	require.Len(t, steps, 2)

	assert.Equal(t, int64(25), deductTotal(steps), "la suma de los pasos debe ser lo solicitado")

	// Línea "a" agotada por completo, "b" parcial.
	assert.Equal(t, "a", steps[0].Line.LineID)
	assert.Equal(t, int64(10), steps[0].Deduct)
	assert.True(t, steps[0].Exhausted, "una línea descontada a cero debe marcarse agotada")

	assert.Equal(t, "b", steps[1].Line.LineID)
	assert.Equal(t, int64(15), steps[1].Deduct)
	assert.False(t, steps[1].Exhausted)
}

// Solicitar exactamente el total disponible agota todas las líneas.
func TestPlan_TotalDisponibleAgotaTodo(t *testing.T) {
	lines := []allocation.Line{
		line("a", 10, 1, 30),
		line("b", 5, 2, 60),
	}

	steps, err := allocation.Plan(lines, 15, allocation.PolicyFIFO)
	require.NoError(t, err)
	require.Len(t, steps, 2)
	for _, s := range steps {
		assert.True(t, s.Exhausted)
	}
}

// FEFO cambia qué línea absorbe el descuento.
func TestPlan_FEFODescuentaDelQueVencePrimero(t *testing.T) {
	lines := []allocation.Line{
		line("a", 10, 1, 90),
		line("b", 10, 5, 30), // vence primero
	}

	steps, err := allocation.Plan(lines, 4, allocation.PolicyFEFO)
	require.NoError(t, err)
	require.Len(t, steps, 1)
	assert.Equal(t, "b", steps[0].Line.LineID)
	assert.Equal(t, int64(4), steps[0].Deduct)
	assert.False(t, steps[0].Exhausted)
}

// Cantidad solicitada inválida.
func TestPlan_CantidadInvalida(t *testing.T) {
	lines := []allocation.Line{line("a", 10, 1, 30)}

	_, err := allocation.Plan(lines, 0, allocation.PolicyFIFO)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = allocation.Plan(lines, -3, allocation.PolicyFIFO)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Sin líneas elegibles => NO_STOCK; con stock pero insuficiente => INSUFFICIENT_STOCK.
func TestPlan_ErroresDeDisponibilidad(t *testing.T) {
	_, err := allocation.Plan(nil, 5, allocation.PolicyFIFO)
	assert.ErrorIs(t, err, domain.ErrNoStock, "sin líneas debe ser NO_STOCK")

	// Líneas presentes pero todas en cero cuentan como sin stock.
	zero := []allocation.Line{line("a", 0, 1, 30)}
	_, err = allocation.Plan(zero, 5, allocation.PolicyFIFO)
	assert.ErrorIs(t, err, domain.ErrNoStock)

	some := []allocation.Line{line("a", 3, 1, 30)}
	_, err = allocation.Plan(some, 5, allocation.PolicyFIFO)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock,
		"stock parcial no debe descontarse: todo o nada")
}

// La validación de disponibilidad ocurre antes de cualquier paso: un plan con
// error no devuelve pasos parciales.
func TestPlan_SinPasosParcialesEnError(t *testing.T) {
	lines := []allocation.Line{
		line("a", 3, 1, 30),
		line("b", 4, 2, 60),
	}

	steps, err := allocation.Plan(lines, 100, allocation.PolicyFIFO)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Nil(t, steps)
}
