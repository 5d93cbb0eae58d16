// Package allocation implementa la selección y el plan de descuento de stock
// como servicio de dominio puro: sin base de datos, sin transacciones.
// El caso de uso de ventas obtiene las líneas elegibles (ya bloqueadas en la
// transacción), y este paquete decide el orden y cuánto descontar de cada una.
package allocation

import (
	"sort"

	"github.com/tu-usuario/almacen-pro/internal/domain"
)

// Policy política de selección de líneas de stock.
type Policy string

const (
	// PolicyFIFO descuenta primero la línea almacenada hace más tiempo (stored_on ascendente).
	PolicyFIFO Policy = "FIFO"
	// PolicyFEFO descuenta primero la línea cuyo lote vence antes (expiry_date ascendente,
	// desempate por stored_on ascendente para que el plan sea determinista).
	PolicyFEFO Policy = "FEFO"
)

// FromFIFOFlag traduce el flag `fifo` del API a una política.
func FromFIFOFlag(fifo bool) Policy {
	if fifo {
		return PolicyFIFO
	}
	return PolicyFEFO
}

// Line línea de stock elegible para asignación: una StockLine junto con los
// datos del lote que necesita el ordenamiento FEFO.
type Line struct {
	LineID       string
	BatchID      string
	BatchNo      string
	PalletID     string
	QuantityLeft int64
	StoredOn     int64 // unix nanos de stored_on (clave FIFO)
	ExpiryUnix   int64 // unix de expiry_date del lote (clave FEFO)
}

// Step un paso del plan: cuánto descontar de una línea y si queda agotada.
type Step struct {
	Line      Line
	Deduct    int64
	Exhausted bool // true => la línea queda en 0 y debe eliminarse del libro
}

// Order devuelve una copia de las líneas ordenada según la política.
// FIFO: stored_on ascendente. FEFO: expiry ascendente, desempate stored_on.
// El sort es estable para que empates totales conserven el orden de entrada.
func Order(lines []Line, policy Policy) []Line {
	ordered := make([]Line, len(lines))
	copy(ordered, lines)
	switch policy {
	case PolicyFEFO:
		sort.SliceStable(ordered, func(i, j int) bool {
			if ordered[i].ExpiryUnix != ordered[j].ExpiryUnix {
				return ordered[i].ExpiryUnix < ordered[j].ExpiryUnix
			}
			return ordered[i].StoredOn < ordered[j].StoredOn
		})
	default: // FIFO
		sort.SliceStable(ordered, func(i, j int) bool {
			return ordered[i].StoredOn < ordered[j].StoredOn
		})
	}
	return ordered
}

// Available suma el stock disponible de las líneas.
func Available(lines []Line) int64 {
	var total int64
	for _, l := range lines {
		total += l.QuantityLeft
	}
	return total
}

// Plan construye el plan de descuento para una cantidad solicitada.
// Valida ANTES de planear: cero líneas => ErrNoStock; solicitado > disponible
// => ErrInsufficientStock. Garantiza que la suma de Deduct de los pasos es
// exactamente requested y que ningún paso excede el QuantityLeft de su línea.
func Plan(lines []Line, requested int64, policy Policy) ([]Step, error) {
	if requested <= 0 {
		return nil, domain.ErrInvalidInput
	}
	eligible := make([]Line, 0, len(lines))
	for _, l := range lines {
		if l.QuantityLeft > 0 {
			eligible = append(eligible, l)
		}
	}
	if len(eligible) == 0 {
		return nil, domain.ErrNoStock
	}
	if requested > Available(eligible) {
		return nil, domain.ErrInsufficientStock
	}

	ordered := Order(eligible, policy)
	steps := make([]Step, 0, len(ordered))
	remaining := requested
	for _, line := range ordered {
		if remaining <= 0 {
			break
		}
		deduct := line.QuantityLeft
		if remaining < deduct {
			deduct = remaining
		}
		steps = append(steps, Step{
			Line:      line,
			Deduct:    deduct,
			Exhausted: deduct == line.QuantityLeft,
		})
		remaining -= deduct
	}
	return steps, nil
}
