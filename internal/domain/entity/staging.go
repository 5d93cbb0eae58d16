package entity

import "time"

// Estados de control de calidad de una entrada en staging.
const (
	QCStatusHold     = "HOLD"
	QCStatusApproved = "APPROVED"
	QCStatusRejected = "REJECTED"
)

// StagingEntry línea de factura recibida en espera de control de calidad.
// Nace en HOLD con cantidades en cero; recordQC la lleva una sola vez a un
// estado terminal. ApprovedQuantity+RejectedQuantity nunca excede TotalQuantity.
// QCStatus es la disposición global; las cantidades desglosan la clasificación.
type StagingEntry struct {
	ID               string
	ProductID        string
	WarehouseID      string
	InvoiceNo        string
	ReceivedOn       time.Time
	TotalQuantity    int64
	QCStatus         string
	QCDoneOn         *time.Time
	ApprovedQuantity int64
	RejectedQuantity int64
	PutAway          bool // true cuando la cantidad aprobada ya se materializó en una StockLine
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
