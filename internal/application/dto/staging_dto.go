package dto

import "time"

// CreateStagingRequest entrada recibida (línea de factura) que queda en HOLD
// a la espera de control de calidad.
type CreateStagingRequest struct {
	ProductID     string `json:"product_id" validate:"required,uuid"`
	WarehouseID   string `json:"warehouse_id" validate:"required,uuid"`
	InvoiceNo     string `json:"invoice_no" validate:"required,min=1,max=100"`
	ReceivedOn    string `json:"received_on" validate:"omitempty,datetime=2006-01-02"`
	TotalQuantity int64  `json:"total_quantity" validate:"required,gt=0"`
}

// RecordQCRequest disposición de control de calidad. approved+rejected no
// puede exceder total_quantity; una entrada solo acepta QC una vez.
type RecordQCRequest struct {
	QCStatus         string `json:"qc_status" validate:"required,oneof=APPROVED REJECTED"`
	ApprovedQuantity int64  `json:"approved_quantity" validate:"min=0"`
	RejectedQuantity int64  `json:"rejected_quantity" validate:"min=0"`
}

// PutAwayRequest materializa la cantidad aprobada de una entrada APPROVED
// como línea de stock sobre un pallet.
type PutAwayRequest struct {
	BatchID  string `json:"batch_id" validate:"required,uuid"`
	PalletID string `json:"pallet_id" validate:"required,uuid"`
}

// StagingFilterRequest filtros de consulta (query params).
// exact_date tiene precedencia sobre start_date/end_date.
type StagingFilterRequest struct {
	QCStatus    string `query:"qc_status" validate:"omitempty,oneof=HOLD APPROVED REJECTED"`
	InvoiceNo   string `query:"invoice_no"`
	ProductID   string `query:"product_id" validate:"omitempty,uuid"`
	WarehouseID string `query:"warehouse_id" validate:"omitempty,uuid"`
	ExactDate   string `query:"exact_date" validate:"omitempty,datetime=2006-01-02"`
	StartDate   string `query:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate     string `query:"end_date" validate:"omitempty,datetime=2006-01-02"`
}

type StagingResponse struct {
	ID               string     `json:"id"`
	ProductID        string     `json:"product_id"`
	WarehouseID      string     `json:"warehouse_id"`
	InvoiceNo        string     `json:"invoice_no"`
	ReceivedOn       time.Time  `json:"received_on"`
	TotalQuantity    int64      `json:"total_quantity"`
	QCStatus         string     `json:"qc_status"`
	QCDoneOn         *time.Time `json:"qc_done_on,omitempty"`
	ApprovedQuantity int64      `json:"approved_quantity"`
	RejectedQuantity int64      `json:"rejected_quantity"`
	PutAway          bool       `json:"put_away"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}
