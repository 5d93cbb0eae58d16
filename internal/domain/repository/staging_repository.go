package repository

import (
	"time"

	"github.com/tu-usuario/almacen-pro/internal/domain/entity"
)

// StagingFilter filtros combinables para entradas de staging.
// ExactDate tiene precedencia sobre el rango StartDate/EndDate.
type StagingFilter struct {
	QCStatus    string
	InvoiceNo   string
	ProductID   string
	WarehouseID string
	ExactDate   *time.Time
	StartDate   *time.Time
	EndDate     *time.Time
}

// StagingRepository define el puerto de persistencia para StagingEntry (DIP).
type StagingRepository interface {
	Create(entry *entity.StagingEntry) error
	GetByID(id string) (*entity.StagingEntry, error)
	// GetByIDForUpdate bloquea la fila (SELECT FOR UPDATE) para el guard de
	// estado terminal de recordQC y para putaway.
	GetByIDForUpdate(id string) (*entity.StagingEntry, error)
	Update(entry *entity.StagingEntry) error
	Filter(f StagingFilter) ([]*entity.StagingEntry, error)
	Delete(id string) error
}
