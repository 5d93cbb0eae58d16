package entity

import "time"

// StockLine colocación física de parte de un lote sobre un pallet
// (par batch+pallet único). QuantityLeft nunca es negativo y una línea que
// llega a 0 se elimina del libro: su existencia misma señala "hay stock".
// StoredOn es inmutable y sirve de clave de ordenamiento FIFO.
type StockLine struct {
	ID           string
	BatchID      string
	PalletID     string
	QuantityLeft int64
	StoredOn     time.Time
}
