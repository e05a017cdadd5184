package model

import "time"

// Unit is the fixed set of measurement units an article or ingredient can use.
//
// The values are the French labels the frontend displays and submits verbatim
// ("pièces", "boîtes", ...). Keeping the wire values as the enum values means
// no translation table between the API and storage.
type Unit string

const (
	UnitPieces  Unit = "pièces"
	UnitKg      Unit = "kg"
	UnitG       Unit = "g"
	UnitL       Unit = "L"
	UnitML      Unit = "mL"
	UnitBoites  Unit = "boîtes"
	UnitPaquets Unit = "paquets"
)

// ValidUnit reports whether u is one of the known unit symbols.
func ValidUnit(u Unit) bool {
	switch u {
	case UnitPieces, UnitKg, UnitG, UnitL, UnitML, UnitBoites, UnitPaquets:
		return true
	}
	return false
}

// StockStatus is the derived availability of an article. It is computed from
// quantity and threshold on demand, never stored.
type StockStatus string

const (
	StatusInStock    StockStatus = "in-stock"
	StatusLowStock   StockStatus = "low-stock"
	StatusOutOfStock StockStatus = "out-of-stock"
)

// Article is a tracked inventory item: how much of something is in the pantry
// and below which quantity it should be restocked.
type Article struct {
	ID        string    `json:"id"        db:"id"`
	Name      string    `json:"name"      db:"name"`
	Quantity  float64   `json:"quantity"  db:"quantity"`  // current stock, never negative
	Unit      Unit      `json:"unit"      db:"unit"`
	Threshold float64   `json:"threshold" db:"threshold"` // reorder threshold, never negative
	UserID    string    `json:"userId"    db:"user_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// Status derives the stock state from quantity and threshold:
// quantity 0 → out-of-stock, 0 < quantity ≤ threshold → low-stock,
// otherwise in-stock.
func (a *Article) Status() StockStatus {
	switch {
	case a.Quantity == 0:
		return StatusOutOfStock
	case a.Quantity <= a.Threshold:
		return StatusLowStock
	default:
		return StatusInStock
	}
}
