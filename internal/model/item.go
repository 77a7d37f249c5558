package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Item represents a catalog entry. Its selling price and GST rate are
// snapshotted onto invoice lines at add-time — editing the catalog later
// must not retroactively alter issued invoices.
type Item struct {
	ID            uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name          string          `gorm:"type:varchar(255);not null" json:"name"`
	Description   string          `gorm:"type:text" json:"description"`
	HSNCode       string          `gorm:"type:varchar(8)" json:"hsn_code"` // Harmonized System Nomenclature classification
	Unit          string          `gorm:"type:varchar(20);not null;default:'kg'" json:"unit"`
	PurchasePrice decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"purchase_price"`
	SellingPrice  decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"selling_price"`
	GSTRate       decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0" json:"gst_rate"` // One of the legal slabs: 0, 5, 12, 18, 28
	StockQuantity decimal.Decimal `gorm:"type:decimal(18,3);not null;default:0" json:"stock_quantity"`
	MinStockLevel decimal.Decimal `gorm:"type:decimal(18,3);not null;default:0" json:"min_stock_level"`
	IsActive      bool            `gorm:"default:true" json:"is_active"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `gorm:"index" json:"-"`
}
