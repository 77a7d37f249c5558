package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Customer represents a buyer on sale invoices or a supplier on purchase
// invoices. State feeds the Tax Resolver once, at invoice creation; a
// later move to another state never re-classifies issued invoices.
type Customer struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name      string         `gorm:"type:varchar(255);not null" json:"name"`
	GSTIN     string         `gorm:"type:varchar(15)" json:"gstin"` // 15-char GST identification number, stored uppercase
	Phone     string         `gorm:"type:varchar(20)" json:"phone"`
	Email     string         `gorm:"type:varchar(255)" json:"email"`
	Street    string         `gorm:"type:text" json:"street"`
	City      string         `gorm:"type:varchar(100)" json:"city"`
	State     string         `gorm:"type:varchar(100);not null" json:"state"`
	Pincode   string         `gorm:"type:varchar(10)" json:"pincode"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
