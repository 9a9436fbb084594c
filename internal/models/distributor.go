package models

import (
	"time"
)

type Distributor struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	CompanyName   string    `gorm:"size:150;not null" json:"company_name"`
	ContactPerson string    `gorm:"size:100" json:"contact_person"`
	Mobile        string    `gorm:"size:15" json:"mobile"`
	Address       string    `gorm:"type:text" json:"address"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	Products      []Product `gorm:"foreignKey:DistributorID" json:"products,omitempty"`
}
