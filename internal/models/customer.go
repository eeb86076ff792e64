package models

import "time"

// Walk-in or online customer, no login, scoped to its salon. A salon
// holds at most one customer per phone number; phoneless rows created by
// staff are exempt.
type Customer struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	SalonID uint `gorm:"index;not null;uniqueIndex:idx_customers_salon_phone" json:"salon_id"`

	Name  string `gorm:"size:100;not null" json:"name"`
	Phone string `gorm:"size:20;uniqueIndex:idx_customers_salon_phone,where:phone <> ''" json:"phone"`
	Email string `gorm:"size:100" json:"email"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
