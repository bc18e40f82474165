package models

import "time"

// Base is the base model for relational entities. IDs are numeric and assigned
// by the store on insert.
type Base struct {
	ID        uint      `json:"id"       gorm:"primaryKey;autoIncrement"`
	CreatedAt time.Time `json:"created"`
	UpdatedAt time.Time `json:"modified"`
}
