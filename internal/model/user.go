package model

import (
	"time"

	"gorm.io/gorm"
)

// User is a registered account holder.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"uniqueIndex;size:255;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"column:password;size:255;not null"` // Never expose in JSON
	FullName     string    `json:"full_name" gorm:"size:255;not null"`
	JoinDate     time.Time `json:"join_date" gorm:"not null"`
}

// BeforeCreate stamps the join date when the caller left it empty.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.JoinDate.IsZero() {
		u.JoinDate = time.Now().UTC()
	}
	return nil
}
