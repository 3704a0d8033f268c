package model

// Favorite links a user to a catalog sneaker id.
// A nil UserID marks an orphaned favorite whose owner was deleted.
type Favorite struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	UserID    *uint  `json:"user_id" gorm:"index"`
	SneakerID string `json:"sneaker_id" gorm:"size:255;not null;index"`

	// Relations
	User *User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
