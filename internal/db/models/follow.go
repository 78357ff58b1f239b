package models

// Follow links a follower (User) to an author.
type Follow struct {
	ID       uint `gorm:"primaryKey"`
	UserID   uint `gorm:"uniqueIndex:idx_follow_pair;not null"`
	User     User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	AuthorID uint `gorm:"uniqueIndex:idx_follow_pair;index;not null"`
	Author   User `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
}
