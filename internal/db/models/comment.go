package models

import "time"

// Comment is a remark left on a recipe.
type Comment struct {
	ID       uint   `gorm:"primaryKey"`
	RecipeID uint   `gorm:"index;not null"`
	Recipe   Recipe `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
	AuthorID uint   `gorm:"index;not null"`
	Author   User   `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	Text     string `gorm:"type:text;not null"`
	// Created is set once on insert.
	Created time.Time `gorm:"autoCreateTime;index;not null"`
}
