package models

import "time"

// ImagePrefix is the object key prefix of uploaded recipe images.
const ImagePrefix = "recipes/"

// Recipe is a published recipe. Deleting its author deletes it,
// deleting its group only unlinks it.
type Recipe struct {
	ID          uint   `gorm:"primaryKey"`
	Title       string `gorm:"size:200;not null"`
	Description string `gorm:"type:text;not null"`
	Ingredients string `gorm:"type:text;not null"`
	Technology  string `gorm:"type:text;not null"`
	// PubDate is set once on insert.
	PubDate time.Time `gorm:"autoCreateTime;index;not null"`
	// Image is the media object key, empty when the recipe has none.
	Image string `gorm:"size:255"`

	AuthorID uint   `gorm:"index;not null"`
	Author   User   `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	GroupID  *uint  `gorm:"index"`
	Group    *Group `gorm:"foreignKey:GroupID;constraint:OnDelete:SET NULL"`

	Comments []Comment `gorm:"foreignKey:RecipeID"`
}

// HasImage reports whether an image is attached.
func (r Recipe) HasImage() bool {
	return r.Image != ""
}
