package models

// Group is a recipe category.
type Group struct {
	ID          uint   `gorm:"primaryKey"`
	Title       string `gorm:"size:200;not null"`
	Slug        string `gorm:"uniqueIndex;size:50;not null"`
	Description string `gorm:"type:text;not null"`
}

// TableName keeps clear of the reserved word GROUPS in mysql 8.
func (Group) TableName() string {
	return "recipe_groups"
}
