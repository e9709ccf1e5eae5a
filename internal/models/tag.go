package models

// Tag represents a label a user can attach to topics for filtering
type Tag struct {
	ID     uint   `json:"id" gorm:"primaryKey"`
	UserID uint   `json:"-" gorm:"not null;index"`
	Name   string `json:"name" gorm:"type:varchar(255);not null" example:"physics"`

	Topics []Topic `json:"-" gorm:"many2many:topic_tags"`
	User   User    `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the Tag model
func (Tag) TableName() string {
	return "tags"
}

// UpdateTagRequest represents the request to rename a tag. The name
// requirement is enforced by the attribute service.
type UpdateTagRequest struct {
	Name string `json:"name" example:"chemistry"`
}
