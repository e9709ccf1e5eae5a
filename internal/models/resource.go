package models

// Resource represents a study link a user can attach to topics
type Resource struct {
	ID     uint   `json:"id" gorm:"primaryKey"`
	UserID uint   `json:"-" gorm:"not null;index"`
	Name   string `json:"name" gorm:"type:varchar(255);not null" example:"Lecture notes"`
	Link   string `json:"link" gorm:"type:varchar(255);not null" example:"https://example.com/notes.pdf"`

	Topics []Topic `json:"-" gorm:"many2many:topic_resources"`
	User   User    `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the Resource model
func (Resource) TableName() string {
	return "resources"
}

// UpdateResourceRequest represents a partial update to a resource.
// The link, when supplied, must be a valid http or https URL.
type UpdateResourceRequest struct {
	Name *string `json:"name,omitempty" example:"Course textbook"`
	Link *string `json:"link,omitempty" example:"https://example.com/book"`
}
