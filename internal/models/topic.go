package models

import (
	"time"
)

// Topic represents a subject a user is studying. It is the aggregate
// root for tags, resources and questions: attribute records are
// attached to topics through unordered many-to-many relationships and
// always belong to the same user as the topic.
type Topic struct {
	ID     uint `json:"id" gorm:"primaryKey"`
	UserID uint `json:"-" gorm:"not null;index"`

	Title string `json:"title" gorm:"type:varchar(255);not null" example:"Thermodynamics"`
	Notes string `json:"notes" gorm:"type:text" example:"Focus on the second law"`

	// Refreshed on every create and update, including updates that only
	// touch the attached collections.
	LastModified time.Time `json:"last_modified" gorm:"autoUpdateTime"`

	// Relationships. Deleting a topic removes only the join rows; the
	// attribute records themselves survive.
	Tags      []Tag      `json:"tags" gorm:"many2many:topic_tags;constraint:OnDelete:CASCADE"`
	Resources []Resource `json:"resources" gorm:"many2many:topic_resources;constraint:OnDelete:CASCADE"`
	Questions []Question `json:"questions" gorm:"many2many:topic_questions;constraint:OnDelete:CASCADE"`

	User User `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the Topic model
func (Topic) TableName() string {
	return "topics"
}

// TagSpec identifies or describes a tag inside a nested topic payload.
type TagSpec struct {
	Name string `json:"name" example:"physics"`
}

// ResourceSpec identifies or describes a resource inside a nested topic
// payload. Matching uses only the fields that are present.
type ResourceSpec struct {
	Name *string `json:"name,omitempty" example:"Lecture notes"`
	Link *string `json:"link,omitempty" example:"https://example.com/notes.pdf"`
}

// QuestionSpec identifies or describes a question inside a nested topic
// payload. Matching uses only the fields that are present.
type QuestionSpec struct {
	Name         *string   `json:"name,omitempty" example:"What is entropy?"`
	Answer       *string   `json:"answer,omitempty" example:"A measure of disorder"`
	WrongAnswers *[]string `json:"wrong_answers,omitempty"`
}

// CreateTopicRequest represents the request to create a new topic.
// The title requirement is enforced by the topic service so the check
// sits next to the rest of the validation.
type CreateTopicRequest struct {
	Title     string         `json:"title" example:"Thermodynamics"`
	Notes     string         `json:"notes,omitempty"`
	Tags      []TagSpec      `json:"tags,omitempty"`
	Resources []ResourceSpec `json:"resources,omitempty"`
	Questions []QuestionSpec `json:"questions,omitempty"`
}

// UpdateTopicRequest represents a full (PUT) or partial (PATCH) update
// to a topic. Pointer fields distinguish absent keys from empty values:
// a nested key that is present, even as an empty list, clears and
// replaces that collection; an absent key leaves it untouched.
type UpdateTopicRequest struct {
	Title     *string         `json:"title,omitempty"`
	Notes     *string         `json:"notes,omitempty"`
	Tags      *[]TagSpec      `json:"tags,omitempty"`
	Resources *[]ResourceSpec `json:"resources,omitempty"`
	Questions *[]QuestionSpec `json:"questions,omitempty"`
}

// TopicFilter restricts a topic listing to topics carrying at least one
// attribute id of each supplied kind.
type TopicFilter struct {
	TagIDs      []uint
	ResourceIDs []uint
	QuestionIDs []uint
}

// Empty reports whether no filtering was requested.
func (f TopicFilter) Empty() bool {
	return len(f.TagIDs) == 0 && len(f.ResourceIDs) == 0 && len(f.QuestionIDs) == 0
}

// TopicListItem is the summary view returned by the list endpoint.
// Notes are only included in the detail view.
type TopicListItem struct {
	ID           uint      `json:"id" example:"1"`
	Title        string    `json:"title" example:"Thermodynamics"`
	LastModified time.Time `json:"last_modified"`
	Tags         []Tag     `json:"tags"`
}
