package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringList is an ordered list of strings stored as a json column.
type StringList []string

// Value implements driver.Valuer. A nil list is stored as an empty
// json array so scans always round-trip to a non-nil list.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = StringList{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("unsupported type %T for StringList", value)
	}
}

// Equal reports whether both lists hold the same strings in the same
// order, treating nil and empty as equal.
func (l StringList) Equal(other []string) bool {
	if len(l) != len(other) {
		return false
	}
	for i := range l {
		if l[i] != other[i] {
			return false
		}
	}
	return true
}

// Question represents a practice question a user can attach to topics.
// WrongAnswers holds the distractors shown alongside the answer.
type Question struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	UserID       uint       `json:"-" gorm:"not null;index"`
	Name         string     `json:"name" gorm:"type:varchar(255);not null" example:"What is entropy?"`
	Answer       string     `json:"answer" gorm:"type:varchar(255)" example:"A measure of disorder"`
	WrongAnswers StringList `json:"wrong_answers" gorm:"type:jsonb"`

	Topics []Topic `json:"-" gorm:"many2many:topic_questions"`
	User   User    `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the Question model
func (Question) TableName() string {
	return "questions"
}

// UpdateQuestionRequest represents a partial update to a question
type UpdateQuestionRequest struct {
	Name         *string   `json:"name,omitempty"`
	Answer       *string   `json:"answer,omitempty"`
	WrongAnswers *[]string `json:"wrong_answers,omitempty"`
}
