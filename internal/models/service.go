package models

import "time"

// QuestionType enumerates the intake-form field kinds a service can ask.
type QuestionType string

const (
	QuestionShortText      QuestionType = "short_text"
	QuestionLongText       QuestionType = "long_text"
	QuestionSelect         QuestionType = "select"
	QuestionMultipleSelect QuestionType = "multiple_select"
)

// FormQuestion is one field of a service's intake form.
type FormQuestion struct {
	ID          string       `json:"id"          bson:"id"`
	Label       string       `json:"label"       bson:"label"`
	Type        QuestionType `json:"type"        bson:"type"`
	Required    bool         `json:"required"    bson:"required"`
	Options     []string     `json:"options,omitempty"     bson:"options,omitempty"`
	Placeholder string       `json:"placeholder,omitempty" bson:"placeholder,omitempty"`
}

// Service is one productized offering in the catalog.
type Service struct {
	ID           string         `json:"id"           bson:"_id"`
	Title        string         `json:"title"        bson:"title"`
	Category     string         `json:"category"     bson:"category"`
	Description  string         `json:"description"  bson:"description"`
	Price        int            `json:"price"        bson:"price"`
	DeliveryDays int            `json:"deliveryTime" bson:"deliveryTime"`
	ImageURL     string         `json:"imageUrl,omitempty" bson:"imageUrl,omitempty"`
	FormSchema   []FormQuestion `json:"formSchema"   bson:"formSchema"`
	Active       bool           `json:"active"       bson:"active"`
	CreatedAt    time.Time      `json:"createdAt"    bson:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"    bson:"updatedAt"`
}
