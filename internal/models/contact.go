package models

import "time"

// ContactStatus tracks the admin workflow for a submission.
type ContactStatus string

const (
	ContactNew      ContactStatus = "new"
	ContactRead     ContactStatus = "read"
	ContactReplied  ContactStatus = "replied"
	ContactArchived ContactStatus = "archived"
)

// ContactSubmission is one entry of the public contact funnel.
type ContactSubmission struct {
	ID        string        `json:"id"        bson:"_id"`
	Name      string        `json:"name"      bson:"name"`
	Email     string        `json:"email"     bson:"email"`
	Company   string        `json:"company,omitempty" bson:"company,omitempty"`
	Subject   string        `json:"subject"   bson:"subject"`
	Message   string        `json:"message"   bson:"message"`
	Status    ContactStatus `json:"status"    bson:"status"`
	CreatedAt time.Time     `json:"createdAt" bson:"createdAt"`
}
