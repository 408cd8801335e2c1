package models

import "time"

// MessageResourceDB is a contact-form message stored in the DB
type MessageResourceDB struct {
	ID        string    `bson:"_id"`
	Name      string    `bson:"name"`
	Email     string    `bson:"email"`
	Subject   string    `bson:"subject"`
	Message   string    `bson:"message"`
	CreatedAt time.Time `bson:"created_at,omitempty"`
}
