package models

import "time"

type Division struct {
	ID        int       `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Quota     *int      `json:"quota,omitempty" db:"quota"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
