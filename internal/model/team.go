package model

import (
	"strconv"
	"time"
)

// Team groups users through a many-to-many membership relation. Deleting a
// team removes the membership rows, never the users.
type Team struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `json:"nombre"`
	Description string    `json:"descripcion"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`

	Members []User `gorm:"many2many:team_users" json:"-"`
}

// Equals reports whether two teams denote the same entity. Unsaved teams
// (id zero) are compared by name; once both carry a persisted id, the id
// alone decides, even when the names differ.
func (t *Team) Equals(other *Team) bool {
	if other == nil {
		return false
	}
	if t.ID != 0 && other.ID != 0 {
		return t.ID == other.ID
	}
	return t.Name == other.Name
}

// HashKey mirrors Equals for use as a map key: the id when assigned, the
// name otherwise.
func (t *Team) HashKey() string {
	if t.ID != 0 {
		return "id:" + strconv.FormatUint(uint64(t.ID), 10)
	}
	return "name:" + t.Name
}
