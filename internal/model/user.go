package model

import "time"

// User is a registered account. Passwords are stored and compared in plain
// text; hashing them would invalidate every existing row.
type User struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Email     string     `gorm:"uniqueIndex;not null" json:"email"`
	Name      string     `json:"nombre"`
	Password  string     `json:"-"`
	BirthDate *time.Time `json:"fechaNacimiento,omitempty"`
	Admin     bool       `json:"administrador"`
	Blocked   bool       `json:"bloqueado"`
	CreatedAt time.Time  `json:"-"`
	UpdatedAt time.Time  `json:"-"`

	Tasks []Task `gorm:"foreignKey:UserID" json:"-"`
	Teams []Team `gorm:"many2many:team_users" json:"-"`
}
