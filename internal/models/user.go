package models

import (
	"gorm.io/gorm"
	"golang.org/x/crypto/bcrypt"
)

// User is an admin dashboard account.
type User struct {
	gorm.Model
	Username     string `json:"username" gorm:"column:username;unique;not null"`
	Password     string `json:"-" gorm:"-:all"` // Temporary field for password handling
	PasswordHash string `json:"-" gorm:"column:password_hash;not null"`
}

// TableName specifies the table name
func (User) TableName() string {
	return "users"
}

func (u *User) HashPassword() error {
	if u.Password == "" {
		return nil
	}
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
}
