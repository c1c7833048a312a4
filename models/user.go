package models

import (
	"errors"
	"fmt"
	"net/url"

	goval "github.com/go-passwd/validator"
	"golang.org/x/crypto/bcrypt"
)

const avatarURLFormat = "https://ui-avatars.com/api/?name=%s&background=random"

// User represents a citizen or an official
type User struct {
	Model
	Name           string `json:"name" gorm:"not null"`
	Email          string `json:"email" gorm:"uniqueIndex;not null"`
	Role           Role   `json:"role" gorm:"type:varchar(16);not null;default:CITIZEN"`
	Points         int    `json:"points" gorm:"not null;default:0;check:points >= 0"`
	HashedPassword string `json:"-"`
	AvatarURL      string `json:"avatar_url"`
	DeviceToken    string `json:"-"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// VerifyPassword verifies the collected password with the user's hashed password
func (u *User) VerifyPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.HashedPassword), []byte(password))
}

// AvatarURLFor builds the generated avatar shown next to a user's name.
func AvatarURLFor(name string) string {
	return fmt.Sprintf(avatarURLFormat, url.QueryEscape(name))
}

func ValidatePassword(password string) error {
	passwordValidator := goval.New(goval.MinLength(6, errors.New("password cant be less than 6 characters")),
		goval.MaxLength(64, errors.New("password cant be more than 64 characters")))
	return passwordValidator.Validate(password)
}

type SignupRequest struct {
	Name     string `json:"name" binding:"required,min=2" conform:"trim"`
	Email    string `json:"email" binding:"required,email" conform:"trim,lower"`
	Password string `json:"password" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" conform:"trim,lower"`
	Password string `json:"password" binding:"required"`
}

type DeviceTokenRequest struct {
	Token string `json:"token" binding:"required" conform:"trim"`
}

type LoginResponse struct {
	User        *User  `json:"user"`
	AccessToken string `json:"access_token"`
}
