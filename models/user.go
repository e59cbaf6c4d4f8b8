package models

import (
	"errors"
	"fmt"

	goval "github.com/go-passwd/validator"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/leebenson/conform"
	"golang.org/x/crypto/bcrypt"
)

const (
	RoleCitizen    = "citizen"
	RoleGovernment = "government"
)

// User represents a citizen account. RewardPoints is mutated only by the
// point-awarding and point-spending paths and never goes negative.
type User struct {
	Model
	Fullname       string `json:"fullname" conform:"trim"`
	Email          string `json:"email" gorm:"unique;not null" binding:"required,email"`
	Password       string `json:"password,omitempty" gorm:"-" validate:"omitempty,min=4"`
	HashedPassword string `json:"-"`
	Role           string `json:"role" gorm:"default:citizen"`
	RewardPoints   int    `json:"reward_points" gorm:"default:0"`
	State          string `json:"state"`
	District       string `json:"district"`
	City           string `json:"city"`
	Taluka         string `json:"taluka"`
	IsBlocked      bool   `json:"is_blocked" gorm:"default:false"`
}

// GovernmentBody is a government verifier account, identified by GovID
// rather than email.
type GovernmentBody struct {
	Model
	GovID          string `json:"gov_id" gorm:"unique;not null"`
	Name           string `json:"name" conform:"trim"`
	HashedPassword string `json:"-"`
	City           string `json:"city"`
	State          string `json:"state"`
	District       string `json:"district"`
	Taluka         string `json:"taluka"`
}

// Blacklist holds revoked access tokens.
type Blacklist struct {
	Model
	Token string `json:"token"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type GovLoginRequest struct {
	GovID    string `json:"gov_id" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type CreateGovRequest struct {
	GovID    string `json:"gov_id" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required"`
	City     string `json:"city" binding:"required"`
	State    string `json:"state"`
	District string `json:"district"`
	Taluka   string `json:"taluka"`
}

type UserResponse struct {
	ID           uint   `json:"id"`
	Fullname     string `json:"fullname"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	RewardPoints int    `json:"reward_points"`
}

type LoginResponse struct {
	UserResponse
	AccessToken string `json:"access_token"`
}

// UserStats summarises a user's submissions for the dashboard.
type UserStats struct {
	Hotspots int64 `json:"hotspots"`
	Verified int64 `json:"verified"`
	Cleaned  int64 `json:"cleaned"`
	Requests int64 `json:"requests"`
}

func ValidatePassword(password string) error {
	passwordValidator := goval.New(goval.MinLength(6, errors.New("password cant be less than 6 characters")),
		goval.MaxLength(15, errors.New("password cant be more than 15 characters")))
	return passwordValidator.Validate(password)
}

func validateWhiteSpaces(data interface{}) error {
	return conform.Strings(data)
}

func translateError(err error, trans ut.Translator) (errs []error) {
	if err == nil {
		return nil
	}
	validatorErrs := err.(validator.ValidationErrors)
	for _, e := range validatorErrs {
		translatedErr := fmt.Errorf(e.Translate(trans) + "; ")
		errs = append(errs, translatedErr)
	}
	return errs
}

// VerifyPassword verifies the collected password with the user's hashed password
func (u *User) VerifyPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.HashedPassword), []byte(password))
}

func (g *GovernmentBody) VerifyPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(g.HashedPassword), []byte(password))
}
