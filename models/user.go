package models

import (
	"context"
	"errors"
	"strings"
	"time"

	"bitbucket.org/mmdatafocus/storestock_backend/config"
	"bitbucket.org/mmdatafocus/storestock_backend/utils"
)

type User struct {
	ID        int       `gorm:"primary_key" json:"id"`
	StoreId   string    `gorm:"index;not null" json:"store_id"`
	Name      string    `gorm:"size:100;not null" json:"name" binding:"required"`
	Email     string    `gorm:"size:100;not null;unique" json:"email" binding:"required"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	IsActive  *bool     `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewUser struct {
	StoreId  string `json:"store_id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (input *NewUser) validate() error {
	verr := &ValidationError{}
	if strings.TrimSpace(input.Name) == "" {
		verr.Add("name is required")
	}
	if !utils.IsValidEmail(input.Email) {
		verr.Add("email is not valid")
	}
	if len(input.Password) < 8 {
		verr.Add("password must be at least 8 characters")
	}
	return verr.OrNil()
}

func CreateUser(ctx context.Context, input *NewUser) (*User, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	// emails are unique across stores
	if err := utils.ValidateUnique[User](ctx, "", "email", input.Email, 0); err != nil {
		return nil, err
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := User{
		StoreId:  input.StoreId,
		Name:     input.Name,
		Email:    input.Email,
		Password: string(hashed),
		IsActive: utils.NewTrue(),
	}
	if err := config.GetDB().WithContext(ctx).Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Login checks the credentials and returns a signed session token carrying
// the user's store scope.
func Login(ctx context.Context, email string, password string) (string, error) {
	db := config.GetDB()
	var user User
	if err := db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return "", errors.New("invalid email or password")
	}
	if !utils.DereferencePtr(user.IsActive) {
		return "", errors.New("user is inactive")
	}
	if err := utils.ComparePassword(user.Password, password); err != nil {
		return "", errors.New("invalid email or password")
	}
	return utils.JwtGenerate(user.ID, user.StoreId)
}
