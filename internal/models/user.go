// Package models содержит доменные модели: учётную запись пользователя,
// резюме и события, публикуемые в брокер.
package models

import "time"

// User представляет зарегистрированного пользователя системы.
type User struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"` // уникален
	Email          string    `json:"email"`
	Name           string    `json:"name"`
	JobTitle       string    `json:"jobtitle,omitempty"`
	Location       string    `json:"location,omitempty"`
	WhatsAppNumber string    `json:"whatsapp_number,omitempty"`
	PasswordHash   string    `json:"-"`
	IsActive       bool      `json:"is_active"`
	ActivationCode *string   `json:"-"` // nil после активации
	CreatedAt      time.Time `json:"created_at"`
}

// Profile публичное представление пользователя, без хэша пароля и кода активации.
type Profile struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	Name           string    `json:"name"`
	JobTitle       string    `json:"jobtitle,omitempty"`
	Location       string    `json:"location,omitempty"`
	WhatsAppNumber string    `json:"whatsapp_number,omitempty"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
}

// Profile возвращает публичное представление пользователя.
func (u *User) Profile() Profile {
	return Profile{
		ID:             u.ID,
		Username:       u.Username,
		Email:          u.Email,
		Name:           u.Name,
		JobTitle:       u.JobTitle,
		Location:       u.Location,
		WhatsAppNumber: u.WhatsAppNumber,
		IsActive:       u.IsActive,
		CreatedAt:      u.CreatedAt,
	}
}
