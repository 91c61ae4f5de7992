package models

// UserActivated событие об успешной активации учётной записи.
type UserActivated struct {
	Username       string `json:"username"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	WhatsAppNumber string `json:"whatsapp_number,omitempty"`
}
