package models

import "time"

// Resume сохранённые исходные данные и сгенерированные разделы резюме.
type Resume struct {
	ID         string    `json:"id"`
	Owner      string    `json:"owner"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	JobTitle   string    `json:"jobtitle"`
	Location   string    `json:"location,omitempty"`
	Experience string    `json:"experience"`
	Skills     string    `json:"skills"`
	CreatedAt  time.Time `json:"created_at"`
}
