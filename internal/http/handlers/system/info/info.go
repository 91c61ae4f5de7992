// Package info отдаёт сведения о сервисе: приветствие на корне и метаданные на /info.
package info

import (
	"net/http"

	"github.com/magabrotheeeer/xbot-api/internal/http/response"
)

const (
	Title       = "Reborn XBot API"
	Description = "Autenticação, mensagens no WhatsApp, recrutamento e geração de currículos."
	DocsPath    = "/docs/index.html"
)

// Meta метаданные сервиса.
type Meta struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Version     string `json:"version"`
	Docs        string `json:"docs"`
}

// Welcome тело ответа на корне.
type Welcome struct {
	Message   string            `json:"message"`
	Endpoints map[string]string `json:"endpoints"`
}

// Handler обрабатывает GET / и GET /info.
type Handler struct {
	version string
}

// New создает Handler.
func New(version string) *Handler {
	return &Handler{version: version}
}

// Root godoc
// @Summary Приветствие
// @Tags Info
// @Produce json
// @Success 200 {object} Welcome
// @Router / [get]
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, r, http.StatusOK, Welcome{
		Message: "Bem-vindo à API Reborn Technology!",
		Endpoints: map[string]string{
			"/register":           "Cadastro de usuários.",
			"/token":              "Autenticação e emissão de token.",
			"/send-message":       "Envio de mensagens no WhatsApp.",
			"/recruitment/search": "Endpoints relacionados ao recrutamento.",
			"/resumes":            "Endpoints para geração e manipulação de currículos.",
		},
	})
}

// Info godoc
// @Summary Метаданные сервиса
// @Tags Info
// @Produce json
// @Success 200 {object} Meta
// @Router /info [get]
func (h *Handler) Info(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, r, http.StatusOK, Meta{
		Title:       Title,
		Description: Description,
		Version:     h.version,
		Docs:        DocsPath,
	})
}
