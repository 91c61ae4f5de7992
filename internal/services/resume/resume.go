// Package services генерирует резюме: разделы пишет модель генерации текста,
// документ собирается в PDF и сохраняется в хранилище.
package services

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/magabrotheeeer/xbot-api/internal/clients/openai"
	"github.com/magabrotheeeer/xbot-api/internal/integration"
	"github.com/magabrotheeeer/xbot-api/internal/lib/apperr"
	"github.com/magabrotheeeer/xbot-api/internal/models"
)

const (
	notProvided  = "N/A"
	noEducation  = "Educação não fornecida."
	noProjects   = "Projetos não fornecidos."
	lineHeightMM = 6
)

var unsafeFileChars = regexp.MustCompile(`[^\p{L}\p{N}_-]+`)

// Completer генерирует текст по запросу.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Repository хранилище резюме.
type Repository interface {
	CreateResume(ctx context.Context, r *models.Resume) error
	GetResumeByName(ctx context.Context, name string) (*models.Resume, error)
}

// GenerateInput исходные данные резюме.
type GenerateInput struct {
	Name     string
	Email    string
	JobTitle string
	Location string
}

// Document сгенерированный PDF.
type Document struct {
	Filename string
	PDF      []byte
	Resume   *models.Resume
}

// ResumeService генерирует и выдаёт резюме.
type ResumeService struct {
	log      *slog.Logger
	envelope *integration.Envelope
	llm      Completer
	repo     Repository
}

// NewResumeService создает ResumeService.
func NewResumeService(log *slog.Logger, envelope *integration.Envelope, llm Completer, repo Repository) *ResumeService {
	return &ResumeService{log: log, envelope: envelope, llm: llm, repo: repo}
}

// Generate запрашивает разделы опыта и навыков, собирает PDF и сохраняет запись.
func (s *ResumeService) Generate(ctx context.Context, owner string, in GenerateInput) (*Document, error) {
	const op = "services.ResumeService.Generate"

	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.JobTitle) == "" {
		return nil, fmt.Errorf("%s: name and jobtitle are required: %w", op, apperr.ErrValidation)
	}

	experience, err := s.complete(ctx, fmt.Sprintf("Generate work experience details for %s.", in.Name))
	if err != nil {
		return nil, fmt.Errorf("%s: experience: %w", op, err)
	}
	skills, err := s.complete(ctx, fmt.Sprintf("Generate skills for %s.", in.JobTitle))
	if err != nil {
		return nil, fmt.Errorf("%s: skills: %w", op, err)
	}

	resume := &models.Resume{
		Owner:      owner,
		Name:       in.Name,
		Email:      in.Email,
		JobTitle:   in.JobTitle,
		Location:   in.Location,
		Experience: experience,
		Skills:     skills,
	}
	pdf, err := RenderPDF(resume)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.repo.CreateResume(ctx, resume); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("resume generated", slog.String("owner", owner), slog.String("resume_id", resume.ID))
	return &Document{Filename: Filename(in.Name), PDF: pdf, Resume: resume}, nil
}

// Get возвращает последнее резюме с именем name.
func (s *ResumeService) Get(ctx context.Context, name string) (*models.Resume, error) {
	const op = "services.ResumeService.Get"
	r, err := s.repo.GetResumeByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return r, nil
}

func (s *ResumeService) complete(ctx context.Context, prompt string) (string, error) {
	return integration.Call(ctx, s.envelope, openai.Vendor, func(ctx context.Context) (string, error) {
		return s.llm.Complete(ctx, prompt)
	})
}

// Filename имя файла для выдачи PDF.
func Filename(name string) string {
	base := strings.Trim(unsafeFileChars.ReplaceAllString(strings.TrimSpace(name), "_"), "_")
	if base == "" {
		base = "resume"
	}
	return base + "_curriculo.pdf"
}

// RenderPDF собирает документ формата Letter.
func RenderPDF(r *models.Resume) ([]byte, error) {
	const op = "services.RenderPDF"

	pdf := fpdf.New("P", "mm", "Letter", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Currículo de "+r.Name, true)
	pdf.SetMargins(25, 20, 25)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 10, tr(r.Name), "", 1, "L", false, 0, "")

	location := r.Location
	if location == "" {
		location = notProvided
	}
	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 8, tr(fmt.Sprintf("%s - %s - %s", location, notProvided, r.Email)), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	section := func(title, body string) {
		pdf.SetFont("Helvetica", "B", 14)
		pdf.CellFormat(0, 8, tr(title), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 12)
		pdf.MultiCell(0, lineHeightMM, tr(body), "", "L", false)
		pdf.Ln(4)
	}
	section("Experiência Profissional:", r.Experience)
	section("Habilidades e Interesses:", r.Skills)
	section("Educação:", noEducation)
	section("Projetos Técnicos:", noProjects)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return buf.Bytes(), nil
}
