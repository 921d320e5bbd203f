// Package generator turns study-session notes into flashcard drafts using
// an LLM provider.
package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/vytor/lumina/internal/llm"
	"github.com/vytor/lumina/internal/models"
)

const (
	MinCards = 3
	MaxCards = 10

	maxNotesRunes = 6000
)

var flashcardSchema = &llm.Schema{
	Name: "flashcard-set",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"cards": map[string]any{
				"type":     "array",
				"minItems": MinCards,
				"maxItems": MaxCards,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"front": map[string]any{"type": "string", "minLength": 1, "description": "Question or term"},
						"back":  map[string]any{"type": "string", "minLength": 1, "description": "Answer or definition"},
					},
					"required":             []any{"front", "back"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"cards"},
		"additionalProperties": false,
	},
}

// Request describes what the user studied.
type Request struct {
	Subject  string
	Notes    string
	Language models.Language
}

// Generator produces flashcard drafts for a study session.
type Generator struct {
	provider llm.Provider
}

func New(provider llm.Provider) *Generator {
	return &Generator{provider: provider}
}

// Flashcards asks the model for MinCards..MaxCards cards. Blank pairs are
// dropped and the rest are trimmed.
func (g *Generator) Flashcards(ctx context.Context, req Request) ([]models.CardDraft, error) {
	if strings.TrimSpace(req.Notes) == "" {
		return nil, fmt.Errorf("notes are empty")
	}

	llmReq := llm.UserPrompt(systemPrompt(req.Language), userPrompt(req))
	llmReq.Schema = flashcardSchema
	llmReq.MaxTokens = 2048
	llmReq.Temperature = 0.4

	resp, err := g.provider.Generate(ctx, llmReq)
	if err != nil {
		return nil, fmt.Errorf("generate flashcards: %w", err)
	}

	var out struct {
		Cards []models.CardDraft `json:"cards"`
	}
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("decode flashcards: %w", err)
	}

	drafts := make([]models.CardDraft, 0, len(out.Cards))
	for _, c := range out.Cards {
		c.Front = strings.TrimSpace(c.Front)
		c.Back = strings.TrimSpace(c.Back)
		if c.Front == "" || c.Back == "" {
			continue
		}
		drafts = append(drafts, c)
	}
	return drafts, nil
}

func systemPrompt(lang models.Language) string {
	language := "English"
	if lang == models.LanguageHU {
		language = "Hungarian"
	}
	return "You write concise spaced-repetition flashcards for students. " +
		"Each card tests one fact. Keep the front under 20 words. " +
		"Write every card in " + language + "."
}

func userPrompt(req Request) string {
	notes := req.Notes
	if r := []rune(notes); len(r) > maxNotesRunes {
		notes = string(r[:maxNotesRunes])
	}
	return fmt.Sprintf("Subject: %s\n\nStudy notes:\n%s\n\nCreate between %d and %d flashcards from these notes.",
		req.Subject, notes, MinCards, MaxCards)
}
