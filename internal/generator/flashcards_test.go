package generator_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/lumina/internal/generator"
	"github.com/vytor/lumina/internal/llm"
	"github.com/vytor/lumina/internal/models"
)

func TestFlashcards(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{"cards":[
		{"front":" Mitochondria ","back":"Powerhouse of the cell"},
		{"front":"ATP","back":"Energy currency"},
		{"front":"Ribosome","back":"   "}
	]}`)})
	g := generator.New(mock)

	drafts, err := g.Flashcards(context.Background(), generator.Request{
		Subject:  "Biology",
		Notes:    "cells and organelles",
		Language: models.LanguageHU,
	})
	require.NoError(t, err)

	assert.Equal(t, []models.CardDraft{
		{Front: "Mitochondria", Back: "Powerhouse of the cell"},
		{Front: "ATP", Back: "Energy currency"},
	}, drafts)

	require.Equal(t, 1, mock.CallCount())
	call := mock.Calls[0]
	assert.Contains(t, call.System, "Hungarian")
	assert.Contains(t, call.Prompt, "Biology")
	require.NotNil(t, call.Schema)
	assert.Equal(t, "flashcard-set", call.Schema.Name)
}

func TestFlashcards_SchemaViolation(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{"cards":[{"front":"only one","back":"x"}]}`)})
	g := generator.New(mock)

	_, err := g.Flashcards(context.Background(), generator.Request{Subject: "Math", Notes: "limits"})

	var inv *llm.ErrInvalidResponse
	assert.ErrorAs(t, err, &inv)
}

func TestFlashcards_EmptyNotes(t *testing.T) {
	mock := llm.NewMockProvider()
	g := generator.New(mock)

	_, err := g.Flashcards(context.Background(), generator.Request{Subject: "Math", Notes: "  "})

	assert.Error(t, err)
	assert.Equal(t, 0, mock.CallCount())
}
