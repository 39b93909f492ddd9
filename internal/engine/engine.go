package engine

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/tatianab/adventure-sim/internal/models"
	"github.com/tatianab/adventure-sim/internal/report"
)

//go:embed prompts/narrate_replay.txt
var narrateReplayPrompt string

var narrateTemplate = template.Must(template.New("narrate_replay").Parse(narrateReplayPrompt))

// maxParagraphs bounds the length of a narration.
const maxParagraphs = 4

// Engine turns finished replays into prose using Gemini.
type Engine struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewEngine(ctx context.Context, apiKey, modelName string) (*Engine, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}

	return &Engine{
		client: client,
		model:  client.GenerativeModel(modelName),
	}, nil
}

func (e *Engine) Close() {
	e.client.Close()
}

// Narrate asks the model for a short story version of the replay.
func (e *Engine) Narrate(ctx context.Context, replay models.Replay) (string, error) {
	prompt, err := buildNarratePrompt(replay)
	if err != nil {
		return "", err
	}

	resp, err := e.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no content returned from Gemini")
	}

	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return "", fmt.Errorf("unexpected response type from Gemini")
	}
	return cleanResponse(string(text)), nil
}

func buildNarratePrompt(replay models.Replay) (string, error) {
	if len(replay.Steps) == 0 {
		return "", fmt.Errorf("replay %q has no steps", replay.Name)
	}

	var buf bytes.Buffer
	data := struct {
		Steps         []models.Step
		Summary       string
		MaxParagraphs int
	}{
		Steps:         replay.Steps,
		Summary:       report.Summary(replay.IDLog),
		MaxParagraphs: maxParagraphs,
	}
	if err := narrateTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// cleanResponse strips the code fences models sometimes wrap answers in.
func cleanResponse(text string) string {
	clean := strings.TrimSpace(text)
	clean = strings.TrimPrefix(clean, "```text")
	clean = strings.TrimPrefix(clean, "```")
	clean = strings.TrimSuffix(clean, "```")
	return strings.TrimSpace(clean)
}
