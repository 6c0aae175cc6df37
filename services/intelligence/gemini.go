// File: services/intelligence/gemini.go
package ai

import (
	"context"
	"fmt"
	"strings"

	"folio/models"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const classifyPrompt = `You route messages for a software engineer's portfolio assistant.
Reply with exactly one word:
- "calendar" if the user wants to schedule, book, or manage a meeting or call.
- "portfolio" for anything else (bio, skills, projects, availability, small talk).

Conversation so far:
%s
Newest message: %s`

// bookMeetingTool is the booking function declared to the model. The model's
// arguments are advisory only; the repair proxy re-validates everything
// against the session draft before the calendar backend sees it.
var bookMeetingTool = &genai.Tool{
	FunctionDeclarations: []*genai.FunctionDeclaration{
		{
			Name:        "book_meeting",
			Description: "Book an intro call once name, email and time are known.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"name":  {Type: genai.TypeString, Description: "Attendee full name"},
					"email": {Type: genai.TypeString, Description: "Attendee email address"},
					"time":  {Type: genai.TypeString, Description: "Meeting start time, RFC 3339"},
				},
				Required: []string{"name", "email", "time"},
			},
		},
	},
}

type GeminiClient struct {
	model     *genai.GenerativeModel
	toolModel *genai.GenerativeModel
}

func NewGeminiClient(apiKey, modelName string) *GeminiClient {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		panic(fmt.Sprintf("failed to create Gemini client: %v", err))
	}

	model := client.GenerativeModel(modelName)

	toolModel := client.GenerativeModel(modelName)
	toolModel.Tools = []*genai.Tool{bookMeetingTool}

	return &GeminiClient{model: model, toolModel: toolModel}
}

// Classify asks the model for one of the two closed intent values.
func (g *GeminiClient) Classify(ctx context.Context, history []models.Turn, message string) (models.Intent, error) {
	var sb strings.Builder
	for _, t := range history {
		sb.WriteString(string(t.Role))
		sb.WriteString(": ")
		sb.WriteString(t.Text)
		sb.WriteString("\n")
	}

	reply, err := g.generate(ctx, g.model, fmt.Sprintf(classifyPrompt, sb.String(), message))
	if err != nil {
		return "", fmt.Errorf("gemini classify error: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(reply.Text)) {
	case "calendar":
		return models.IntentCalendar, nil
	case "portfolio":
		return models.IntentPortfolio, nil
	}
	return "", ErrAbstain
}

// Invoke runs a generation with the booking tool available.
func (g *GeminiClient) Invoke(ctx context.Context, prompt string) (*ModelReply, error) {
	reply, err := g.generate(ctx, g.toolModel, prompt)
	if err != nil {
		return nil, fmt.Errorf("gemini generate error: %w", err)
	}
	return reply, nil
}

func (g *GeminiClient) generate(ctx context.Context, model *genai.GenerativeModel, prompt string) (*ModelReply, error) {
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("empty model response")
	}

	reply := &ModelReply{}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		switch p := part.(type) {
		case genai.Text:
			sb.WriteString(string(p))
		case genai.FunctionCall:
			reply.ToolCall = &models.RawToolCall{Name: p.Name, Args: p.Args}
		}
	}
	reply.Text = sb.String()
	return reply, nil
}
