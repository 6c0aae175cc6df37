// Package portfolio answers knowledge questions about the engineer's work.
// The path is stateless per turn: no slot accumulation, no state machine.
package portfolio

import (
	"context"
	"fmt"
	"strings"

	ai "folio/services/intelligence"

	"go.uber.org/zap"
)

// Tool names recorded in turn traces.
const (
	ToolGetProfile      = "getProfile"
	ToolListProjects    = "listProjects"
	ToolExplainProject  = "explainProject"
	ToolGetAvailability = "getAvailability"
)

// Service answers a single portfolio question.
type Service interface {
	Answer(ctx context.Context, message string) (reply string, tool string)
}

// DefaultService retrieves from the static corpus and optionally phrases the
// answer through the model. A nil or failing model degrades to deterministic
// canned text; the path never errors out to the caller.
type DefaultService struct {
	Model  ai.ModelClient
	Logger *zap.Logger
}

func NewDefaultService(model ai.ModelClient, logger *zap.Logger) *DefaultService {
	return &DefaultService{Model: model, Logger: logger}
}

func (s *DefaultService) Answer(ctx context.Context, message string) (string, string) {
	tool, retrieved, fallback := s.retrieve(message)

	if s.Model == nil {
		return fallback, tool
	}

	prompt := fmt.Sprintf(
		"You are the portfolio assistant for %s, %s. Answer the question below "+
			"using only this retrieved context. Keep it professional, insightful and concise.\n\n"+
			"Context:\n%s\n\nQuestion: %s",
		profileData.Name, profileData.Title, retrieved, message,
	)
	reply, err := s.Model.Invoke(ctx, prompt)
	if err != nil || strings.TrimSpace(reply.Text) == "" {
		if err != nil {
			s.Logger.Warn("portfolio answer generation failed, using canned reply", zap.Error(err))
		}
		return fallback, tool
	}
	return reply.Text, tool
}

// retrieve picks the knowledge operation for the question and returns the
// raw context plus a canned reply for model-less deployments.
func (s *DefaultService) retrieve(message string) (tool, retrieved, fallback string) {
	lower := strings.ToLower(message)

	for _, p := range projectsData {
		if strings.Contains(lower, strings.ToLower(p.Name)) {
			return ToolExplainProject,
				fmt.Sprintf("Project %s: %s Architecture: %s Tags: %s",
					p.Name, p.Description, p.ArchitectureNotes, strings.Join(p.Tags, ", ")),
				fmt.Sprintf("%s: %s %s", p.Name, p.Description, p.ArchitectureNotes)
		}
	}

	switch {
	case containsAny(lower, "available", "availability", "hire", "hiring", "opportunit", "open to"):
		return ToolGetAvailability,
			availabilityData.Status + " " + availabilityData.OpenTo,
			availabilityData.Status + " " + availabilityData.OpenTo

	case containsAny(lower, "project", "built", "portfolio", "work on"):
		var sb strings.Builder
		for _, p := range projectsData {
			fmt.Fprintf(&sb, "- %s: %s (%s)\n", p.Name, p.Description, strings.Join(p.Tags, ", "))
		}
		return ToolListProjects, sb.String(),
			"A few highlights: " + sb.String()

	default:
		skills := make([]string, 0, len(profileData.Skills))
		for _, area := range []string{"languages", "frontend", "backend", "ai"} {
			skills = append(skills, area+": "+strings.Join(profileData.Skills[area], ", "))
		}
		return ToolGetProfile,
			profileData.Bio + "\n" + strings.Join(skills, "\n"),
			fmt.Sprintf("I'm %s, a %s. %s", profileData.Name, strings.ToLower(profileData.Title), profileData.Bio)
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
