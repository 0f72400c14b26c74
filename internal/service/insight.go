package service

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/quietmind/backend/internal/logger"
	"github.com/quietmind/backend/internal/models"
	"github.com/quietmind/backend/internal/repository"
)

// Canned response for a week with no check-ins. The generator is never
// called for this case: there is no data to reason about, so an upstream
// call would be wasted and its failure modes needlessly exposed.
const (
	emptyWeekInsight = "No check-ins yet for this week. Add a few moods and I’ll generate a weekly insight for you."
	emptyWeekTryThis = "Do a 30-second brain dump: write one thing on your mind, then close your eyes."
)

// unknownFeeling buckets records whose feeling label is empty.
const unknownFeeling = "unknown"

type insightService struct {
	moodRepo  repository.MoodRepository
	generator ReflectionGenerator
}

// NewInsightService creates a new insight service
func NewInsightService(moodRepo repository.MoodRepository, generator ReflectionGenerator) InsightService {
	return &insightService{moodRepo: moodRepo, generator: generator}
}

// WeeklyInsight resolves the week window, aggregates the user's check-ins and
// asks the reflection generator for the insight/tryThis pair. The store query
// and the generation call run sequentially: the prompt depends on the query
// result, so there is nothing to fan out.
func (s *insightService) WeeklyInsight(ctx context.Context, userID int64, weekStart string) (*models.WeeklyInsight, error) {
	window, err := WeekWindowFor(weekStart, time.Now())
	if err != nil {
		return nil, err
	}

	moods, err := s.moodRepo.GetByUserIDAndRange(ctx, userID, window.Start, window.End)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch moods for week: %w", err)
	}

	if len(moods) == 0 {
		return &models.WeeklyInsight{
			Range:     window.JSON(),
			Total:     0,
			Breakdown: map[string]int{},
			Insight:   emptyWeekInsight,
			TryThis:   emptyWeekTryThis,
		}, nil
	}

	breakdown := AggregateFeelings(moods)
	prompt := BuildReflectionPrompt(breakdown, moods)

	logger.Ctx(ctx).Debug("requesting weekly reflection",
		logger.Int("mood_count", len(moods)),
		logger.Int("prompt_len", len(prompt)),
	)

	reflection, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	return &models.WeeklyInsight{
		Range:     window.JSON(),
		Total:     len(moods),
		Breakdown: breakdown,
		Insight:   reflection.Insight,
		TryThis:   reflection.TryThis,
	}, nil
}

// AggregateFeelings counts check-ins per feeling label. Labels are compared
// by exact value; empty labels land in the "unknown" bucket. The sum of the
// counts always equals len(moods).
func AggregateFeelings(moods []models.Mood) map[string]int {
	breakdown := make(map[string]int)
	for _, m := range moods {
		key := m.Feeling
		if key == "" {
			key = unknownFeeling
		}
		breakdown[key]++
	}
	return breakdown
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// BuildReflectionPrompt renders the breakdown and the week's logs into the
// prompt sent to the generator. Moods must be ordered ascending by creation
// time. Log descriptions are collapsed to single spaces to keep the prompt
// compact and single-line per entry.
func BuildReflectionPrompt(breakdown map[string]int, moods []models.Mood) string {
	lines := make([]string, 0, len(moods))
	for _, m := range moods {
		date := m.CreatedAt.UTC().Format("2006-01-02")
		desc := ""
		if m.Description != nil {
			desc = strings.TrimSpace(whitespaceRun.ReplaceAllString(*m.Description, " "))
		}
		lines = append(lines, fmt.Sprintf("- %s | %s | %s", date, m.Feeling, desc))
	}

	counts, _ := json.Marshal(breakdown)

	var b strings.Builder
	b.WriteString("You are QuietMind's gentle weekly reflection coach.\n")
	b.WriteString("Based ONLY on the mood logs below, write:\n")
	b.WriteString(`1) "insight": 2-3 short supportive sentences summarizing the week + 1 gentle pattern you notice.` + "\n")
	b.WriteString(`2) "tryThis": 1 simple action for tonight (one sentence).` + "\n")
	b.WriteString("Rules:\n")
	b.WriteString("- Be non-judgmental and calming.\n")
	b.WriteString("- No diagnosis, no medical claims.\n")
	b.WriteString("- Keep it practical and short.\n\n")
	b.WriteString("Mood counts: ")
	b.Write(counts)
	b.WriteString("\n\nMood logs:\n")
	b.WriteString(strings.Join(lines, "\n"))
	b.WriteString("\n\nReturn JSON ONLY:\n")
	b.WriteString(`{ "insight": "...", "tryThis": "..." }`)

	return b.String()
}
