package ai

import (
	"strings"
	"testing"
)

func TestBuildTaskPrompt(t *testing.T) {
	prompt := BuildTaskPrompt(SuggestionInput{
		Mood:          "happy",
		EnergyLevel:   8,
		AvailableTime: 60,
	})

	for _, want := range []string{
		"Mood: happy",
		"Energy Level: 8/10",
		"Available Time: 60 minutes",
		"category: One of [personal, work, health, learning, creative, social, focus, planning]",
		"priority: One of [low, medium, high]",
		"estimatedTime",
		"Return only a JSON array of 3 task objects, no other text.",
	} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q:\n%s", want, prompt)
		}
	}

	if strings.Contains(prompt, "Schedule Notes") {
		t.Fatalf("prompt should not mention schedule notes when none given:\n%s", prompt)
	}
}

func TestBuildTaskPromptWithScheduleNotes(t *testing.T) {
	prompt := BuildTaskPrompt(SuggestionInput{
		Mood:          "stressed",
		EnergyLevel:   3,
		AvailableTime: 30,
		ScheduleNotes: "meeting at 3pm",
	})

	if !strings.Contains(prompt, "Schedule Notes: meeting at 3pm") {
		t.Fatalf("prompt missing schedule notes:\n%s", prompt)
	}
	if !strings.Contains(prompt, "Energy Level: 3/10") {
		t.Fatalf("prompt missing energy level:\n%s", prompt)
	}
}
