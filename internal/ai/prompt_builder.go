package ai

import (
	"fmt"
	"strings"
)

// BuildTaskPrompt formats the user's current state into the suggestion
// request sent to the model.
func BuildTaskPrompt(input SuggestionInput) string {

	var b strings.Builder

	b.WriteString("Generate 3 engaging and personalized tasks to help combat boredom. Consider the following:\n\n")

	fmt.Fprintf(&b, "Mood: %s\n", input.Mood)
	fmt.Fprintf(&b, "Energy Level: %d/10\n", input.EnergyLevel)
	fmt.Fprintf(&b, "Available Time: %d minutes\n", input.AvailableTime)

	if input.ScheduleNotes != "" {
		fmt.Fprintf(&b, "Schedule Notes: %s\n", input.ScheduleNotes)
	}

	b.WriteString(`
Generate tasks that are:
- Appropriate for the given mood and energy level
- Realistic for the available time
- Engaging and varied (mix of physical, mental, creative, social activities)
- Specific and actionable
- Fun and interesting

Format each task as a JSON object with:
- title: A catchy, specific task title
- description: A brief explanation of what to do
- category: One of [personal, work, health, learning, creative, social, focus, planning]
- priority: One of [low, medium, high] based on energy level and mood
- estimatedTime: Estimated minutes to complete, fitting the available time

Return only a JSON array of 3 task objects, no other text.`)

	return b.String()
}
