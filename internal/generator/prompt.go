// internal/generator/prompt.go
package generator

import (
	"fmt"

	"go_5_daily_dose/internal/model"
)

const systemPrompt = `You are a tutor creating one concise daily learning card.
Respond with a single JSON object with exactly these keys:
"title", "term", "definition", "example", "why", "level", "track", "tags",
"quiz" (an object with "type" ("mcq" or "tf"), "question", "options", "answer_index").
"options" must contain 2 to 4 strings and "answer_index" must be the zero-based
index of the correct option. Do not include any text outside the JSON object.`

func buildUserPrompt(input model.GenerateCardInput) string {
	return fmt.Sprintf(
		"Create a %s-level learning card for the %q topic track. Write the card content in locale %q.",
		input.Level, input.Track, input.Locale,
	)
}
