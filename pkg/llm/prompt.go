package llm

import (
	"fmt"
	"strings"
	"time"

	"github.com/unowned-ai/kith/pkg/store"
)

const promptRules = `Respond with JSON only, no other text.
JSON schema: { "personNames": ["..."], "medium": "InPerson|Text|PhoneCall|VideoCall|SocialMedia", "location": "...", "theirLocation": null, "topics": ["..."], "note": null, "date": null }
Rules:
- personNames lists ALL people mentioned in the input, spelled exactly as written. Match to known contacts when possible. NEVER substitute different names.
- If the medium is not mentioned, use "InPerson".
- location is the most specific place given in the input (e.g. "Charlton, MA" rather than "home").
- theirLocation is only for remote interactions where their location differs; null for in-person.
- topics lists ONLY activities or subjects explicitly mentioned. Do not infer topics. Be aware of slang (e.g. "gas" means great, not cooking).
- note holds any other context not captured elsewhere; null if none.
- date is a "YYYY-MM-DD" string ONLY when the input names a day (e.g. "yesterday", "last Friday", "on March 5th"). Otherwise null, which means today.`

// SystemPrompt builds the instructions sent ahead of the owner's text.
// Corrections are listed most recent first.
func SystemPrompt(today time.Time, names []string, corrections []store.Correction) string {
	var b strings.Builder
	b.WriteString("You extract interaction metadata from natural language descriptions.\n")
	fmt.Fprintf(&b, "Today's date is %s.\n", today.Format(time.DateOnly))
	fmt.Fprintf(&b, "Known contacts: [%s]\n", strings.Join(names, ", "))
	b.WriteString(promptRules)

	if len(corrections) > 0 {
		b.WriteString("\n\nPast corrections to learn from (most recent first):\n")
		for i, c := range corrections {
			fmt.Fprintf(&b, "\nExample %d:\nInput: %s\nYou parsed: %s\nUser corrected to: %s\n",
				i+1, c.OriginalText, c.AIOutput, c.UserOutput)
		}
		b.WriteString("\nApply these learnings when parsing the new input.")
	}
	return b.String()
}
