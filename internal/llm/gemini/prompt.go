package gemini

import (
	"strings"
	"unicode/utf8"
)

// MaxDocumentChars is the fixed character budget taken from the start of the
// extracted text. Later content is dropped; callers observe the cut through
// Result.Truncated.
const MaxDocumentChars = 30000

const systemPrompt = "You are an AI assistant helping a team building an AR/VR solution for performing surgeries."

const promptTemplate = `From the document below, extract and summarize:

1. **Existing AR/VR Solutions in Surgery** – Any tools, systems, or research already using AR/VR for surgical training, planning, or execution.

2. **Problems to be Solved** – Gaps, limitations, or open challenges in the field that need to be addressed.

3. **Proposed Problem Statement** – Based on these gaps, suggest a clear and concise problem statement that an AR/VR-based surgical solution could address.

Format exactly like this:

Existing AR/VR Solutions:
- ...

Problems to be Solved:
- ...

Proposed Problem Statement:
...

TEXT:
`

// BuildPrompt embeds the leading MaxDocumentChars characters of the document
// text into the instruction template. The second return reports truncation.
func BuildPrompt(documentText string) (string, bool) {
	truncated := false
	if len(documentText) > MaxDocumentChars {
		cut := MaxDocumentChars
		// Back off to a rune boundary so the prompt stays valid UTF-8.
		for cut > 0 && !utf8.RuneStart(documentText[cut]) {
			cut--
		}
		documentText = documentText[:cut]
		truncated = true
	}
	var b strings.Builder
	b.Grow(len(promptTemplate) + len(documentText))
	b.WriteString(promptTemplate)
	b.WriteString(documentText)
	return b.String(), truncated
}
