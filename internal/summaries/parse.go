package summaries

import "strings"

// Section headers recognized in the model output. Matching is a
// case-sensitive substring test on each line, in this order.
const (
	HeaderSolutions        = "Existing AR/VR Solutions"
	HeaderToSolve          = "Problems to be Solved"
	HeaderProblemStatement = "Proposed Problem Statement"
)

// Fields holds the three sections parsed out of the model's free-form text.
type Fields struct {
	Solutions        string
	ToSolve          string
	ProblemStatement string
}

// ParseFields scans the response line by line, accumulating lines under
// whichever header was seen most recently. Header lines themselves are never
// emitted. Under the problem-statement header every line contributes its
// trimmed form plus a trailing space; under the other two headers only lines
// whose trimmed form starts with "-" contribute, each followed by a newline.
// Lines before the first header, and non-bulleted lines in the two bulleted
// sections, are silently dropped. Input with no recognizable headers yields
// three empty fields and no error.
func ParseFields(response string) Fields {
	var f Fields
	current := ""

	for _, line := range strings.Split(response, "\n") {
		switch {
		case strings.Contains(line, HeaderSolutions):
			current = "solutions"
		case strings.Contains(line, HeaderToSolve):
			current = "to_solve"
		case strings.Contains(line, HeaderProblemStatement):
			current = "pps"
		case current == "pps":
			f.ProblemStatement += strings.TrimSpace(line) + " "
		case current != "":
			trimmed := strings.TrimSpace(line)
			if !strings.HasPrefix(trimmed, "-") {
				continue
			}
			if current == "solutions" {
				f.Solutions += trimmed + "\n"
			} else {
				f.ToSolve += trimmed + "\n"
			}
		}
	}

	return f
}
