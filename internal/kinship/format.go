package kinship

import (
	"fmt"
	"sort"
	"strings"
)

// User-visible phrasing, fixed by spec.md §7.
const (
	replyAccepted  = "OK! I learned something new."
	replyRedundant = "I already knew that."
)

func sprintfImpossible(format string, args ...any) string {
	return "That's impossible! " + fmt.Sprintf(format, args...)
}

// formatList renders a list of canonical identifiers as a comma-and-"and"-
// joined list ("alice, bob, and carol"). Members are query *results*, not
// the query subject, so they stay in their stored canonical (lowercase)
// form rather than Display's capitalization — only the subject slot of a
// query, and clarification prompts, get capitalized.
func formatList(people []string) string {
	names := append([]string{}, people...)
	sort.Strings(names)
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	case 2:
		return names[0] + " and " + names[1]
	default:
		return strings.Join(names[:len(names)-1], ", ") + ", and " + names[len(names)-1]
	}
}

func yesNo(b bool) string {
	if b {
		return "Yes."
	}
	return "No."
}
