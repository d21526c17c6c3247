package kinship

import (
	"fmt"
	"regexp"
	"strings"
)

// Rel names a surface-level relation the template matcher recognizes. It is
// richer than Predicate: some Rel values (RelGrandmother, RelAunt, ...) map
// to several ground facts plus clarification, which the validator (4.E)
// handles case-by-case.
type Rel int

const (
	RelUnknown Rel = iota
	RelMale
	RelFemale
	RelMother
	RelFather
	RelSon
	RelDaughter
	RelChild
	RelBrother
	RelSister
	RelSibling
	RelHalfBrother
	RelHalfSister
	RelHalfSibling
	RelGrandmother
	RelGrandfather
	RelGrandparent
	RelGrandson
	RelGranddaughter
	RelGrandchild
	RelAunt
	RelUncle
	RelNiece
	RelNephew
	RelCousin
	RelRelative
	RelParentsOfJoint   // "A and B are the parents of C"
	RelChildrenOfJoint  // "A, B, ... are children of C"
)

func (r Rel) String() string {
	switch r {
	case RelMale:
		return "male"
	case RelFemale:
		return "female"
	case RelMother:
		return "mother"
	case RelFather:
		return "father"
	case RelSon:
		return "son"
	case RelDaughter:
		return "daughter"
	case RelChild:
		return "child"
	case RelBrother:
		return "brother"
	case RelSister:
		return "sister"
	case RelSibling:
		return "sibling"
	case RelHalfBrother:
		return "half-brother"
	case RelHalfSister:
		return "half-sister"
	case RelHalfSibling:
		return "half-sibling"
	case RelGrandmother:
		return "grandmother"
	case RelGrandfather:
		return "grandfather"
	case RelGrandparent:
		return "grandparent"
	case RelGrandson:
		return "grandson"
	case RelGranddaughter:
		return "granddaughter"
	case RelGrandchild:
		return "grandchild"
	case RelAunt:
		return "aunt"
	case RelUncle:
		return "uncle"
	case RelNiece:
		return "niece"
	case RelNephew:
		return "nephew"
	case RelCousin:
		return "cousin"
	case RelRelative:
		return "relative"
	case RelParentsOfJoint:
		return "joint parents"
	case RelChildrenOfJoint:
		return "joint children"
	default:
		return "unknown"
	}
}

// StatementIntent is what the template matcher produces for an assertion.
// Args are in the relation's canonical order; see the word tables below for
// the convention of each Rel.
type StatementIntent struct {
	Rel  Rel
	Args []Person
}

// QuestionIntent is what the template matcher produces for a question.
// Existential means "who are the ... of Args[0]" (answer is a set);
// otherwise it is a yes/no query over Args in the relation's order.
type QuestionIntent struct {
	Rel         Rel
	Args        []Person
	Existential bool
	// Word is the literal plural/singular noun captured by a "who are/is
	// the ... of" question (e.g. "parents", "mother"); existentialWords
	// collapses several distinct nouns onto the same Rel, so the session
	// orchestrator switches on Word, not Rel, to pick the right set query.
	Word string
}

// theWords maps a surface relation word to its Rel for the "is the X of"
// statement templates and their "Is ... the X of" question counterparts;
// aWords does the same for the "is a X of" / "Is ... a X of" forms.
var theWords = map[string]Rel{
	"mother":      RelMother,
	"father":      RelFather,
	"grandmother": RelGrandmother,
	"grandfather": RelGrandfather,
	"aunt":        RelAunt,
	"uncle":       RelUncle,
}

var aWords = map[string]Rel{
	"sister":        RelSister,
	"brother":       RelBrother,
	"son":           RelSon,
	"daughter":      RelDaughter,
	"child":         RelChild,
	"niece":         RelNiece,
	"nephew":        RelNephew,
	"cousin":        RelCousin,
	"grandchild":    RelGrandchild,
	"granddaughter": RelGranddaughter,
	"grandson":      RelGrandson,
	"half-sister":   RelHalfSister,
	"half-brother":  RelHalfBrother,
}

// existentialWords maps the plural noun in "Who are the ... of X?" (and the
// singular "Who is the ... of X?" for mother/father) to the Rel the session
// orchestrator resolves into an Evaluator set-query.
var existentialWords = map[string]Rel{
	"siblings":      RelSibling,
	"sisters":       RelSister,
	"brothers":      RelBrother,
	"parents":       RelMother, // both genders; resolved specially, see session.go
	"children":      RelChild,
	"sons":          RelSon,
	"daughters":     RelDaughter,
	"nieces":        RelNiece,
	"nephews":       RelNephew,
	"cousins":       RelCousin,
	"grandchildren": RelGrandchild,
	"half-siblings": RelHalfSibling,
	"mother":        RelMother,
	"father":        RelFather,
}

const namePattern = `([A-Z][A-Za-z]*)`

func alt(words map[string]Rel) string {
	keys := make([]string, 0, len(words))
	for k := range words {
		keys = append(keys, k)
	}
	// Longest-first so "half-sister" is tried before "sister" regardless of
	// map iteration order: the overlapping-surface-form precedence the
	// REDESIGN FLAGS note calls out (e.g. "grandmother" before "mother")
	// is handled by keeping grandparent/aunt-uncle templates in their own,
	// earlier table entries below rather than folding everything into one
	// alternation.
	for i := 0; i < len(keys); i++ {
		for j := i + 1; j < len(keys); j++ {
			if len(keys[j]) > len(keys[i]) {
				keys[i], keys[j] = keys[j], keys[i]
			}
		}
	}
	return strings.Join(keys, "|")
}

type template struct {
	name  string
	re    *regexp.Regexp
	build func(groups []string) (any, error)
}

func mustCompile(pattern string) *regexp.Regexp {
	return regexp.MustCompile("^" + pattern + `\.?\??$`)
}

// statementTemplates and questionTemplates are consulted in order; the
// first full match wins. Grandparent and aunt/uncle "the" forms are listed
// ahead of the plain mother/father "the" form so the table itself encodes
// the precedence the original regex-scan relied on string containment for.
var statementTemplates = buildStatementTemplates()
var questionTemplates = buildQuestionTemplates()

func buildStatementTemplates() []template {
	var t []template

	t = append(t, template{
		name: "gender",
		re:   mustCompile(namePattern + ` is (male|female)`),
		build: func(g []string) (any, error) {
			rel := RelMale
			if g[2] == "female" {
				rel = RelFemale
			}
			return StatementIntent{Rel: rel, Args: []Person{Person(g[1])}}, nil
		},
	})

	t = append(t, template{
		name: "the-grandparent-aunt-uncle",
		re:   mustCompile(namePattern + ` is the (` + alt(map[string]Rel{"grandmother": RelGrandmother, "grandfather": RelGrandfather, "aunt": RelAunt, "uncle": RelUncle}) + `) of ` + namePattern),
		build: func(g []string) (any, error) {
			rel, ok := theWords[g[2]]
			if !ok {
				return nil, fmt.Errorf("unknown relation %q", g[2])
			}
			return StatementIntent{Rel: rel, Args: []Person{Person(g[1]), Person(g[3])}}, nil
		},
	})

	t = append(t, template{
		name: "the-mother-father",
		re:   mustCompile(namePattern + ` is the (mother|father) of ` + namePattern),
		build: func(g []string) (any, error) {
			rel, _ := theWords[g[2]]
			return StatementIntent{Rel: rel, Args: []Person{Person(g[1]), Person(g[3])}}, nil
		},
	})

	t = append(t, template{
		name: "a-relation",
		re:   mustCompile(namePattern + ` is a (` + alt(aWords) + `) of ` + namePattern),
		build: func(g []string) (any, error) {
			rel, ok := aWords[g[2]]
			if !ok {
				return nil, fmt.Errorf("unknown relation %q", g[2])
			}
			return StatementIntent{Rel: rel, Args: []Person{Person(g[1]), Person(g[3])}}, nil
		},
	})

	t = append(t, template{
		name: "siblings",
		re:   mustCompile(namePattern + ` and ` + namePattern + ` are (half-siblings|siblings)`),
		build: func(g []string) (any, error) {
			rel := RelSibling
			if g[3] == "half-siblings" {
				rel = RelHalfSibling
			}
			return StatementIntent{Rel: rel, Args: []Person{Person(g[1]), Person(g[2])}}, nil
		},
	})

	t = append(t, template{
		name: "parents-of-joint",
		re:   mustCompile(namePattern + ` and ` + namePattern + ` are the parents of ` + namePattern),
		build: func(g []string) (any, error) {
			return StatementIntent{Rel: RelParentsOfJoint, Args: []Person{Person(g[1]), Person(g[2]), Person(g[3])}}, nil
		},
	})

	t = append(t, template{
		name: "children-of-joint",
		re:   mustCompile(`(.+) are children of ` + namePattern),
		build: func(g []string) (any, error) {
			names, err := splitNameList(g[1])
			if err != nil {
				return nil, err
			}
			args := append(names, Person(g[2]))
			return StatementIntent{Rel: RelChildrenOfJoint, Args: args}, nil
		},
	})

	return t
}

func buildQuestionTemplates() []template {
	var t []template

	t = append(t, template{
		name: "is-gender",
		re:   mustCompile(`Is ` + namePattern + ` (male|female)`),
		build: func(g []string) (any, error) {
			rel := RelMale
			if g[2] == "female" {
				rel = RelFemale
			}
			return QuestionIntent{Rel: rel, Args: []Person{Person(g[1])}}, nil
		},
	})

	t = append(t, template{
		name: "is-the-grandparent-aunt-uncle",
		re:   mustCompile(`Is ` + namePattern + ` the (` + alt(map[string]Rel{"grandmother": RelGrandmother, "grandfather": RelGrandfather, "aunt": RelAunt, "uncle": RelUncle}) + `) of ` + namePattern),
		build: func(g []string) (any, error) {
			rel, ok := theWords[g[2]]
			if !ok {
				return nil, fmt.Errorf("unknown relation %q", g[2])
			}
			return QuestionIntent{Rel: rel, Args: []Person{Person(g[1]), Person(g[3])}}, nil
		},
	})

	t = append(t, template{
		name: "is-the-mother-father",
		re:   mustCompile(`Is ` + namePattern + ` the (mother|father) of ` + namePattern),
		build: func(g []string) (any, error) {
			rel := theWords[g[2]]
			return QuestionIntent{Rel: rel, Args: []Person{Person(g[1]), Person(g[3])}}, nil
		},
	})

	t = append(t, template{
		name: "is-a-relation",
		re:   mustCompile(`Is ` + namePattern + ` a (` + alt(aWords) + `) of ` + namePattern),
		build: func(g []string) (any, error) {
			rel, ok := aWords[g[2]]
			if !ok {
				return nil, fmt.Errorf("unknown relation %q", g[2])
			}
			return QuestionIntent{Rel: rel, Args: []Person{Person(g[1]), Person(g[3])}}, nil
		},
	})

	t = append(t, template{
		name: "are-siblings-relatives",
		re:   mustCompile(`Are ` + namePattern + ` and ` + namePattern + ` (half-siblings|siblings|relatives)`),
		build: func(g []string) (any, error) {
			var rel Rel
			switch g[3] {
			case "half-siblings":
				rel = RelHalfSibling
			case "siblings":
				rel = RelSibling
			default:
				rel = RelRelative
			}
			return QuestionIntent{Rel: rel, Args: []Person{Person(g[1]), Person(g[2])}}, nil
		},
	})

	t = append(t, template{
		name: "who-are-the",
		re:   mustCompile(`Who (?:are|is) the (` + alt(existentialWords) + `) of ` + namePattern),
		build: func(g []string) (any, error) {
			rel, ok := existentialWords[g[1]]
			if !ok {
				return nil, fmt.Errorf("unknown relation %q", g[1])
			}
			return QuestionIntent{Rel: rel, Args: []Person{Person(g[2])}, Existential: true, Word: g[1]}, nil
		},
	})

	return t
}

func splitNameList(s string) ([]Person, error) {
	s = strings.TrimSpace(s)
	s = strings.Replace(s, ", and ", ", ", 1)
	s = strings.Replace(s, " and ", ", ", 1)
	parts := strings.Split(s, ",")
	var out []Person
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, Person(p))
	}
	if len(out) < 2 {
		return nil, fmt.Errorf("expected at least two names, got %q", s)
	}
	return out, nil
}

// Match runs the template tables in order and returns the first intent that
// fully matches, or an UnrecognizedInput error listing usage suggestions.
// The question table is tried first: its templates all start with a fixed
// "Is"/"Are"/"Who", whereas a statement template would otherwise read "Who"
// in "Who is the mother of X?" as a person's name.
func Match(input string) (any, error) {
	input = strings.TrimSpace(input)
	for _, t := range questionTemplates {
		if m := t.re.FindStringSubmatch(input); m != nil {
			return t.build(m)
		}
	}
	for _, t := range statementTemplates {
		if m := t.re.FindStringSubmatch(input); m != nil {
			return t.build(m)
		}
	}
	return nil, &KBError{Kind: UnrecognizedInput, Message: unrecognizedMessage()}
}

func unrecognizedMessage() string {
	return "I didn't understand that. Try statements like \"Alice is the mother of Bob\" or " +
		"questions like \"Is Alice the mother of Bob?\", \"Who are the siblings of Alice?\", or \"Are Alice and Bob relatives?\""
}
