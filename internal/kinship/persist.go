package kinship

import (
	"fmt"
	"regexp"
	"strings"
)

// Text-format section markers (spec.md §6). The facts region is the only
// part a fresh Import reads back; the rules region is carried for human
// readers and engine-version interoperability only.
const (
	headerComment = "% kinship fact store — predicates in use"
	factsMarker   = "% --- facts ---"
	rulesMarker   = "% --- rules (informational; not reloaded for reasoning) ---"
)

var predicateDirectives = []string{
	"% parent_of/2",
	"% male/1",
	"% female/1",
	"% sibling_of/2",
	"% half_sibling_of/2",
}

// informationalRules is the fixed rule set rendered for human readers,
// copied from spec.md §4.C. The rule evaluator never parses this text.
var informationalRules = []string{
	"father_of(X,Y) :- parent_of(X,Y), male(X), X \\= Y.",
	"mother_of(X,Y) :- parent_of(X,Y), female(X), X \\= Y.",
	"child_of(Y,X) :- parent_of(X,Y), X \\= Y.",
	"son_of(Y,X) :- child_of(Y,X), male(Y).",
	"daughter_of(Y,X) :- child_of(Y,X), female(Y).",
	"sibling_of(X,Y) :- parent_of(Z,X), parent_of(Z,Y), X \\= Y, Z \\= X, Z \\= Y.",
	"brother_of(X,Y) :- sibling_of(X,Y), male(X).",
	"sister_of(X,Y) :- sibling_of(X,Y), female(X).",
	"half_sibling_of(X,Y) :- parent_of(Z,X), parent_of(Z,Y), X \\= Y, parent_of(W1,X), parent_of(W2,Y), W1 \\= W2, W1 \\= Z, W2 \\= Z.",
	"grandparent_of(X,Y) :- parent_of(X,Z), parent_of(Z,Y), X \\= Y.",
	"uncle_of(X,Y) :- brother_of(X,Z), parent_of(Z,Y), X \\= Y.",
	"aunt_of(X,Y) :- sister_of(X,Z), parent_of(Z,Y), X \\= Y.",
	"cousin_of(X,Y) :- parent_of(Z1,X), parent_of(Z2,Y), sibling_of(Z1,Z2), X \\= Y.",
}

// Export renders the store as the stable text layout of §6: header
// directives, then the facts region newest-first, then the informational
// rules region.
func Export(store *Store) string {
	var b strings.Builder
	b.WriteString(headerComment)
	b.WriteString("\n")
	for _, d := range predicateDirectives {
		b.WriteString(d)
		b.WriteString("\n")
	}
	b.WriteString(factsMarker)
	b.WriteString("\n")
	for _, f := range store.Snapshot() {
		b.WriteString(renderFact(f))
		b.WriteString("\n")
	}
	b.WriteString(rulesMarker)
	b.WriteString("\n")
	for _, r := range informationalRules {
		b.WriteString(r)
		b.WriteString("\n")
	}
	return b.String()
}

// RulesReference renders the fixed, informational rule set on its own,
// without any store — used by the MCP resources/read surface to describe
// the derived predicates this engine computes (never parsed back in).
func RulesReference() string {
	var b strings.Builder
	b.WriteString("% derived predicates computed by the rule evaluator\n")
	b.WriteString("% (ground predicates only store parent_of, male, female,\n")
	b.WriteString("%  sibling_of and half_sibling_of; everything below is\n")
	b.WriteString("%  computed on demand, never written to the fact store)\n")
	for _, r := range informationalRules {
		b.WriteString(r)
		b.WriteString("\n")
	}
	return b.String()
}

func renderFact(f Fact) string {
	if f.B == "" {
		return fmt.Sprintf("%s(%s).", f.Pred, f.A)
	}
	return fmt.Sprintf("%s(%s, %s).", f.Pred, f.A, f.B)
}

var factLineRe = regexp.MustCompile(`^([a-z_]+)\(([a-z_0-9]+)(?:,\s*([a-z_0-9]+))?\)\.$`)

// Import parses the §6 text layout back into a Store. Only the facts
// region is read; the rules region is informational and ignored, per
// spec.md §6 ("not reloaded for reasoning"). Facts are inserted in the
// order they appear so that re-exporting immediately reproduces the same
// text (the round-trip property of spec.md §8).
func Import(text string) (*Store, error) {
	store := NewStore()
	lines := strings.Split(text, "\n")
	inFacts := false
	var ordered []Fact
	for _, line := range lines {
		line = strings.TrimSpace(line)
		switch {
		case line == factsMarker:
			inFacts = true
			continue
		case line == rulesMarker:
			inFacts = false
			continue
		case !inFacts, line == "", strings.HasPrefix(line, "%"):
			continue
		}
		f, err := parseFactLine(line)
		if err != nil {
			return nil, &KBError{Kind: Internal, Message: fmt.Sprintf("malformed fact line %q: %v", line, err)}
		}
		ordered = append(ordered, f)
	}
	store.InsertMany(ordered)
	return store, nil
}

func parseFactLine(line string) (Fact, error) {
	m := factLineRe.FindStringSubmatch(line)
	if m == nil {
		return Fact{}, fmt.Errorf("does not match predicate(args).")
	}
	pred := Predicate(m[1])
	switch pred {
	case PredParentOf:
		if m[3] == "" {
			return Fact{}, fmt.Errorf("parent_of requires two arguments")
		}
		return parentOf(m[2], m[3]), nil
	case PredMale:
		return maleFact(m[2]), nil
	case PredFemale:
		return femaleFact(m[2]), nil
	case PredSiblingOf:
		if m[3] == "" {
			return Fact{}, fmt.Errorf("sibling_of requires two arguments")
		}
		return siblingOf(m[2], m[3]), nil
	case PredHalfSiblingOf:
		if m[3] == "" {
			return Fact{}, fmt.Errorf("half_sibling_of requires two arguments")
		}
		return halfSiblingOf(m[2], m[3]), nil
	default:
		return Fact{}, fmt.Errorf("unknown predicate %q", pred)
	}
}
