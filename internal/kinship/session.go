package kinship

import (
	"context"
	"strings"
)

// SessionState is the engine's entire per-session state: the fact store
// and, if a dialogue is in progress, the pending clarification (spec.md
// §4.H, §5). The zero value is not usable; construct with NewSessionState.
type SessionState struct {
	Store   *Store
	Pending *ClarificationContext
}

// NewSessionState returns a session with an empty fact store.
func NewSessionState() *SessionState {
	return &SessionState{Store: NewStore()}
}

// Process is the engine's single entry point (spec.md §6): one user turn
// in, one reply out. ctx carries cancellation the way the teacher threads
// it through every blocking call, even though no step here actually
// blocks — a future persistence backend (§2 component J) may.
func Process(ctx context.Context, input string, session *SessionState) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return unrecognizedMessage(), nil
	}

	if session.Pending != nil {
		lower := strings.ToLower(trimmed)
		lower = strings.TrimSuffix(lower, ".")
		if IsClarificationAnswer(session.Pending.Kind, lower) {
			pending := *session.Pending
			session.Pending = nil
			ev := NewEvaluator(session.Store.Snapshot())
			decision := ResolveClarification(ev, pending, lower)
			return applyDecision(session, decision), nil
		}
		return "I didn't understand that reply. " + session.Pending.Prompt(), nil
	}

	intent, err := Match(trimmed)
	if err != nil {
		return err.Error(), nil
	}

	switch v := intent.(type) {
	case StatementIntent:
		args, nerr := normalizeArgs(v.Args)
		if nerr != nil {
			return nerr.Error(), nil
		}
		v.Args = args
		ev := NewEvaluator(session.Store.Snapshot())
		decision := Validate(ev, v)
		return applyDecision(session, decision), nil

	case QuestionIntent:
		args, nerr := normalizeArgs(v.Args)
		if nerr != nil {
			return nerr.Error(), nil
		}
		v.Args = args
		ev := NewEvaluator(session.Store.Snapshot())
		return answerQuestion(ev, v), nil

	default:
		return unrecognizedMessage(), nil
	}
}

func normalizeArgs(raw []Person) ([]Person, error) {
	out := make([]Person, len(raw))
	for i, r := range raw {
		n, err := NormalizeName(string(r))
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}

// applyDecision commits a Decision and produces the user-facing reply,
// per §7's fixed phrasing.
func applyDecision(session *SessionState, decision Decision) string {
	switch d := decision.(type) {
	case Accepted:
		if len(d.Facts) == 0 {
			return replyRedundant
		}
		inserted := CommitAccepted(session.Store, d.Facts)
		if len(inserted) == 0 {
			return replyRedundant
		}
		return replyAccepted

	case Rejected:
		return d.Reason

	case NeedsClarification:
		ctx := d.Ctx
		session.Pending = &ctx
		return ctx.Prompt()

	case NeedsRewrite:
		inserted := CommitRewrite(session.Store, d.Op)
		if len(inserted) == 0 {
			return replyRedundant
		}
		return replyAccepted

	default:
		return "internal error: unhandled decision"
	}
}

// answerQuestion dispatches a parsed question to the rule evaluator and
// formats its reply.
func answerQuestion(ev *Evaluator, q QuestionIntent) string {
	if q.Existential {
		return answerExistential(ev, q)
	}
	return answerBoolean(ev, q)
}

func answerBoolean(ev *Evaluator, q QuestionIntent) string {
	a := q.Args[0]
	switch q.Rel {
	case RelMale:
		return yesNo(ev.GenderOf(a) == Male)
	case RelFemale:
		return yesNo(ev.GenderOf(a) == Female)
	}

	b := q.Args[1]
	switch q.Rel {
	case RelMother:
		return yesNo(ev.MotherOf(a, b))
	case RelFather:
		return yesNo(ev.FatherOf(a, b))
	case RelSon:
		return yesNo(ev.SonOf(a, b))
	case RelDaughter:
		return yesNo(ev.DaughterOf(a, b))
	case RelChild:
		return yesNo(ev.ChildOf(a, b))
	case RelBrother:
		return yesNo(ev.BrotherOf(a, b))
	case RelSister:
		return yesNo(ev.SisterOf(a, b))
	case RelSibling:
		return reportSiblingQuestion(ev, a, b)
	case RelHalfSibling:
		return yesNo(ev.HalfSiblingOf(a, b))
	case RelHalfBrother:
		return yesNo(ev.HalfSiblingOf(a, b) && ev.GenderOf(a) == Male)
	case RelHalfSister:
		return yesNo(ev.HalfSiblingOf(a, b) && ev.GenderOf(a) == Female)
	case RelGrandmother:
		return yesNo(ev.GrandmotherOf(a, b))
	case RelGrandfather:
		return yesNo(ev.GrandfatherOf(a, b))
	case RelGrandchild:
		return yesNo(ev.GrandchildOf(a, b))
	case RelGranddaughter:
		return yesNo(ev.GranddaughterOf(a, b))
	case RelGrandson:
		return yesNo(ev.GrandsonOf(a, b))
	case RelAunt:
		return yesNo(ev.AuntOf(a, b))
	case RelUncle:
		return yesNo(ev.UncleOf(a, b))
	case RelNiece:
		return yesNo(ev.NieceOf(a, b))
	case RelNephew:
		return yesNo(ev.NephewOf(a, b))
	case RelCousin:
		return yesNo(ev.CousinOf(a, b))
	case RelRelative:
		return yesNo(ev.Relative(a, b))
	default:
		return "No."
	}
}

// reportSiblingQuestion implements spec.md §4.C's reporting rule: "Are X
// and Y siblings?" must say whether they are full or half.
func reportSiblingQuestion(ev *Evaluator, a, b Person) string {
	if ev.HalfSiblingOf(a, b) {
		return "Yes, " + Display(a) + " and " + Display(b) + " are half-siblings."
	}
	if ev.SiblingOf(a, b) {
		return "Yes, " + Display(a) + " and " + Display(b) + " are full siblings."
	}
	return "No."
}

func answerExistential(ev *Evaluator, q QuestionIntent) string {
	x := q.Args[0]
	switch q.Word {
	case "siblings":
		return formatSetAnswer("siblings", x, ev.SiblingsOf(x))
	case "sisters":
		return formatSetAnswer("sisters", x, ev.SistersOf(x))
	case "brothers":
		return formatSetAnswer("brothers", x, ev.BrothersOf(x))
	case "parents":
		return formatSetAnswer("parents", x, ev.Parents(x))
	case "children":
		return formatSetAnswer("children", x, ev.ChildrenOf(x))
	case "sons":
		return formatSetAnswer("sons", x, ev.SonsOf(x))
	case "daughters":
		return formatSetAnswer("daughters", x, ev.DaughtersOf(x))
	case "nieces":
		return formatSetAnswer("nieces", x, ev.NiecesOf(x))
	case "nephews":
		return formatSetAnswer("nephews", x, ev.NephewsOf(x))
	case "cousins":
		return formatSetAnswer("cousins", x, ev.CousinsOf(x))
	case "grandchildren":
		return formatSetAnswer("grandchildren", x, ev.GrandchildrenOf(x))
	case "half-siblings":
		return formatSetAnswer("half-siblings", x, ev.HalfSiblingsOf(x))
	case "mother":
		return formatSingularAnswer("mother", x, singleParentOfGender(ev, x, Female))
	case "father":
		return formatSingularAnswer("father", x, singleParentOfGender(ev, x, Male))
	default:
		return "I don't know how to answer that."
	}
}

func formatSetAnswer(word string, x Person, members []Person) string {
	if len(members) == 0 {
		return "I don't know of any " + word + " of " + Display(x) + "."
	}
	strs := make([]string, len(members))
	for i, m := range members {
		strs[i] = string(m)
	}
	return "The " + word + " of " + Display(x) + " are " + formatList(strs) + "."
}

func formatSingularAnswer(word string, x Person, p Person) string {
	if p == "" {
		return "I don't know who the " + word + " of " + Display(x) + " is."
	}
	return "The " + word + " of " + Display(x) + " is " + p + "."
}
