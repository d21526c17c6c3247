package kinship

// ClarificationKind is the closed set of disambiguation dialogues from
// spec.md §4.F. Each kind knows how to render its prompt and how to
// interpret an answer token into a resolved Decision.
type ClarificationKind int

const (
	ClarifyFullSibling ClarificationKind = iota
	ClarifyHalfSiblingSharedParent
	ClarifyGrandparentSide
	ClarifyAuntUncleSide
	ClarifyAuntUncleFull
)

func (k ClarificationKind) String() string {
	switch k {
	case ClarifyFullSibling:
		return "full-sibling"
	case ClarifyHalfSiblingSharedParent:
		return "half-sibling-shared-parent"
	case ClarifyGrandparentSide:
		return "grandparent-side"
	case ClarifyAuntUncleSide:
		return "aunt-uncle-side"
	case ClarifyAuntUncleFull:
		return "aunt-uncle-full"
	default:
		return "unknown"
	}
}

// ClarificationContext is the serialized state of a pending dialogue,
// carried on SessionState across turns (spec.md §4.F / §5).
type ClarificationContext struct {
	Kind ClarificationKind

	// The two people whose sibling status is in question (full-sibling,
	// half-sibling-shared-parent). aunt-uncle-full uses only B, for the
	// parent of the niece/nephew; the aunt/uncle candidate is Upper.
	A, B Person

	// Original statement, preserved so a "no" branch can re-route without
	// re-parsing user input.
	OrigRel  Rel
	OrigArgs []Person

	// grandparent-side / aunt-uncle-side: the grandparent/aunt-or-uncle
	// candidate and the grandchild/niece-or-nephew.
	Upper Person
	Lower Person
	// UpperGender/LowerGender capture any gender implied by the original
	// surface word (grandmother/grandfather, aunt/uncle, niece/nephew).
	UpperGender Gender
	LowerGender Gender
	// MiddleGender is the gender chosen for the linking parent in
	// aunt-uncle-side, consumed by the chained aunt-uncle-full resolution
	// when that parent turns out to be a fresh placeholder.
	MiddleGender Gender

	// PendingFacts carries facts decided at the moment the clarification
	// was raised (e.g. a niece/nephew's own gender) that must still commit
	// once the dialogue resolves, however many turns that takes.
	PendingFacts []Fact
}

const (
	ansYes       = "yes"
	ansNo        = "no"
	ansMaternal  = "maternal"
	ansPaternal  = "paternal"
)

// Prompt renders the pending question for the user.
func (c ClarificationContext) Prompt() string {
	switch c.Kind {
	case ClarifyFullSibling:
		return "Are " + Display(c.A) + " and " + Display(c.B) + " full siblings? (yes/no)"
	case ClarifyHalfSiblingSharedParent:
		return "Do " + Display(c.A) + " and " + Display(c.B) + " share a mother? (yes/no)"
	case ClarifyGrandparentSide:
		return "Is " + Display(c.Upper) + " a maternal or paternal grandparent of " + Display(c.Lower) + "? (maternal/paternal)"
	case ClarifyAuntUncleSide:
		return "Is " + Display(c.Upper) + " a maternal or paternal aunt or uncle of " + Display(c.Lower) + "? (maternal/paternal)"
	case ClarifyAuntUncleFull:
		return "Are " + Display(c.Upper) + " and " + Display(c.B) + " full siblings? (yes/no)"
	default:
		return "Could you clarify?"
	}
}

func parentWord(g Gender) string {
	if g == Male {
		return "father"
	}
	return "mother"
}

// IsClarificationAnswer reports whether raw looks like an answer to a
// pending clarification, so the orchestrator knows whether to resume 4.F
// or treat input as fresh (spec.md §4.H).
func IsClarificationAnswer(kind ClarificationKind, raw string) bool {
	switch kind {
	case ClarifyGrandparentSide, ClarifyAuntUncleSide:
		return raw == ansMaternal || raw == ansPaternal || raw == ansYes || raw == ansNo
	default:
		return raw == ansYes || raw == ansNo
	}
}

// ResolveClarification interprets an answer against a pending context,
// producing the same Decision sum type ordinary statement validation does.
// Invalid replies are handled by the caller (session.go) re-prompting; this
// function is only called once IsClarificationAnswer has approved raw.
func ResolveClarification(ev *Evaluator, ctx ClarificationContext, raw string) Decision {
	var d Decision
	switch ctx.Kind {
	case ClarifyFullSibling:
		d = resolveFullSibling(ev, ctx, raw == ansYes)
	case ClarifyHalfSiblingSharedParent:
		d = resolveHalfSiblingSharedParent(ev, ctx, raw == ansYes)
	case ClarifyGrandparentSide:
		d = resolveGrandparentSide(ev, ctx, raw)
	case ClarifyAuntUncleSide:
		d = resolveAuntUncleSide(ev, ctx, raw)
	case ClarifyAuntUncleFull:
		d = resolveAuntUncleFull(ev, ctx, raw == ansYes)
	default:
		return Rejected{Reason: "internal: unknown clarification kind"}
	}
	return mergeDecisionFacts(d, ctx.PendingFacts)
}

// resolveFullSibling: yes -> both share a placeholder mother and father;
// no -> chains to the half-sibling-shared-parent question.
func resolveFullSibling(ev *Evaluator, ctx ClarificationContext, yes bool) Decision {
	if !yes {
		return NeedsClarification{Ctx: ClarificationContext{
			Kind: ClarifyHalfSiblingSharedParent,
			A:    ctx.A, B: ctx.B,
			OrigRel: ctx.OrigRel, OrigArgs: ctx.OrigArgs,
		}}
	}
	return buildSharedParentRewrite(ev, ctx.A, ctx.B, true, true)
}

// resolveHalfSiblingSharedParent: yes -> shared mother, distinct fathers;
// no -> shared father, distinct mothers.
func resolveHalfSiblingSharedParent(ev *Evaluator, ctx ClarificationContext, sharedMother bool) Decision {
	return buildSharedParentRewrite(ev, ctx.A, ctx.B, false, sharedMother)
}

// buildSharedParentRewrite synthesizes placeholder parents for a (now
// resolved) full or half sibling pair, reusing whatever named or
// placeholder parents the pair already has.
func buildSharedParentRewrite(ev *Evaluator, a, b Person, full bool, sharedMother bool) Decision {
	var facts []Fact
	addShared := func(gender Gender) {
		pa := singleParentOfGender(ev, a, gender)
		pb := singleParentOfGender(ev, b, gender)
		switch {
		case pa != "" && pb != "" && pa == pb:
			// already shared, nothing to do
		case pa != "" && pb == "":
			facts = append(facts, parentOf(pa, b))
		case pb != "" && pa == "":
			facts = append(facts, parentOf(pb, a))
		case pa == "" && pb == "":
			ph := placeholderName(gender, a, b)
			if g, ok := genderFact(ph, gender); ok {
				facts = append(facts, g)
			}
			facts = append(facts, parentOf(ph, a), parentOf(ph, b))
		}
	}

	// addIndividual gives a person their own (non-shared) placeholder
	// parent of gender, unless they already have one. Two half-siblings'
	// "other" parent is known to differ, so it must never be left as a
	// shared slot the way the full-sibling case shares both.
	addIndividual := func(p Person, gender Gender) {
		if singleParentOfGender(ev, p, gender) != "" {
			return
		}
		ph := placeholderName(gender, p, p)
		if g, ok := genderFact(ph, gender); ok {
			facts = append(facts, g)
		}
		facts = append(facts, parentOf(ph, p))
	}

	if full {
		addShared(Female)
		addShared(Male)
		facts = append(facts, siblingOf(a, b))
	} else {
		sharedGender, otherGender := Male, Female
		if sharedMother {
			sharedGender, otherGender = Female, Male
		}
		addShared(sharedGender)
		addIndividual(a, otherGender)
		addIndividual(b, otherGender)
		facts = append(facts, halfSiblingOf(a, b))
	}
	return Accepted{Facts: facts}
}

func singleParentOfGender(ev *Evaluator, p Person, g Gender) Person {
	for _, parent := range ev.Parents(p) {
		if ev.GenderOf(parent) == g {
			return parent
		}
	}
	return ""
}

// resolveGrandparentSide routes the grandparent through the maternal or
// paternal parent of the grandchild, creating that parent as a placeholder
// if it isn't already named.
func resolveGrandparentSide(ev *Evaluator, ctx ClarificationContext, raw string) Decision {
	maternal := raw == ansMaternal || raw == ansYes
	gender := Female
	if !maternal {
		gender = Male
	}
	middle := singleParentOfGender(ev, ctx.Lower, gender)
	var facts []Fact
	if middle == "" {
		middle = placeholderName(gender, ctx.Upper, ctx.Lower)
		if g, ok := genderFact(middle, gender); ok {
			facts = append(facts, g)
		}
		facts = append(facts, parentOf(middle, ctx.Lower))
	}
	decision := validateParentOf(ev, ctx.Upper, middle, ctx.UpperGender)
	return mergeDecisionFacts(decision, facts)
}

// resolveAuntUncleSide picks which parent of the niece/nephew the
// candidate aunt/uncle must be a sibling of, then chains into the
// full/half question.
func resolveAuntUncleSide(ev *Evaluator, ctx ClarificationContext, raw string) Decision {
	maternal := raw == ansMaternal || raw == ansYes
	gender := Female
	if !maternal {
		gender = Male
	}
	parent := singleParentOfGender(ev, ctx.Lower, gender)
	if parent == "" {
		parent = placeholderName(gender, ctx.Upper, ctx.Lower)
	}
	return NeedsClarification{Ctx: ClarificationContext{
		Kind: ClarifyAuntUncleFull,
		Upper: ctx.Upper, B: parent, Lower: ctx.Lower,
		UpperGender: ctx.UpperGender, LowerGender: ctx.LowerGender, MiddleGender: gender,
	}}
}

func resolveAuntUncleFull(ev *Evaluator, ctx ClarificationContext, yes bool) Decision {
	var facts []Fact
	if !isPlaceholder(ctx.B) || ev.GenderOf(ctx.B) != Unknown {
		// parent already exists (named or a previously-known placeholder)
	} else {
		if g, ok := genderFact(ctx.B, ctx.MiddleGender); ok {
			facts = append(facts, g)
		}
		facts = append(facts, parentOf(ctx.B, ctx.Lower))
	}
	sibDecision := buildSharedParentRewrite(ev, ctx.Upper, ctx.B, yes, true)
	return mergeDecisionFacts(sibDecision, facts)
}

// mergeDecisionFacts prepends extra ground facts (e.g. a synthesized
// middle parent) onto an Accepted/NeedsRewrite decision.
func mergeDecisionFacts(d Decision, extra []Fact) Decision {
	if len(extra) == 0 {
		return d
	}
	switch v := d.(type) {
	case Accepted:
		return Accepted{Facts: append(append([]Fact{}, extra...), v.Facts...)}
	case NeedsRewrite:
		v.Op.ExtraFacts = append(append([]Fact{}, extra...), v.Op.ExtraFacts...)
		return v
	case NeedsClarification:
		v.Ctx.PendingFacts = append(append([]Fact{}, extra...), v.Ctx.PendingFacts...)
		return v
	default:
		return d
	}
}
