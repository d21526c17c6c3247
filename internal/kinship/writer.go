package kinship

// maxCleanupPasses bounds the fixed-point loop in cleanup: in practice one
// pass suffices (a child has at most one placeholder per gender), the
// extra passes are cheap insurance against a chain of replacements.
const maxCleanupPasses = 3

// CommitAccepted inserts a plain fact list and runs the cleanup pass,
// returning whatever was actually new.
func CommitAccepted(store *Store, facts []Fact) []Fact {
	inserted := store.InsertMany(facts)
	cleanup(store)
	return inserted
}

// CommitRewrite executes a NeedsRewrite decision: optionally replace a
// placeholder (removing every fact that mentions it, then re-inserting the
// named parent for each of its former children), insert any extra facts
// the clarification synthesized, and attach the new parent to every
// requested target. It finishes with the §4.G cleanup pass.
func CommitRewrite(store *Store, op RewriteOp) []Fact {
	var inserted []Fact

	if op.Placeholder != "" {
		store.RemoveWhere(func(f Fact) bool { return f.mentions(op.Placeholder) })
	}

	inserted = append(inserted, store.InsertMany(op.ExtraFacts)...)

	if op.Gender != Unknown {
		if gf, ok := genderFact(op.NewParent, op.Gender); ok {
			inserted = append(inserted, store.InsertMany([]Fact{gf})...)
		}
	}

	var parentFacts []Fact
	for _, target := range op.Targets {
		parentFacts = append(parentFacts, parentOf(op.NewParent, target))
	}
	inserted = append(inserted, store.InsertMany(parentFacts)...)

	cleanup(store)
	return inserted
}

// cleanup implements spec.md §4.G's closing invariant pass: any child that
// ends up with both a named parent and a placeholder of the same gender
// loses the placeholder, and the placeholder's other children inherit the
// named parent too. It also upgrades a stored half_sibling_of pair to
// sibling_of once a placeholder replacement leaves them sharing both
// parents (spec.md §8 scenario 6).
func cleanup(store *Store) {
	for pass := 0; pass < maxCleanupPasses; pass++ {
		snap := store.Snapshot()
		ev := NewEvaluator(snap)
		changed := false

		for child := range ev.people {
			named, placeholders := splitParentsByPlaceholder(ev, child)
			for _, ph := range placeholders {
				for _, nm := range named {
					if ev.GenderOf(nm) != ev.GenderOf(ph) {
						continue
					}
					targets := ev.Children(ph)
					store.RemoveWhere(func(f Fact) bool { return f.mentions(ph) })
					var toInsert []Fact
					for _, t := range targets {
						toInsert = append(toInsert, parentOf(nm, t))
					}
					store.InsertMany(toInsert)
					changed = true
				}
			}
		}

		if upgradeHalfSiblingsSharingBothParents(store) {
			changed = true
		}

		if !changed {
			return
		}
	}
}

// upgradeHalfSiblingsSharingBothParents finds every explicitly-declared
// half_sibling_of pair that now shares the same two parents — the
// placeholder-replacement outcome of spec.md §8 scenario 6 — and replaces
// that fact with sibling_of, since the pair is no longer distinguishable
// from a directly-declared full sibling pair.
func upgradeHalfSiblingsSharingBothParents(store *Store) bool {
	snap := store.Snapshot()
	ev := NewEvaluator(snap)
	changed := false
	seen := map[[2]Person]bool{}
	for pair := range ev.halfPairs {
		x, y := pair[0], pair[1]
		key := pair
		if y < x {
			key = [2]Person{y, x}
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		if !sharesBothParents(ev, x, y) {
			continue
		}
		store.RemoveWhere(func(f Fact) bool {
			return f.Pred == PredHalfSiblingOf && ((f.A == x && f.B == y) || (f.A == y && f.B == x))
		})
		store.InsertMany([]Fact{siblingOf(x, y)})
		changed = true
	}
	return changed
}

func sharesBothParents(ev *Evaluator, x, y Person) bool {
	px, py := ev.Parents(x), ev.Parents(y)
	if len(px) != 2 || len(py) != 2 {
		return false
	}
	return (px[0] == py[0] && px[1] == py[1]) || (px[0] == py[1] && px[1] == py[0])
}

func splitParentsByPlaceholder(ev *Evaluator, child Person) (named, placeholders []Person) {
	for _, p := range ev.Parents(child) {
		if ev.GenderOf(p) == Unknown {
			continue
		}
		if isPlaceholder(p) {
			placeholders = append(placeholders, p)
		} else {
			named = append(named, p)
		}
	}
	return named, placeholders
}
