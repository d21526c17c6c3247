package kinship

// maxAncestryDepth bounds the parent-chain walk used by AncestorOf. The
// store's acyclicity invariant makes cycles impossible, but a bound keeps
// the evaluator's cost predictable over any size tree, per spec.md §3's
// "ancestor_of is acyclic" and §1's "no unbounded ancestry queries beyond a
// fixed depth where rules enumerate steps".
const maxAncestryDepth = 64

// Evaluator is the deterministic proof engine over the fixed rule set of
// spec.md §4.C. It is built from one consistent Store.Snapshot() and never
// mutates; the same Evaluator can safely answer many queries.
type Evaluator struct {
	facts    []Fact
	parents  map[Person][]Person // child -> parents
	children map[Person][]Person // parent -> children
	gender   map[Person]Gender
	sibPairs map[[2]Person]bool // explicit sibling_of, both orderings stored
	halfPairs map[[2]Person]bool
	people   map[Person]bool
}

// NewEvaluator indexes a snapshot for querying.
func NewEvaluator(facts []Fact) *Evaluator {
	e := &Evaluator{
		facts:     facts,
		parents:   map[Person][]Person{},
		children:  map[Person][]Person{},
		gender:    map[Person]Gender{},
		sibPairs:  map[[2]Person]bool{},
		halfPairs: map[[2]Person]bool{},
		people:    map[Person]bool{},
	}
	for _, f := range facts {
		e.people[f.A] = true
		if f.B != "" {
			e.people[f.B] = true
		}
		switch f.Pred {
		case PredParentOf:
			e.parents[f.B] = append(e.parents[f.B], f.A)
			e.children[f.A] = append(e.children[f.A], f.B)
		case PredMale:
			e.gender[f.A] = Male
		case PredFemale:
			e.gender[f.A] = Female
		case PredSiblingOf:
			e.sibPairs[[2]Person{f.A, f.B}] = true
			e.sibPairs[[2]Person{f.B, f.A}] = true
		case PredHalfSiblingOf:
			e.halfPairs[[2]Person{f.A, f.B}] = true
			e.halfPairs[[2]Person{f.B, f.A}] = true
		}
	}
	return e
}

func (e *Evaluator) GenderOf(p Person) Gender { return e.gender[p] }

func (e *Evaluator) Parents(c Person) []Person { return append([]Person{}, e.parents[c]...) }

func (e *Evaluator) Children(p Person) []Person { return append([]Person{}, e.children[p]...) }

// ParentOf is the stored ground predicate.
func (e *Evaluator) ParentOf(p, c Person) bool {
	for _, pp := range e.parents[c] {
		if pp == p {
			return true
		}
	}
	return false
}

func (e *Evaluator) FatherOf(p, c Person) bool {
	return p != c && e.ParentOf(p, c) && e.gender[p] == Male
}

func (e *Evaluator) MotherOf(p, c Person) bool {
	return p != c && e.ParentOf(p, c) && e.gender[p] == Female
}

func (e *Evaluator) ChildOf(c, p Person) bool { return p != c && e.ParentOf(p, c) }

func (e *Evaluator) SonOf(c, p Person) bool { return e.ChildOf(c, p) && e.gender[c] == Male }

func (e *Evaluator) DaughterOf(c, p Person) bool { return e.ChildOf(c, p) && e.gender[c] == Female }

// sharedParent reports the first parent common to both x and y, if any.
func (e *Evaluator) sharedParent(x, y Person) (Person, bool) {
	ys := map[Person]bool{}
	for _, p := range e.parents[y] {
		ys[p] = true
	}
	for _, p := range e.parents[x] {
		if ys[p] {
			return p, true
		}
	}
	return "", false
}

// derivedSiblingOf implements the rule
//
//	sibling_of(X,Y) <- parent_of(Z,X), parent_of(Z,Y), X != Y, Z not in {X,Y}
func (e *Evaluator) derivedSiblingOf(x, y Person) bool {
	if x == y {
		return false
	}
	z, ok := e.sharedParent(x, y)
	return ok && z != x && z != y
}

// SiblingOf conjoins the stored explicit fact with the derived rule, per
// spec.md §4.C's reporting semantics: an explicit sibling_of fact without a
// known shared parent still reports true.
func (e *Evaluator) SiblingOf(x, y Person) bool {
	if x == y {
		return false
	}
	return e.sibPairs[[2]Person{x, y}] || e.derivedSiblingOf(x, y)
}

// derivedHalfSiblingOf implements the rule
//
//	half_sibling_of(X,Y) <- parent_of(Z,X), parent_of(Z,Y), X != Y,
//	                        parent_of(W1,X), parent_of(W2,Y), W1 != W2, W1 != Z, W2 != Z
func (e *Evaluator) derivedHalfSiblingOf(x, y Person) bool {
	if x == y {
		return false
	}
	z, ok := e.sharedParent(x, y)
	if !ok {
		return false
	}
	for _, w1 := range e.parents[x] {
		if w1 == z {
			continue
		}
		for _, w2 := range e.parents[y] {
			if w2 == z || w2 == w1 {
				continue
			}
			return true
		}
	}
	return false
}

func (e *Evaluator) HalfSiblingOf(x, y Person) bool {
	if x == y {
		return false
	}
	return e.halfPairs[[2]Person{x, y}] || e.derivedHalfSiblingOf(x, y)
}

func (e *Evaluator) BrotherOf(x, y Person) bool { return e.SiblingOf(x, y) && e.gender[x] == Male }
func (e *Evaluator) SisterOf(x, y Person) bool  { return e.SiblingOf(x, y) && e.gender[x] == Female }

// GrandparentOf implements grandparent_of(X,Y) <- parent_of(X,Z), parent_of(Z,Y), X != Y.
func (e *Evaluator) GrandparentOf(x, y Person) bool {
	if x == y {
		return false
	}
	for _, z := range e.children[x] {
		if e.ParentOf(z, y) {
			return true
		}
	}
	return false
}

func (e *Evaluator) GrandmotherOf(x, y Person) bool { return e.GrandparentOf(x, y) && e.gender[x] == Female }
func (e *Evaluator) GrandfatherOf(x, y Person) bool { return e.GrandparentOf(x, y) && e.gender[x] == Male }
func (e *Evaluator) GrandchildOf(c, g Person) bool  { return e.GrandparentOf(g, c) }
func (e *Evaluator) GranddaughterOf(c, g Person) bool {
	return e.GrandchildOf(c, g) && e.gender[c] == Female
}
func (e *Evaluator) GrandsonOf(c, g Person) bool { return e.GrandchildOf(c, g) && e.gender[c] == Male }

// UncleOf/AuntOf implement uncle_of(X,Y) <- brother_of(X,Z), parent_of(Z,Y), X != Y
// and the female analogue.
func (e *Evaluator) UncleOf(x, y Person) bool {
	if x == y {
		return false
	}
	for z := range e.people {
		if e.BrotherOf(x, z) && e.ParentOf(z, y) {
			return true
		}
	}
	return false
}

func (e *Evaluator) AuntOf(x, y Person) bool {
	if x == y {
		return false
	}
	for z := range e.people {
		if e.SisterOf(x, z) && e.ParentOf(z, y) {
			return true
		}
	}
	return false
}

func (e *Evaluator) NieceOf(n, x Person) bool {
	return (e.AuntOf(x, n) || e.UncleOf(x, n)) && e.gender[n] == Female
}

func (e *Evaluator) NephewOf(n, x Person) bool {
	return (e.AuntOf(x, n) || e.UncleOf(x, n)) && e.gender[n] == Male
}

// CousinOf implements cousin_of(X,Y) <- parent_of(Z1,X), parent_of(Z2,Y), sibling_of(Z1,Z2), X != Y.
func (e *Evaluator) CousinOf(x, y Person) bool {
	if x == y {
		return false
	}
	for _, z1 := range e.parents[x] {
		for _, z2 := range e.parents[y] {
			if e.SiblingOf(z1, z2) {
				return true
			}
		}
	}
	return false
}

// AncestorOf walks the parent chain up to maxAncestryDepth. depth >= 1: a
// direct parent already counts.
func (e *Evaluator) AncestorOf(x, y Person) bool {
	if x == y {
		return false
	}
	frontier := []Person{y}
	seen := map[Person]bool{y: true}
	for depth := 0; depth < maxAncestryDepth && len(frontier) > 0; depth++ {
		var next []Person
		for _, c := range frontier {
			for _, p := range e.parents[c] {
				if p == x {
					return true
				}
				if !seen[p] {
					seen[p] = true
					next = append(next, p)
				}
			}
		}
		frontier = next
	}
	return false
}

// Relative is the symmetrized union of every kinship predicate, including
// the degenerate case of the same person (spec.md §8 boundary behavior).
func (e *Evaluator) Relative(x, y Person) bool {
	if x == y {
		return true
	}
	if e.ParentOf(x, y) || e.ParentOf(y, x) {
		return true
	}
	if e.SiblingOf(x, y) || e.HalfSiblingOf(x, y) {
		return true
	}
	if e.GrandparentOf(x, y) || e.GrandparentOf(y, x) {
		return true
	}
	if e.AuntOf(x, y) || e.UncleOf(x, y) || e.AuntOf(y, x) || e.UncleOf(y, x) {
		return true
	}
	if e.CousinOf(x, y) {
		return true
	}
	if e.AncestorOf(x, y) || e.AncestorOf(y, x) {
		return true
	}
	return false
}

// Category names the mutually-exclusive kinship categories of spec.md §3
// invariant 5.
type Category int

const (
	CategoryNone Category = iota
	CategoryAncestry
	CategorySibling
	CategoryAuntUncle
	CategoryCousin
)

func (c Category) String() string {
	switch c {
	case CategoryAncestry:
		return "ancestor/descendant"
	case CategorySibling:
		return "sibling"
	case CategoryAuntUncle:
		return "aunt/uncle-niece/nephew"
	case CategoryCousin:
		return "cousin"
	default:
		return "unrelated"
	}
}

// CategoryBetween classifies the single category (if any) that already
// holds between an unordered pair, used by the validator's category
// exclusivity check (spec.md §4.E item 5).
func (e *Evaluator) CategoryBetween(a, b Person) Category {
	if a == b {
		return CategoryNone
	}
	if e.AncestorOf(a, b) || e.AncestorOf(b, a) {
		return CategoryAncestry
	}
	if e.SiblingOf(a, b) || e.HalfSiblingOf(a, b) {
		return CategorySibling
	}
	if e.AuntOf(a, b) || e.UncleOf(a, b) || e.AuntOf(b, a) || e.UncleOf(b, a) {
		return CategoryAuntUncle
	}
	if e.CousinOf(a, b) {
		return CategoryCousin
	}
	return CategoryNone
}

// existential helpers backing "who are the ... of X" questions.

func (e *Evaluator) SiblingsOf(x Person) []Person { return e.filterPeople(func(y Person) bool { return e.SiblingOf(x, y) }) }
func (e *Evaluator) HalfSiblingsOf(x Person) []Person {
	return e.filterPeople(func(y Person) bool { return e.HalfSiblingOf(x, y) })
}
func (e *Evaluator) BrothersOf(x Person) []Person { return e.filterPeople(func(y Person) bool { return e.SiblingOf(x, y) && e.gender[y] == Male }) }
func (e *Evaluator) SistersOf(x Person) []Person {
	return e.filterPeople(func(y Person) bool { return e.SiblingOf(x, y) && e.gender[y] == Female })
}
func (e *Evaluator) ChildrenOf(x Person) []Person { return append([]Person{}, e.children[x]...) }
func (e *Evaluator) SonsOf(x Person) []Person {
	return e.filterPeople(func(y Person) bool { return e.ChildOf(y, x) && e.gender[y] == Male })
}
func (e *Evaluator) DaughtersOf(x Person) []Person {
	return e.filterPeople(func(y Person) bool { return e.ChildOf(y, x) && e.gender[y] == Female })
}
func (e *Evaluator) NiecesOf(x Person) []Person {
	return e.filterPeople(func(y Person) bool { return e.NieceOf(y, x) })
}
func (e *Evaluator) NephewsOf(x Person) []Person {
	return e.filterPeople(func(y Person) bool { return e.NephewOf(y, x) })
}
func (e *Evaluator) CousinsOf(x Person) []Person {
	return e.filterPeople(func(y Person) bool { return e.CousinOf(x, y) })
}
func (e *Evaluator) GrandchildrenOf(x Person) []Person {
	return e.filterPeople(func(y Person) bool { return e.GrandparentOf(x, y) })
}

func (e *Evaluator) filterPeople(pred func(Person) bool) []Person {
	var out []Person
	for p := range e.people {
		if pred(p) {
			out = append(out, p)
		}
	}
	return out
}
