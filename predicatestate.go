package riff

// PredicateState is a predicate tree bound to a specific TypeDescription
// and simplified to canonical trivial form. Once built it is immutable
// and safe to share read-only across concurrent stripe evaluations.
type PredicateState struct {
	tree    Node
	trivial Trivial
}

// NewPredicateState clones tree, binds it against types via the Binder
// rule, simplifies the result, and records whether it reduced to a
// trivial constant. Binding failures (UnknownColumn, TypeMismatch) are
// returned as-is.
func NewPredicateState(tree Node, types *TypeDescription) (*PredicateState, error) {
	cloned := CloneTree(tree)
	bound, err := Transform(cloned, &Binder{Types: types})
	if err != nil {
		return nil, err
	}
	simplified, err := Transform(bound, Simplifier{})
	if err != nil {
		return nil, err
	}
	return &PredicateState{tree: simplified, trivial: DetectTrivial(simplified)}, nil
}

// Tree returns the bound, simplified predicate tree.
func (ps *PredicateState) Tree() Node { return ps.tree }

// IsTrivial returns the precomputed trivial tag.
func (ps *PredicateState) IsTrivial() Trivial { return ps.trivial }

// EvaluateRow evaluates the predicate's exact row-level semantics.
func (ps *PredicateState) EvaluateRow(row Row) bool {
	switch ps.trivial {
	case TrivialTrue:
		return true
	case TrivialFalse:
		return false
	default:
		return evaluateRow(ps.tree, row)
	}
}

// EvaluateStats evaluates the predicate against per-stripe statistics,
// indexed by column ordinal (length == the type description's
// NumIndexed()). False means the stripe can be skipped soundly.
func (ps *PredicateState) EvaluateStats(stats []Statistics) bool {
	switch ps.trivial {
	case TrivialTrue:
		return true
	case TrivialFalse:
		return false
	default:
		return evaluateStats(ps.tree, stats)
	}
}

// EvaluateFilters evaluates the predicate against per-stripe column
// filters, indexed by column ordinal. False means the stripe can be
// skipped soundly.
func (ps *PredicateState) EvaluateFilters(filters []ColumnFilter) bool {
	switch ps.trivial {
	case TrivialTrue:
		return true
	case TrivialFalse:
		return false
	default:
		return evaluateFilters(ps.tree, filters)
	}
}
