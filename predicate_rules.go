package riff

// Binder rewrites each (name, *) leaf into an (ordinal, *) leaf by
// looking the column up in a TypeDescription. It fails UnknownColumn if
// the name is absent, and TypeMismatch if the leaf's literal type
// doesn't match the column's scalar type. Applying Binder twice is a
// no-op: a leaf that is already Bound is returned unchanged, so bound
// trees re-bind idempotently.
type Binder struct {
	Types *TypeDescription
}

func (b *Binder) Leaf(l *LeafNode) (Node, error) {
	if l.Bound {
		return l, nil
	}
	ord, err := b.Types.Position(l.Column)
	if err != nil {
		return nil, err
	}
	spec := b.Types.At(ord)
	if err := checkLeafType(l, spec); err != nil {
		return nil, err
	}
	out := *l
	out.Ordinal = ord
	out.Bound = true
	return &out, nil
}

func checkLeafType(l *LeafNode, spec TypeSpec) error {
	switch l.Op {
	case KindIsNull:
		return nil
	case KindIn:
		for _, x := range l.Set {
			if x.Type != spec.DataType {
				return NewTypeMismatchError(spec.Name, spec.DataType, x.Type)
			}
		}
		return nil
	default:
		if l.Literal.Type != spec.DataType {
			return NewTypeMismatchError(spec.Name, spec.DataType, l.Literal.Type)
		}
		return nil
	}
}

// Simplifier folds boolean-algebra identities after children have been
// transformed: And(True,x)->x, And(False,_)->False, Or(False,x)->x,
// Or(True,_)->True, Not(True)->False, Not(False)->True, Not(Not(x))->x,
// And(x,Not(x))->False, Or(x,Not(x))->True.
type Simplifier struct{}

func (Simplifier) Leaf(l *LeafNode) (Node, error) { return l, nil }

func (Simplifier) Logical(n Node) (Node, error) {
	switch v := n.(type) {
	case *AndNode:
		if _, ok := v.L.(TrueNode); ok {
			return v.R, nil
		}
		if _, ok := v.R.(TrueNode); ok {
			return v.L, nil
		}
		if _, ok := v.L.(FalseNode); ok {
			return False, nil
		}
		if _, ok := v.R.(FalseNode); ok {
			return False, nil
		}
		if isNegationOf(v.L, v.R) || isNegationOf(v.R, v.L) {
			return False, nil
		}
		return v, nil
	case *OrNode:
		if _, ok := v.L.(FalseNode); ok {
			return v.R, nil
		}
		if _, ok := v.R.(FalseNode); ok {
			return v.L, nil
		}
		if _, ok := v.L.(TrueNode); ok {
			return True, nil
		}
		if _, ok := v.R.(TrueNode); ok {
			return True, nil
		}
		if isNegationOf(v.L, v.R) || isNegationOf(v.R, v.L) {
			return True, nil
		}
		return v, nil
	case *NotNode:
		if _, ok := v.Child.(TrueNode); ok {
			return False, nil
		}
		if _, ok := v.Child.(FalseNode); ok {
			return True, nil
		}
		if inner, ok := v.Child.(*NotNode); ok {
			return inner.Child, nil
		}
		return v, nil
	default:
		return n, nil
	}
}

// isNegationOf reports whether a is structurally Not(b). Callers test
// both argument orders to fold And(x, Not(x)) and Or(x, Not(x)).
func isNegationOf(a, b Node) bool {
	n, ok := a.(*NotNode)
	return ok && Equal(n.Child, b)
}

// Trivial is the precomputed short-circuit tag a PredicateState records
// after binding and simplifying its tree.
type Trivial int

const (
	TrivialNone Trivial = iota
	TrivialTrue
	TrivialFalse
)

// DetectTrivial reports whether a fully bound-and-simplified tree
// reduced entirely to True, False, or neither.
func DetectTrivial(tree Node) Trivial {
	switch tree.(type) {
	case TrueNode:
		return TrivialTrue
	case FalseNode:
		return TrivialFalse
	default:
		return TrivialNone
	}
}
