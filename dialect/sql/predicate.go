package sql

import "strings"

const (
	opAnd   = "AND"
	opOr    = "OR"
	opNot   = "NOT"
	opGroup = "GROUP"
)

// Predicate is a node of a boolean expression tree. Leaves write
// themselves into a Builder; inner nodes combine their children.
type Predicate struct {
	op   string
	kids []*Predicate
	fn   func(*Builder)
}

// P creates a leaf predicate from a custom builder function.
//
//	P(func(b *Builder) {
//		b.Ident("age").WriteString(" > ").Arg(30)
//	})
func P(fn func(*Builder)) *Predicate {
	return &Predicate{fn: fn}
}

// And combines the predicates with AND. Nil predicates are skipped, a single
// remaining predicate is returned as is and an empty set returns nil.
func And(ps ...*Predicate) *Predicate {
	return combine(opAnd, ps)
}

// Or combines the predicates with OR, with the same nil handling as And.
func Or(ps ...*Predicate) *Predicate {
	return combine(opOr, ps)
}

func combine(op string, ps []*Predicate) *Predicate {
	kids := compact(ps)
	switch len(kids) {
	case 0:
		return nil
	case 1:
		return kids[0]
	}
	return &Predicate{op: op, kids: kids}
}

// Not negates the predicate. Not(nil) is nil.
func Not(p *Predicate) *Predicate {
	if p == nil {
		return nil
	}
	return &Predicate{op: opNot, kids: []*Predicate{p}}
}

// Group ANDs the predicates inside one pair of parentheses, even when there
// is a single predicate. Group of nothing is nil.
func Group(ps ...*Predicate) *Predicate {
	kids := compact(ps)
	if len(kids) == 0 {
		return nil
	}
	return &Predicate{op: opGroup, kids: kids}
}

func compact(ps []*Predicate) []*Predicate {
	kids := make([]*Predicate, 0, len(ps))
	for _, p := range ps {
		if p != nil {
			kids = append(kids, p)
		}
	}
	return kids
}

// EQ returns a "=" predicate.
func EQ(col string, value any) *Predicate {
	return binary(col, "=", value)
}

// NEQ returns a "<>" predicate.
func NEQ(col string, value any) *Predicate {
	return binary(col, "<>", value)
}

// GT returns a ">" predicate.
func GT(col string, value any) *Predicate {
	return binary(col, ">", value)
}

// GTE returns a ">=" predicate.
func GTE(col string, value any) *Predicate {
	return binary(col, ">=", value)
}

// LT returns a "<" predicate.
func LT(col string, value any) *Predicate {
	return binary(col, "<", value)
}

// LTE returns a "<=" predicate.
func LTE(col string, value any) *Predicate {
	return binary(col, "<=", value)
}

// Like returns a LIKE predicate.
func Like(col, pattern string) *Predicate {
	return binary(col, "LIKE", pattern)
}

func binary(col, op string, value any) *Predicate {
	return P(func(b *Builder) {
		b.Ident(col).WriteString(" " + op + " ").Arg(value)
	})
}

// In returns an IN predicate. An empty value list never matches.
func In(col string, values ...any) *Predicate {
	return list(col, "IN", "FALSE", values)
}

// NotIn returns a NOT IN predicate. An empty value list always matches.
func NotIn(col string, values ...any) *Predicate {
	return list(col, "NOT IN", "TRUE", values)
}

func list(col, op, empty string, values []any) *Predicate {
	return P(func(b *Builder) {
		if len(values) == 0 {
			b.WriteString(empty)
			return
		}
		b.Ident(col).WriteString(" " + op + " (")
		for i, v := range values {
			if i > 0 {
				b.WriteString(", ")
			}
			b.Arg(v)
		}
		b.WriteString(")")
	})
}

// IsNull returns an IS NULL predicate.
func IsNull(col string) *Predicate {
	return P(func(b *Builder) {
		b.Ident(col).WriteString(" IS NULL")
	})
}

// NotNull returns an IS NOT NULL predicate.
func NotNull(col string) *Predicate {
	return P(func(b *Builder) {
		b.Ident(col).WriteString(" IS NOT NULL")
	})
}

// ColumnsEQ compares two columns.
func ColumnsEQ(col1, col2 string) *Predicate {
	return P(func(b *Builder) {
		b.Ident(col1).WriteString(" = ").Ident(col2)
	})
}

// ExprP returns a raw predicate. Each "?" in expr is replaced by the
// dialect placeholder of the matching argument.
func ExprP(expr string, args ...any) *Predicate {
	return P(func(b *Builder) {
		parts := strings.Split(expr, "?")
		for i, part := range parts {
			b.WriteString(part)
			if i == len(parts)-1 {
				break
			}
			if i < len(args) {
				b.Arg(args[i])
			} else {
				b.WriteString("?")
			}
		}
	})
}

// Query returns the ANSI rendering of the predicate and its arguments.
func (p *Predicate) Query() (string, []any) {
	b := &Builder{}
	p.build(b)
	return b.Query()
}

func (p *Predicate) build(b *Builder) {
	switch p.op {
	case opAnd, opOr:
		for i, k := range p.kids {
			if i > 0 {
				b.WriteString(" " + p.op + " ")
			}
			k.child(b, p.op)
		}
	case opNot:
		b.WriteString("NOT (")
		p.kids[0].build(b)
		b.WriteString(")")
	case opGroup:
		b.WriteString("(")
		for i, k := range p.kids {
			if i > 0 {
				b.WriteString(" AND ")
			}
			k.child(b, opAnd)
		}
		b.WriteString(")")
	default:
		p.fn(b)
	}
}

// child renders p under a parent operator, wrapping it in parentheses
// when the operators differ.
func (p *Predicate) child(b *Builder, parent string) {
	if (p.op == opAnd || p.op == opOr) && p.op != parent {
		b.WriteString("(")
		p.build(b)
		b.WriteString(")")
		return
	}
	p.build(b)
}
