package sqlalias

import "strings"

// JoinKind is the kind of a structured join
type JoinKind int

const (
	InnerJoin JoinKind = iota
	LeftOuterJoin
	RightOuterJoin
	FullOuterJoin
	CrossJoin
)

func (k JoinKind) String() string {
	switch k {
	case InnerJoin:
		return "INNER JOIN"
	case LeftOuterJoin:
		return "LEFT OUTER JOIN"
	case RightOuterJoin:
		return "RIGHT OUTER JOIN"
	case FullOuterJoin:
		return "FULL OUTER JOIN"
	case CrossJoin:
		return "CROSS JOIN"
	default:
		return "JOIN"
	}
}

// JoinFragment is one join of a query. It is either a *StringJoin or a *TableJoin, other
// implementations are rejected when counting table occurrences.
type JoinFragment interface {
	SQL(c Connection) string
	isJoin()
}

// StringJoin is a join written by hand, as raw SQL. It may reference any table under any name.
type StringJoin struct {
	Raw string
}

// Raw returns a StringJoin for the given SQL text
func Raw(s string) *StringJoin {
	return &StringJoin{Raw: s}
}

func (j *StringJoin) SQL(Connection) string {
	return j.Raw
}

func (*StringJoin) isJoin() {}

// TableJoin is a structured join of Table, on the condition On
type TableJoin struct {
	Kind  JoinKind
	Table *AliasedTable
	On    string // condition for join, ignored for CROSS JOIN
}

// Join returns a structured join
func Join(kind JoinKind, table *AliasedTable, on string) *TableJoin {
	return &TableJoin{Kind: kind, Table: table, On: on}
}

func (j *TableJoin) SQL(c Connection) string {
	b := &strings.Builder{}
	b.WriteString(j.Kind.String())
	b.WriteByte(' ')
	b.WriteString(j.Table.Quoted(c))
	if j.Kind != CrossJoin && j.On != "" {
		b.WriteString(" ON ")
		b.WriteString(j.On)
	}
	return b.String()
}

func (*TableJoin) isJoin() {}
