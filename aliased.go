package sqlalias

import "github.com/KarpelesLab/pjson"

// AliasedTable is a table as it appears in a query: its real name and, if needed, the alias
// it is referenced by.
type AliasedTable struct {
	Table string `json:"table"`
	Alias string `json:"alias,omitempty"`
}

// T returns an AliasedTable without alias
func T(table string) *AliasedTable {
	return &AliasedTable{Table: table}
}

// As returns a copy of t referenced as alias
func (t *AliasedTable) As(alias string) *AliasedTable {
	return &AliasedTable{Table: t.Table, Alias: alias}
}

// Name is the name the table is referenced by in the query
func (t *AliasedTable) Name() string {
	if t.Alias != "" {
		return t.Alias
	}
	return t.Table
}

func (t *AliasedTable) IsAliased() bool {
	return t.Alias != ""
}

// Quoted returns the table as it should appear in a FROM or JOIN clause
func (t *AliasedTable) Quoted(c Connection) string {
	if t.Alias == "" {
		return c.QuoteTableName(t.Table)
	}
	return c.QuoteTableName(t.Table) + " " + c.QuoteTableName(t.Alias)
}

// Col returns a quoted reference to a column of this table
func (t *AliasedTable) Col(c Connection, column string) string {
	return c.QuoteTableName(t.Name()) + "." + c.QuoteTableName(column)
}

func (t *AliasedTable) String() string {
	if t.Alias == "" {
		return t.Table
	}
	return t.Table + " " + t.Alias
}

func (t *AliasedTable) MarshalJSON() ([]byte, error) {
	type plain AliasedTable
	return pjson.Marshal((*plain)(t))
}
