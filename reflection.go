package sqlalias

import "github.com/jinzhu/inflection"

// Reflection describes an association between two mapped models, as seen by the aliasing
// strategies.
type Reflection interface {
	// Name is the association name as declared on the owning model (comments, author...)
	Name() string
	// TableName is the table of the associated model
	TableName() string
}

// Association is a simple Reflection that also carries what is needed to emit the join condition
type Association struct {
	Assoc      string // association name
	Table      string // associated model table
	ForeignKey string
	PrimaryKey string // defaults to "id"
	OwnerKey   string // key of the owner referenced by ForeignKey, defaults to "id"
	// BelongsTo is set when the foreign key lives on the owner side (posts.author_id -> authors.id)
	BelongsTo bool
}

var (
	_ Reflection  = (*Association)(nil)
	_ Conditioner = (*Association)(nil)
)

func (a *Association) Name() string {
	if a == nil {
		return ""
	}
	return a.Assoc
}

func (a *Association) TableName() string {
	if a == nil {
		return ""
	}
	return a.Table
}

func (a *Association) primaryKey() string {
	if a.PrimaryKey == "" {
		return "id"
	}
	return a.PrimaryKey
}

// PluralName returns the association name in plural form (author → authors)
func PluralName(r Reflection) string {
	return inflection.Plural(r.Name())
}

// LegacyAliasCandidate is the alias candidate used by the default strategy when the table name
// is already taken: the pluralized association name followed by the parent table.
func LegacyAliasCandidate(r, parent Reflection) string {
	name := PluralName(r)
	if isNil(parent) || parent.TableName() == "" {
		return name
	}
	return name + "_" + parent.TableName()
}

// Conditioner is implemented by reflections able to write their own join condition
type Conditioner interface {
	JoinOn(c Connection, table, parent *AliasedTable) string
}

// JoinOn returns the condition joining table (this association) to parent
func (a *Association) JoinOn(c Connection, table, parent *AliasedTable) string {
	if a.BelongsTo {
		// parent holds the foreign key
		return table.Col(c, a.primaryKey()) + " = " + parent.Col(c, a.ForeignKey)
	}
	ownerKey := a.OwnerKey
	if ownerKey == "" {
		ownerKey = "id"
	}
	return table.Col(c, a.ForeignKey) + " = " + parent.Col(c, ownerKey)
}
