package sqlalias

import (
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/KarpelesLab/typutil"
)

// Strategy gives aliases to the tables of one query. A Strategy is created for each query
// being built and must not be reused.
type Strategy interface {
	Kind() StrategyKind

	// Tracker returns the tracker holding the names used so far
	Tracker() *AliasTracker

	// AliasedTable returns the table to use for reflection, joined from parent. tableName
	// overrides the reflection's table when not empty. fallback is only called by the default
	// strategy when the table name is already taken, and may be nil.
	AliasedTable(reflection, parent Reflection, tableName string, fallback func() string) (*AliasedTable, error)
}

type StrategyKind int

const (
	// StrategyDefault reproduces the aliases generated before strategies could be chosen
	StrategyDefault StrategyKind = iota
	// StrategyConsistent names aliases after associations
	StrategyConsistent
	// StrategyTableName names aliases after tables
	StrategyTableName
)

func (k StrategyKind) String() string {
	switch k {
	case StrategyDefault:
		return "default"
	case StrategyConsistent:
		return "consistent"
	case StrategyTableName:
		return "table_name"
	default:
		return "unknown"
	}
}

var strategies = map[StrategyKind]func(c Connection, t *AliasTracker) Strategy{
	StrategyDefault:    func(c Connection, t *AliasTracker) Strategy { return &defaultStrategy{base{c, t}} },
	StrategyConsistent: func(c Connection, t *AliasTracker) Strategy { return &consistentStrategy{base{c, t}} },
	StrategyTableName:  func(c Connection, t *AliasTracker) Strategy { return &tableNameStrategy{base{c, t}} },
}

// ParseStrategy resolves a strategy name. Names are case insensitive and underscores are
// optional, so "table_name", "tablename" and "TableName" are the same.
func ParseStrategy(name string) (StrategyKind, error) {
	switch strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "") {
	case "default":
		return StrategyDefault, nil
	case "consistent":
		return StrategyConsistent, nil
	case "tablename":
		return StrategyTableName, nil
	default:
		return 0, &UnknownStrategyError{Name: name}
	}
}

var strategyName atomic.Pointer[string]

// SetStrategy sets the strategy used by Create for all future queries. The name is only
// checked when a strategy is created.
func SetStrategy(name string) {
	strategyName.Store(&name)
}

// CurrentStrategy returns the configured strategy name, "default" if none was set
func CurrentStrategy() string {
	if v := strategyName.Load(); v != nil {
		return *v
	}
	return StrategyDefault.String()
}

// Create returns a new instance of the configured strategy for a query on initialTable that
// already contains joins. tracker may be an existing tracker to build on, or nil.
func Create(c Connection, initialTable string, joins []JoinFragment, tracker *AliasTracker) (Strategy, error) {
	kind, err := ParseStrategy(CurrentStrategy())
	if err != nil {
		return nil, err
	}
	return CreateKind(kind, c, initialTable, joins, tracker)
}

// CreateKind is the same as Create, but uses the given strategy instead of the configured one
func CreateKind(kind StrategyKind, c Connection, initialTable string, joins []JoinFragment, tracker *AliasTracker) (Strategy, error) {
	ctor, ok := strategies[kind]
	if !ok {
		return nil, &UnknownStrategyError{Name: kind.String()}
	}
	tracker, err := BuildTracker(c, initialTable, joins, tracker)
	if err != nil {
		return nil, err
	}
	debugLog("creating alias strategy", "event", "sqlalias:create", "sqlalias.strategy", kind.String(), "sqlalias.table", initialTable, "sqlalias.joins", len(joins))
	return ctor(c, tracker), nil
}

// base holds what all strategies share
type base struct {
	conn    Connection
	tracker *AliasTracker
}

func (b *base) Tracker() *AliasTracker {
	return b.tracker
}

// truncated returns name followed by suffix, within the connection's alias length
func (b *base) truncated(name, suffix string) string {
	return TruncateAlias(name, suffix, b.conn.TableAliasLength())
}

// numbered returns name with a _count suffix
func (b *base) numbered(name string, count int) string {
	return b.truncated(name, "_"+strconv.Itoa(count))
}

func isNil(r Reflection) bool {
	return r == nil || typutil.IsNil(r)
}

// unique returns alias if no other table uses it yet, otherwise name with the next free
// number. The returned alias is reserved in the tracker.
func (b *base) unique(name, alias string, count int) (string, error) {
	for {
		used, err := b.tracker.Count(alias)
		if err != nil {
			return "", err
		}
		if used == 0 {
			b.tracker.Reserve(alias, 1)
			return alias, nil
		}
		debugLog("alias already in use", "event", "sqlalias:collision", "sqlalias.alias", alias)
		count += 1
		alias = b.numbered(name, count)
	}
}
