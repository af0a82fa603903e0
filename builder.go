package sqlalias

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"

	"github.com/KarpelesLab/typutil"
)

// Querier is anything able to run a query, such as *sql.DB, *sql.Tx or *sql.Conn
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// SelectQuery emits a SELECT query over aliased tables
type SelectQuery struct {
	Fields    []string // raw field expressions, * if empty
	Table     *AliasedTable
	Joins     []JoinFragment
	WhereData []string
	OrderData []string
	LimitData []int

	err error
}

// B returns a new query builder
func B() *SelectQuery {
	return new(SelectQuery)
}

func (q *SelectQuery) Select(fields ...string) *SelectQuery {
	q.Fields = append(q.Fields, fields...)
	return q
}

func (q *SelectQuery) From(table *AliasedTable) *SelectQuery {
	if table == nil {
		q.err = errors.New("nil table passed to From")
		return q
	}
	q.Table = table
	return q
}

func (q *SelectQuery) Join(joins ...JoinFragment) *SelectQuery {
	q.Joins = append(q.Joins, joins...)
	return q
}

// Where adds raw conditions, joined with AND
func (q *SelectQuery) Where(cond ...string) *SelectQuery {
	q.WhereData = append(q.WhereData, cond...)
	return q
}

func (q *SelectQuery) OrderBy(field ...string) *SelectQuery {
	q.OrderData = append(q.OrderData, field...)
	return q
}

func (q *SelectQuery) Limit(v ...int) *SelectQuery {
	switch len(v) {
	case 0:
		q.LimitData = nil
	case 1, 2:
		q.LimitData = v
	default:
		q.err = errors.New("invalid arguments for limit")
	}
	return q
}

// Render generates the SQL query for the given connection
func (q *SelectQuery) Render(c Connection) (string, error) {
	if q.err != nil {
		return "", q.err
	}
	if q.Table == nil {
		return "", errors.New("query has no table")
	}

	req := []string{"SELECT"}
	if len(q.Fields) == 0 {
		req = append(req, "*")
	} else {
		req = append(req, strings.Join(q.Fields, ","))
	}
	req = append(req, "FROM", q.Table.Quoted(c))

	for n, j := range q.Joins {
		if typutil.IsNil(j) {
			return "", &InvalidJoinInputError{Index: n, Join: j}
		}
		req = append(req, j.SQL(c))
	}

	if len(q.WhereData) > 0 {
		req = append(req, "WHERE", "("+strings.Join(q.WhereData, ") AND (")+")")
	}
	if len(q.OrderData) > 0 {
		req = append(req, "ORDER BY", strings.Join(q.OrderData, ","))
	}
	switch len(q.LimitData) {
	case 1:
		req = append(req, "LIMIT", strconv.Itoa(q.LimitData[0]))
	case 2:
		req = append(req, "LIMIT", strconv.Itoa(q.LimitData[0])+",", strconv.Itoa(q.LimitData[1]))
	}

	return strings.Join(req, " "), nil
}

// RunQuery renders the query and runs it on db
func (q *SelectQuery) RunQuery(ctx context.Context, c Connection, db Querier) (*sql.Rows, error) {
	query, err := q.Render(c)
	if err != nil {
		return nil, err
	}
	res, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, &Error{query, err}
	}
	return res, nil
}
