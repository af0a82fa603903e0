package sqlalias

import (
	"regexp"

	"github.com/KarpelesLab/typutil"
)

// InitialCount returns how many times name is already used as a table name or alias in joins.
//
// Raw joins are scanned for "JOIN [type] [table] <name> ON" patterns, ignoring case as some
// backends quote names in uppercase. Structured joins count when their table is referenced as name.
func InitialCount(c Connection, name string, joins []JoinFragment) (int, error) {
	var re *regexp.Regexp
	count := 0

	for n, join := range joins {
		if typutil.IsNil(join) {
			return 0, &InvalidJoinInputError{Index: n, Join: join}
		}
		switch j := join.(type) {
		case *StringJoin:
			if re == nil {
				re = occurrenceRegexp(c, name)
			}
			count += len(re.FindAllStringIndex(j.Raw, -1))
		case *TableJoin:
			if j.Table != nil && j.Table.Name() == name {
				count += 1
			}
		default:
			return 0, &InvalidJoinInputError{Index: n, Join: join}
		}
	}

	return count, nil
}

// occurrenceRegexp matches table names and table aliases referenced after a JOIN keyword
func occurrenceRegexp(c Connection, name string) *regexp.Regexp {
	quoted := regexp.QuoteMeta(c.QuoteTableName(name))
	return regexp.MustCompile(`(?i)JOIN(?:\s+\w+)?\s+(?:\S+\s+)?(?:` + quoted + `|` + regexp.QuoteMeta(name) + `)\sON`)
}
