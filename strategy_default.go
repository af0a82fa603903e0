package sqlalias

// defaultStrategy keeps the table name for the first use of a table, then falls back to an
// alias computed from the association. This is how aliases were generated before strategies
// existed, and changing it would change the SQL of existing applications.
type defaultStrategy struct {
	base
}

func (s *defaultStrategy) Kind() StrategyKind {
	return StrategyDefault
}

func (s *defaultStrategy) AliasedTable(reflection, parent Reflection, tableName string, fallback func() string) (*AliasedTable, error) {
	if isNil(reflection) {
		return nil, ErrNoReflection
	}
	table := T(reflection.TableName())
	if tableName == "" {
		tableName = table.Table
	}

	used, err := s.tracker.Count(tableName)
	if err != nil {
		return nil, err
	}
	if used == 0 {
		// first use, we can have our table name
		s.tracker.Reserve(tableName, 1)
		if tableName != table.Table {
			return table.As(tableName), nil
		}
		return table, nil
	}

	var candidate string
	if fallback != nil {
		candidate = fallback()
	} else {
		candidate = LegacyAliasCandidate(reflection, parent)
	}
	name := s.conn.TableAliasFor(candidate)

	count, err := s.tracker.Increment(name)
	if err != nil {
		return nil, err
	}
	if count == 1 {
		return table.As(name), nil
	}

	alias, err := s.unique(name, s.numbered(name, count), count)
	if err != nil {
		return nil, err
	}
	debugLog("table name already used, aliasing", "event", "sqlalias:collision", "sqlalias.table", tableName, "sqlalias.alias", alias)
	return table.As(alias), nil
}
