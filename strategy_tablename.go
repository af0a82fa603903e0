package sqlalias

// tableNameStrategy names aliases after tables, prefixed with the parent table when the table
// is already used.
type tableNameStrategy struct {
	base
}

func (s *tableNameStrategy) Kind() StrategyKind {
	return StrategyTableName
}

func (s *tableNameStrategy) AliasedTable(reflection, parent Reflection, tableName string, _ func() string) (*AliasedTable, error) {
	if isNil(reflection) {
		return nil, ErrNoReflection
	}
	table := T(reflection.TableName())
	name := tableName
	if name == "" {
		name = table.Table
	}

	used, err := s.tracker.Count(name)
	if err != nil {
		return nil, err
	}
	if used == 0 {
		if _, err := s.tracker.Increment(name); err != nil {
			return nil, err
		}
		if name != table.Table {
			return table.As(name), nil
		}
		return table, nil
	}

	// The table is already used. Number the alias after the occurrences of the table itself so
	// a prefixed alias is always numbered, even the first time the prefix is seen.
	count, err := s.tracker.Increment(name)
	if err != nil {
		return nil, err
	}
	if !isNil(parent) && parent.TableName() != "" {
		prefixed := parent.TableName() + "_" + name
		pc, err := s.tracker.Increment(prefixed)
		if err != nil {
			return nil, err
		}
		count = max(count, pc)
		name = prefixed
	}

	alias, err := s.unique(name, s.numbered(name, count), count)
	if err != nil {
		return nil, err
	}
	return table.As(alias), nil
}
