package sqlalias

// consistentStrategy names aliases after the association, so the same association always gets
// the same alias whatever the tables involved.
type consistentStrategy struct {
	base
}

func (s *consistentStrategy) Kind() StrategyKind {
	return StrategyConsistent
}

func (s *consistentStrategy) AliasedTable(reflection, parent Reflection, _ string, _ func() string) (*AliasedTable, error) {
	if isNil(reflection) {
		return nil, ErrNoReflection
	}
	table := T(reflection.TableName())
	name := reflection.Name()

	used, err := s.tracker.Count(name)
	if err != nil {
		return nil, err
	}
	if used > 0 && !isNil(parent) && parent.Name() != "" {
		name = parent.Name() + "_" + name
	}

	count, err := s.tracker.Increment(name)
	if err != nil {
		return nil, err
	}

	var alias string
	if count == 1 {
		alias = s.truncated(name, "")
		if alias == name {
			return table.As(alias), nil
		}
	} else {
		alias = s.numbered(name, count)
	}

	alias, err = s.unique(name, alias, count)
	if err != nil {
		return nil, err
	}
	return table.As(alias), nil
}
