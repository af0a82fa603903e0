package sqlalias_test

import (
	"testing"

	"github.com/KarpelesLab/sqlalias"
	"github.com/stretchr/testify/assert"
)

func TestTruncateAlias(t *testing.T) {
	tests := []struct {
		base, suffix string
		max          int
		want         string
	}{
		{"subscriptions", "_12", 10, "subscri_12"},
		{"users", "", 64, "users"},
		{"users", "_2", 64, "users_2"},
		{"users", "_2", 3, "u_2"},
		{"users", "", 5, "users"},
		{"comments", "", 4, "comm"},
		{"ééééé", "_2", 4, "éé_2"},
		{"abc", "_10", 2, "_10"},
	}

	for _, test := range tests {
		assert.Equal(t, test.want, sqlalias.TruncateAlias(test.base, test.suffix, test.max), "TruncateAlias(%q, %q, %d)", test.base, test.suffix, test.max)
	}
}

func TestTruncateAliasIdempotent(t *testing.T) {
	for _, base := range []string{"subscriptions", "organization_memberships", "ééééééééééé"} {
		for _, suffix := range []string{"", "_2", "_12"} {
			once := sqlalias.TruncateAlias(base, suffix, 10)
			assert.Equal(t, once, sqlalias.TruncateAlias(once, suffix, 10), "base %q suffix %q", base, suffix)
			assert.LessOrEqual(t, len([]rune(once)), 10)
		}
	}
}
