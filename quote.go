package sqlalias

import "strings"

const (
	// Use " for ANSI SQL, and ` for MySQL's own thing
	NameQuoteChar  = `"`
	NameQuoteRune  = '"'
	MySQLQuoteChar = "`"
)

// QuoteName quotes a single name (table, alias...) the ANSI way
func QuoteName(v string) string {
	pos := strings.IndexByte(v, NameQuoteRune)
	if pos == -1 {
		return NameQuoteChar + v + NameQuoteChar
	}
	return NameQuoteChar + strings.ReplaceAll(v, NameQuoteChar, NameQuoteChar+NameQuoteChar) + NameQuoteChar
}

// quoteQualified quotes each dot separated part of name with ANSI quotes
func quoteQualified(name string) string {
	parts := strings.Split(name, ".")
	for n, p := range parts {
		parts[n] = QuoteName(p)
	}
	return strings.Join(parts, ".")
}

func quoteMySQL(name string) string {
	parts := strings.Split(name, ".")
	for n, p := range parts {
		parts[n] = MySQLQuoteChar + strings.ReplaceAll(p, MySQLQuoteChar, MySQLQuoteChar+MySQLQuoteChar) + MySQLQuoteChar
	}
	return strings.Join(parts, ".")
}
