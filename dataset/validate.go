package dataset

import (
	"fmt"
	"strings"
)

// Validate checks that query is a single read-only SELECT statement,
// optionally introduced by a WITH clause. A single trailing semicolon is
// accepted. Returns the statement without the trailing semicolon.
//
// Validation is lexical; sqlite connections are additionally opened
// read-only and postgres queries run in a read-only transaction.
func Validate(query string) (string, error) {
	stmt := strings.TrimSpace(query)
	stmt = strings.TrimSpace(strings.TrimSuffix(stmt, ";"))
	if stmt == "" {
		return "", ErrEmptyQuery
	}

	if containsStatementBreak(stmt) {
		return "", ErrMultipleStatements
	}

	first := strings.ToUpper(firstWord(stmt))
	switch first {
	case "SELECT":
	case "WITH":
		if !strings.Contains(strings.ToUpper(stmt), "SELECT") {
			return "", fmt.Errorf("%w: got WITH without SELECT", ErrNotSelect)
		}
	default:
		return "", fmt.Errorf("%w: got %s", ErrNotSelect, first)
	}

	return stmt, nil
}

func firstWord(s string) string {
	end := strings.IndexFunc(s, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '('
	})
	if end < 0 {
		return s
	}
	return s[:end]
}

// containsStatementBreak reports a semicolon outside quoted literals.
func containsStatementBreak(stmt string) bool {
	var quote rune
	for _, r := range stmt {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '\'' || r == '"' || r == '`':
			quote = r
		case r == ';':
			return true
		}
	}
	return false
}
