// Package dialect describes how a target SQL backend quotes identifiers,
// formats inline values and spells bind placeholders.
//
// An Adapter is the only backend-specific input the compiler needs: the
// same AST renders for PostgreSQL, MySQL or SQLite by handing the visitor
// a different Adapter.
package dialect

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bawdo/relal/internal/quoting"
)

// Adapter formats identifiers, values and placeholders for one backend.
type Adapter interface {
	// Name identifies the backend ("postgres", "mysql", "sqlite", "ansi").
	Name() string
	QuoteTableName(name string) string
	QuoteColumnName(name string) string
	// QuoteValue renders v as an inline SQL literal.
	QuoteValue(v any) string
	SanitizeComment(text string) string
	// Placeholder returns the bind token for the given bind index.
	Placeholder(index int) string
}

type adapter struct {
	name        string
	quoteIdent  func(string) string
	escape      func(string) string
	hexBytes    func([]byte) string
	placeholder func(int) string
}

func (a *adapter) Name() string                       { return a.name }
func (a *adapter) QuoteTableName(name string) string  { return a.quoteIdent(name) }
func (a *adapter) QuoteColumnName(name string) string { return a.quoteIdent(name) }
func (a *adapter) SanitizeComment(text string) string { return quoting.SanitizeComment(text) }
func (a *adapter) Placeholder(index int) string       { return a.placeholder(index) }

func (a *adapter) QuoteValue(v any) string {
	return quoteValue(v, a.escape, a.hexBytes)
}

func dollar(i int) string   { return "$" + strconv.Itoa(i) }
func question(int) string   { return "?" }
func xHex(b []byte) string  { return fmt.Sprintf("X'%X'", b) }
func pgHex(b []byte) string { return fmt.Sprintf(`'\x%x'`, b) }

var (
	// ANSI is a standard-SQL adapter: double-quoted identifiers, $n placeholders.
	ANSI Adapter = &adapter{
		name:        "ansi",
		quoteIdent:  quoting.DoubleQuote,
		escape:      quoting.EscapeStandardString,
		hexBytes:    xHex,
		placeholder: dollar,
	}

	// Postgres quotes identifiers with double quotes and binds with $n.
	Postgres Adapter = &adapter{
		name:        "postgres",
		quoteIdent:  quoting.DoubleQuote,
		escape:      quoting.EscapeStandardString,
		hexBytes:    pgHex,
		placeholder: dollar,
	}

	// MySQL quotes identifiers with backticks, binds with ? and treats
	// backslash as an escape character inside string literals.
	MySQL Adapter = &adapter{
		name:        "mysql",
		quoteIdent:  quoting.Backtick,
		escape:      quoting.EscapeString,
		hexBytes:    xHex,
		placeholder: question,
	}

	// SQLite quotes identifiers with double quotes and binds with ?.
	SQLite Adapter = &adapter{
		name:        "sqlite",
		quoteIdent:  quoting.DoubleQuote,
		escape:      quoting.EscapeStandardString,
		hexBytes:    xHex,
		placeholder: question,
	}
)

// Lookup resolves an adapter by name. "postgresql" and "pg" are accepted
// as aliases for "postgres", "sqlite3" for "sqlite".
func Lookup(name string) (Adapter, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "postgres", "postgresql", "pg":
		return Postgres, nil
	case "mysql":
		return MySQL, nil
	case "sqlite", "sqlite3":
		return SQLite, nil
	case "ansi":
		return ANSI, nil
	default:
		return nil, fmt.Errorf("unknown dialect %q (expected postgres, mysql, sqlite or ansi)", name)
	}
}
