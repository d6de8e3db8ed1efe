package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync"

	_ "github.com/go-sql-driver/mysql"
	lru "github.com/hashicorp/golang-lru/v2"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

var driverName = map[string]string{
	"postgres": "pgx",
	"mysql":    "mysql",
	"sqlite":   "sqlite",
}

type schemaCache struct {
	tables  []string
	columns map[string][]string // table name -> column names
}

// stmtCache keeps prepared statements keyed by SQL text. Evicted
// statements are closed.
type stmtCache struct {
	mu    sync.RWMutex
	db    *sql.DB
	cache *lru.Cache[string, *sql.Stmt]
}

func newStmtCache(db *sql.DB, size int) (*stmtCache, error) {
	cache, err := lru.NewWithEvict(size, func(_ string, stmt *sql.Stmt) {
		_ = stmt.Close()
	})
	if err != nil {
		return nil, fmt.Errorf("statement cache: %w", err)
	}
	return &stmtCache{db: db, cache: cache}, nil
}

func (c *stmtCache) prepare(ctx context.Context, query string) (*sql.Stmt, error) {
	c.mu.RLock()
	stmt, ok := c.cache.Get(query)
	c.mu.RUnlock()
	if ok {
		return stmt, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if stmt, ok := c.cache.Get(query); ok {
		return stmt, nil
	}
	stmt, err := c.db.PrepareContext(ctx, query)
	if err != nil {
		return nil, err
	}
	c.cache.Add(query, stmt)
	return stmt, nil
}

func (c *stmtCache) len() int { return c.cache.Len() }

// purge closes every cached statement.
func (c *stmtCache) purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache.Purge()
}

type dbConn struct {
	db      *sql.DB
	dsn     string
	engine  string
	maxRows int
	stmts   *stmtCache
	schema  schemaCache
	log     *slog.Logger
}

func connect(ctx context.Context, engine, dsn string, cfg Config, log *slog.Logger) (*dbConn, error) {
	driver, ok := driverName[engine]
	if !ok {
		return nil, fmt.Errorf("no driver for engine %q", engine)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	if engine == "sqlite" {
		// In-memory databases exist per connection.
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}

	stmts, err := newStmtCache(db, cfg.StatementCache)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	conn := &dbConn{
		db:      db,
		dsn:     dsn,
		engine:  engine,
		maxRows: cfg.MaxRows,
		stmts:   stmts,
		log:     log,
	}
	conn.schema.columns = make(map[string][]string)
	if err := conn.loadSchema(ctx); err != nil {
		log.Warn("schema introspection failed", "engine", engine, "error", err)
	}
	return conn, nil
}

func (c *dbConn) close() error {
	c.stmts.purge()
	return c.db.Close()
}

// execQuery runs a statement that returns rows and formats them.
func (c *dbConn) execQuery(ctx context.Context, query string, params []any) (string, error) {
	stmt, err := c.stmts.prepare(ctx, query)
	if err != nil {
		return "", fmt.Errorf("prepare: %w", err)
	}
	c.log.Debug("executing", "engine", c.engine, "sql", query, "binds", len(params))
	rows, err := stmt.QueryContext(ctx, params...)
	if err != nil {
		return "", fmt.Errorf("query: %w", err)
	}
	defer func() { _ = rows.Close() }()
	return formatRows(rows, c.maxRows)
}

// execStatement runs a statement without a result set and reports the
// affected row count.
func (c *dbConn) execStatement(ctx context.Context, query string, params []any) (string, error) {
	stmt, err := c.stmts.prepare(ctx, query)
	if err != nil {
		return "", fmt.Errorf("prepare: %w", err)
	}
	c.log.Debug("executing", "engine", c.engine, "sql", query, "binds", len(params))
	res, err := stmt.ExecContext(ctx, params...)
	if err != nil {
		return "", fmt.Errorf("exec: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return "OK\n", nil
	}
	if n == 1 {
		return "(1 row affected)\n", nil
	}
	return fmt.Sprintf("(%d rows affected)\n", n), nil
}

func formatRows(rows *sql.Rows, maxRows int) (string, error) {
	columns, err := rows.Columns()
	if err != nil {
		return "", fmt.Errorf("columns: %w", err)
	}

	var data [][]string
	truncated := false
	for rows.Next() {
		if len(data) >= maxRows {
			truncated = true
			break
		}
		vals := make([]sql.NullString, len(columns))
		ptrs := make([]any, len(columns))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return "", fmt.Errorf("scan: %w", err)
		}
		row := make([]string, len(columns))
		for i, v := range vals {
			if v.Valid {
				row[i] = v.String
			} else {
				row[i] = "NULL"
			}
		}
		data = append(data, row)
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("rows: %w", err)
	}

	result := formatTable(columns, data)
	if truncated {
		result += fmt.Sprintf("(truncated at %d rows)\n", maxRows)
	}
	return result, nil
}

// formatTable draws rows as an ASCII grid followed by a row count.
func formatTable(columns []string, rows [][]string) string {
	if len(columns) == 0 {
		return "(0 rows)\n"
	}

	widths := make([]int, len(columns))
	for _, line := range append([][]string{columns}, rows...) {
		for i, cell := range line {
			widths[i] = max(widths[i], len(cell))
		}
	}

	var b strings.Builder
	rule := func() {
		for _, w := range widths {
			b.WriteString("+" + strings.Repeat("-", w+2))
		}
		b.WriteString("+\n")
	}
	line := func(cells []string) {
		for i, cell := range cells {
			fmt.Fprintf(&b, "| %-*s ", widths[i], cell)
		}
		b.WriteString("|\n")
	}

	rule()
	line(columns)
	rule()
	for _, row := range rows {
		line(row)
	}
	rule()

	if len(rows) == 1 {
		b.WriteString("(1 row)\n")
	} else {
		fmt.Fprintf(&b, "(%d rows)\n", len(rows))
	}
	return b.String()
}

func (c *dbConn) loadSchema(ctx context.Context) error {
	var query string
	switch c.engine {
	case "postgres":
		query = "SELECT table_name FROM information_schema.tables WHERE table_schema = 'public' ORDER BY table_name"
	case "mysql":
		query = "SELECT table_name FROM information_schema.tables WHERE table_schema = DATABASE() ORDER BY table_name"
	case "sqlite":
		query = "SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name"
	default:
		return fmt.Errorf("unsupported engine: %s", c.engine)
	}
	tables, err := c.queryStringColumn(ctx, query)
	if err != nil {
		return err
	}
	c.schema.tables = tables
	clear(c.schema.columns)
	return nil
}

func (c *dbConn) schemaTables() []string {
	return c.schema.tables
}

func (c *dbConn) schemaColumns(table string) []string {
	if cols, ok := c.schema.columns[table]; ok {
		return cols
	}
	var query string
	switch c.engine {
	case "postgres":
		query = "SELECT column_name FROM information_schema.columns WHERE table_schema = 'public' AND table_name = $1 ORDER BY ordinal_position"
	case "mysql":
		query = "SELECT column_name FROM information_schema.columns WHERE table_schema = DATABASE() AND table_name = ? ORDER BY ordinal_position"
	case "sqlite":
		query = "SELECT name FROM pragma_table_info(?)"
	default:
		return nil
	}
	cols, err := c.queryStringColumn(context.Background(), query, table)
	if err != nil {
		c.log.Debug("column introspection failed", "table", table, "error", err)
		return nil
	}
	c.schema.columns[table] = cols
	return cols
}

func (c *dbConn) queryStringColumn(ctx context.Context, query string, params ...any) ([]string, error) {
	rows, err := c.db.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var result []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

// returnsRows reports whether a compiled statement produces a result set.
func returnsRows(query string) bool {
	head := strings.ToUpper(strings.TrimSpace(query))
	switch {
	case strings.HasPrefix(head, "SELECT"), strings.HasPrefix(head, "WITH"),
		strings.HasPrefix(head, "("):
		return true
	}
	return strings.Contains(head, " RETURNING ")
}

func sanitizeDSN(dsn string) string {
	const mask = "****"
	// A MySQL DSN also parses as a URL, with the user name as scheme.
	if u, err := url.Parse(dsn); err == nil && u.Scheme != "" && strings.HasPrefix(dsn, u.Scheme+"://") {
		if u.User == nil {
			return dsn
		}
		if _, set := u.User.Password(); !set {
			return dsn
		}
		// url.UserPassword would percent-encode the mask.
		creds, rest, _ := strings.Cut(strings.TrimPrefix(dsn, u.Scheme+"://"), "@")
		name, _, _ := strings.Cut(creds, ":")
		return u.Scheme + "://" + name + ":" + mask + "@" + rest
	}

	// MySQL form: user:pass@tcp(host)/db
	creds, rest, found := strings.Cut(dsn, "@")
	if !found || creds == "" {
		return dsn
	}
	if name, _, hasPass := strings.Cut(creds, ":"); hasPass {
		return name + ":" + mask + "@" + rest
	}
	return dsn
}
