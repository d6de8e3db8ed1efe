package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/bawdo/relal/collector"
	"github.com/bawdo/relal/dialect"
	"github.com/bawdo/relal/managers"
	"github.com/bawdo/relal/nodes"
	"github.com/bawdo/relal/plugins"
	"github.com/bawdo/relal/visitors"
	"github.com/ergochat/readline"
)

var (
	errNoQuery      = errors.New("no query defined (use 'from <table>' first)")
	errNotConnected = errors.New("not connected (use 'connect <dsn>' first)")
)

// setOpEntry is a query pushed onto the set operation stack.
type setOpEntry struct {
	opType nodes.SetOpType
	query  *managers.SelectManager
}

// cteEntry is a query pushed as a named CTE.
type cteEntry struct {
	name      string
	query     *managers.SelectManager
	columns   []string
	recursive bool
}

// dmlMode tracks which kind of statement the REPL is building.
type dmlMode int

const (
	modeSelect dmlMode = iota
	modeInsert
	modeUpdate
	modeDelete
)

// Session holds the REPL state: registered tables, the statement being
// built, the active dialect and the enabled plugins. Plugins are applied
// when a statement is compiled, so toggling one never rebuilds the query.
type Session struct {
	cfg          Config
	log          *slog.Logger
	tables       map[string]*nodes.Table
	aliases      map[string]*nodes.TableAlias
	query        *managers.SelectManager
	engine       string
	visitor      *visitors.Visitor
	plugins      pluginRegistry
	configurers  []pluginConfigurer
	parameterize bool
	format       bool
	commands     []commandEntry // sorted by prefix length desc
	conn         *dbConn
	lastDSN      string
	rl           *readline.Instance
	setOps       []setOpEntry
	ctes         []cteEntry
	mode         dmlMode
	insertQuery  *managers.InsertManager
	updateQuery  *managers.UpdateManager
	deleteQuery  *managers.DeleteManager
	out          io.Writer
}

// NewSession creates a session for cfg.Engine. rl may be nil when the
// session is not interactive.
func NewSession(cfg Config, rl *readline.Instance, log *slog.Logger) (*Session, error) {
	if log == nil {
		log = slog.Default()
	}
	s := &Session{
		cfg:          cfg,
		log:          log,
		tables:       make(map[string]*nodes.Table),
		aliases:      make(map[string]*nodes.TableAlias),
		parameterize: cfg.parameterize(),
		format:       cfg.Format,
		rl:           rl,
		out:          os.Stdout,
	}
	s.configurers = []pluginConfigurer{
		{name: "softdelete", configure: configureSoftdelete},
	}
	if err := s.setEngine(cfg.Engine); err != nil {
		return nil, err
	}
	s.initCommands()
	return s, nil
}

// pluginNames returns the names of all known plugins.
func (s *Session) pluginNames() []string {
	names := make([]string, len(s.configurers))
	for i, c := range s.configurers {
		names[i] = c.name
	}
	return names
}

func (s *Session) setEngine(engine string) error {
	adapter, err := dialect.Lookup(engine)
	if err != nil {
		return err
	}
	s.engine = adapter.Name()
	s.visitor = visitors.ForAdapter(adapter, s.visitorOptions()...)
	return nil
}

func (s *Session) visitorOptions() []visitors.Option {
	opts := []visitors.Option{visitors.WithLogger(s.log)}
	if s.parameterize {
		opts = append(opts, visitors.WithParams())
	} else {
		opts = append(opts, visitors.WithoutParams())
	}
	if s.format {
		opts = append(opts, visitors.WithFormatting())
	}
	return opts
}

// ensureTable returns the table if registered, otherwise registers it.
func (s *Session) ensureTable(name string) *nodes.Table {
	if t, ok := s.tables[name]; ok {
		return t
	}
	t := nodes.NewTable(name)
	s.tables[name] = t
	return t
}

// resolveTable returns an alias or table by name, registering unknown
// tables.
func (s *Session) resolveTable(name string) nodes.Node {
	if a, ok := s.aliases[name]; ok {
		return a
	}
	return s.ensureTable(name)
}

// resolveRelation parses "<table> [[as] alias]".
func (s *Session) resolveRelation(rel string) (nodes.Node, string, error) {
	fields := strings.Fields(rel)
	switch {
	case len(fields) == 1:
		return s.resolveTable(fields[0]), fields[0], nil
	case len(fields) == 2:
		return s.aliasTable(fields[0], fields[1]), fields[1], nil
	case len(fields) == 3 && strings.EqualFold(fields[1], "as"):
		return s.aliasTable(fields[0], fields[2]), fields[2], nil
	}
	return nil, "", fmt.Errorf("expected <table> [alias], got %q", rel)
}

func (s *Session) aliasTable(table, alias string) *nodes.TableAlias {
	a := s.ensureTable(table).Alias(alias)
	s.aliases[alias] = a
	return a
}

// defaultRelation is the relation bare column names resolve against.
func (s *Session) defaultRelation() nodes.Node {
	var rel nodes.Node
	switch s.mode {
	case modeInsert:
		if s.insertQuery != nil {
			rel = s.insertQuery.Statement.Into
		}
	case modeUpdate:
		if s.updateQuery != nil {
			rel = s.updateQuery.Statement.Table
		}
	case modeDelete:
		if s.deleteQuery != nil {
			rel = s.deleteQuery.Statement.From
		}
	default:
		if s.query != nil {
			rel = s.query.Core.Source.Left
		}
	}
	if nodes.RelationName(rel) == "" {
		return nil
	}
	return rel
}

// Execute parses and runs a single REPL command.
func (s *Session) Execute(line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	lower := strings.ToLower(line)

	for _, cmd := range s.commands {
		if strings.HasSuffix(cmd.prefix, " ") {
			if strings.HasPrefix(lower, cmd.prefix) {
				return cmd.handler(line[len(cmd.prefix):])
			}
		} else if lower == cmd.prefix {
			return cmd.handler("")
		}
	}

	word := strings.Fields(line)[0]
	return fmt.Errorf("unknown command: %s (type 'help' for commands)", word)
}

// withPlugins returns a manager over a copy of q's statement with the
// enabled plugins attached.
func (s *Session) withPlugins(q *managers.SelectManager) *managers.SelectManager {
	m := managers.NewSelectManager(nil)
	m.Ast = q.CloneStatement()
	m.Core = m.Ast.Cores[0]
	for i, core := range q.Ast.Cores {
		if core == q.Core {
			m.Core = m.Ast.Cores[i]
		}
	}
	s.plugins.applyTo(func(t plugins.Transformer) { m.Use(t) })
	return m
}

// statement returns the root node for the statement being built.
func (s *Session) statement() (nodes.Node, error) {
	switch s.mode {
	case modeInsert:
		if s.insertQuery == nil {
			return nil, errors.New("no INSERT query defined")
		}
		m := managers.NewInsertManager(nil)
		m.Statement = s.insertQuery.Statement
		s.plugins.applyTo(func(t plugins.Transformer) { m.Use(t) })
		return m, nil
	case modeUpdate:
		if s.updateQuery == nil {
			return nil, errors.New("no UPDATE query defined")
		}
		m := managers.NewUpdateManager(nil)
		m.Statement = s.updateQuery.Statement
		s.plugins.applyTo(func(t plugins.Transformer) { m.Use(t) })
		return m, nil
	case modeDelete:
		if s.deleteQuery == nil {
			return nil, errors.New("no DELETE query defined")
		}
		m := managers.NewDeleteManager(nil)
		m.Statement = s.deleteQuery.Statement
		s.plugins.applyTo(func(t plugins.Transformer) { m.Use(t) })
		return m, nil
	}

	if s.query == nil {
		return nil, errNoQuery
	}
	q := s.withPlugins(s.query)
	for _, cte := range s.ctes {
		if cte.recursive {
			q.WithRecursive(cte.name, s.withPlugins(cte.query), cte.columns...)
		} else {
			q.With(cte.name, s.withPlugins(cte.query), cte.columns...)
		}
	}
	if len(s.setOps) == 0 {
		return q, nil
	}

	// Left-associative: ((a OP b) OP c) with the current query last.
	var chain nodes.Node = s.withPlugins(s.setOps[0].query)
	for i, op := range s.setOps {
		var right nodes.Node = q
		if i+1 < len(s.setOps) {
			right = s.withPlugins(s.setOps[i+1].query)
		}
		chain = nodes.NewSetOperation(op.opType, chain, right)
	}
	return chain, nil
}

// compile compiles the current statement with v.
func (s *Session) compile(v *visitors.Visitor) (collector.CompiledQuery, error) {
	n, err := s.statement()
	if err != nil {
		return collector.CompiledQuery{}, err
	}
	return v.Compile(n)
}

// GenerateSQL produces the SQL string for the current statement.
func (s *Session) GenerateSQL() (string, error) {
	q, err := s.compile(s.visitor)
	if err != nil {
		return "", err
	}
	return q.SQL, nil
}

func (s *Session) printCompiled(q collector.CompiledQuery) {
	_, _ = fmt.Fprintf(s.out, "  %s;\n", strings.ReplaceAll(q.SQL, "\n", "\n  "))
	if len(q.Binds) > 0 {
		_, _ = fmt.Fprintf(s.out, "  Params: %v\n", q.Binds)
	}
	for _, w := range q.Warnings {
		_, _ = fmt.Fprintf(s.out, "  Warning: %s\n", w)
	}
}

// --- Command handlers ---

func (s *Session) cmdTable(args string) error {
	name := strings.TrimSpace(args)
	if name == "" {
		return errors.New("usage: table <name>")
	}
	s.ensureTable(name)
	_, _ = fmt.Fprintf(s.out, "  Registered table %q\n", name)
	return nil
}

func (s *Session) cmdAlias(args string) error {
	parts := strings.Fields(args)
	if len(parts) != 2 {
		return errors.New("usage: alias <table> <alias_name>")
	}
	s.aliasTable(parts[0], parts[1])
	_, _ = fmt.Fprintf(s.out, "  Aliased %q as %q\n", parts[0], parts[1])
	return nil
}

func (s *Session) cmdFrom(args string) error {
	rel := strings.TrimSpace(args)
	if rel == "" {
		return errors.New("usage: from <table> [alias]")
	}
	from, name, err := s.resolveRelation(rel)
	if err != nil {
		return err
	}
	s.setMode(modeSelect)
	s.query = managers.NewSelectManager(from)
	_, _ = fmt.Fprintf(s.out, "  Query FROM %q\n", name)
	return nil
}

func (s *Session) cmdSelect(args string) error {
	if s.query == nil {
		return errNoQuery
	}
	projs, err := s.parseProjections(args)
	if err != nil {
		return fmt.Errorf("select: %w", err)
	}
	s.query.Select(projs...)
	_, _ = fmt.Fprintf(s.out, "  Projections set (%d columns)\n", len(projs))
	return nil
}

func (s *Session) cmdDistinct() error {
	if s.query == nil {
		return errNoQuery
	}
	s.query.Distinct()
	_, _ = fmt.Fprintln(s.out, "  DISTINCT enabled")
	return nil
}

func (s *Session) cmdDistinctOn(args string) error {
	if s.query == nil {
		return errNoQuery
	}
	cols, err := s.parseExpressions(args)
	if err != nil {
		return fmt.Errorf("distinct on: %w", err)
	}
	s.query.DistinctOn(cols...)
	_, _ = fmt.Fprintf(s.out, "  DISTINCT ON set (%d columns)\n", len(cols))
	return nil
}

func (s *Session) cmdWhere(args string) error {
	cond, err := s.parseCondition(strings.TrimSpace(args))
	if err != nil {
		return fmt.Errorf("where: %w", err)
	}
	switch s.mode {
	case modeUpdate:
		if s.updateQuery == nil {
			return errors.New("no UPDATE query defined")
		}
		s.updateQuery.Where(cond)
	case modeDelete:
		if s.deleteQuery == nil {
			return errors.New("no DELETE query defined")
		}
		s.deleteQuery.Where(cond)
	case modeInsert:
		return errors.New("where is not valid for INSERT")
	default:
		if s.query == nil {
			return errNoQuery
		}
		s.query.Where(cond)
	}
	_, _ = fmt.Fprintln(s.out, "  WHERE condition added")
	return nil
}

func (s *Session) cmdGroup(args string) error {
	if s.query == nil {
		return errNoQuery
	}
	arg := strings.TrimSpace(args)
	lower := strings.ToLower(arg)
	for _, set := range []struct {
		word string
		kind nodes.Kind
	}{{"cube", nodes.KindCube}, {"rollup", nodes.KindRollup}} {
		if !strings.HasPrefix(lower, set.word) {
			continue
		}
		inner := strings.TrimSpace(arg[len(set.word):])
		if !strings.HasPrefix(inner, "(") || !strings.HasSuffix(inner, ")") {
			return fmt.Errorf("usage: group %s(<cols>)", set.word)
		}
		cols, err := s.parseExpressions(inner[1 : len(inner)-1])
		if err != nil {
			return fmt.Errorf("group: %w", err)
		}
		s.query.Group(nodes.Build(set.kind, cols...))
		_, _ = fmt.Fprintf(s.out, "  GROUP BY %s (%d columns)\n", strings.ToUpper(set.word), len(cols))
		return nil
	}

	cols, err := s.parseExpressions(arg)
	if err != nil {
		return fmt.Errorf("group: %w", err)
	}
	s.query.Group(cols...)
	_, _ = fmt.Fprintf(s.out, "  GROUP BY added (%d columns)\n", len(cols))
	return nil
}

func (s *Session) cmdHaving(args string) error {
	if s.query == nil {
		return errNoQuery
	}
	cond, err := s.parseCondition(strings.TrimSpace(args))
	if err != nil {
		return fmt.Errorf("having: %w", err)
	}
	s.query.Having(cond)
	_, _ = fmt.Fprintln(s.out, "  HAVING condition added")
	return nil
}

// cmdWindow defines a named window: window <name> [partition by ...] [order by ...].
func (s *Session) cmdWindow(args string) error {
	if s.query == nil {
		return errNoQuery
	}
	fields := strings.Fields(args)
	if len(fields) == 0 {
		return errors.New("usage: window <name> [partition by <cols>] [order by <cols>]")
	}
	name := fields[0]
	def, err := s.parseWindowSpec(strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(args), name)), name)
	if err != nil {
		return fmt.Errorf("window: %w", err)
	}
	s.query.Window(def)
	_, _ = fmt.Fprintf(s.out, "  Window %q defined\n", name)
	return nil
}

func (s *Session) cmdOrder(args string) error {
	if s.query == nil {
		return errNoQuery
	}
	orders, err := s.parseOrderings(args)
	if err != nil {
		return fmt.Errorf("order: %w", err)
	}
	s.query.Order(orders...)
	_, _ = fmt.Fprintf(s.out, "  ORDER BY added (%d terms)\n", len(orders))
	return nil
}

func parseCount(args, usage string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(args))
	if err != nil || n < 0 {
		return 0, errors.New(usage)
	}
	return n, nil
}

func (s *Session) cmdLimit(args string) error {
	if s.query == nil {
		return errNoQuery
	}
	n, err := parseCount(args, "usage: limit <n>")
	if err != nil {
		return err
	}
	s.query.Limit(n)
	_, _ = fmt.Fprintf(s.out, "  LIMIT %d\n", n)
	return nil
}

func (s *Session) cmdOffset(args string) error {
	if s.query == nil {
		return errNoQuery
	}
	n, err := parseCount(args, "usage: offset <n>")
	if err != nil {
		return err
	}
	s.query.Offset(n)
	_, _ = fmt.Fprintf(s.out, "  OFFSET %d\n", n)
	return nil
}

// splitOn splits "<relation> on <condition>".
func splitOn(args string) (string, string, error) {
	idx := strings.Index(strings.ToLower(args), " on ")
	if idx < 0 {
		return "", "", errors.New("expected: <table> [alias] on <condition>")
	}
	return strings.TrimSpace(args[:idx]), strings.TrimSpace(args[idx+4:]), nil
}

func (s *Session) cmdJoin(args string, joinType nodes.JoinType) error {
	if s.query == nil {
		return errNoQuery
	}
	rel, condStr, err := splitOn(args)
	if err != nil {
		return err
	}
	table, name, err := s.resolveRelation(rel)
	if err != nil {
		return err
	}
	cond, err := s.parseCondition(condStr)
	if err != nil {
		return fmt.Errorf("join condition: %w", err)
	}
	s.query.Join(table, joinType).On(cond)
	_, _ = fmt.Fprintf(s.out, "  %s %q added\n", joinType, name)
	return nil
}

// cmdLateralJoin joins a pushed CTE query as a LATERAL subquery:
// lateral join <cte> on <condition>.
func (s *Session) cmdLateralJoin(args string, joinType nodes.JoinType) error {
	if s.query == nil {
		return errNoQuery
	}
	name, condStr, err := splitOn(args)
	if err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	var rel nodes.Node = s.resolveTable(name)
	for i := len(s.ctes) - 1; i >= 0; i-- {
		if s.ctes[i].name == name {
			rel = s.withPlugins(s.ctes[i].query).As(name)
			s.ctes = append(s.ctes[:i], s.ctes[i+1:]...)
			break
		}
	}
	cond, err := s.parseCondition(condStr)
	if err != nil {
		return fmt.Errorf("join condition: %w", err)
	}
	s.query.LateralJoin(rel, joinType).On(cond)
	_, _ = fmt.Fprintf(s.out, "  LATERAL %s %q added\n", joinType, name)
	return nil
}

func (s *Session) cmdCrossJoin(args string) error {
	if s.query == nil {
		return errNoQuery
	}
	rel := strings.TrimSpace(args)
	if rel == "" {
		return errors.New("usage: cross join <table> [alias]")
	}
	table, name, err := s.resolveRelation(rel)
	if err != nil {
		return err
	}
	s.query.CrossJoin(table)
	_, _ = fmt.Fprintf(s.out, "  CROSS JOIN %q added\n", name)
	return nil
}

func (s *Session) cmdRawJoin(args string) error {
	if s.query == nil {
		return errNoQuery
	}
	raw := strings.TrimSpace(args)
	if raw == "" {
		return errors.New("usage: raw join <SQL text>")
	}
	s.query.StringJoin(raw)
	_, _ = fmt.Fprintln(s.out, "  String join added")
	return nil
}

func (s *Session) cmdLock(lock func(*managers.SelectManager) *managers.SelectManager, label string) error {
	if s.query == nil {
		return errNoQuery
	}
	lock(s.query)
	_, _ = fmt.Fprintf(s.out, "  %s enabled\n", label)
	return nil
}

func (s *Session) cmdComment(args string) error {
	if s.query == nil {
		return errNoQuery
	}
	text := strings.TrimSpace(args)
	if text == "" {
		return errors.New("usage: comment <text>")
	}
	s.query.Comment(text)
	_, _ = fmt.Fprintf(s.out, "  Comment set: %s\n", text)
	return nil
}

func (s *Session) cmdHint(args string) error {
	if s.query == nil {
		return errNoQuery
	}
	text := strings.TrimSpace(args)
	if text == "" {
		return errors.New("usage: hint <text>")
	}
	s.query.Hint(text)
	_, _ = fmt.Fprintf(s.out, "  Hint added: %s\n", text)
	return nil
}

func (s *Session) cmdSetOp(opType nodes.SetOpType) error {
	if s.mode != modeSelect || s.query == nil {
		return errNoQuery
	}
	s.setOps = append(s.setOps, setOpEntry{opType: opType, query: s.query})
	s.query = nil
	_, _ = fmt.Fprintf(s.out, "  %s pushed, start the next query with 'from <table>'\n", opType)
	return nil
}

// cmdWith pushes the current query as a CTE: with [recursive] <name> [(cols)].
func (s *Session) cmdWith(args string, recursive bool) error {
	if s.mode != modeSelect || s.query == nil {
		return errNoQuery
	}
	rel := strings.TrimSpace(args)
	name := rel
	var cols []string
	if open := strings.IndexByte(rel, '('); open >= 0 {
		if !strings.HasSuffix(rel, ")") {
			return errors.New("usage: with <name> [(col, ...)]")
		}
		name = strings.TrimSpace(rel[:open])
		for _, c := range strings.Split(rel[open+1:len(rel)-1], ",") {
			if c = strings.TrimSpace(c); c != "" {
				cols = append(cols, c)
			}
		}
	}
	if name == "" || strings.ContainsAny(name, " \t") {
		return errors.New("usage: with <name> [(col, ...)]")
	}
	s.ctes = append(s.ctes, cteEntry{name: name, query: s.query, columns: cols, recursive: recursive})
	s.ensureTable(name)
	s.query = nil
	kind := "CTE"
	if recursive {
		kind = "recursive CTE"
	}
	_, _ = fmt.Fprintf(s.out, "  Pushed %s %q, start the main query with 'from <table>'\n", kind, name)
	return nil
}

func (s *Session) cmdSQL() error {
	q, err := s.compile(s.visitor)
	if err != nil {
		return err
	}
	s.printCompiled(q)
	return nil
}

// cmdExpr compiles a standalone expression.
func (s *Session) cmdExpr(args string) error {
	n, err := s.parseCondition(args)
	if err != nil {
		return fmt.Errorf("expr: %w", err)
	}
	q, err := s.visitor.Compile(n)
	if err != nil {
		return err
	}
	s.printCompiled(q)
	return nil
}

func (s *Session) cmdEngine(args string) error {
	name := strings.TrimSpace(strings.ToLower(args))
	if err := s.setEngine(name); err != nil {
		return fmt.Errorf("%w (choose: postgres, mysql, sqlite, ansi)", err)
	}
	_, _ = fmt.Fprintf(s.out, "  Engine set to %s\n", s.engine)
	return nil
}

func (s *Session) cmdParameterize() error {
	s.parameterize = !s.parameterize
	s.visitor = s.visitor.With(s.visitorOptions()...)
	if s.parameterize {
		_, _ = fmt.Fprintln(s.out, "  Parameterized queries enabled")
	} else {
		_, _ = fmt.Fprintln(s.out, "  Parameterized queries disabled")
	}
	return nil
}

func (s *Session) cmdFormat() error {
	s.format = !s.format
	if err := s.setEngine(s.engine); err != nil {
		return err
	}
	if s.format {
		_, _ = fmt.Fprintln(s.out, "  Formatted output enabled")
	} else {
		_, _ = fmt.Fprintln(s.out, "  Formatted output disabled")
	}
	return nil
}

// cmdPlugin enables a plugin by name, or dispatches "off".
func (s *Session) cmdPlugin(args string) error {
	parts := strings.Fields(strings.TrimSpace(args))
	if len(parts) == 0 {
		return errors.New("usage: plugin <name> [args] | plugin off [name]")
	}
	name := strings.ToLower(parts[0])
	if name == "off" {
		return s.cmdPluginOff(parts[1:])
	}
	for _, c := range s.configurers {
		if c.name == name {
			return c.configure(s, strings.TrimSpace(strings.TrimSpace(args)[len(parts[0]):]))
		}
	}
	return fmt.Errorf("unknown plugin: %s", name)
}

func (s *Session) cmdPluginOff(parts []string) error {
	if len(parts) == 0 {
		s.plugins.deregisterAll()
		_, _ = fmt.Fprintln(s.out, "  All plugins disabled")
		return nil
	}
	name := strings.ToLower(parts[0])
	if !s.plugins.deregister(name) {
		return fmt.Errorf("plugin %q is not enabled", name)
	}
	_, _ = fmt.Fprintf(s.out, "  %s disabled\n", name)
	return nil
}

func (s *Session) cmdPlugins() {
	_, _ = fmt.Fprintln(s.out, "  Available plugins:")
	for _, c := range s.configurers {
		if entry, ok := s.plugins.get(c.name); ok {
			_, _ = fmt.Fprintf(s.out, "    %-14s on   (%s)\n", c.name, entry.status())
		} else {
			_, _ = fmt.Fprintf(s.out, "    %-14s off\n", c.name)
		}
	}
}

func (s *Session) cmdConnect(args string) error {
	dsn := strings.TrimSpace(args)
	if s.conn != nil {
		return fmt.Errorf("already connected to %s (use 'disconnect' first)", sanitizeDSN(s.conn.dsn))
	}
	if dsn != "" {
		return s.connectWithDSN(dsn)
	}
	if s.lastDSN != "" {
		choice := prompt(s.rl, fmt.Sprintf("Reconnect to %s? (y/n/setup)", sanitizeDSN(s.lastDSN)), "y")
		switch strings.ToLower(choice) {
		case "y", "yes":
			return s.connectWithDSN(s.lastDSN)
		case "s", "setup":
			return s.connectViaWizard()
		default:
			_, _ = fmt.Fprintln(s.out, "  Connect cancelled")
			return nil
		}
	}
	return s.connectViaWizard()
}

func (s *Session) connectWithDSN(dsn string) error {
	if !isValidEngine(s.engine) {
		return fmt.Errorf("engine %s has no database driver (switch with 'engine postgres|mysql|sqlite')", s.engine)
	}
	conn, err := connect(context.Background(), s.engine, dsn, s.cfg, s.log)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	s.conn = conn
	s.lastDSN = dsn
	_, _ = fmt.Fprintf(s.out, "  Connected to %s (%s)\n", sanitizeDSN(dsn), s.engine)
	return nil
}

func (s *Session) connectViaWizard() error {
	dsn := buildDSN(s.rl, s.engine)
	if dsn == "" {
		_, _ = fmt.Fprintln(s.out, "  No connection configured")
		return nil
	}
	_, _ = fmt.Fprintf(s.out, "  DSN: %s\n", sanitizeDSN(dsn))
	return s.connectWithDSN(dsn)
}

func (s *Session) cmdDisconnect() error {
	if s.conn == nil {
		return errors.New("not connected")
	}
	dsn := sanitizeDSN(s.conn.dsn)
	if err := s.conn.close(); err != nil {
		return fmt.Errorf("disconnect: %w", err)
	}
	s.conn = nil
	_, _ = fmt.Fprintf(s.out, "  Disconnected from %s\n", dsn)
	return nil
}

// cmdExec runs the current statement against the connected database. It
// always binds values, whatever the display setting.
func (s *Session) cmdExec() error {
	if s.conn == nil {
		return errNotConnected
	}
	if s.conn.engine != s.engine {
		_, _ = fmt.Fprintf(s.out, "  Warning: connected to %s but engine is set to %s\n", s.conn.engine, s.engine)
	}
	q, err := s.compile(s.visitor.With(visitors.WithParams()))
	if err != nil {
		return err
	}
	s.printCompiled(q)

	ctx := context.Background()
	var result string
	if returnsRows(q.SQL) {
		result, err = s.conn.execQuery(ctx, q.SQL, q.Binds)
	} else {
		result, err = s.conn.execStatement(ctx, q.SQL, q.Binds)
	}
	if err != nil {
		return err
	}
	_, _ = fmt.Fprint(s.out, result)
	return nil
}

// cmdSchema refreshes and lists the connected database's tables.
func (s *Session) cmdSchema() error {
	if s.conn == nil {
		return errNotConnected
	}
	if err := s.conn.loadSchema(context.Background()); err != nil {
		return fmt.Errorf("schema: %w", err)
	}
	tables := s.conn.schemaTables()
	if len(tables) == 0 {
		_, _ = fmt.Fprintln(s.out, "  No tables found")
		return nil
	}
	for _, t := range tables {
		_, _ = fmt.Fprintf(s.out, "  %s (%s)\n", t, strings.Join(s.conn.schemaColumns(t), ", "))
	}
	return nil
}

func (s *Session) cmdReset() error {
	s.setMode(modeSelect)
	s.setOps = nil
	s.ctes = nil
	_, _ = fmt.Fprintln(s.out, "  Query cleared")
	return nil
}

func (s *Session) cmdTables() error {
	if len(s.tables) == 0 && len(s.aliases) == 0 {
		_, _ = fmt.Fprintln(s.out, "  No tables registered")
		return nil
	}
	for _, name := range sortedKeys(s.tables) {
		_, _ = fmt.Fprintf(s.out, "  table: %s\n", name)
	}
	for _, name := range sortedKeys(s.aliases) {
		_, _ = fmt.Fprintf(s.out, "  alias: %s -> %s\n", name, nodes.TableSourceName(s.aliases[name]))
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (s *Session) cmdHelp() {
	_, _ = fmt.Fprint(s.out, helpText)
}

const helpText = `
  Query building:
    from <table> [alias]          Start a new query (sets FROM)
    select <exprs>                Set projections (t.col, *, t.*, COUNT(*) AS n)
    project <exprs>               Alias for select
    distinct                      Enable DISTINCT
    distinct on <exprs>           DISTINCT ON (PostgreSQL)
    where <condition>             Add a WHERE condition
    group <exprs>                 Add GROUP BY
    group cube(<exprs>)           GROUP BY CUBE
    group rollup(<exprs>)         GROUP BY ROLLUP
    having <condition>            Add a HAVING condition
    window <name> [partition by ...] [order by ...]
    order <expr> [asc|desc] [nulls first|last], ...
    limit <n> | take <n>          Set LIMIT
    offset <n> | skip <n>         Set OFFSET
    comment <text>                Leading /* comment */
    hint <text>                   Optimizer hint /*+ text */

  Joins:
    join <table> [alias] on <cond>        INNER JOIN
    left join | right join | full join    Outer joins
    cross join <table> [alias]            CROSS JOIN
    lateral join <cte> on <cond>          LATERAL subquery (pushed with 'with')
    raw join <SQL>                        Verbatim join fragment

  Locking:
    for update | for share | for no key update | for key share
    skip locked

  Composition:
    union | union all | intersect | intersect all | except | except all
    with <name> [(cols)]          Push the current query as a CTE
    with recursive <name>         Push as a recursive CTE

  INSERT / UPDATE / DELETE:
    insert into <table>           Start an INSERT
    columns <cols>                Set the column list
    values <vals>                 Add a row of values (repeatable)
    on conflict (<cols>) do nothing
    on conflict (<cols>) do update set <col> = <val>[, ...] [where <cond>]
    update <table>                Start an UPDATE
    set <col> = <val>[, ...]      Add assignments
    delete from <table>           Start a DELETE
    returning <exprs>             Set RETURNING

  Output:
    sql | tosql                   Show the compiled SQL and binds
    ast                           Show the statement structure
    expr <expression>             Compile a single expression
    engine <name>                 postgres, mysql, sqlite or ansi
    params                        Toggle bind parameters
    format                        Toggle multi-line output

  Tables and plugins:
    table <name>                  Register a table
    alias <table> <name>          Register an alias
    tables                        List registered tables
    plugin softdelete [args]      <col> | <col> on <t1> <t2> | t.col, t2.col
    plugin off [name]             Disable plugins
    plugins                       List plugins

  Database:
    connect [dsn]                 Connect (prompts without a DSN)
    disconnect                    Close the connection
    exec | run                    Execute the current statement
    schema                        List tables and columns
    reset                         Clear the current statement
    exit | quit
`
