package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestCompleter(t *testing.T, commands ...string) *replCompleter {
	t.Helper()
	s, _ := newTestSession(t, "postgres", true)
	execAll(t, s, commands...)
	return &replCompleter{sess: s}
}

func completions(c *replCompleter, line string) []string {
	suffixes, n := c.Do([]rune(line), len([]rune(line)))
	prefix := string([]rune(line)[len([]rune(line))-n:])
	out := make([]string, len(suffixes))
	for i, s := range suffixes {
		out[i] = prefix + string(s)
	}
	return out
}

func TestCompleteCommands(t *testing.T) {
	t.Parallel()
	c := newTestCompleter(t)

	assert.Equal(t, []string{"select "}, completions(c, "sel"))
	assert.Len(t, completions(c, ""), len(c.sess.commandNames()))

	got := completions(c, "s")
	for _, want := range []string{"select ", "set ", "sql ", "schema "} {
		assert.Contains(t, got, want)
	}
	assert.NotContains(t, got, "set_engine ", "hidden commands are not offered")
}

func TestCompleteTableNames(t *testing.T) {
	t.Parallel()
	c := newTestCompleter(t, "table users", "table posts", "alias users u")

	assert.Equal(t, []string{"users "}, completions(c, "from us"))
	assert.ElementsMatch(t, []string{"posts ", "u ", "users "}, completions(c, "join "))
	assert.Equal(t, []string{"users "}, completions(c, "insert into us"))
}

func TestCompleteColumnRefs(t *testing.T) {
	t.Parallel()
	c := newTestCompleter(t, "table users")

	assert.Equal(t, []string{"users.* "}, completions(c, "select users."))
	got := completions(c, "where co")
	assert.Contains(t, got, "count( ")
	assert.Contains(t, got, "coalesce( ")
	assert.Contains(t, got, "count(distinct  ")

	got = completions(c, "where CO")
	assert.Contains(t, got, "COUNT( ")
	assert.Contains(t, got, "COALESCE( ")
}

func TestCompletionSuffixFollowsTypedCase(t *testing.T) {
	t.Parallel()
	tests := []struct {
		item, prefix, want string
	}{
		{"COUNT(", "co", "unt("},
		{"COUNT(", "CO", "UNT("},
		{"COUNT(", "Co", "UNT("},
		{"COUNT(", "", "COUNT("},
		{"users", "us", "ers"},
		{"Users", "us", "ers"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, completionSuffix(tt.item, tt.prefix), "%s/%s", tt.item, tt.prefix)
	}
}

func TestCompleteJoinArgs(t *testing.T) {
	t.Parallel()
	tests := []struct {
		args   string
		ctx    completionContext
		prefix string
	}{
		{"", contextTableName, ""},
		{"pos", contextTableName, "pos"},
		{"posts on ", contextColumnRef, ""},
		{"posts on users.i", contextColumnRef, "users.i"},
		{"posts on users.id ", contextOperator, ""},
	}
	for _, tt := range tests {
		ctx, prefix := completeJoinArgs(tt.args)
		assert.Equal(t, tt.ctx, ctx, tt.args)
		assert.Equal(t, tt.prefix, prefix, tt.args)
	}
}

func TestCompleteOrderArgs(t *testing.T) {
	t.Parallel()
	ctx, _ := completeOrderArgs("users.name ")
	assert.Equal(t, contextOrderDir, ctx)

	ctx, prefix := completeOrderArgs("users.name de")
	assert.Equal(t, contextOrderDir, ctx)
	assert.Equal(t, "de", prefix)

	ctx, prefix = completeOrderArgs("users.na")
	assert.Equal(t, contextColumnRef, ctx)
	assert.Equal(t, "users.na", prefix)
}

func TestCompleteEngineAndPlugins(t *testing.T) {
	t.Parallel()
	c := newTestCompleter(t)

	assert.Equal(t, []string{"sqlite "}, completions(c, "engine sq"))
	assert.Equal(t, []string{"softdelete "}, completions(c, "plugin so"))
	assert.Empty(t, completions(c, "plugin off "), "nothing enabled yet")

	c = newTestCompleter(t, "plugin softdelete")
	assert.Equal(t, []string{"softdelete "}, completions(c, "plugin off "))
}

func TestCompleteAliasOffersRegisteredTablesOnly(t *testing.T) {
	t.Parallel()
	c := newTestCompleter(t, "table users", "alias users u")
	assert.Equal(t, []string{"users "}, completions(c, "alias "))
	assert.Equal(t, []string{"users "}, completions(c, "alias u"))
}

func TestLastToken(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "c", lastToken("a, b, c"))
	assert.Equal(t, "users.id", lastToken("users.name,users.id"))
	assert.Equal(t, "", lastToken("a "))
	assert.Equal(t, "abc", lastToken("abc"))
}

func TestFilterPrefixIgnoresCase(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []string{"COUNT("}, filterPrefix([]string{"AVG(", "COUNT("}, "cou"))
	assert.Equal(t, []string{"a", "b"}, filterPrefix([]string{"a", "b"}, ""))
}
