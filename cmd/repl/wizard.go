package main

import (
	"fmt"
	"net"
	"net/url"
	"os/user"
	"strings"

	"github.com/ergochat/readline"
	"github.com/go-sql-driver/mysql"
)

// prompt reads one answer from rl, returning def for an empty line. A nil
// rl always yields def.
func prompt(rl *readline.Instance, label, def string) string {
	if rl == nil {
		return def
	}
	if def != "" {
		rl.SetPrompt(fmt.Sprintf("  %s [%s]: ", label, def))
	} else {
		rl.SetPrompt(fmt.Sprintf("  %s: ", label))
	}
	defer rl.SetPrompt(mainPrompt)

	line, err := rl.ReadLine()
	if err != nil {
		return def
	}
	if val := strings.TrimSpace(line); val != "" {
		return val
	}
	return def
}

// buildDSN asks for connection details for engine. It returns "" when the
// user leaves a required field empty.
func buildDSN(rl *readline.Instance, engine string) string {
	switch engine {
	case "sqlite":
		return prompt(rl, "Database path", ":memory:")
	case "mysql":
		return mysqlDSN(
			prompt(rl, "User", "root"),
			prompt(rl, "Password", ""),
			prompt(rl, "Host", "localhost"),
			prompt(rl, "Port", "3306"),
			prompt(rl, "Database", ""),
		)
	case "postgres":
		defUser := "postgres"
		if u, err := user.Current(); err == nil && u.Username != "" {
			defUser = u.Username
		}
		dbUser := prompt(rl, "User", defUser)
		return postgresDSN(
			dbUser,
			prompt(rl, "Password", ""),
			prompt(rl, "Host", "localhost"),
			prompt(rl, "Port", "5432"),
			prompt(rl, "Database", dbUser),
			prompt(rl, "SSL mode (disable/require/verify-full)", "disable"),
		)
	}
	return ""
}

func postgresDSN(dbUser, pass, host, port, dbName, sslMode string) string {
	if dbUser == "" || dbName == "" {
		return ""
	}
	info := url.User(dbUser)
	if pass != "" {
		info = url.UserPassword(dbUser, pass)
	}
	u := &url.URL{
		Scheme:   "postgres",
		User:     info,
		Host:     net.JoinHostPort(host, port),
		Path:     "/" + dbName,
		RawQuery: url.Values{"sslmode": {sslMode}}.Encode(),
	}
	return u.String()
}

func mysqlDSN(dbUser, pass, host, port, dbName string) string {
	if dbUser == "" || dbName == "" {
		return ""
	}
	cfg := mysql.NewConfig()
	cfg.User = dbUser
	cfg.Passwd = pass
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(host, port)
	cfg.DBName = dbName
	return cfg.FormatDSN()
}
