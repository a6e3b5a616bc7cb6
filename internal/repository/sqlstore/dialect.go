package sqlstore

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

type dialect struct {
	name string
	// numbered placeholders ($1, $2, ...) instead of ?
	numbered  bool
	forUpdate string
	skipLock  string
}

var (
	postgresDialect = dialect{
		name:      "postgres",
		numbered:  true,
		forUpdate: " FOR UPDATE",
		skipLock:  " FOR UPDATE SKIP LOCKED",
	}
	// SQLite has no row locks; the store runs on a single connection so
	// transactions never interleave.
	sqliteDialect = dialect{name: "sqlite"}
)

// rebind rewrites ? placeholders for the dialect.
func (d dialect) rebind(query string) string {
	if !d.numbered {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// txSetup returns the statements run at the start of every transaction.
func (d dialect) txSetup(lockTimeout time.Duration) []string {
	if d.name != postgresDialect.name || lockTimeout <= 0 {
		return nil
	}
	ms := lockTimeout.Milliseconds()
	return []string{
		fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", ms),
		fmt.Sprintf("SET LOCAL statement_timeout = '%dms'", 2*ms),
	}
}
