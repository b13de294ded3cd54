package store

import (
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgconn"
)

func psql() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
}

// prefixColumns qualifies column names with a table alias for joins.
func prefixColumns(prefix string, columns []string) []string {
	out := make([]string, len(columns))
	for i, column := range columns {
		out[i] = fmt.Sprintf("%s.%s", prefix, column)
	}
	return out
}

// isUniqueViolation reports whether err is a postgres unique constraint
// violation. Stores translate these into domain errors so the database
// constraint, not the application pre-check, is the invariant enforcer.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
