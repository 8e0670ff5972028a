package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

// PostgresStore implements Store and Summer over a database/sql handle opened with the pgx driver.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Count(ctx context.Context, q Query) (int, error) {
	if err := q.Validate("count"); err != nil {
		return 0, err
	}
	query, args := countSQL(q)

	var n int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, classify("count", q.Collection, err)
	}
	return n, nil
}

func (s *PostgresStore) List(ctx context.Context, q Query) ([]Row, error) {
	if err := q.Validate("list"); err != nil {
		return nil, err
	}
	query, args := selectSQL(q)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, classify("list", q.Collection, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, classify("list", q.Collection, err)
	}

	var out []Row
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, classify("list", q.Collection, err)
		}
		r := make(Row, len(cols))
		for i, c := range cols {
			r[c] = values[i]
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("list", q.Collection, err)
	}
	return out, nil
}

// Sum runs SUM(field) in the database. The result is read as text to keep numeric precision.
func (s *PostgresStore) Sum(ctx context.Context, q Query, field string) (decimal.Decimal, error) {
	if !hasField(q.Collection, field) {
		return decimal.Zero, invalidQuery("sum", q.Collection, "unknown field %q", field)
	}
	if err := q.Validate("sum"); err != nil {
		return decimal.Zero, err
	}
	query, args := sumSQL(q, field)

	var total string
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return decimal.Zero, classify("sum", q.Collection, err)
	}
	d, err := decimal.NewFromString(total)
	if err != nil {
		return decimal.Zero, &StoreError{Kind: MalformedRow, Op: "sum", Collection: q.Collection, Err: err}
	}
	return d, nil
}

func countSQL(q Query) (string, []any) {
	where, args, _ := whereClause(q.Where, 1)
	return fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE 1=1%s", q.Collection, where), args
}

func sumSQL(q Query, field string) (string, []any) {
	where, args, _ := whereClause(q.Where, 1)
	return fmt.Sprintf("SELECT COALESCE(SUM(%s), 0)::text FROM %s WHERE 1=1%s", field, q.Collection, where), args
}

func selectSQL(q Query) (string, []any) {
	where, args, argIdx := whereClause(q.Where, 1)

	var sb strings.Builder
	fmt.Fprintf(&sb, "SELECT %s FROM %s WHERE 1=1%s", strings.Join(q.columns(), ", "), q.Collection, where)
	for i, o := range q.OrderBy {
		dir := "ASC"
		if o.Desc {
			dir = "DESC"
		}
		sep := ", "
		if i == 0 {
			sep = " ORDER BY "
		}
		fmt.Fprintf(&sb, "%s%s %s", sep, o.Field, dir)
	}
	if q.Limit > 0 {
		fmt.Fprintf(&sb, " LIMIT $%d", argIdx)
		args = append(args, q.Limit)
	}
	return sb.String(), args
}

// whereClause renders conditions as positional predicates. Field names and
// operators are trusted here because Query.Validate has already checked them.
func whereClause(conds []Condition, argIdx int) (string, []any, int) {
	query := ""
	args := []any{}
	for _, c := range conds {
		query += fmt.Sprintf(" AND %s %s $%d", c.Field, c.Op, argIdx)
		args = append(args, c.Value)
		argIdx++
	}
	return query, args, argIdx
}

// classify maps driver errors onto StoreError kinds. SQLSTATE class 42 (syntax
// error or access rule violation) and 22 (data exception) are programmer errors;
// everything else is treated as the store being unreachable.
func classify(op string, c Collection, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && len(pgErr.Code) >= 2 {
		switch pgErr.Code[:2] {
		case "42", "22":
			return &StoreError{Kind: QueryInvalid, Op: op, Collection: c, Err: err}
		}
	}
	return &StoreError{Kind: Unavailable, Op: op, Collection: c, Err: err}
}
