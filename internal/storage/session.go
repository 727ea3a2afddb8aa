package storage

import (
	"context"
	"regexp"
	"time"
)

type rowScanner interface {
	Scan(dest ...any) error
}

type rowIterator interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
}

// txQuerier is the subset of a driver transaction the session needs.
type txQuerier interface {
	exec(ctx context.Context, query string, args ...any) (int64, error)
	queryRow(ctx context.Context, query string, args ...any) rowScanner
	query(ctx context.Context, query string, args ...any) (rowIterator, error)
	commit(ctx context.Context) error
	rollback(ctx context.Context) error
}

// dialect captures what differs between backends.
type dialect struct {
	rebind            func(query string) string
	isNoRows          func(err error) bool
	isUniqueViolation func(err error) bool
	timeDest          func(t *time.Time) any
}

type session struct {
	tx txQuerier
	d  *dialect
}

func newSession(tx txQuerier, d *dialect) *session {
	return &session{tx: tx, d: d}
}

func (s *session) Commit(ctx context.Context) error {
	return s.tx.commit(ctx)
}

func (s *session) Close(ctx context.Context) error {
	return s.tx.rollback(ctx)
}

func (s *session) q(query string) string {
	if s.d.rebind == nil {
		return query
	}
	return s.d.rebind(query)
}

var positionalParam = regexp.MustCompile(`\$\d+`)

// rebindQuestion rewrites $N placeholders to ?. Every query here uses each
// parameter once and in order.
func rebindQuestion(query string) string {
	return positionalParam.ReplaceAllString(query, "?")
}

// now is the insert timestamp; microsecond precision matches Postgres.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
