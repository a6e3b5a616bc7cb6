package sqlstore

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	"github.com/jascaniojs/parking-business-api/internal/repository"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "pgx unique", err: &pgconn.PgError{Code: "23505"}, want: repository.ErrDuplicateEntry},
		{name: "pgx lock timeout", err: fmt.Errorf("wrapped: %w", &pgconn.PgError{Code: "55P03"}), want: repository.ErrLockTimeout},
		{name: "pq unique", err: &pq.Error{Code: "23505"}, want: repository.ErrDuplicateEntry},
		{name: "pq lock timeout", err: &pq.Error{Code: "55P03"}, want: repository.ErrLockTimeout},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classify(tt.err)
			if !errors.Is(got, tt.want) {
				t.Fatalf("classify(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}

	plain := errors.New("boom")
	if got := classify(plain); got != plain {
		t.Fatalf("classify(plain) = %v", got)
	}
	if classify(nil) != nil {
		t.Fatal("classify(nil) should be nil")
	}
}
