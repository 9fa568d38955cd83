package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestUniqueConstraint(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantName string
		wantOK   bool
	}{
		{
			name:     "violación de código",
			err:      &pgconn.PgError{Code: "23505", ConstraintName: "transactions_in_code_key"},
			wantName: "transactions_in_code_key",
			wantOK:   true,
		},
		{
			name:     "violación envuelta",
			err:      fmt.Errorf("create: %w", &pgconn.PgError{Code: "23505", ConstraintName: "transactions_out_invoice_key"}),
			wantName: "transactions_out_invoice_key",
			wantOK:   true,
		},
		{
			name:   "otro error de postgres",
			err:    &pgconn.PgError{Code: "23503", ConstraintName: "transactions_in_product_id_fkey"},
			wantOK: false,
		},
		{
			name:   "error cualquiera",
			err:    errors.New("connection refused"),
			wantOK: false,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			name, ok := uniqueConstraint(tc.err)
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.wantName, name)
		})
	}
}
