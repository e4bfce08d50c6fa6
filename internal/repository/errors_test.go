package repository

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"no rows", sql.ErrNoRows, ErrNotFound},
		{"unique", &pq.Error{Code: "23505", Message: "dup"}, ErrDuplicate},
		{"foreign key", &pq.Error{Code: "23503"}, ErrInvalidReference},
		{"bad date", &pq.Error{Code: "22007"}, ErrInvalidInput},
		{"bad text", &pq.Error{Code: "22P02"}, ErrInvalidInput},
		{"out of range", &pq.Error{Code: "22003"}, ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, classify("op", tt.err), tt.want)
		})
	}
}

func TestClassifyPassesThroughUnknownErrors(t *testing.T) {
	boom := errors.New("connection reset")
	err := classify("op", boom)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Nil(t, classify("op", nil))
}

type fakeResult int64

func (r fakeResult) LastInsertId() (int64, error) { return 0, nil }
func (r fakeResult) RowsAffected() (int64, error) { return int64(r), nil }

func TestRowsAffected(t *testing.T) {
	assert.ErrorIs(t, rowsAffected("delete", fakeResult(0)), ErrNotFound)
	assert.NoError(t, rowsAffected("delete", fakeResult(1)))
}
