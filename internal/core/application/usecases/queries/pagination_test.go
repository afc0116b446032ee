package queries_test

import (
	"testing"

	"pharmacy/internal/core/application/usecases/queries"
	"pharmacy/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPagination_Defaults(t *testing.T) {
	p, err := queries.NewPagination(0, 0, "", "", queries.OrderSortColumns())

	require.NoError(t, err)
	assert.Equal(t, 1, p.Page())
	assert.Equal(t, 20, p.Limit())
	assert.Equal(t, 0, p.Offset())
	assert.Equal(t, "created_at desc", p.OrderBy())
}

func TestNewPagination_Offset(t *testing.T) {
	p, err := queries.NewPagination(3, 25, "status", "asc", queries.OrderSortColumns())

	require.NoError(t, err)
	assert.Equal(t, 50, p.Offset())
	assert.Equal(t, "status asc", p.OrderBy())
}

func TestNewPagination_InvalidPage(t *testing.T) {
	_, err := queries.NewPagination(-1, 20, "", "", queries.OrderSortColumns())

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}

func TestNewPagination_LimitTooLarge(t *testing.T) {
	_, err := queries.NewPagination(1, 500, "", "", queries.OrderSortColumns())

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}

func TestNewPagination_RejectsUnknownSortColumn(t *testing.T) {
	_, err := queries.NewPagination(1, 20, "password", "asc", queries.OrderSortColumns())

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestNewPagination_RejectsUnknownSortOrder(t *testing.T) {
	_, err := queries.NewPagination(1, 20, "created_at", "sideways", queries.OrderSortColumns())

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestPagination_Pages(t *testing.T) {
	p, err := queries.NewPagination(1, 20, "", "", queries.OrderSortColumns())
	require.NoError(t, err)

	assert.Equal(t, 0, p.Pages(0))
	assert.Equal(t, 1, p.Pages(1))
	assert.Equal(t, 1, p.Pages(20))
	assert.Equal(t, 2, p.Pages(21))
	assert.Equal(t, 5, p.Pages(100))
}
