package repositories

import (
	"database/sql"
	"regexp"
	"testing"

	"foodie_express_backend/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func TestMenuRepository_DecrementStock(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMenuRepository(db)
	query := regexp.QuoteMeta(`UPDATE menu SET stock = stock - $1 WHERE id = $2 AND stock >= $1`)

	mock.ExpectExec(query).WithArgs(2, int64(5)).WillReturnResult(sqlmock.NewResult(0, 1))
	ok, err := repo.DecrementStock(db, 5, 2)
	require.NoError(t, err)
	assert.True(t, ok)

	mock.ExpectExec(query).WithArgs(9, int64(5)).WillReturnResult(sqlmock.NewResult(0, 0))
	ok, err = repo.DecrementStock(db, 5, 9)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMenuRepository_GetItemForUpdate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMenuRepository(db)
	query := regexp.QuoteMeta(`FROM menu`) + `\s+WHERE id = \$1\s+FOR UPDATE`

	mock.ExpectQuery(query).WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price", "description", "stock", "category_id"}).
			AddRow(int64(3), "Nasi Lemak", "10.00", "Coconut rice", 4, int64(1)))

	item, err := repo.GetItemForUpdate(db, 3)
	require.NoError(t, err)
	assert.Equal(t, "Nasi Lemak", item.Name)
	assert.Equal(t, 4, item.Stock)
	assert.True(t, decimal.RequireFromString("10").Equal(item.Price))

	mock.ExpectQuery(query).WithArgs(int64(4)).WillReturnError(sql.ErrNoRows)
	_, err = repo.GetItemForUpdate(db, 4)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMenuRepository_DeleteItemReferencedByOrders(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMenuRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM menu WHERE id = $1`)).
		WithArgs(int64(2)).
		WillReturnError(&pq.Error{Code: "23503"})

	err := repo.DeleteItem(db, 2)
	assert.ErrorIs(t, err, ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMenuRepository_CreateCategoryDuplicate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMenuRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO category`)).
		WithArgs("Drinks").
		WillReturnError(&pq.Error{Code: "23505"})

	_, err := repo.CreateCategory(db, &models.Category{Name: "Drinks"})
	assert.ErrorIs(t, err, ErrDuplicateKey)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMenuRepository_UpdateStockMissingItem(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMenuRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE menu SET stock = $1 WHERE id = $2`)).
		WithArgs(10, int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.UpdateStock(db, 99, 10), ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPagination(t *testing.T) {
	limit, offset := pagination(0, 0)
	assert.Equal(t, 20, limit)
	assert.Equal(t, 0, offset)

	limit, offset = pagination(3, 500)
	assert.Equal(t, 100, limit)
	assert.Equal(t, 200, offset)
}
