package services

import (
	"regexp"
	"testing"

	"foodie_express_backend/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMenuServiceWithMock(t *testing.T) (MenuService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	svc := NewMenuService(repositories.NewMenuRepository(db), repositories.NewStockMovementRepository(db), db)
	return svc, mock
}

func TestMenuService_SetStockRecordsAdjustment(t *testing.T) {
	svc, mock := newMenuServiceWithMock(t)
	stock := 12

	mock.ExpectBegin()
	expectLock(mock, 1, "Nasi Lemak", "10.00", 5)
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE menu SET stock = $1 WHERE id = $2`)).
		WithArgs(12, int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(insertMoveQuery).
		WithArgs(int64(1), nil, "adjustment", 7, "restock", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))
	mock.ExpectCommit()

	item, err := svc.SetStock(1, SetStockRequest{Stock: &stock, Reason: " restock "})
	require.NoError(t, err)
	assert.Equal(t, 12, item.Stock)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMenuService_SetStockUnchangedSkipsMovement(t *testing.T) {
	svc, mock := newMenuServiceWithMock(t)
	stock := 5

	mock.ExpectBegin()
	expectLock(mock, 1, "Nasi Lemak", "10.00", 5)
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE menu SET stock = $1 WHERE id = $2`)).
		WithArgs(5, int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	_, err := svc.SetStock(1, SetStockRequest{Stock: &stock})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMenuService_SetStockRejectsNegative(t *testing.T) {
	svc, mock := newMenuServiceWithMock(t)
	stock := -1

	_, err := svc.SetStock(1, SetStockRequest{Stock: &stock})
	assert.ErrorIs(t, err, ErrInvalidStock)

	_, err = svc.SetStock(1, SetStockRequest{})
	assert.ErrorIs(t, err, ErrInvalidStock)
	assert.NoError(t, mock.ExpectationsWereMet())
}
