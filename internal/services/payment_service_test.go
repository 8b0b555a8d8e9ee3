package services

import (
	"context"
	"regexp"
	"testing"
	"time"

	"foodie_express_backend/internal/models"
	"foodie_express_backend/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var paymentColumns = []string{"id", "order_id", "method", "amount", "status", "payment_date"}

func newPaymentServiceWithMock(t *testing.T) (*paymentService, sqlmock.Sqlmock, *recordingPublisher) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	publisher := &recordingPublisher{}
	svc := NewPaymentService(
		repositories.NewPaymentRepository(db),
		repositories.NewOrderRepository(db),
		publisher,
		db,
	).(*paymentService)
	return svc, mock, publisher
}

func TestPaymentService_ProcessPaymentConfirmsOrder(t *testing.T) {
	svc, mock, publisher := newPaymentServiceWithMock(t)
	paidAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return paidAt }

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE payment SET status = $1, payment_date = $2 WHERE id = $3 RETURNING order_id`)).
		WithArgs("Paid", paidAt, int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"order_id"}).AddRow(int64(42)))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE orders SET status = $1 WHERE id = $2`)).
		WithArgs("Confirmed", int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectQuery(regexp.QuoteMeta(`FROM payment WHERE id = $1`)).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(paymentColumns).AddRow(int64(5), int64(42), "Cash", "31.50", "Paid", paidAt))

	payment, err := svc.ProcessPayment(context.Background(), 5, models.PaymentStatusPaid)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPaid, payment.Status)
	require.NotNil(t, payment.PaymentDate)
	assert.True(t, paidAt.Equal(*payment.PaymentDate))
	assert.NoError(t, mock.ExpectationsWereMet())

	events := publisher.Events()
	require.Len(t, events, 1)
	assert.Equal(t, EventOrderPaymentProcessed, events[0].Type)
	assert.Equal(t, models.OrderStatusConfirmed, events[0].Status)
}

func TestPaymentService_ProcessPaymentPendingLeavesOrder(t *testing.T) {
	svc, mock, publisher := newPaymentServiceWithMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE payment SET status`)).
		WithArgs("Pending", sqlmock.AnyArg(), int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"order_id"}).AddRow(int64(42)))
	mock.ExpectCommit()
	mock.ExpectQuery(regexp.QuoteMeta(`FROM payment WHERE id = $1`)).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(paymentColumns).AddRow(int64(5), int64(42), "Cash", "31.50", "Pending", time.Now()))

	_, err := svc.ProcessPayment(context.Background(), 5, models.PaymentStatusPending)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
	require.Len(t, publisher.Events(), 1)
	assert.Empty(t, publisher.Events()[0].Status)
}

func TestPaymentService_ProcessPaymentUnknownPayment(t *testing.T) {
	svc, mock, publisher := newPaymentServiceWithMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE payment SET status`)).
		WillReturnRows(sqlmock.NewRows([]string{"order_id"}))
	mock.ExpectRollback()

	_, err := svc.ProcessPayment(context.Background(), 99, models.PaymentStatusPaid)
	assert.ErrorIs(t, err, ErrPaymentNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
	assert.Empty(t, publisher.Events())
}

func TestPaymentService_CreatePayment(t *testing.T) {
	svc, mock, _ := newPaymentServiceWithMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO payment (order_id, method, amount, status)`)).
		WithArgs(int64(42), "E-Wallet", "25", "Pending").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(5)))

	payment, err := svc.CreatePayment(42, models.PaymentMethodEWallet, decimal.RequireFromString("25.00"))
	require.NoError(t, err)
	assert.Equal(t, int64(5), payment.ID)
	assert.Equal(t, models.PaymentStatusPending, payment.Status)
	assert.NoError(t, mock.ExpectationsWereMet())

	_, err = svc.CreatePayment(42, models.PaymentMethod("Cheque"), decimal.NewFromInt(1))
	assert.ErrorIs(t, err, ErrInvalidPaymentMethod)
}

func TestPaymentService_PaymentMethodsIsACopy(t *testing.T) {
	svc, _, _ := newPaymentServiceWithMock(t)

	methods := svc.PaymentMethods()
	require.Len(t, methods, 4)
	methods[0] = "Gold"
	assert.Equal(t, models.PaymentMethodCash, svc.PaymentMethods()[0])
}
