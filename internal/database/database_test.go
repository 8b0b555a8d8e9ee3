package database

import (
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigDSN(t *testing.T) {
	cfg := Config{Host: "db", Port: "5432", User: "foodie", Password: "pw", Name: "foodie_express", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=foodie password=pw dbname=foodie_express sslmode=disable", cfg.DSN())
}

func TestSchemaDeclaresTables(t *testing.T) {
	schema := Schema()
	for _, table := range []string{
		"category", "menu", "customer", "delivery", "owner", "orders",
		"order_item", "payment", "receipt_history", "stock_movement",
	} {
		assert.Regexp(t, `CREATE TABLE IF NOT EXISTS `+table+`\b`, schema)
	}
	assert.Contains(t, schema, "CHECK (stock >= 0)")
}

func TestApplySchema(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS category")).WillReturnResult(sqlmock.NewResult(0, 0))
	require.NoError(t, ApplySchema(db))

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS category")).WillReturnError(errors.New("permission denied"))
	assert.Error(t, ApplySchema(db))
	assert.NoError(t, mock.ExpectationsWereMet())
}
