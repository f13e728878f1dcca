package database_test

import (
	"errors"
	"fmt"
	"testing"

	"assetserver/src/database"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	violation := &pgconn.PgError{Code: "23505", ConstraintName: "it_assets_asset_id_key"}
	wrapped := fmt.Errorf("insert it asset: %w", violation)

	assert.True(t, database.IsUniqueViolation(wrapped, ""))
	assert.True(t, database.IsUniqueViolation(wrapped, "it_assets_asset_id_key"))
	assert.False(t, database.IsUniqueViolation(wrapped, "it_assets_serial_number_key"))
	assert.False(t, database.IsUniqueViolation(&pgconn.PgError{Code: "23503"}, ""))
	assert.False(t, database.IsUniqueViolation(errors.New("boom"), ""))
	assert.False(t, database.IsUniqueViolation(nil, ""))
}
