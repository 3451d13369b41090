package model

import (
	"strings"
	"testing"

	"github.com/pixelforge/pixelforge/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// one connection keeps the in-memory database alive for the whole test
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, MigrateDB(db))

	previousDB, previousRedis := DB, common.RedisEnabled
	DB, common.RedisEnabled = db, false
	t.Cleanup(func() {
		_ = sqlDB.Close()
		DB, common.RedisEnabled = previousDB, previousRedis
	})
}

func TestCreateRootAccountIfNeed(t *testing.T) {
	setupTestDB(t)

	require.NoError(t, CreateRootAccountIfNeed())
	require.NoError(t, CreateRootAccountIfNeed())

	var count int64
	require.NoError(t, DB.Model(&User{}).Count(&count).Error)
	require.Equal(t, int64(1), count)

	root := User{Username: "root", Password: "123456"}
	require.NoError(t, root.ValidateAndFill())
	require.Equal(t, common.RoleRootUser, root.Role)
}

func TestTimestampColumnsAreBigint(t *testing.T) {
	setupTestDB(t)

	tests := []struct {
		model  any
		column string
	}{
		{model: &User{}, column: "created_at"},
		{model: &Image{}, column: "timestamp"},
		{model: &File{}, column: "created_at"},
	}
	for _, tt := range tests {
		columnTypes, err := DB.Migrator().ColumnTypes(tt.model)
		require.NoError(t, err)
		found := false
		for _, columnType := range columnTypes {
			if columnType.Name() == tt.column {
				found = true
				assert.True(t, strings.EqualFold("bigint", columnType.DatabaseTypeName()), "%T.%s is %s", tt.model, tt.column, columnType.DatabaseTypeName())
			}
		}
		assert.True(t, found, "%T has no %s column", tt.model, tt.column)
	}
}
