package storage_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestion-stock-api/internal/infrastructure/storage"
	"github.com/jhoicas/gestion-stock-api/pkg/config"
	"github.com/jhoicas/gestion-stock-api/pkg/logger"
)

func TestOpen_SQLiteEnArchivo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stock.db")
	st, err := storage.Open(context.Background(), config.DBConfig{
		Driver: config.DriverSQLite, SQLitePath: path, AutoMigrate: true,
	}, logger.Nop())
	require.NoError(t, err)
	defer st.Close()

	assert.Equal(t, config.DriverSQLite, st.Driver)
	require.NoError(t, st.DB.Ping(context.Background()))

	u, err := st.Users.GetByEmail(context.Background(), "nadie@stock.test")
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestOpen_DriverDesconocido(t *testing.T) {
	_, err := storage.Open(context.Background(), config.DBConfig{Driver: "mysql"}, logger.Nop())
	assert.Error(t, err)
}
