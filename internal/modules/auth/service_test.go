package auth

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/techblog/core/internal/models"
	"github.com/techblog/core/internal/pkg/apperr"
	"github.com/techblog/core/internal/pkg/jwt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.UserModel{}))

	return NewService(db)
}

func TestRegisterIssuesToken(t *testing.T) {
	svc := newTestService(t)

	resp, err := svc.Register(&RegisterDTO{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "hunter2hunter2",
	})
	require.NoError(t, err)

	assert.Equal(t, "alice", resp.Username)
	assert.Equal(t, string(models.RoleUser), resp.Role)
	require.NotEmpty(t, resp.Token)

	claims, err := jwt.Parse(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Subject)
	assert.Equal(t, string(models.RoleUser), claims.Role)
}

func TestRegisterHashesPassword(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Register(&RegisterDTO{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "hunter2hunter2",
	})
	require.NoError(t, err)

	var user models.UserModel
	require.NoError(t, svc.db.First(&user, "email = ?", "alice@example.com").Error)
	assert.NotEqual(t, "hunter2hunter2", user.Password)
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Register(&RegisterDTO{Username: "alice", Email: "alice@example.com", Password: "hunter2hunter2"})
	require.NoError(t, err)

	_, err = svc.Register(&RegisterDTO{Username: "alice2", Email: "alice@example.com", Password: "hunter2hunter2"})
	assert.ErrorIs(t, err, apperr.ErrConflict)

	_, err = svc.Register(&RegisterDTO{Username: "alice", Email: "other@example.com", Password: "hunter2hunter2"})
	assert.ErrorIs(t, err, apperr.ErrConflict)
}

func TestLogin(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Register(&RegisterDTO{Username: "alice", Email: "alice@example.com", Password: "hunter2hunter2"})
	require.NoError(t, err)

	resp, err := svc.Login(&LoginDTO{Email: "alice@example.com", Password: "hunter2hunter2"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)

	_, err = svc.Login(&LoginDTO{Email: "alice@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	_, err = svc.Login(&LoginDTO{Email: "ghost@example.com", Password: "whatever"})
	assert.ErrorIs(t, err, apperr.ErrForbidden)
}
