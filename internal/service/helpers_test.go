package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"task-planner/internal/model"
	"task-planner/internal/repository"
)

// newTestDB opens an isolated in-memory SQLite database for one test.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := repository.NewDB(dsn, log)
	require.NoError(t, err)

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func newTestUser(t *testing.T, db *gorm.DB, username string) *model.User {
	t.Helper()
	user := &model.User{Username: username, PasswordHash: "x"}
	require.NoError(t, repository.NewUserRepository(db).Create(context.Background(), user))
	return user
}
