package integration

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"

	"github.com/devconnect/backend/config"
	"github.com/devconnect/backend/internal/database"
	"github.com/devconnect/backend/internal/models"
	"github.com/devconnect/backend/internal/service"
	"github.com/devconnect/backend/internal/types"
)

// setupPostgres starts a throwaway Postgres container and returns a
// migrated connection. Skips when Docker is unavailable.
func setupPostgres(t *testing.T) *gorm.DB {
	t.Helper()
	if os.Getenv("SKIP_DOCKER_TESTS") != "" {
		t.Skip("SKIP_DOCKER_TESTS is set")
	}

	ctx := context.Background()
	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "test",
		},
		WaitingFor: wait.ForAll(
			wait.ForLog("database system is ready to accept connections"),
			wait.ForListeningPort("5432/tcp"),
		),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Skipf("could not start postgres container: %v", err)
	}
	t.Cleanup(func() {
		_ = container.Terminate(context.Background())
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	cfg := &config.Config{
		DBHost:     host,
		DBPort:     port.Port(),
		DBUser:     "test",
		DBPassword: "test",
		DBName:     "test",
		DBSSLMode:  "disable",
	}

	db, err := database.New(cfg)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

// Concurrent first submissions for the same user must collapse into a
// single profile row, with the unique index plus the ON CONFLICT write
// doing the arbitration.
func TestConcurrentUpsertsCreateOneProfile(t *testing.T) {
	db := setupPostgres(t)
	svc := service.NewProfileService(db)
	ctx := context.Background()

	user := models.User{Name: "Ada", Email: "ada@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(&user).Error)

	const writers = 16
	var wg sync.WaitGroup
	errs := make(chan error, writers)

	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := svc.Upsert(ctx, user.ID, &types.UpsertProfileRequest{
				Status: fmt.Sprintf("Developer %d", i),
				Skills: "go",
			})
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}

	var count int64
	require.NoError(t, db.Model(&models.Profile{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

// The last write of an interleaved pair wins whole fields; a concurrent
// update never resurrects values the other writer did not send.
func TestUpsertPartialUpdatesOnPostgres(t *testing.T) {
	db := setupPostgres(t)
	svc := service.NewProfileService(db)
	ctx := context.Background()

	user := models.User{Name: "Ada", Email: "ada@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(&user).Error)

	website := "https://ada.dev"
	_, err := svc.Upsert(ctx, user.ID, &types.UpsertProfileRequest{
		Status:  "Developer",
		Skills:  "go",
		Website: &website,
	})
	require.NoError(t, err)

	updated, err := svc.Upsert(ctx, user.ID, &types.UpsertProfileRequest{
		Status: "Senior Developer",
		Skills: "go, sql",
	})
	require.NoError(t, err)
	assert.Equal(t, "Senior Developer", updated.Status)
	assert.Equal(t, "https://ada.dev", updated.Website)
	assert.Equal(t, models.JSONBStringArray{"go", "sql"}, updated.Skills)
}
