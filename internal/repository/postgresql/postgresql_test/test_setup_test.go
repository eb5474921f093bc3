package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/beyond-ems/ems-attendance-go/internal/domain/user"
	"github.com/beyond-ems/ems-attendance-go/internal/pkg/database"
	"github.com/beyond-ems/ems-attendance-go/internal/repository/postgresql"
	"github.com/stretchr/testify/require"
)

// openTestDB connects to TEST_DATABASE_URL, applies the schema and empties
// every table. The test is skipped when the variable is unset.
func openTestDB(t *testing.T) *database.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := database.NewPostgreSQLDB(dsn)
	require.NoError(t, err)
	t.Cleanup(db.Close)

	prepareDB(t, db)
	return db
}

func prepareDB(t *testing.T, db *database.DB) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, database.Migrate(ctx, db))
	require.NoError(t, truncateAll(ctx, db))
}

func truncateAll(ctx context.Context, db *database.DB) error {
	tables := []string{"admin_logs", "performance_metrics", "leave_requests", "attendance", "users"}
	for _, table := range tables {
		if _, err := db.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)); err != nil {
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}
	return nil
}

var snowflakeSeq int64 = 100000000000000000

func seedUser(t *testing.T, repo user.UserRepository, username string) user.User {
	t.Helper()
	snowflakeSeq++

	u, err := repo.Upsert(context.Background(), user.User{
		DiscordID:   fmt.Sprintf("%d", snowflakeSeq),
		Username:    username,
		DisplayName: username,
		Rank:        user.RankTrainee,
		Department:  user.DepartmentEMS,
	})
	require.NoError(t, err)
	return u
}

func newRepos(db *database.DB) repos {
	return repos{
		users:       postgresql.NewUserRepository(db),
		attendance:  postgresql.NewAttendanceRepository(db),
		dashboard:   postgresql.NewDashboardRepository(db),
		leave:       postgresql.NewLeaveRequestRepository(db),
		performance: postgresql.NewPerformanceMetricRepository(db),
		adminLogs:   postgresql.NewAdminLogRepository(db),
		tx:          postgresql.NewTransactor(db),
	}
}

func day(y int, m time.Month, d, h int) time.Time {
	return time.Date(y, m, d, h, 0, 0, 0, time.UTC)
}
