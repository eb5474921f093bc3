package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/beyond-ems/ems-attendance-go/internal/domain/attendance"
	"github.com/beyond-ems/ems-attendance-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const openShiftConstraint = "uq_attendance_open_shift"

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `id, user_id, discord_id, clock_in, clock_out, duration, status, created_at, updated_at`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var att attendance.Attendance
	err := row.Scan(
		&att.ID, &att.UserID, &att.DiscordID,
		&att.ClockIn, &att.ClockOut, &att.Duration,
		&att.Status, &att.CreatedAt, &att.UpdatedAt,
	)
	return att, err
}

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepository) Create(ctx context.Context, newAttendance attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	id, err := uuid.NewV7()
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("generate attendance id: %w", err)
	}

	query := `
		INSERT INTO attendance (id, user_id, discord_id, clock_in, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + attendanceColumns

	created, err := scanAttendance(q.QueryRow(ctx, query,
		id.String(),
		newAttendance.UserID,
		newAttendance.DiscordID,
		newAttendance.ClockIn,
		attendance.StatusActive,
	))
	if err != nil {
		if isUniqueViolation(err, openShiftConstraint) {
			return attendance.Attendance{}, attendance.ErrAlreadyClockedIn
		}
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return created, nil
}

// GetByID implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + attendanceColumns + ` FROM attendance WHERE id = $1`

	att, err := scanAttendance(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, fmt.Errorf("attendance %s: %w", id, err)
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance by ID: %w", err)
	}

	return att, nil
}

// GetActiveByUserID implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetActiveByUserID(ctx context.Context, userID string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance
		WHERE user_id = $1
		  AND status = 'active'
		  AND clock_out IS NULL
		ORDER BY clock_in DESC
		LIMIT 1
	`

	att, err := scanAttendance(q.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, fmt.Errorf("no open attendance session found: %w", err)
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get open session: %w", err)
	}

	return att, nil
}

// ListByUserID implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByUserID(ctx context.Context, userID string, filter attendance.HistoryFilter) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance
		WHERE user_id = $1
		ORDER BY clock_in DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := q.Query(ctx, query, userID, filter.Limit, filter.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendances: %w", err)
	}
	defer rows.Close()

	records := make([]attendance.Attendance, 0)
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, att)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendances: %w", err)
	}

	return records, nil
}

// Complete implements attendance.AttendanceRepository.
func (a *attendanceRepository) Complete(ctx context.Context, id string, clockOut time.Time, duration int64) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendance
		SET clock_out = $1, duration = $2, status = 'completed', updated_at = NOW()
		WHERE id = $3
		  AND status = 'active'
		  AND clock_out IS NULL
		RETURNING ` + attendanceColumns

	att, err := scanAttendance(q.QueryRow(ctx, query, clockOut, duration, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, fmt.Errorf("attendance %s is not open: %w", id, err)
		}
		return attendance.Attendance{}, fmt.Errorf("failed to complete attendance: %w", err)
	}

	return att, nil
}

// Update implements attendance.AttendanceRepository.
func (a *attendanceRepository) Update(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendance
		SET clock_in = $1, clock_out = $2, duration = $3, status = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING ` + attendanceColumns

	updated, err := scanAttendance(q.QueryRow(ctx, query,
		att.ClockIn, att.ClockOut, att.Duration, att.Status, att.ID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, fmt.Errorf("attendance not found: %w", err)
		}
		return attendance.Attendance{}, fmt.Errorf("failed to update attendance: %w", err)
	}

	return updated, nil
}

// SumCompletedMinutes implements attendance.AttendanceRepository.
func (a *attendanceRepository) SumCompletedMinutes(ctx context.Context, userID string, from, to time.Time) (int64, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT COALESCE(SUM(duration), 0)::BIGINT
		FROM attendance
		WHERE user_id = $1
		  AND status = 'completed'
		  AND clock_in >= $2
		  AND clock_in < $3
	`

	var total int64
	if err := q.QueryRow(ctx, query, userID, from, to).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to sum completed minutes: %w", err)
	}

	return total, nil
}
