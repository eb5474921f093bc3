package postgresql

import (
	"context"
	"fmt"

	"github.com/beyond-ems/ems-attendance-go/internal/domain/adminlog"
	"github.com/beyond-ems/ems-attendance-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type adminLogRepositoryImpl struct {
	db *database.DB
}

func NewAdminLogRepository(db *database.DB) adminlog.AdminLogRepository {
	return &adminLogRepositoryImpl{db: db}
}

const adminLogColumns = `id, admin_id, action, target_id, target_type, details, ip_address, user_agent, created_at`

func scanAdminLog(row pgx.Row) (adminlog.AdminLog, error) {
	var l adminlog.AdminLog
	var details []byte
	err := row.Scan(
		&l.ID, &l.AdminID, &l.Action, &l.TargetID, &l.TargetType,
		&details, &l.IPAddress, &l.UserAgent, &l.CreatedAt,
	)
	if len(details) > 0 {
		l.Details = details
	}
	return l, err
}

// Create implements adminlog.AdminLogRepository.
func (r *adminLogRepositoryImpl) Create(ctx context.Context, entry adminlog.AdminLog) (adminlog.AdminLog, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return adminlog.AdminLog{}, fmt.Errorf("generate admin log id: %w", err)
	}

	var details interface{}
	if len(entry.Details) > 0 {
		details = string(entry.Details)
	}

	query := `
		INSERT INTO admin_logs (id, admin_id, action, target_id, target_type, details, ip_address, user_agent)
		VALUES ($1, $2, $3, $4, $5, $6::JSONB, $7, $8)
		RETURNING ` + adminLogColumns

	created, err := scanAdminLog(q.QueryRow(ctx, query,
		id.String(), entry.AdminID, entry.Action, entry.TargetID, entry.TargetType,
		details, entry.IPAddress, entry.UserAgent,
	))
	if err != nil {
		return adminlog.AdminLog{}, fmt.Errorf("failed to create admin log: %w", err)
	}

	return created, nil
}

// List implements adminlog.AdminLogRepository.
func (r *adminLogRepositoryImpl) List(ctx context.Context, filter adminlog.ListAdminLogFilter) ([]adminlog.AdminLog, int64, error) {
	q := GetQuerier(ctx, r.db)

	whereClause := "WHERE 1=1"
	args := []interface{}{}
	argIndex := 1

	if filter.AdminID != nil {
		whereClause += fmt.Sprintf(" AND admin_id = $%d", argIndex)
		args = append(args, *filter.AdminID)
		argIndex++
	}

	if filter.Action != nil {
		whereClause += fmt.Sprintf(" AND action = $%d", argIndex)
		args = append(args, *filter.Action)
		argIndex++
	}

	var total int64
	if err := q.QueryRow(ctx, fmt.Sprintf(`SELECT COUNT(*) FROM admin_logs %s`, whereClause), args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count admin logs: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM admin_logs
		%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, adminLogColumns, whereClause, argIndex, argIndex+1)

	args = append(args, filter.Limit, filter.Offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query admin logs: %w", err)
	}
	defer rows.Close()

	logs := make([]adminlog.AdminLog, 0)
	for rows.Next() {
		l, err := scanAdminLog(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan admin log: %w", err)
		}
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate admin logs: %w", err)
	}

	return logs, total, nil
}
