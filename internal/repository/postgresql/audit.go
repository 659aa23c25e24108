package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/skillsphere/skillsphere-backend-go/internal/domain/audit"
	"github.com/skillsphere/skillsphere-backend-go/internal/pkg/database"
)

// auditRepositoryImpl appends and queries audit entries. It exposes no
// update or delete, and the audit_logs triggers raise if anything else
// tries.
type auditRepositoryImpl struct {
	db *database.DB
}

func NewAuditRepository(db *database.DB) audit.Repository {
	return &auditRepositoryImpl{db: db}
}

// Append implements audit.Repository.
func (r *auditRepositoryImpl) Append(ctx context.Context, entry audit.Entry) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO audit_logs (user_id, action, target_type, target_id, fields_accessed, legal_basis, ip_address)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := q.Exec(ctx, query,
		entry.UserID, entry.Action, entry.TargetType, entry.TargetID,
		entry.FieldsAccessed, entry.LegalBasis, entry.IPAddress,
	)
	if err != nil {
		return fmt.Errorf("failed to append audit entry: %w", err)
	}
	return nil
}

// Query implements audit.Repository.
func (r *auditRepositoryImpl) Query(ctx context.Context, filter audit.QueryFilter) ([]audit.Entry, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"occurred_at >= NOW() - make_interval(days => $1)"}
	args := []interface{}{filter.Days}
	argIdx := 2

	if filter.UserID != "" {
		conditions = append(conditions, fmt.Sprintf("user_id = $%d", argIdx))
		args = append(args, filter.UserID)
		argIdx++
	}
	if filter.Action != "" {
		conditions = append(conditions, fmt.Sprintf("action = $%d", argIdx))
		args = append(args, filter.Action)
		argIdx++
	}
	if filter.TargetType != "" {
		conditions = append(conditions, fmt.Sprintf("target_type = $%d", argIdx))
		args = append(args, filter.TargetType)
		argIdx++
	}
	if filter.TargetID != "" {
		conditions = append(conditions, fmt.Sprintf("target_id = $%d", argIdx))
		args = append(args, filter.TargetID)
		argIdx++
	}

	query := fmt.Sprintf(`
		SELECT id, occurred_at, user_id, action, target_type, target_id, fields_accessed, legal_basis, ip_address
		FROM audit_logs
		WHERE %s
		ORDER BY occurred_at DESC, id DESC
		LIMIT $%d
	`, strings.Join(conditions, " AND "), argIdx)
	args = append(args, filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit log: %w", err)
	}
	defer rows.Close()

	var entries []audit.Entry
	for rows.Next() {
		var e audit.Entry
		err := rows.Scan(
			&e.ID, &e.OccurredAt, &e.UserID, &e.Action, &e.TargetType,
			&e.TargetID, &e.FieldsAccessed, &e.LegalBasis, &e.IPAddress,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan audit entry: %w", err)
		}
		entries = append(entries, e)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
