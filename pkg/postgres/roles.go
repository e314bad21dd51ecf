package postgres

import (
	"context"
	"fmt"

	"github.com/marlowtransit/shiftboard/pkg/db"
)

// ListRoles retrieves the configured roles in timeline lane order.
func (s *Store) ListRoles(ctx context.Context) ([]db.RoleRecord, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, lane_order
		FROM role
		ORDER BY lane_order, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query roles: %w", err)
	}
	defer rows.Close()

	var roles []db.RoleRecord
	for rows.Next() {
		var r db.RoleRecord
		if err := rows.Scan(&r.ID, &r.Name, &r.Order); err != nil {
			return nil, fmt.Errorf("failed to scan role: %w", err)
		}
		roles = append(roles, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating roles: %w", err)
	}
	return roles, nil
}
