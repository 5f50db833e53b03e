package db

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// SessionStats counts the rows of the session table. Expiry is stored as a
// julian day by the session store.
type SessionStats struct {
	Active  int `db:"active"`
	Expired int `db:"expired"`
}

const sessionStatsQuery = `SELECT
	COALESCE(SUM(CASE WHEN expiry > julianday('now') THEN 1 ELSE 0 END), 0) AS active,
	COALESCE(SUM(CASE WHEN expiry <= julianday('now') THEN 1 ELSE 0 END), 0) AS expired
FROM sessions`

func CountSessions(ctx context.Context, db *sqlx.DB) (SessionStats, error) {
	var stats SessionStats
	if err := db.GetContext(ctx, &stats, sessionStatsQuery); err != nil {
		return SessionStats{}, fmt.Errorf("failed to count sessions: %w", err)
	}
	return stats, nil
}
