package insight

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

type postgresExecutor struct{ db *sql.DB }

// NewPostgresExecutor runs generated SQL through the pre-registered
// pos.execute_raw_sql function, which wraps the rows as JSON. Generated
// queries never touch the connection directly.
func NewPostgresExecutor(db *sql.DB) Executor {
	return &postgresExecutor{db: db}
}

func (e *postgresExecutor) Execute(ctx context.Context, query string) ([]map[string]interface{}, error) {
	var raw []byte
	err := e.db.QueryRowContext(ctx,
		`SELECT pos.execute_raw_sql($1)`, query).Scan(&raw)
	if err != nil {
		return nil, err
	}

	// The function returns [{"result": [...]}].
	var wrapped []struct {
		Result []map[string]interface{} `json:"result"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, fmt.Errorf("decode query result: %w", err)
	}
	if len(wrapped) == 0 {
		return nil, nil
	}
	return wrapped[0].Result, nil
}
