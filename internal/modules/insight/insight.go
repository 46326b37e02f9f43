// Package insight is the natural-language-to-SQL bridge: it prompts a
// language model for a query over the pos.orders table, extracts the SQL
// from the completion and executes it through the sandboxed
// pos.execute_raw_sql database function.
package insight

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/envoyhq/envoy-backend/internal/apperr"
	"go.uber.org/zap"
)

// Executor runs generated SQL through the store's sandboxed procedure and
// returns the rows it produced.
type Executor interface {
	Execute(ctx context.Context, query string) ([]map[string]interface{}, error)
}

// Answer is the /ask response body: the rows plus the query that produced
// them, fences stripped.
type Answer struct {
	Result   []map[string]interface{} `json:"result"`
	SQLQuery string                   `json:"sqlQuery"`
}

// Service answers free-text questions about sales data.
type Service interface {
	Ask(ctx context.Context, question string) (*Answer, error)
}

type service struct {
	client  CompletionClient
	exec    Executor
	timeout time.Duration
	logger  *zap.Logger
}

// NewService creates a new insight service. timeout bounds the model round
// trip, not the query execution.
func NewService(client CompletionClient, exec Executor, timeout time.Duration, logger *zap.Logger) Service {
	return &service{client: client, exec: exec, timeout: timeout, logger: logger}
}

func (s *service) Ask(ctx context.Context, question string) (*Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, apperr.New(apperr.Invalid, "question is required")
	}

	modelCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	completion, err := s.client.Complete(modelCtx, buildPrompt(question))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, apperr.Wrap(apperr.TimedOut, "language model call timed out", err)
		}
		return nil, apperr.Wrap(apperr.Generation, "failed to generate SQL", err)
	}

	query := ExtractSQL(completion)
	if query == "" {
		return nil, apperr.New(apperr.Generation, "no SQL extracted from model response")
	}
	s.logger.Info("executing generated sql", zap.String("sql", query))

	rows, err := s.exec.Execute(ctx, query)
	if err != nil {
		return nil, apperr.Wrap(apperr.QueryFailed, "query failed", err)
	}
	if rows == nil {
		rows = []map[string]interface{}{}
	}
	return &Answer{Result: rows, SQLQuery: query}, nil
}

func buildPrompt(question string) string {
	return fmt.Sprintf(`
You are an assistant that helps generate SQL queries for a retail inventory system.
Convert the question into a SQL query compatible with PostgreSQL.

The table is 'orders' and is located in the schema 'pos'.
Relevant columns:
- order_id (integer)
- customer_id (integer)
- order_date (timestamp)
- total (numeric)
- status (text)

Only return the SQL query in a code block like this:
`+"```sql"+`
SELECT * FROM pos.orders ...
`+"```"+`

Question: "%s"
`, question)
}

var fencedSQL = regexp.MustCompile("(?s)```(?:sql)?\\s*(.*?)```")

// ExtractSQL pulls the query out of a model completion: the first fenced
// code block when present, otherwise everything from the first SELECT
// onward. A trailing semicolon is dropped.
func ExtractSQL(completion string) string {
	query := ""
	if m := fencedSQL.FindStringSubmatch(completion); m != nil {
		query = m[1]
	} else if i := strings.Index(strings.ToUpper(completion), "SELECT"); i >= 0 {
		query = completion[i:]
	}
	query = strings.TrimSpace(query)
	return strings.TrimSuffix(query, ";")
}
