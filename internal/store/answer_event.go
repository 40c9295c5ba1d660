package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

const answerTable = "answer_events"

var answerColumns = []string{
	"id", "sequence", "created_at", "exercise_id", "category", "operation",
	"origin", "question", "answer", "expected", "correct", "source", "feedback",
}

func (r *eventRepo) AppendAnswer(ctx context.Context, data AnswerEventData) error {
	_, err := appendWithSequence(ctx, r.db, func(tx *sql.Tx, seq int64) error {
		query, args := r.sql.Insert(answerTable).
			Columns(answerColumns[1:]...).
			Values(
				seq, time.Now().UnixMilli(), data.ExerciseID, data.Category, data.Operation,
				data.Origin, data.Question, data.Answer, data.Expected, data.Correct,
				data.Source, data.Feedback,
			).
			Query()
		_, err := tx.ExecContext(ctx, query, args...)
		return err
	})
	if err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryAnswers(ctx context.Context, opts QueryOpts) ([]AnswerEvent, error) {
	sel := r.sql.Select(answerColumns...).From(r.sql.Table(answerTable))
	if p := eventFilter(opts); p != nil {
		sel.Where(p)
	}
	sel.OrderBy(entsql.Desc("sequence"))
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query answers: %w", err)
	}
	defer rows.Close()

	var events []AnswerEvent
	for rows.Next() {
		var e AnswerEvent
		var createdAt int64
		err := rows.Scan(
			&e.ID, &e.Sequence, &createdAt, &e.ExerciseID, &e.Category, &e.Operation,
			&e.Origin, &e.Question, &e.Answer, &e.Expected, &e.Correct, &e.Source, &e.Feedback,
		)
		if err != nil {
			return nil, fmt.Errorf("scan answer event: %w", err)
		}
		e.Timestamp = time.UnixMilli(createdAt)
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepo) AnswerStatsByCategory(ctx context.Context) ([]CategoryStats, error) {
	query, args := r.sql.Select(
		"category",
		entsql.As(entsql.Count("*"), "attempted"),
		entsql.As(entsql.Sum("correct"), "correct"),
	).
		From(r.sql.Table(answerTable)).
		GroupBy("category").
		OrderBy("category").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query answer stats: %w", err)
	}
	defer rows.Close()

	var out []CategoryStats
	for rows.Next() {
		var c CategoryStats
		if err := rows.Scan(&c.Category, &c.Attempted, &c.Correct); err != nil {
			return nil, fmt.Errorf("scan answer stats: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
