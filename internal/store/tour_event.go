package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

func (r *eventRepo) AppendTourEvent(ctx context.Context, data TourEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	completed := data.Completed
	if completed == nil {
		completed = []string{}
	}
	completedJSON, err := json.Marshal(completed)
	if err != nil {
		return fmt.Errorf("marshal completed steps: %w", err)
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(TourEventsTable.Name).
		Columns("sequence", "timestamp", "action", "step_id", "step_index", "completed").
		Values(seqNum, time.Now().UTC(), data.Action, data.StepID, data.StepIndex, string(completedJSON)).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save tour event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryTourEvents(ctx context.Context, opts QueryOpts) ([]TourEventRecord, error) {
	selector := entsql.Dialect(dialect.SQLite).
		Select("sequence", "timestamp", "action", "step_id", "step_index", "completed").
		From(entsql.Table(TourEventsTable.Name))
	query, args := applyQueryOpts(selector, opts).Query()

	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("query tour events: %w", err)
	}
	defer rows.Close()

	var out []TourEventRecord
	for rows.Next() {
		var (
			rec           TourEventRecord
			completedJSON string
		)
		if err := rows.Scan(&rec.Sequence, &rec.Timestamp, &rec.Action, &rec.StepID, &rec.StepIndex, &completedJSON); err != nil {
			return nil, fmt.Errorf("scan tour event: %w", err)
		}
		if err := json.Unmarshal([]byte(completedJSON), &rec.Completed); err != nil {
			return nil, fmt.Errorf("decode completed steps: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tour events: %w", err)
	}
	return out, nil
}

func (r *eventRepo) TourStats(ctx context.Context) (TourStats, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select("action", entsql.Count("*")).
		From(entsql.Table(TourEventsTable.Name)).
		GroupBy("action").
		Query()

	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return TourStats{}, fmt.Errorf("query tour stats: %w", err)
	}
	defer rows.Close()

	var stats TourStats
	for rows.Next() {
		var (
			action string
			count  int
		)
		if err := rows.Scan(&action, &count); err != nil {
			return TourStats{}, fmt.Errorf("scan tour stats: %w", err)
		}
		switch action {
		case TourActionStarted:
			stats.Started = count
		case TourActionCompleted:
			stats.Completed = count
		case TourActionSkipped:
			stats.Skipped = count
		}
	}
	if err := rows.Err(); err != nil {
		return TourStats{}, fmt.Errorf("iterate tour stats: %w", err)
	}
	return stats, nil
}
