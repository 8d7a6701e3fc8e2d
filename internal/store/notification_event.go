package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

func (r *eventRepo) AppendNotificationEvent(ctx context.Context, data NotificationEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(NotificationEventsTable.Name).
		Columns("sequence", "timestamp", "notification_id", "kind", "title", "message").
		Values(seqNum, time.Now().UTC(), data.NotificationID, data.Kind, data.Title, data.Message).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save notification event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryNotificationEvents(ctx context.Context, opts QueryOpts) ([]NotificationEventRecord, error) {
	selector := entsql.Dialect(dialect.SQLite).
		Select("sequence", "timestamp", "notification_id", "kind", "title", "message").
		From(entsql.Table(NotificationEventsTable.Name))
	query, args := applyQueryOpts(selector, opts).Query()

	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("query notification events: %w", err)
	}
	defer rows.Close()

	var out []NotificationEventRecord
	for rows.Next() {
		var rec NotificationEventRecord
		if err := rows.Scan(&rec.Sequence, &rec.Timestamp, &rec.NotificationID, &rec.Kind, &rec.Title, &rec.Message); err != nil {
			return nil, fmt.Errorf("scan notification event: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate notification events: %w", err)
	}
	return out, nil
}

func (r *eventRepo) ClearNotificationEvents(ctx context.Context) (int64, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Delete(NotificationEventsTable.Name).
		Query()

	var res sql.Result
	if err := r.drv.Exec(ctx, query, args, &res); err != nil {
		return 0, fmt.Errorf("clear notification events: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return n, nil
}
