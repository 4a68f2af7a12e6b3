package store

import (
	"context"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

const activityTable = "activity_events"

var activityColumns = []string{
	"id", "sequence", "timestamp", "session_id", "source", "op", "subject", "version",
}

// eventRepo implements EventRepo backed by the SQL driver and the global
// sequence counter.
type eventRepo struct {
	drv *entsql.Driver
	seq *sequenceCounter
	now func() time.Time
}

func (r *eventRepo) clock() time.Time {
	if r.now != nil {
		return r.now()
	}
	return time.Now()
}

func (r *eventRepo) AppendActivity(ctx context.Context, data ActivityEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(activityTable).
		Columns("sequence", "timestamp", "session_id", "source", "op", "subject", "version").
		Values(seqNum, r.clock().UnixMilli(), data.SessionID, data.Source, data.Op, data.Subject, int64(data.Version)).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save activity event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryActivity(ctx context.Context, opts QueryOpts) ([]ActivityEventRecord, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select(activityColumns...).
		From(entsql.Table(activityTable)).
		OrderBy(entsql.Desc("sequence"))

	if opts.Limit > 0 {
		sel = sel.Limit(opts.Limit)
	}
	if opts.After > 0 {
		sel = sel.Where(entsql.GT("sequence", opts.After))
	}
	if opts.Before > 0 {
		sel = sel.Where(entsql.LT("sequence", opts.Before))
	}
	if !opts.From.IsZero() {
		sel = sel.Where(entsql.GTE("timestamp", opts.From.UnixMilli()))
	}
	if !opts.To.IsZero() {
		sel = sel.Where(entsql.LTE("timestamp", opts.To.UnixMilli()))
	}
	if opts.Source != "" {
		sel = sel.Where(entsql.EQ("source", opts.Source))
	}

	query, args := sel.Query()
	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query activity events: %w", err)
	}
	defer rows.Close()

	var records []ActivityEventRecord
	for rows.Next() {
		var (
			rec     ActivityEventRecord
			tsMs    int64
			version int64
		)
		if err := rows.Scan(&rec.ID, &rec.Sequence, &tsMs, &rec.SessionID,
			&rec.Source, &rec.Op, &rec.Subject, &version); err != nil {
			return nil, fmt.Errorf("scan activity event: %w", err)
		}
		rec.Timestamp = time.UnixMilli(tsMs)
		rec.Version = uint64(version)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate activity events: %w", err)
	}
	return records, nil
}

func (r *eventRepo) ActivityCounts(ctx context.Context) (map[string]int, int, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select("source", entsql.Count("*")).
		From(entsql.Table(activityTable)).
		GroupBy("source").
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, 0, fmt.Errorf("query activity counts: %w", err)
	}
	defer rows.Close()

	bySource := make(map[string]int)
	total := 0
	for rows.Next() {
		var (
			source string
			n      int
		)
		if err := rows.Scan(&source, &n); err != nil {
			return nil, 0, fmt.Errorf("scan activity count: %w", err)
		}
		bySource[source] = n
		total += n
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate activity counts: %w", err)
	}
	return bySource, total, nil
}

func (r *eventRepo) LatestSequence(ctx context.Context) (int64, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select("COALESCE(MAX(sequence), 0)").
		From(entsql.Table(activityTable)).
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return 0, fmt.Errorf("query latest sequence: %w", err)
	}
	defer rows.Close()

	var seq int64
	if rows.Next() {
		if err := rows.Scan(&seq); err != nil {
			return 0, fmt.Errorf("scan latest sequence: %w", err)
		}
	}
	return seq, rows.Err()
}
