package deadlines

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/plazo-io/plazo/pkg/pagination"
	"github.com/plazo-io/plazo/pkg/query"
	"github.com/plazo-io/plazo/pkg/repository"
	"github.com/plazo-io/plazo/pkg/workdays"
)

const returning = "id, document_id, extraction_id, due_date, description, working_days, risk_level, created_at"

type repo struct {
	db         *sql.DB
	calendar   *workdays.Calendar
	logger     *slog.Logger
	pagination pagination.Config
	now        func() time.Time
}

// New creates a deadline repository implementing the System interface.
func New(
	db *sql.DB,
	calendar *workdays.Calendar,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		calendar:   calendar,
		logger:     logger.With("system", "deadlines"),
		pagination: pagination,
		now:        time.Now,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Deadline], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Description")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count deadlines: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	deadlines, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanDeadline)
	if err != nil {
		return nil, fmt.Errorf("query deadlines: %w", err)
	}

	r.reassessAll(deadlines)

	result := pagination.NewPageResult(deadlines, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Deadline, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	d, err := repository.QueryOne(ctx, r.db, q, args, scanDeadline)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	d.reassess(r.calendar, r.now())
	return &d, nil
}

func (r *repo) CreateBatch(ctx context.Context, cmds []CreateCommand) ([]Deadline, error) {
	if len(cmds) == 0 {
		return []Deadline{}, nil
	}

	q := fmt.Sprintf(`
		INSERT INTO deadlines(document_id, extraction_id, due_date, description, working_days, risk_level)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING %s`, returning)

	created, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) ([]Deadline, error) {
		documentID := cmds[0].DocumentID
		if _, err := tx.ExecContext(
			ctx,
			"DELETE FROM deadlines WHERE document_id = $1",
			documentID,
		); err != nil {
			return nil, fmt.Errorf("clear prior deadlines: %w", err)
		}

		out := make([]Deadline, 0, len(cmds))
		for _, cmd := range cmds {
			args := []any{
				cmd.DocumentID,
				cmd.ExtractionID,
				cmd.Date,
				cmd.Description,
				cmd.WorkingDays,
				cmd.Risk,
			}

			d, err := repository.QueryOne(ctx, tx, q, args, scanDeadline)
			if err != nil {
				return nil, err
			}
			out = append(out, d)
		}

		return out, nil
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("deadlines recorded",
		"document", cmds[0].DocumentID,
		"count", len(created),
	)
	return created, nil
}

func (r *repo) Upcoming(ctx context.Context, days int) ([]Deadline, error) {
	now := r.now()

	// Over-fetch by calendar window, then trim by working days: the
	// calendar span covering n working days never exceeds 2n+10 calendar
	// days between Panamanian holidays and weekends.
	horizon := now.AddDate(0, 0, days*2+10)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereGte("Date", &now).
		WhereLte("Date", &horizon)

	q, args := qb.Build()
	candidates, err := repository.QueryMany(ctx, r.db, q, args, scanDeadline)
	if err != nil {
		return nil, fmt.Errorf("query upcoming deadlines: %w", err)
	}

	upcoming := make([]Deadline, 0, len(candidates))
	for _, d := range candidates {
		d.reassess(r.calendar, now)
		if d.WorkingDays >= 0 && d.WorkingDays <= days {
			upcoming = append(upcoming, d)
		}
	}

	return upcoming, nil
}

func (r *repo) Stats(ctx context.Context, clientID *uuid.UUID) (*Stats, error) {
	var (
		q    string
		args []any
	)

	if clientID == nil {
		q, args = query.NewBuilder(projection, defaultSort).Build()
	} else {
		q = `
			SELECT dl.id, dl.document_id, dl.extraction_id, dl.due_date,
				dl.description, dl.working_days, dl.risk_level, dl.created_at
			FROM deadlines dl
			JOIN documents doc ON doc.id = dl.document_id
			WHERE doc.client_id = $1
			ORDER BY dl.due_date`
		args = []any{*clientID}
	}

	all, err := repository.QueryMany(ctx, r.db, q, args, scanDeadline)
	if err != nil {
		return nil, fmt.Errorf("query deadlines: %w", err)
	}

	r.reassessAll(all)

	stats := &Stats{
		Total:  len(all),
		ByRisk: make(map[workdays.RiskLevel]int, len(workdays.Levels())),
	}

	for _, level := range workdays.Levels() {
		stats.ByRisk[level] = 0
	}

	for i := range all {
		stats.ByRisk[all[i].Risk]++
		if all[i].WorkingDays >= 0 &&
			(stats.Nearest == nil || all[i].WorkingDays < stats.Nearest.WorkingDays) {
			stats.Nearest = &all[i]
		}
	}

	return stats, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		if err := repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM deadlines WHERE id = $1",
			id,
		); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, nil
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("deadline deleted", "id", id)
	return nil
}

func (r *repo) reassessAll(deadlines []Deadline) {
	now := r.now()
	for i := range deadlines {
		deadlines[i].reassess(r.calendar, now)
	}
}
