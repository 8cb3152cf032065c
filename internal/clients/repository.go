package clients

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/plazo-io/plazo/pkg/pagination"
	"github.com/plazo-io/plazo/pkg/query"
	"github.com/plazo-io/plazo/pkg/repository"
)

const returning = "id, name, contact_email, phone, notes, active, created_at, updated_at"

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a client repository implementing the System interface.
func New(
	db *sql.DB,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "clients"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Client], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Name", "ContactEmail")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count clients: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	clients, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanClient)
	if err != nil {
		return nil, fmt.Errorf("query clients: %w", err)
	}

	result := pagination.NewPageResult(clients, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Client, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	c, err := repository.QueryOne(ctx, r.db, q, args, scanClient)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &c, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Client, error) {
	q := fmt.Sprintf(`
		INSERT INTO clients(name, contact_email, phone, notes)
		VALUES ($1, $2, $3, $4)
		RETURNING %s`, returning)

	args := []any{cmd.Name, cmd.ContactEmail, cmd.Phone, cmd.Notes}

	c, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Client, error) {
		return repository.QueryOne(ctx, tx, q, args, scanClient)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("client created", "id", c.ID, "name", c.Name)
	return &c, nil
}

func (r *repo) Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Client, error) {
	q := fmt.Sprintf(`
		UPDATE clients
		SET name = $1, contact_email = $2, phone = $3, notes = $4, updated_at = now()
		WHERE id = $5
		RETURNING %s`, returning)

	args := []any{cmd.Name, cmd.ContactEmail, cmd.Phone, cmd.Notes, id}

	c, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Client, error) {
		return repository.QueryOne(ctx, tx, q, args, scanClient)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("client updated", "id", c.ID, "name", c.Name)
	return &c, nil
}

func (r *repo) SetActive(ctx context.Context, id uuid.UUID, active bool) (*Client, error) {
	q := fmt.Sprintf(`
		UPDATE clients
		SET active = $1, updated_at = now()
		WHERE id = $2
		RETURNING %s`, returning)

	c, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Client, error) {
		return repository.QueryOne(ctx, tx, q, []any{active, id}, scanClient)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("client active flag set", "id", c.ID, "active", active)
	return &c, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		var count int
		if err := tx.QueryRowContext(
			ctx,
			"SELECT count(*) FROM documents WHERE client_id = $1",
			id,
		).Scan(&count); err != nil {
			return struct{}{}, fmt.Errorf("count case files: %w", err)
		}

		if count > 0 {
			return struct{}{}, ErrHasFiles
		}

		if err := repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM clients WHERE id = $1",
			id,
		); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, nil
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("client deleted", "id", id)
	return nil
}
