package request

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/eduzap/eduzap/model"
	"github.com/jmoiron/sqlx"
)

type SQL struct {
	conn *sqlx.DB
}

type RequestRepository interface {
	Migrate(ctx context.Context) error
	List(ctx context.Context, filter model.RequestFilter) ([]model.RequestEntity, int64, error)
	Create(ctx context.Context, req *model.RequestEntity) error
	GetByID(ctx context.Context, id string) (*model.RequestEntity, error)
	Delete(ctx context.Context, id string) error
	Ping(ctx context.Context) error
}

func NewRequestRepository(conn *sqlx.DB) RequestRepository {
	return &SQL{conn: conn}
}

const (
	createRequestsTable = `CREATE TABLE IF NOT EXISTS requests (
	id VARCHAR(36) PRIMARY KEY,
	name VARCHAR(60) NOT NULL,
	phone VARCHAR(10) NOT NULL,
	title VARCHAR(120) NOT NULL,
	image VARCHAR(512) NOT NULL DEFAULT '',
	created_at VARCHAR(40) NOT NULL
)`

	listRequestsBase   = `SELECT id, name, phone, title, image, created_at FROM requests`
	countRequestsBase  = `SELECT COUNT(*) FROM requests`
	searchCondition    = ` WHERE LOWER(title) LIKE ? ESCAPE '!'`
	insertRequestQuery = `INSERT INTO requests (id, name, phone, title, image, created_at) VALUES (:id, :name, :phone, :title, :image, :created_at)`
	getRequestQuery    = `SELECT id, name, phone, title, image, created_at FROM requests WHERE id = ?`
	deleteRequestQuery = `DELETE FROM requests WHERE id = ?`
)

// likeEscaper makes LIKE wildcards in the search text literal. '!' rather
// than a backslash, since MySQL and SQLite disagree on backslash literals.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// Migrate creates the requests table when it does not exist
func (s *SQL) Migrate(ctx context.Context) error {
	_, err := s.conn.ExecContext(ctx, createRequestsTable)
	return err
}

// List returns one page of requests matching the filter plus the total
// number of matches. Title search is a case-insensitive substring match.
func (s *SQL) List(ctx context.Context, filter model.RequestFilter) ([]model.RequestEntity, int64, error) {
	var (
		where string
		args  []interface{}
	)
	if search := strings.TrimSpace(filter.Search); search != "" {
		where = searchCondition
		args = append(args, "%"+likeEscaper.Replace(strings.ToLower(search))+"%")
	}

	direction := "ASC"
	if filter.SortOrder == model.SortDesc {
		direction = "DESC"
	}
	offset := (filter.Page - 1) * filter.Limit

	query := fmt.Sprintf("%s%s ORDER BY LOWER(title) %s, created_at ASC, id ASC LIMIT ? OFFSET ?", listRequestsBase, where, direction)
	rows, err := s.conn.QueryxContext(ctx, query, append(args, filter.Limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	items := make([]model.RequestEntity, 0)
	for rows.Next() {
		var it model.RequestEntity
		if err := rows.StructScan(&it); err != nil {
			return nil, 0, err
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int64
	if err := s.conn.GetContext(ctx, &total, countRequestsBase+where, args...); err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (s *SQL) Create(ctx context.Context, req *model.RequestEntity) error {
	_, err := s.conn.NamedExecContext(ctx, insertRequestQuery, req)
	return err
}

// GetByID returns sql.ErrNoRows when the request does not exist
func (s *SQL) GetByID(ctx context.Context, id string) (*model.RequestEntity, error) {
	var entity model.RequestEntity
	if err := s.conn.GetContext(ctx, &entity, getRequestQuery, id); err != nil {
		return nil, err
	}
	return &entity, nil
}

// Delete returns sql.ErrNoRows when nothing was deleted
func (s *SQL) Delete(ctx context.Context, id string) error {
	res, err := s.conn.ExecContext(ctx, deleteRequestQuery, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (s *SQL) Ping(ctx context.Context) error {
	return s.conn.PingContext(ctx)
}
