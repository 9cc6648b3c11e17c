package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"bank-admin-go/internal/model"

	_ "github.com/lib/pq"
	log "github.com/sirupsen/logrus"
)

var (
	ErrUnknownTable = errors.New("unknown table")
	ErrBadSort      = errors.New("unsupported sort")
)

// Page selects a window of a listing. A zero Limit means no limit.
type Page struct {
	Offset int
	Limit  int
	Sort   []Sort
}

type Sort struct {
	Column string
	Desc   bool
}

var sortable = map[string]string{
	"id":     "id",
	"type":   `"type"`,
	"number": `"number"`,
}

type Client interface {
	Close()
	Ping(ctx context.Context) error
	CreateRecord(ctx context.Context, table string, r model.Record) (model.Record, error)
	UpdateRecord(ctx context.Context, table string, r model.Record) (model.Record, error)
	PatchRecord(ctx context.Context, table string, r model.Record) (*model.Record, error)
	GetRecord(ctx context.Context, table string, id int64) (*model.Record, error)
	ListRecords(ctx context.Context, table string, page Page) ([]model.Record, int, error)
	RecordExists(ctx context.Context, table string, id int64) (bool, error)
	DeleteRecord(ctx context.Context, table string, id int64) error
}

type client struct {
	db     *sql.DB
	tables map[string]struct{}
}

func NewClient(connStr string) (Client, error) {
	db, err := sql.Open("postgres", connStr)

	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	tables := make(map[string]struct{}, len(model.All))
	for _, meta := range model.All {
		tables[meta.Table] = struct{}{}
	}

	return &client{db: db, tables: tables}, nil
}

func (c *client) Close() {
	err := c.db.Close()
	if err != nil {
		log.Errorf("closing database: %v", err)
	}
}

func (c *client) Ping(ctx context.Context) error {
	if err := c.db.PingContext(ctx); err != nil {
		return fmt.Errorf("pinging database: %w", err)
	}
	return nil
}

func (c *client) table(name string) (string, error) {
	if _, ok := c.tables[name]; !ok {
		return "", fmt.Errorf("%s: %w", name, ErrUnknownTable)
	}
	return name, nil
}

func (c *client) CreateRecord(ctx context.Context, table string, r model.Record) (model.Record, error) {
	table, err := c.table(table)
	if err != nil {
		return model.Record{}, err
	}

	query := fmt.Sprintf(`INSERT INTO %s ("type", "number") VALUES ($1, $2) RETURNING id, "type", "number"`, table)
	created, err := scanRecord(c.db.QueryRowContext(ctx, query, r.Type, r.Number))
	if err != nil {
		return model.Record{}, fmt.Errorf("executing %s insert and returning data: %w", table, err)
	}

	return created, nil
}

func (c *client) UpdateRecord(ctx context.Context, table string, r model.Record) (model.Record, error) {
	table, err := c.table(table)
	if err != nil {
		return model.Record{}, err
	}
	if r.ID == nil {
		return model.Record{}, fmt.Errorf("updating %s: missing id", table)
	}

	query := fmt.Sprintf(`UPDATE %s SET "type" = $1, "number" = $2 WHERE id = $3 RETURNING id, "type", "number"`, table)
	updated, err := scanRecord(c.db.QueryRowContext(ctx, query, r.Type, r.Number, *r.ID))
	if err != nil {
		return model.Record{}, fmt.Errorf("unable to update %s: %w", table, err)
	}

	return updated, nil
}

// PatchRecord overwrites only the non-nil fields of r. It returns nil when the row
// does not exist.
func (c *client) PatchRecord(ctx context.Context, table string, r model.Record) (*model.Record, error) {
	table, err := c.table(table)
	if err != nil {
		return nil, err
	}
	if r.ID == nil {
		return nil, fmt.Errorf("patching %s: missing id", table)
	}

	query := fmt.Sprintf(`UPDATE %s SET "type" = COALESCE($1, "type"), "number" = COALESCE($2, "number") WHERE id = $3 RETURNING id, "type", "number"`, table)
	patched, err := scanRecord(c.db.QueryRowContext(ctx, query, r.Type, r.Number, *r.ID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("unable to patch %s: %w", table, err)
	}

	return &patched, nil
}

func (c *client) GetRecord(ctx context.Context, table string, id int64) (*model.Record, error) {
	table, err := c.table(table)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT id, "type", "number" FROM %s WHERE id = $1`, table)
	r, err := scanRecord(c.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// No row with this ID was found
			return nil, nil
		}

		return nil, fmt.Errorf("unable to get %s: %w", table, err)
	}

	return &r, nil
}

func (c *client) ListRecords(ctx context.Context, table string, page Page) ([]model.Record, int, error) {
	table, err := c.table(table)
	if err != nil {
		return nil, 0, err
	}

	orderBy, err := orderClause(page.Sort)
	if err != nil {
		return nil, 0, err
	}

	var total int
	if err := c.db.QueryRowContext(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s", table)).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting %s: %w", table, err)
	}

	query := fmt.Sprintf(`SELECT id, "type", "number" FROM %s ORDER BY %s`, table, orderBy)
	args := []any{}
	if page.Limit > 0 {
		query += " LIMIT $1 OFFSET $2"
		args = append(args, page.Limit, page.Offset)
	}

	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("listing %s: %w", table, err)
	}
	defer rows.Close()

	records := []model.Record{}
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scanning %s: %w", table, err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("listing %s: %w", table, err)
	}

	return records, total, nil
}

func (c *client) RecordExists(ctx context.Context, table string, id int64) (bool, error) {
	table, err := c.table(table)
	if err != nil {
		return false, err
	}

	var exists bool
	query := fmt.Sprintf("SELECT EXISTS(SELECT 1 FROM %s WHERE id = $1)", table)
	if err := c.db.QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("checking %s %d: %w", table, id, err)
	}

	return exists, nil
}

func (c *client) DeleteRecord(ctx context.Context, table string, id int64) error {
	table, err := c.table(table)
	if err != nil {
		return err
	}

	if _, err := c.db.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = $1", table), id); err != nil {
		return fmt.Errorf("unable to delete %s: %w", table, err)
	}

	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (model.Record, error) {
	var (
		r      model.Record
		id     int64
		typ    sql.NullString
		number sql.NullString
	)
	if err := row.Scan(&id, &typ, &number); err != nil {
		return model.Record{}, err
	}

	r.ID = &id
	if typ.Valid {
		r.Type = &typ.String
	}
	if number.Valid {
		r.Number = &number.String
	}

	return r, nil
}

func orderClause(sorts []Sort) (string, error) {
	if len(sorts) == 0 {
		return "id ASC", nil
	}

	parts := make([]string, 0, len(sorts))
	for _, s := range sorts {
		column, ok := sortable[s.Column]
		if !ok {
			return "", fmt.Errorf("%s: %w", s.Column, ErrBadSort)
		}
		dir := "ASC"
		if s.Desc {
			dir = "DESC"
		}
		parts = append(parts, column+" "+dir)
	}

	return strings.Join(parts, ", "), nil
}
