package sqlite

import (
	"context"
	"database/sql"
)

type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Queries struct {
	db DBTX
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

const insertSwitch = `insert into switches (layout, origin, at) values (?, ?, ?)`

type InsertSwitchParams struct {
	Layout string
	Origin string
	At     int64
}

func (q *Queries) InsertSwitch(ctx context.Context, arg InsertSwitchParams) error {
	_, err := q.db.ExecContext(ctx, insertSwitch, arg.Layout, arg.Origin, arg.At)
	return err
}

const lastLayoutByOrigin = `select layout from switches where origin = ? order by id desc limit 1`

func (q *Queries) LastLayoutByOrigin(ctx context.Context, origin string) (string, error) {
	var layout string
	err := q.db.QueryRowContext(ctx, lastLayoutByOrigin, origin).Scan(&layout)
	return layout, err
}

const pruneSwitches = `delete from switches where id <= (select max(id) - ? from switches)`

func (q *Queries) PruneSwitches(ctx context.Context, keep int64) error {
	_, err := q.db.ExecContext(ctx, pruneSwitches, keep)
	return err
}

const countSwitches = `select count(*) from switches`

func (q *Queries) CountSwitches(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countSwitches).Scan(&n)
	return n, err
}
