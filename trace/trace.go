// Package trace records executed cycles into an SQL database.
package trace

import (
	"context"
	"database/sql"
	"log"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
	"github.com/uptrace/bun/extra/bundebug"

	"github.com/leksak/kilobyte-sub000/emulator"
)

// MEMORY_DSN is a shared in-memory database.
const MEMORY_DSN = "file::memory:?cache=shared"

// Cycle is one executed instruction.
type Cycle struct {
	bun.BaseModel `bun:"table:cycles"`

	ID       int64  `bun:",pk,autoincrement"`
	Session  string `bun:",notnull"`
	Tick     int
	Address  uint32
	LineNo   int
	Word     uint32
	Mnemonic string
	Signals  string
	Next     uint32
	Halted   bool
}

// Recorder is an emulator.Observer storing every cycle, keyed by a
// per-recorder session.
type Recorder struct {
	Verbose bool
	Session string

	ctx context.Context
	db  *bun.DB
}

var _ emulator.Observer = (*Recorder)(nil)

// NewRecorder opens the database at dsn, and creates the cycle table.
// An empty dsn selects MEMORY_DSN.
func NewRecorder(ctx context.Context, dsn string, verbose bool) (rec *Recorder, err error) {
	if len(dsn) == 0 {
		dsn = MEMORY_DSN
	}

	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	if err != nil {
		return
	}

	db := bun.NewDB(sqldb, sqlitedialect.New())
	db.AddQueryHook(bundebug.NewQueryHook(
		bundebug.WithVerbose(true),
		bundebug.WithEnabled(verbose),
	))

	_, err = db.NewCreateTable().Model((*Cycle)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		db.Close()
		return
	}

	rec = &Recorder{
		Verbose: verbose,
		Session: uuid.New().String(),
		ctx:     ctx,
		db:      db,
	}

	if rec.Verbose {
		log.Printf("trace: session %v in %v", rec.Session, dsn)
	}

	return
}

// Observe inserts the cycle.
func (rec *Recorder) Observe(ev emulator.Event) (err error) {
	cycle := &Cycle{
		Session:  rec.Session,
		Tick:     ev.Tick,
		Address:  ev.Address,
		LineNo:   ev.LineNo,
		Word:     ev.Instruction.Word(),
		Mnemonic: ev.Instruction.String(),
		Signals:  ev.Control.String(),
		Next:     ev.Next,
		Halted:   ev.Halted,
	}

	_, err = rec.db.NewInsert().Model(cycle).Exec(rec.ctx)

	return
}

// Cycles of this session, in tick order.
func (rec *Recorder) Cycles(ctx context.Context) (cycles []Cycle, err error) {
	err = rec.db.NewSelect().
		Model(&cycles).
		Where("session = ?", rec.Session).
		Order("tick ASC").
		Scan(ctx)

	return
}

// Count of cycles at address in this session.
func (rec *Recorder) Count(ctx context.Context, address uint32) (count int, err error) {
	count, err = rec.db.NewSelect().
		Model((*Cycle)(nil)).
		Where("session = ?", rec.Session).
		Where("address = ?", address).
		Count(ctx)

	return
}

// Close the database.
func (rec *Recorder) Close() error {
	return rec.db.Close()
}
