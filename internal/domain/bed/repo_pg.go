package bed

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hms/hms/internal/platform/db"
)

type repoPG struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

type querier interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

func (r *repoPG) conn(ctx context.Context) querier {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

// lockClause returns a row-lock suffix when a transaction is active, so the
// check-then-update inside an assignment holds the bed row until commit.
func lockClause(ctx context.Context) string {
	if db.TxFromContext(ctx) != nil {
		return " FOR UPDATE"
	}
	return ""
}

const bedCols = `id, bed_no, ward, status, patient_id, created_at, updated_at`

func (r *repoPG) List(ctx context.Context) ([]*Bed, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+bedCols+` FROM beds ORDER BY ward, bed_no`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var beds []*Bed
	for rows.Next() {
		b, err := scanBed(rows)
		if err != nil {
			return nil, err
		}
		beds = append(beds, b)
	}
	return beds, rows.Err()
}

func (r *repoPG) Find(ctx context.Context, bedNo, ward string) (*Bed, error) {
	return scanBed(r.conn(ctx).QueryRow(ctx,
		`SELECT `+bedCols+` FROM beds WHERE bed_no = $1 AND ward = $2`+lockClause(ctx),
		bedNo, ward))
}

func (r *repoPG) FindFuzzy(ctx context.Context, bedNo, ward string) (*Bed, error) {
	// Lowest-sorted ward wins when several wards contain the submitted label.
	return scanBed(r.conn(ctx).QueryRow(ctx,
		`SELECT `+bedCols+` FROM beds
		 WHERE bed_no = $1 AND ward LIKE '%' || $2 || '%'
		 ORDER BY ward LIMIT 1`+lockClause(ctx),
		bedNo, ward))
}

func (r *repoPG) Create(ctx context.Context, b *Bed) error {
	b.ID = uuid.New()
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO beds (id, bed_no, ward, status, patient_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at`,
		b.ID, b.BedNo, b.Ward, b.Status, b.PatientID,
	).Scan(&b.CreatedAt, &b.UpdatedAt)
}

func (r *repoPG) Update(ctx context.Context, b *Bed) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE beds SET status = $2, patient_id = $3, updated_at = NOW()
		WHERE id = $1`,
		b.ID, b.Status, b.PatientID)
	return err
}

func (r *repoPG) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := fn(db.WithTx(ctx, tx)); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func scanBed(row pgx.Row) (*Bed, error) {
	b := &Bed{}
	err := row.Scan(&b.ID, &b.BedNo, &b.Ward, &b.Status, &b.PatientID, &b.CreatedAt, &b.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}
