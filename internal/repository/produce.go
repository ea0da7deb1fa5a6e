package repository

import (
	"context"
	"strings"

	"github.com/deppfellow/produce-api/internal/database"
	"github.com/deppfellow/produce-api/internal/model"
	"github.com/pkg/errors"
	"github.com/spf13/cast"
)

const produceColumns = "id, name, type, price_per_kg"

// ProduceRepository reads and writes produce records. It keeps no state
// besides the storage handle, so every read reflects storage at call time.
type ProduceRepository struct {
	db database.Database
}

func NewProduceRepository(db database.Database) *ProduceRepository {
	return &ProduceRepository{db: db}
}

// Create inserts a record and returns it with the id assigned by storage.
func (r *ProduceRepository) Create(ctx context.Context, in model.CreateProduce) (*model.Produce, error) {
	row, err := r.db.QueryRow(ctx,
		"INSERT INTO produce (name, type, price_per_kg) VALUES (?, ?, ?) RETURNING "+produceColumns,
		in.Name, string(in.Type), in.PricePerKg,
	)
	if err != nil {
		return nil, errors.Wrap(err, "insert produce")
	}
	if row == nil {
		return nil, errors.New("insert produce: no row returned")
	}

	return decodeProduce(row)
}

// GetByID returns nil without an error when no record has the id.
func (r *ProduceRepository) GetByID(ctx context.Context, id int64) (*model.Produce, error) {
	row, err := r.db.QueryRow(ctx, "SELECT "+produceColumns+" FROM produce WHERE id = ?", id)
	if err != nil {
		return nil, errors.Wrapf(err, "get produce %d", id)
	}
	if row == nil {
		return nil, nil
	}

	return decodeProduce(row)
}

// List returns every record in id order. The slice is empty, not nil, when
// there are none.
func (r *ProduceRepository) List(ctx context.Context) ([]model.Produce, error) {
	rows, err := r.db.Query(ctx, "SELECT "+produceColumns+" FROM produce ORDER BY id ASC")
	if err != nil {
		return nil, errors.Wrap(err, "list produce")
	}

	out := make([]model.Produce, 0, len(rows))
	for _, row := range rows {
		p, err := decodeProduce(row)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, nil
}

// Update applies the fields present in patch and returns the stored record
// afterwards, or nil when no record has the id. An empty patch only reads.
func (r *ProduceRepository) Update(ctx context.Context, id int64, patch model.ProducePatch) (*model.Produce, error) {
	if patch.IsEmpty() {
		return r.GetByID(ctx, id)
	}

	set, args := buildSet(patch)

	args = append(args, id)
	if _, err := r.db.Exec(ctx, "UPDATE produce SET "+set+" WHERE id = ?", args...); err != nil {
		return nil, errors.Wrapf(err, "update produce %d", id)
	}

	return r.GetByID(ctx, id)
}

// Delete reports whether a record was removed.
func (r *ProduceRepository) Delete(ctx context.Context, id int64) (bool, error) {
	affected, err := r.db.Exec(ctx, "DELETE FROM produce WHERE id = ?", id)
	if err != nil {
		return false, errors.Wrapf(err, "delete produce %d", id)
	}
	return affected > 0, nil
}

// ClearAll removes every record and restarts ids at 1. Test support only.
func (r *ProduceRepository) ClearAll(ctx context.Context) error {
	return errors.Wrap(r.db.ResetTable(ctx, database.ProduceTable), "clear produce")
}

// updatableField maps one column to the patch field that feeds it.
type updatableField struct {
	column string
	value  func(model.ProducePatch) (any, bool)
}

// updatableFields is the complete list of columns an update may touch.
// Column names never come from the request.
var updatableFields = []updatableField{
	{
		column: "name",
		value: func(p model.ProducePatch) (any, bool) {
			if p.Name == nil {
				return nil, false
			}
			return *p.Name, true
		},
	},
	{
		column: "type",
		value: func(p model.ProducePatch) (any, bool) {
			if p.Type == nil {
				return nil, false
			}
			return string(*p.Type), true
		},
	},
	{
		column: "price_per_kg",
		value: func(p model.ProducePatch) (any, bool) {
			if p.PricePerKg == nil {
				return nil, false
			}
			return *p.PricePerKg, true
		},
	},
}

// buildSet renders the SET clause ("name = ?, price_per_kg = ?") and its
// arguments for the fields present in patch.
func buildSet(patch model.ProducePatch) (string, []any) {
	var (
		clauses []string
		args    []any
	)

	for _, f := range updatableFields {
		v, ok := f.value(patch)
		if !ok {
			continue
		}
		clauses = append(clauses, f.column+" = ?")
		args = append(args, v)
	}

	return strings.Join(clauses, ", "), args
}

func decodeProduce(row database.Row) (*model.Produce, error) {
	id, err := cast.ToInt64E(row["id"])
	if err != nil {
		return nil, errors.Wrap(err, "decode produce id")
	}

	name, err := cast.ToStringE(row["name"])
	if err != nil {
		return nil, errors.Wrap(err, "decode produce name")
	}

	typ, err := cast.ToStringE(row["type"])
	if err != nil {
		return nil, errors.Wrap(err, "decode produce type")
	}

	price, err := cast.ToFloat64E(row["price_per_kg"])
	if err != nil {
		return nil, errors.Wrap(err, "decode produce price_per_kg")
	}

	return &model.Produce{
		ID:         id,
		Name:       name,
		Type:       model.Type(typ),
		PricePerKg: price,
	}, nil
}
