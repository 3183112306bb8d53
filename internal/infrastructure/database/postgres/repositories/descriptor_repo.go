package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	appErrors "github.com/turtacn/ChemReactivity/pkg/errors"
	ctypes "github.com/turtacn/ChemReactivity/pkg/types/conceptual"
)

// ─────────────────────────────────────────────────────────────────────────────
// Entity
// ─────────────────────────────────────────────────────────────────────────────

// DescriptorSet is a persisted descriptor computation: the input energy
// samples, the model family they were fitted with, and the derived global
// descriptor values.  Energies, Values, and Diagnostics are stored as JSONB.
type DescriptorSet struct {
	ID          uuid.UUID
	Name        string
	Model       ctypes.ModelKind
	N0          float64
	Energies    ctypes.EnergyTriple
	Values      ctypes.DescriptorValues
	Diagnostics []ctypes.Diagnostic
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ListCriteria carries pagination and filter parameters for List.
type ListCriteria struct {
	Model    string
	Page     int
	PageSize int
}

// ─────────────────────────────────────────────────────────────────────────────
// DescriptorRepository
// ─────────────────────────────────────────────────────────────────────────────

// DescriptorRepository is the PostgreSQL implementation of descriptor-set
// persistence.
type DescriptorRepository struct {
	db     querier
	logger Logger
}

// NewDescriptorRepository constructs a ready-to-use DescriptorRepository.
// db is typically a *pgxpool.Pool.
func NewDescriptorRepository(db querier, logger Logger) *DescriptorRepository {
	return &DescriptorRepository{db: db, logger: logger}
}

const descriptorColumns = `id, name, model, n0, energies, descriptor_values, diagnostics, created_at, updated_at`

// Save persists a single DescriptorSet.
func (r *DescriptorRepository) Save(ctx context.Context, d *DescriptorSet) error {
	r.logger.Debug("DescriptorRepository.Save", "id", d.ID, "model", d.Model)

	energiesJSON, _ := json.Marshal(d.Energies)
	valuesJSON, _ := json.Marshal(d.Values)
	diagJSON, _ := json.Marshal(d.Diagnostics)

	_, err := r.db.Exec(ctx, `
		INSERT INTO descriptor_sets (
			id, name, model, n0, energies, descriptor_values, diagnostics,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		d.ID, d.Name, d.Model, d.N0, energiesJSON, valuesJSON, diagJSON,
		d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("DescriptorRepository.Save", "error", err)
		return appErrors.Wrap(err, appErrors.CodeDBQueryError, "failed to insert descriptor set")
	}
	return nil
}

// FindByID loads a single DescriptorSet or a CodeNotFound error.
func (r *DescriptorRepository) FindByID(ctx context.Context, id uuid.UUID) (*DescriptorSet, error) {
	r.logger.Debug("DescriptorRepository.FindByID", "id", id)

	return r.scanDescriptorSet(r.db.QueryRow(ctx, `
		SELECT `+descriptorColumns+`
		FROM descriptor_sets WHERE id = $1`, id))
}

// List returns a page of descriptor sets, newest first, optionally filtered
// by model family, together with the total row count for the filter.
func (r *DescriptorRepository) List(ctx context.Context, criteria ListCriteria) ([]*DescriptorSet, int64, error) {
	r.logger.Debug("DescriptorRepository.List", "criteria", criteria)

	whereClause := ""
	var args []interface{}
	if criteria.Model != "" {
		whereClause = "WHERE model = $1"
		args = append(args, criteria.Model)
	}

	var total int64
	if err := r.db.QueryRow(ctx,
		"SELECT COUNT(*) FROM descriptor_sets "+whereClause, args...,
	).Scan(&total); err != nil {
		r.logger.Error("DescriptorRepository.List: count", "error", err)
		return nil, 0, appErrors.Wrap(err, appErrors.CodeDBQueryError, "count failed")
	}

	pageSize := criteria.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}
	page := criteria.Page
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * pageSize

	args = append(args, pageSize, offset)
	dataSQL := fmt.Sprintf(`
		SELECT %s
		FROM descriptor_sets %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`, descriptorColumns, whereClause, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, dataSQL, args...)
	if err != nil {
		r.logger.Error("DescriptorRepository.List: query", "error", err)
		return nil, 0, appErrors.Wrap(err, appErrors.CodeDBQueryError, "list query failed")
	}
	defer rows.Close()

	sets, err := r.scanDescriptorSets(rows)
	return sets, total, err
}

// Delete removes a descriptor set, returning CodeNotFound if no row matched.
func (r *DescriptorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.logger.Debug("DescriptorRepository.Delete", "id", id)

	tag, err := r.db.Exec(ctx, `DELETE FROM descriptor_sets WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("DescriptorRepository.Delete", "error", err)
		return appErrors.Wrap(err, appErrors.CodeDBQueryError, "failed to delete descriptor set")
	}
	if tag.RowsAffected() == 0 {
		return appErrors.New(appErrors.CodeNotFound, "descriptor set not found")
	}
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Scan helpers
// ─────────────────────────────────────────────────────────────────────────────

func (r *DescriptorRepository) scanDescriptorSet(row pgx.Row) (*DescriptorSet, error) {
	var d DescriptorSet
	var energiesJSON, valuesJSON, diagJSON []byte

	err := row.Scan(
		&d.ID, &d.Name, &d.Model, &d.N0,
		&energiesJSON, &valuesJSON, &diagJSON,
		&d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, appErrors.New(appErrors.CodeNotFound, "descriptor set not found")
		}
		r.logger.Error("scanDescriptorSet", "error", err)
		return nil, appErrors.Wrap(err, appErrors.CodeDBQueryError, "failed to scan descriptor set")
	}

	if len(energiesJSON) > 0 {
		if err := json.Unmarshal(energiesJSON, &d.Energies); err != nil {
			r.logger.Error("scanDescriptorSet", "error", err, "column", "energies")
			return nil, appErrors.Wrap(err, appErrors.CodeDBQueryError, "failed to decode stored energies")
		}
	}
	if len(valuesJSON) > 0 {
		if err := json.Unmarshal(valuesJSON, &d.Values); err != nil {
			r.logger.Error("scanDescriptorSet", "error", err, "column", "values")
			return nil, appErrors.Wrap(err, appErrors.CodeDBQueryError, "failed to decode stored descriptor values")
		}
	}
	if len(diagJSON) > 0 {
		if err := json.Unmarshal(diagJSON, &d.Diagnostics); err != nil {
			r.logger.Error("scanDescriptorSet", "error", err, "column", "diagnostics")
			return nil, appErrors.Wrap(err, appErrors.CodeDBQueryError, "failed to decode stored diagnostics")
		}
	}
	return &d, nil
}

func (r *DescriptorRepository) scanDescriptorSets(rows pgx.Rows) ([]*DescriptorSet, error) {
	var sets []*DescriptorSet
	for rows.Next() {
		d, err := r.scanDescriptorSet(rows)
		if err != nil {
			return nil, err
		}
		sets = append(sets, d)
	}
	if err := rows.Err(); err != nil {
		return nil, appErrors.Wrap(err, appErrors.CodeDBQueryError, "row iteration error")
	}
	return sets, nil
}
