// Package descriptor provides the application-level service for reactivity
// descriptor operations.  It sits between the HTTP handlers and the
// conceptual-DFT domain engine, adding persistence, caching, and metrics.
package descriptor

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/turtacn/ChemReactivity/internal/config"
	"github.com/turtacn/ChemReactivity/internal/domain/conceptual"
	"github.com/turtacn/ChemReactivity/internal/infrastructure/database/postgres/repositories"
	redisinfra "github.com/turtacn/ChemReactivity/internal/infrastructure/database/redis"
	"github.com/turtacn/ChemReactivity/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ChemReactivity/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/ChemReactivity/pkg/errors"
	ctypes "github.com/turtacn/ChemReactivity/pkg/types/conceptual"
)

const cacheKeyPrefix = "descriptor:"

// Service defines the descriptor application operations.
type Service interface {
	Compute(ctx context.Context, input *ComputeInput) (*DescriptorSet, error)
	GetByID(ctx context.Context, id string) (*DescriptorSet, error)
	List(ctx context.Context, input *ListInput) (*ListResult, error)
	Delete(ctx context.Context, id string) error
	EvaluateGrandPotential(ctx context.Context, input *GrandPotentialInput) (*GrandPotentialResult, error)
}

// Repository is the persistence port the service depends on.  It is satisfied
// by repositories.DescriptorRepository.
type Repository interface {
	Save(ctx context.Context, d *repositories.DescriptorSet) error
	FindByID(ctx context.Context, id uuid.UUID) (*repositories.DescriptorSet, error)
	List(ctx context.Context, criteria repositories.ListCriteria) ([]*repositories.DescriptorSet, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ComputeInput carries a descriptor computation request.
type ComputeInput struct {
	Name     string              `json:"name"`
	Model    string              `json:"model"`
	Energies ctypes.EnergyTriple `json:"energies"`
}

// ListInput carries pagination and filter parameters.
type ListInput struct {
	Page     int
	PageSize int
	Model    string
}

// GrandPotentialInput carries a grand-potential evaluation request against a
// stored descriptor set.  Exactly one of N or Mu must be set.  Order 0 asks
// for Ω itself; orders ≥ 1 ask for dᵒʳᵈᵉʳΩ/dμᵒʳᵈᵉʳ.
type GrandPotentialInput struct {
	ID    string
	N     *float64
	Mu    *float64
	Order int
}

// DescriptorSet is the application-level DTO for a stored computation.
type DescriptorSet struct {
	ID          string                  `json:"id"`
	Name        string                  `json:"name,omitempty"`
	Model       ctypes.ModelKind        `json:"model"`
	N0          float64                 `json:"n0"`
	Energies    ctypes.EnergyTriple     `json:"energies"`
	Values      ctypes.DescriptorValues `json:"values"`
	Diagnostics []ctypes.Diagnostic     `json:"diagnostics,omitempty"`
	CreatedAt   time.Time               `json:"created_at"`
	UpdatedAt   time.Time               `json:"updated_at"`
}

// ListResult is a paginated page of descriptor sets.
type ListResult struct {
	Sets       []*DescriptorSet `json:"sets"`
	Total      int64            `json:"total"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	TotalPages int              `json:"total_pages"`
}

// GrandPotentialResult is the outcome of a grand-potential evaluation.
type GrandPotentialResult struct {
	ID          string              `json:"id"`
	Model       ctypes.ModelKind    `json:"model"`
	N           float64             `json:"n"`
	Mu          *float64            `json:"mu,omitempty"`
	Order       int                 `json:"order"`
	Value       float64             `json:"value"`
	Diagnostics []ctypes.Diagnostic `json:"diagnostics,omitempty"`
}

// serviceImpl implements the Service interface.
type serviceImpl struct {
	repo    Repository
	cache   redisinfra.Cache
	metrics *prometheus.AppMetrics
	logger  logging.Logger
	cfg     config.ComputeConfig
}

// NewService creates a new descriptor application service.
func NewService(repo Repository, cache redisinfra.Cache, metrics *prometheus.AppMetrics, logger logging.Logger, cfg config.ComputeConfig) Service {
	return &serviceImpl{
		repo:    repo,
		cache:   cache,
		metrics: metrics,
		logger:  logger,
		cfg:     cfg,
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Compute
// ─────────────────────────────────────────────────────────────────────────────

func (s *serviceImpl) Compute(ctx context.Context, input *ComputeInput) (*DescriptorSet, error) {
	modelName := input.Model
	if modelName == "" {
		modelName = s.cfg.DefaultModel
	}
	kind := ctypes.ModelKind(modelName)
	if !kind.IsValid() {
		return nil, errors.NewValidationError("model", "unknown model family: "+modelName)
	}

	energies, err := tripleToMap(input.Energies)
	if err != nil {
		return nil, err
	}

	started := time.Now()

	var diags []ctypes.Diagnostic
	sink := func(d ctypes.Diagnostic) { diags = append(diags, d) }

	model, err := conceptual.NewModel(kind, energies, conceptual.WithDiagnosticSink(sink))
	if err != nil {
		s.recordCompute(kind, "error", started)
		return nil, err
	}

	tool, err := conceptual.NewGlobalTool(model)
	if err != nil {
		s.recordCompute(kind, "error", started)
		return nil, err
	}

	values := deriveValues(tool)

	now := time.Now().UTC()
	record := &repositories.DescriptorSet{
		ID:          uuid.New(),
		Name:        input.Name,
		Model:       kind,
		N0:          model.ReferenceN(),
		Energies:    input.Energies,
		Values:      values,
		Diagnostics: diags,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Save(ctx, record); err != nil {
		s.recordCompute(kind, "error", started)
		return nil, err
	}

	dto := recordToDTO(record)
	if err := s.cache.Set(ctx, cacheKeyPrefix+dto.ID, dto, 0); err != nil {
		s.logger.Warn("failed to warm descriptor cache", logging.Err(err))
	}

	s.recordCompute(kind, "success", started)
	if s.metrics != nil {
		for range diags {
			s.metrics.ExtrapolationsTotal.WithLabelValues(kind.String()).Inc()
		}
	}

	s.logger.Info("computed descriptor set",
		logging.String("id", dto.ID),
		logging.String("model", kind.String()),
		logging.Int("diagnostics", len(diags)),
	)
	return dto, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// GetByID / List / Delete
// ─────────────────────────────────────────────────────────────────────────────

func (s *serviceImpl) GetByID(ctx context.Context, id string) (*DescriptorSet, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, errors.NewValidationError("id", "invalid descriptor set id")
	}

	var dto DescriptorSet
	missed := false
	err = s.cache.GetOrSet(ctx, cacheKeyPrefix+id, &dto, 0, func(ctx context.Context) (interface{}, error) {
		missed = true
		record, loadErr := s.repo.FindByID(ctx, uid)
		if loadErr != nil {
			return nil, loadErr
		}
		return recordToDTO(record), nil
	})
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		if missed {
			s.metrics.CacheMissesTotal.WithLabelValues("descriptor").Inc()
		} else {
			s.metrics.CacheHitsTotal.WithLabelValues("descriptor").Inc()
		}
	}
	return &dto, nil
}

func (s *serviceImpl) List(ctx context.Context, input *ListInput) (*ListResult, error) {
	page := input.Page
	if page <= 0 {
		page = 1
	}
	pageSize := input.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}

	records, total, err := s.repo.List(ctx, repositories.ListCriteria{
		Model:    input.Model,
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		return nil, err
	}

	sets := make([]*DescriptorSet, len(records))
	for i, r := range records {
		sets[i] = recordToDTO(r)
	}

	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}

	return &ListResult{
		Sets:       sets,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return errors.NewValidationError("id", "invalid descriptor set id")
	}

	if err := s.repo.Delete(ctx, uid); err != nil {
		return err
	}
	if err := s.cache.Delete(ctx, cacheKeyPrefix+id); err != nil {
		s.logger.Warn("failed to evict descriptor cache", logging.Err(err))
	}
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// EvaluateGrandPotential
// ─────────────────────────────────────────────────────────────────────────────

func (s *serviceImpl) EvaluateGrandPotential(ctx context.Context, input *GrandPotentialInput) (*GrandPotentialResult, error) {
	if (input.N == nil) == (input.Mu == nil) {
		return nil, errors.NewValidationError("n", "exactly one of n and mu must be provided")
	}
	if input.Order < 0 {
		return nil, errors.NewValidationError("order", "order must be ≥ 0")
	}
	if input.Order > s.cfg.MaxDerivativeOrder {
		return nil, errors.Newf(errors.ErrCodeUnsupportedOrder,
			"order %d exceeds the configured maximum %d", input.Order, s.cfg.MaxDerivativeOrder)
	}

	set, err := s.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	energies, err := tripleToMap(set.Energies)
	if err != nil {
		return nil, err
	}

	var diags []ctypes.Diagnostic
	sink := func(d ctypes.Diagnostic) { diags = append(diags, d) }

	model, err := conceptual.NewModel(set.Model, energies, conceptual.WithDiagnosticSink(sink))
	if err != nil {
		return nil, err
	}
	tool, err := conceptual.NewGlobalTool(model)
	if err != nil {
		return nil, err
	}

	result := &GrandPotentialResult{
		ID:    set.ID,
		Model: set.Model,
		Mu:    input.Mu,
		Order: input.Order,
	}

	if input.N != nil {
		result.N = *input.N
		if input.Order == 0 {
			result.Value, err = tool.GrandPotential(*input.N)
		} else {
			result.Value, err = tool.GrandPotentialDerivative(*input.N, input.Order)
		}
	} else {
		result.N, err = tool.ConvertMuToN(*input.Mu)
		if err == nil {
			if input.Order == 0 {
				result.Value, err = tool.GrandPotentialMu(*input.Mu)
			} else {
				result.Value, err = tool.GrandPotentialMuDerivative(*input.Mu, input.Order)
			}
		}
	}

	status := "success"
	if err != nil {
		status = "error"
	}
	if s.metrics != nil {
		s.metrics.GrandPotentialEvalTotal.WithLabelValues(set.Model.String(), status).Inc()
		for range diags {
			s.metrics.ExtrapolationsTotal.WithLabelValues(set.Model.String()).Inc()
		}
	}
	if err != nil {
		return nil, err
	}

	result.Diagnostics = diags
	return result, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────────────────────────────────────

func (s *serviceImpl) recordCompute(kind ctypes.ModelKind, status string, started time.Time) {
	if s.metrics != nil {
		s.metrics.RecordCompute(kind.String(), status, time.Since(started))
	}
}

// tripleToMap converts the wire form of the energy samples into the
// electron-count keyed map the domain engine consumes.
func tripleToMap(triple ctypes.EnergyTriple) (map[float64]float64, error) {
	if len(triple.Counts) != len(triple.Values) {
		return nil, errors.New(errors.ErrCodeInvalidFitInput,
			"energy counts and values must have the same length")
	}
	energies := make(map[float64]float64, len(triple.Counts))
	for i, n := range triple.Counts {
		energies[n] = triple.Values[i]
	}
	if len(energies) != len(triple.Counts) {
		return nil, errors.New(errors.ErrCodeInvalidFitInput,
			"energy counts must be distinct")
	}
	return energies, nil
}

// deriveValues evaluates the full global descriptor catalog, mapping
// unobtainable descriptors to nil rather than failing the computation.
func deriveValues(tool *conceptual.GlobalTool) ctypes.DescriptorValues {
	scalar := func(f func() (float64, error)) *float64 {
		v, err := f()
		if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
			return nil
		}
		return &v
	}

	values := ctypes.DescriptorValues{
		IonizationPotential: scalar(tool.IonizationPotential),
		ElectronAffinity:    scalar(tool.ElectronAffinity),
		ChemicalPotential:   scalar(tool.ChemicalPotential),
		ChemicalHardness:    scalar(tool.ChemicalHardness),
		Softness:            scalar(tool.Softness),
		Electronegativity:   scalar(tool.Electronegativity),
		Electrophilicity:    scalar(tool.Electrophilicity),
		Nucleofugality:      scalar(tool.Nucleofugality),
		Electrofugality:     scalar(tool.Electrofugality),
	}
	if nMax := tool.NMax(); !math.IsInf(nMax, 0) {
		values.NMax = &nMax
	}
	return values
}

func recordToDTO(r *repositories.DescriptorSet) *DescriptorSet {
	if r == nil {
		return nil
	}
	return &DescriptorSet{
		ID:          r.ID.String(),
		Name:        r.Name,
		Model:       r.Model,
		N0:          r.N0,
		Energies:    r.Energies,
		Values:      r.Values,
		Diagnostics: r.Diagnostics,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}
