package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	ctypes "github.com/turtacn/ChemReactivity/pkg/types/conceptual"
)

// DescriptorsClient accesses the /api/v1/descriptors resource.
type DescriptorsClient struct {
	client *Client
}

// ComputeRequest asks the server to fit an energy model and derive the
// descriptor catalog from three (N0-1, N0, N0+1) ground-state energies.
type ComputeRequest struct {
	Name     string              `json:"name,omitempty"`
	Model    string              `json:"model,omitempty"`
	Energies ctypes.EnergyTriple `json:"energies"`
}

// DescriptorSet is a stored descriptor computation.
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

// ListOptions filter and paginate List calls.
type ListOptions struct {
	Model    string
	Page     int
	PageSize int
}

// ListResult is one page of descriptor sets.
type ListResult struct {
	Sets       []*DescriptorSet `json:"sets"`
	Total      int64            `json:"total"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	TotalPages int              `json:"total_pages"`
}

// GrandPotentialOptions select the evaluation point for GrandPotential.
// Exactly one of N or Mu must be set; Order 0 evaluates Ω itself.
type GrandPotentialOptions struct {
	N     *float64
	Mu    *float64
	Order int
}

// GrandPotentialResult is a grand-potential evaluation.
type GrandPotentialResult struct {
	ID          string              `json:"id"`
	Model       ctypes.ModelKind    `json:"model"`
	N           float64             `json:"n"`
	Mu          *float64            `json:"mu,omitempty"`
	Order       int                 `json:"order"`
	Value       float64             `json:"value"`
	Diagnostics []ctypes.Diagnostic `json:"diagnostics,omitempty"`
}

// Compute fits the requested model and returns the stored descriptor set.
func (dc *DescriptorsClient) Compute(ctx context.Context, req *ComputeRequest) (*DescriptorSet, error) {
	if req == nil {
		return nil, fmt.Errorf("request is required")
	}

	var set DescriptorSet
	if err := dc.client.post(ctx, "/api/v1/descriptors", req, &set); err != nil {
		return nil, err
	}
	return &set, nil
}

// Get fetches a stored descriptor set by ID.
func (dc *DescriptorsClient) Get(ctx context.Context, id string) (*DescriptorSet, error) {
	if id == "" {
		return nil, fmt.Errorf("id is required")
	}

	var set DescriptorSet
	if err := dc.client.get(ctx, "/api/v1/descriptors/"+url.PathEscape(id), &set); err != nil {
		return nil, err
	}
	return &set, nil
}

// List returns a page of stored descriptor sets.
func (dc *DescriptorsClient) List(ctx context.Context, opts *ListOptions) (*ListResult, error) {
	q := url.Values{}
	if opts != nil {
		if opts.Model != "" {
			q.Set("model", opts.Model)
		}
		if opts.Page > 0 {
			q.Set("page", strconv.Itoa(opts.Page))
		}
		if opts.PageSize > 0 {
			q.Set("page_size", strconv.Itoa(opts.PageSize))
		}
	}

	path := "/api/v1/descriptors"
	if encoded := q.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var result ListResult
	if err := dc.client.get(ctx, path, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Delete removes a stored descriptor set.
func (dc *DescriptorsClient) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("id is required")
	}
	return dc.client.delete(ctx, "/api/v1/descriptors/"+url.PathEscape(id))
}

// GrandPotential evaluates Ω or one of its μ-derivatives for a stored set.
func (dc *DescriptorsClient) GrandPotential(ctx context.Context, id string, opts *GrandPotentialOptions) (*GrandPotentialResult, error) {
	if id == "" {
		return nil, fmt.Errorf("id is required")
	}
	if opts == nil || (opts.N == nil && opts.Mu == nil) {
		return nil, fmt.Errorf("one of N or Mu is required")
	}

	q := url.Values{}
	if opts.N != nil {
		q.Set("n", strconv.FormatFloat(*opts.N, 'g', -1, 64))
	}
	if opts.Mu != nil {
		q.Set("mu", strconv.FormatFloat(*opts.Mu, 'g', -1, 64))
	}
	if opts.Order > 0 {
		q.Set("order", strconv.Itoa(opts.Order))
	}

	path := "/api/v1/descriptors/" + url.PathEscape(id) + "/grand-potential?" + q.Encode()

	var result GrandPotentialResult
	if err := dc.client.get(ctx, path, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
