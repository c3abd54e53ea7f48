package memory

import (
	"context"
	"sort"
	"sync"

	domain "github.com/BruksfildServices01/appointment-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/appointment-scheduler/internal/httperr"
)

// Directory is an in-memory domain.Directory filled through the Put methods.
type Directory struct {
	mu         sync.RWMutex
	businesses map[string]domain.Business
	services   map[string]domain.ServiceSpec
	staff      map[string]domain.Staff
}

func NewDirectory() *Directory {
	return &Directory{
		businesses: make(map[string]domain.Business),
		services:   make(map[string]domain.ServiceSpec),
		staff:      make(map[string]domain.Staff),
	}
}

// PutBusiness stores b with its calendar normalized, as the database
// mapper does.
func (d *Directory) PutBusiness(b domain.Business) {
	d.mu.Lock()
	defer d.mu.Unlock()
	b.Calendar.Normalize()
	d.businesses[b.ID] = b
}

func (d *Directory) PutService(s domain.ServiceSpec) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.services[s.ID] = s
}

func (d *Directory) PutStaff(s domain.Staff) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if s.Calendar.Override != nil {
		s.Calendar.Override.Normalize()
	}
	d.staff[s.ID] = s
}

func (d *Directory) GetBusiness(ctx context.Context, businessID string) (*domain.Business, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	b, ok := d.businesses[businessID]
	if !ok {
		return nil, httperr.NotFoundErr("business_not_found")
	}
	return &b, nil
}

func (d *Directory) GetService(ctx context.Context, businessID, serviceID string) (*domain.ServiceSpec, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	s, ok := d.services[serviceID]
	if !ok || s.BusinessID != businessID {
		return nil, httperr.NotFoundErr("service_not_found")
	}
	return &s, nil
}

func (d *Directory) GetStaff(ctx context.Context, businessID, staffID string) (*domain.Staff, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	s, ok := d.staff[staffID]
	if !ok || s.BusinessID != businessID {
		return nil, httperr.NotFoundErr("staff_not_found")
	}
	return &s, nil
}

func (d *Directory) ListStaff(ctx context.Context, businessID string) ([]domain.Staff, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := []domain.Staff{}
	for _, s := range d.staff {
		if s.BusinessID == businessID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

var _ domain.Directory = (*Directory)(nil)
