package memory

import (
	"context"
	"sort"
	"sync"

	domain "github.com/BruksfildServices01/appointment-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/appointment-scheduler/internal/domain/calendar"
	"github.com/BruksfildServices01/appointment-scheduler/internal/httperr"
	"github.com/BruksfildServices01/appointment-scheduler/internal/models"
)

// AppointmentStore keeps appointments in process memory. A transaction holds
// the store mutex for its whole run and works on a copy that replaces the
// live data only when fn succeeds.
type AppointmentStore struct {
	mu   sync.Mutex
	data map[string]models.Appointment
}

func NewAppointmentStore() *AppointmentStore {
	return &AppointmentStore{data: make(map[string]models.Appointment)}
}

type view struct {
	data map[string]models.Appointment
}

// --------------------------------------------------
// Store (auto-commit)
// --------------------------------------------------

func (s *AppointmentStore) GetAppointment(ctx context.Context, id string) (*models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&view{s.data}).GetAppointment(ctx, id)
}

func (s *AppointmentStore) GetAppointmentForUpdate(ctx context.Context, id string) (*models.Appointment, error) {
	return s.GetAppointment(ctx, id)
}

func (s *AppointmentStore) ListForStaffDay(
	ctx context.Context,
	businessID string,
	staffID string,
	date calendar.Date,
) ([]models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&view{s.data}).ListForStaffDay(ctx, businessID, staffID, date)
}

func (s *AppointmentStore) ListForStaffPeriod(
	ctx context.Context,
	staffID string,
	from calendar.Date,
	to calendar.Date,
) ([]models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&view{s.data}).ListForStaffPeriod(ctx, staffID, from, to)
}

func (s *AppointmentStore) CreateAppointment(ctx context.Context, ap *models.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&view{s.data}).CreateAppointment(ctx, ap)
}

func (s *AppointmentStore) UpdateAppointment(ctx context.Context, ap *models.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (&view{s.data}).UpdateAppointment(ctx, ap)
}

// LockStaffDay is a no-op: transactions already run one at a time.
func (s *AppointmentStore) LockStaffDay(ctx context.Context, _, _ string, _ calendar.Date) error {
	return ctx.Err()
}

func (s *AppointmentStore) Transaction(ctx context.Context, fn func(tx domain.Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	staged := make(map[string]models.Appointment, len(s.data))
	for k, v := range s.data {
		staged[k] = v
	}

	if err := fn(&view{staged}); err != nil {
		return err
	}
	s.data = staged
	return nil
}

// --------------------------------------------------
// view
// --------------------------------------------------

func (v *view) GetAppointment(ctx context.Context, id string) (*models.Appointment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ap, ok := v.data[id]
	if !ok {
		return nil, httperr.NotFoundErr("appointment_not_found")
	}
	return &ap, nil
}

func (v *view) GetAppointmentForUpdate(ctx context.Context, id string) (*models.Appointment, error) {
	return v.GetAppointment(ctx, id)
}

func (v *view) ListForStaffDay(
	ctx context.Context,
	businessID string,
	staffID string,
	date calendar.Date,
) ([]models.Appointment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := []models.Appointment{}
	for _, ap := range v.data {
		if ap.BusinessID != businessID || ap.StaffID != staffID || ap.Date != date {
			continue
		}
		if domain.Status(ap.Status).Occupies() {
			out = append(out, ap)
		}
	}
	sortByStart(out)
	return out, nil
}

func (v *view) ListForStaffPeriod(
	ctx context.Context,
	staffID string,
	from calendar.Date,
	to calendar.Date,
) ([]models.Appointment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := []models.Appointment{}
	for _, ap := range v.data {
		if ap.StaffID != staffID || ap.Date.Before(from) || !ap.Date.Before(to) {
			continue
		}
		out = append(out, ap)
	}
	sortByStart(out)
	return out, nil
}

func (v *view) CreateAppointment(ctx context.Context, ap *models.Appointment) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, exists := v.data[ap.ID]; exists {
		return httperr.InvalidErr("duplicate_id")
	}
	if v.slotTaken(ap) {
		return httperr.SlotTakenErr("slot_taken")
	}
	v.data[ap.ID] = *ap
	return nil
}

func (v *view) UpdateAppointment(ctx context.Context, ap *models.Appointment) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, exists := v.data[ap.ID]; !exists {
		return httperr.NotFoundErr("appointment_not_found")
	}
	if v.slotTaken(ap) {
		return httperr.SlotTakenErr("slot_taken")
	}
	v.data[ap.ID] = *ap
	return nil
}

func (v *view) LockStaffDay(ctx context.Context, _, _ string, _ calendar.Date) error {
	return ctx.Err()
}

func (v *view) Transaction(ctx context.Context, fn func(tx domain.Store) error) error {
	return fn(v)
}

// slotTaken mirrors the partial unique index on scheduled rows.
func (v *view) slotTaken(ap *models.Appointment) bool {
	if domain.Status(ap.Status) != domain.StatusScheduled {
		return false
	}
	for id, other := range v.data {
		if id == ap.ID || domain.Status(other.Status) != domain.StatusScheduled {
			continue
		}
		if other.BusinessID == ap.BusinessID && other.StaffID == ap.StaffID &&
			other.Date == ap.Date && other.StartMinute == ap.StartMinute {
			return true
		}
	}
	return false
}

func sortByStart(aps []models.Appointment) {
	sort.Slice(aps, func(i, j int) bool {
		if aps[i].Date != aps[j].Date {
			return aps[i].Date.Before(aps[j].Date)
		}
		if aps[i].StartMinute != aps[j].StartMinute {
			return aps[i].StartMinute < aps[j].StartMinute
		}
		return aps[i].ID < aps[j].ID
	})
}

var (
	_ domain.Store = (*AppointmentStore)(nil)
	_ domain.Store = (*view)(nil)
)
