package store

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"jerseyorders/internal/models"
)

// Memory is the local-only backend. Orders live in process memory and ids
// are a zero-padded sequence, mirroring the behavior of the original
// browser-local storage.
type Memory struct {
	mu     sync.Mutex
	orders map[string]models.Order
	seq    int
	now    func() time.Time
}

var _ Store = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{
		orders: make(map[string]models.Order),
		now:    time.Now,
	}
}

func (m *Memory) Create(_ context.Context, o models.Order) (models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.seq++
	o.ID = fmt.Sprintf("ORD-%03d", m.seq)
	o.Status = models.StatusPending
	o.CreatedDate = m.now()
	m.orders[o.ID] = o
	return o, nil
}

func (m *Memory) Get(_ context.Context, id string) (models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	o, ok := m.orders[id]
	if !ok {
		return models.Order{}, ErrNotFound
	}
	return o, nil
}

func (m *Memory) Update(_ context.Context, id string, p Patch) (models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	o, ok := m.orders[id]
	if !ok {
		return models.Order{}, ErrNotFound
	}

	if p.Status != nil {
		o.Status = *p.Status
	}
	if p.ApprovedDate != nil {
		o.ApprovedDate = p.ApprovedDate
	}
	if p.RejectedDate != nil {
		o.RejectedDate = p.RejectedDate
	}
	if p.DetailsSubmittedDate != nil {
		o.DetailsSubmittedDate = p.DetailsSubmittedDate
	}
	if p.CustomerDetails != nil {
		o.CustomerDetails = p.CustomerDetails
	}
	if p.UniqueLink != nil {
		o.UniqueLink = *p.UniqueLink
	}
	if p.ShortLink != nil {
		o.ShortLink = *p.ShortLink
	}
	if p.Notifications != nil {
		o.Notifications = p.Notifications
	}

	m.orders[id] = o
	return o, nil
}

func (m *Memory) List(_ context.Context, f Filter) ([]models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	search := strings.ToLower(strings.TrimSpace(f.Search))

	out := make([]models.Order, 0, len(m.orders))
	for _, o := range m.orders {
		if f.Status != "" && o.Status != f.Status {
			continue
		}
		if f.HasDetails != nil && o.HasDetails() != *f.HasDetails {
			continue
		}
		if !matchesDateRange(o.CreatedDate, now, f.DateRange) {
			continue
		}
		if search != "" && !matchesSearch(o, search) {
			continue
		}
		out = append(out, o)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedDate.After(out[j].CreatedDate)
	})
	return out, nil
}

func (m *Memory) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.orders[id]; !ok {
		return ErrNotFound
	}
	delete(m.orders, id)
	return nil
}

func matchesSearch(o models.Order, term string) bool {
	return strings.Contains(strings.ToLower(o.ID), term) ||
		strings.Contains(strings.ToLower(o.CustomerName), term) ||
		strings.Contains(strings.ToLower(o.CustomerEmail), term) ||
		strings.Contains(strings.ToLower(o.CustomerPhone), term)
}
