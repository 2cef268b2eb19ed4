package service_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"dhara-backend/internal/domain"
	"dhara-backend/internal/repository"

	"github.com/google/uuid"
)

// memStore is an in-memory stand-in for the Postgres store that enforces the
// same active-slot uniqueness as the partial unique index.
type memStore struct {
	mu            sync.Mutex
	users         map[string]domain.User
	assets        map[string]domain.Asset
	bookings      map[string]domain.Booking
	notifications []domain.Notification
	availWrites   int
}

func newMemStore() *memStore {
	return &memStore{
		users:    map[string]domain.User{},
		assets:   map[string]domain.Asset{},
		bookings: map[string]domain.Booking{},
	}
}

func (s *memStore) addUser(u domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u
}

func (s *memStore) addAsset(a domain.Asset) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assets[a.ID] = a
}

func (s *memStore) asset(id string) domain.Asset {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.assets[id]
}

func (s *memStore) booking(id string) domain.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bookings[id]
}

func (s *memStore) bookingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.bookings)
}

type memUsers struct{ *memStore }

func (r memUsers) Create(ctx context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return repository.ErrConflict
		}
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	r.users[u.ID] = *u
	return nil
}

func (r memUsers) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r memUsers) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

type memAssets struct{ *memStore }

func (r memAssets) Create(ctx context.Context, a *domain.Asset) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	r.assets[a.ID] = *a
	return nil
}

func (r memAssets) GetByID(ctx context.Context, id string) (*domain.Asset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.assets[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if op, ok := r.users[a.OperatorID]; ok {
		a.Operator = &op
	}
	return &a, nil
}

func (r memAssets) Update(ctx context.Context, a *domain.Asset) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.assets[a.ID]
	if !ok {
		return repository.ErrNotFound
	}
	a.Availability = stored.Availability
	r.assets[a.ID] = *a
	return nil
}

func (r memAssets) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.assets[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.assets, id)
	for bid, b := range r.bookings {
		if b.AssetID == id {
			delete(r.bookings, bid)
		}
	}
	return nil
}

func (r memAssets) List(ctx context.Context, f domain.AssetFilter) ([]domain.Asset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.Asset{}
	for _, a := range r.assets {
		if f.OperatorID != "" && a.OperatorID != f.OperatorID {
			continue
		}
		if f.AvailableOnly && !a.Availability {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r memAssets) SetAvailability(ctx context.Context, id string, available bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.assets[id]
	if !ok {
		return repository.ErrNotFound
	}
	a.Availability = available
	r.assets[id] = a
	r.availWrites++
	return nil
}

type memBookings struct{ *memStore }

func (r memBookings) Create(ctx context.Context, b *domain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.bookings {
		if existing.AssetID == b.AssetID && existing.BookingDate.Equal(b.BookingDate) &&
			existing.BookingTime == b.BookingTime && existing.Status.IsActive() {
			return repository.ErrConflict
		}
	}
	a, ok := r.assets[b.AssetID]
	if !ok {
		return repository.ErrNotFound
	}
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	b.CreatedAt = time.Now()
	r.bookings[b.ID] = *b
	a.Availability = false
	r.assets[a.ID] = a
	r.availWrites++
	return nil
}

func (r memBookings) GetByID(ctx context.Context, id string) (*domain.BookingDetail, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	d := r.detail(b)
	return &d, nil
}

func (r memBookings) FindActive(ctx context.Context, assetID string, date time.Time, bookingTime string) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.AssetID == assetID && b.BookingDate.Equal(date) && b.BookingTime == bookingTime && b.Status.IsActive() {
			return &b, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r memBookings) ListByFarmer(ctx context.Context, farmerID string) ([]domain.BookingDetail, error) {
	return r.filter(func(d domain.BookingDetail) bool { return d.FarmerID == farmerID }), nil
}

func (r memBookings) ListByOperator(ctx context.Context, operatorID string) ([]domain.BookingDetail, error) {
	return r.filter(func(d domain.BookingDetail) bool { return d.OperatorID == operatorID }), nil
}

func (r memBookings) ListAll(ctx context.Context) ([]domain.BookingDetail, error) {
	return r.filter(func(domain.BookingDetail) bool { return true }), nil
}

func (r memBookings) CompleteExpired(ctx context.Context, today time.Time) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ids []string
	for id, b := range r.bookings {
		if b.Status == domain.BookingStatusBooked && b.BookingDate.Before(today) {
			b.Status = domain.BookingStatusCompleted
			r.bookings[id] = b
			ids = append(ids, b.AssetID)
			if a, ok := r.assets[b.AssetID]; ok {
				a.Availability = true
				r.assets[a.ID] = a
				r.availWrites++
			}
		}
	}
	return ids, nil
}

func (r memBookings) filter(keep func(domain.BookingDetail) bool) []domain.BookingDetail {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.BookingDetail{}
	for _, b := range r.bookings {
		if d := r.detail(b); keep(d) {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// detail must be called with mu held.
func (r memBookings) detail(b domain.Booking) domain.BookingDetail {
	a := r.assets[b.AssetID]
	return domain.BookingDetail{
		Booking:      b,
		FarmerName:   r.users[b.FarmerID].Name,
		AssetName:    a.Name,
		AssetType:    a.Type,
		OperatorID:   a.OperatorID,
		OperatorName: r.users[a.OperatorID].Name,
	}
}

type memNotifier struct{ *memStore }

func (n memNotifier) Notify(ctx context.Context, userID, message string, typ domain.NotificationType) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notifications = append(n.notifications, domain.Notification{
		ID: uuid.NewString(), UserID: userID, Message: message, Type: typ, CreatedAt: time.Now(),
	})
	return nil
}
