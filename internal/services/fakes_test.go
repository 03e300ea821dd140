package services

import (
	"context"

	"petmatch-backend/internal/models"
	"petmatch-backend/internal/repository"
)

// In-memory store fakes shared by the service tests.

type fakeUserStore struct {
	byID map[string]*models.User
}

func newFakeUserStore(users ...*models.User) *fakeUserStore {
	s := &fakeUserStore{byID: map[string]*models.User{}}
	for _, u := range users {
		s.byID[u.ID] = u
	}
	return s
}

func (s *fakeUserStore) Create(ctx context.Context, u *models.User) error {
	s.byID[u.ID] = u
	return nil
}

func (s *fakeUserStore) Update(ctx context.Context, u *models.User) error {
	if _, ok := s.byID[u.ID]; !ok {
		return repository.ErrNotFound
	}
	s.byID[u.ID] = u
	return nil
}

func (s *fakeUserStore) GetByID(ctx context.Context, id string) (*models.User, error) {
	u, ok := s.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return u, nil
}

func (s *fakeUserStore) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	for _, u := range s.byID {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *fakeUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range s.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *fakeUserStore) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := s.GetByEmail(ctx, email)
	return err == nil, nil
}

func (s *fakeUserStore) UsernameExists(ctx context.Context, username string) (bool, error) {
	_, err := s.GetByUsername(ctx, username)
	return err == nil, nil
}

type fakePetStore struct {
	byID  map[string]*models.Pet
	order []string
}

func newFakePetStore(pets ...*models.Pet) *fakePetStore {
	s := &fakePetStore{byID: map[string]*models.Pet{}}
	for _, p := range pets {
		s.byID[p.ID] = p
		s.order = append(s.order, p.ID)
	}
	return s
}

func (s *fakePetStore) Create(ctx context.Context, p *models.Pet) error {
	s.byID[p.ID] = p
	s.order = append(s.order, p.ID)
	return nil
}

func (s *fakePetStore) Update(ctx context.Context, p *models.Pet) error {
	if _, ok := s.byID[p.ID]; !ok {
		return repository.ErrNotFound
	}
	s.byID[p.ID] = p
	return nil
}

func (s *fakePetStore) GetByID(ctx context.Context, id string) (*models.Pet, error) {
	p, ok := s.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return p, nil
}

func (s *fakePetStore) ListByOwner(ctx context.Context, ownerID string) ([]*models.Pet, error) {
	out := make([]*models.Pet, 0)
	for _, id := range s.order {
		if p := s.byID[id]; p.OwnerID == ownerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *fakePetStore) ListMatchCandidates(ctx context.Context) ([]*models.Pet, error) {
	out := make([]*models.Pet, 0)
	for _, id := range s.order {
		if p := s.byID[id]; p.AvailableForMatch {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeMatchStore struct {
	byID   map[string]*models.MatchRequest
	order  []string
	writes int
}

func newFakeMatchStore() *fakeMatchStore {
	return &fakeMatchStore{byID: map[string]*models.MatchRequest{}}
}

func (s *fakeMatchStore) Create(ctx context.Context, m *models.MatchRequest) error {
	cp := *m
	s.byID[m.ID] = &cp
	s.order = append(s.order, m.ID)
	s.writes++
	return nil
}

func (s *fakeMatchStore) GetByID(ctx context.Context, id string) (*models.MatchRequest, error) {
	m, ok := s.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *m
	return &cp, nil
}

func (s *fakeMatchStore) UpdateStatus(ctx context.Context, m *models.MatchRequest) error {
	if _, ok := s.byID[m.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *m
	s.byID[m.ID] = &cp
	s.writes++
	return nil
}

func (s *fakeMatchStore) ListByRecipient(ctx context.Context, recipientID string, status models.MatchStatus) ([]*models.MatchRequest, error) {
	out := make([]*models.MatchRequest, 0)
	for _, id := range s.order {
		m := s.byID[id]
		if m.RecipientID != recipientID {
			continue
		}
		if status != "" && m.Status != status {
			continue
		}
		cp := *m
		out = append(out, &cp)
	}
	return out, nil
}

type fakeBookingStore struct {
	byID  map[string]*models.SittingBooking
	order []string
}

func newFakeBookingStore() *fakeBookingStore {
	return &fakeBookingStore{byID: map[string]*models.SittingBooking{}}
}

func (s *fakeBookingStore) Create(ctx context.Context, b *models.SittingBooking) error {
	cp := *b
	s.byID[b.ID] = &cp
	s.order = append(s.order, b.ID)
	return nil
}

func (s *fakeBookingStore) GetByID(ctx context.Context, id string) (*models.SittingBooking, error) {
	b, ok := s.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (s *fakeBookingStore) UpdateStatus(ctx context.Context, b *models.SittingBooking) error {
	if _, ok := s.byID[b.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *b
	s.byID[b.ID] = &cp
	return nil
}

func (s *fakeBookingStore) ListBySitter(ctx context.Context, sitterID string, status models.BookingStatus) ([]*models.SittingBooking, error) {
	return s.list(func(b *models.SittingBooking) bool {
		return b.SitterID == sitterID && (status == "" || b.Status == status)
	}), nil
}

func (s *fakeBookingStore) ListByOwner(ctx context.Context, ownerID string, status models.BookingStatus) ([]*models.SittingBooking, error) {
	return s.list(func(b *models.SittingBooking) bool {
		return b.OwnerID == ownerID && (status == "" || b.Status == status)
	}), nil
}

func (s *fakeBookingStore) list(keep func(*models.SittingBooking) bool) []*models.SittingBooking {
	out := make([]*models.SittingBooking, 0)
	for _, id := range s.order {
		if b := s.byID[id]; keep(b) {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out
}

type fakeAppointmentStore struct {
	byID  map[string]*models.VetAppointment
	order []string
}

func newFakeAppointmentStore() *fakeAppointmentStore {
	return &fakeAppointmentStore{byID: map[string]*models.VetAppointment{}}
}

func (s *fakeAppointmentStore) Create(ctx context.Context, a *models.VetAppointment) error {
	cp := *a
	s.byID[a.ID] = &cp
	s.order = append(s.order, a.ID)
	return nil
}

func (s *fakeAppointmentStore) GetByID(ctx context.Context, id string) (*models.VetAppointment, error) {
	a, ok := s.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (s *fakeAppointmentStore) UpdateStatus(ctx context.Context, a *models.VetAppointment) error {
	if _, ok := s.byID[a.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *a
	s.byID[a.ID] = &cp
	return nil
}

func (s *fakeAppointmentStore) ListByVet(ctx context.Context, vetID string, status models.AppointmentStatus) ([]*models.VetAppointment, error) {
	return s.list(func(a *models.VetAppointment) bool {
		return a.VetID == vetID && (status == "" || a.Status == status)
	}), nil
}

func (s *fakeAppointmentStore) ListByOwner(ctx context.Context, ownerID string, status models.AppointmentStatus) ([]*models.VetAppointment, error) {
	return s.list(func(a *models.VetAppointment) bool {
		return a.OwnerID == ownerID && (status == "" || a.Status == status)
	}), nil
}

func (s *fakeAppointmentStore) list(keep func(*models.VetAppointment) bool) []*models.VetAppointment {
	out := make([]*models.VetAppointment, 0)
	for _, id := range s.order {
		if a := s.byID[id]; keep(a) {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out
}
