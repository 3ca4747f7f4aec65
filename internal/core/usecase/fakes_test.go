package usecase

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/saurav73/GrihaMate/internal/core/domain"
	"github.com/saurav73/GrihaMate/internal/core/port"
)

// In-memory реализации портов для тестов use case-ов.

type fakeClock struct {
	now time.Time
}

func newFakeClock(t time.Time) *fakeClock { return &fakeClock{now: t} }

func (c *fakeClock) Now() time.Time            { return c.now }
func (c *fakeClock) Advance(d time.Duration)   { c.now = c.now.Add(d) }
func (c *fakeClock) AdvanceMonths(months int)  { c.now = c.now.AddDate(0, months, 0) }

type memUserRepo struct {
	users map[uuid.UUID]*domain.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[uuid.UUID]*domain.User)}
}

func (r *memUserRepo) Create(_ context.Context, u *domain.User) error {
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *memUserRepo) Save(ctx context.Context, u *domain.User) error {
	return r.Create(ctx, u)
}

func (r *memUserRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

type memPropertyRepo struct {
	properties map[uuid.UUID]*domain.Property
}

func newMemPropertyRepo() *memPropertyRepo {
	return &memPropertyRepo{properties: make(map[uuid.UUID]*domain.Property)}
}

func (r *memPropertyRepo) Create(_ context.Context, p *domain.Property) error {
	cp := *p
	r.properties[p.ID] = &cp
	return nil
}

func (r *memPropertyRepo) Save(ctx context.Context, p *domain.Property) error {
	return r.Create(ctx, p)
}

func (r *memPropertyRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.properties, id)
	return nil
}

func (r *memPropertyRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.Property, error) {
	p, ok := r.properties[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memPropertyRepo) FindByLandlord(_ context.Context, landlordID uuid.UUID) ([]*domain.Property, error) {
	var out []*domain.Property
	for _, p := range r.properties {
		if p.LandlordID == landlordID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memPropertyRepo) CountByLandlord(_ context.Context, landlordID uuid.UUID) (int64, error) {
	var n int64
	for _, p := range r.properties {
		if p.LandlordID == landlordID {
			n++
		}
	}
	return n, nil
}

func (r *memPropertyRepo) FindAvailableVerified(_ context.Context) ([]*domain.Property, error) {
	var out []*domain.Property
	for _, p := range r.properties {
		if p.VisibleToSeekers() {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memPropertyRepo) Search(_ context.Context, filter port.PropertySearchFilter) ([]*domain.Property, error) {
	var out []*domain.Property
	for _, p := range r.properties {
		if filter.City != "" && p.City != filter.City {
			continue
		}
		if filter.MaxPrice != nil && p.Price > *filter.MaxPrice {
			continue
		}
		if filter.MinPrice != nil && p.Price < *filter.MinPrice {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

type memRequestRepo struct {
	requests map[uuid.UUID]*domain.PropertyRequest
	// landlordOf нужен для FindByLandlord без похода в репозиторий объектов.
	landlordOf map[uuid.UUID]uuid.UUID
}

func newMemRequestRepo() *memRequestRepo {
	return &memRequestRepo{
		requests:   make(map[uuid.UUID]*domain.PropertyRequest),
		landlordOf: make(map[uuid.UUID]uuid.UUID),
	}
}

func (r *memRequestRepo) Create(_ context.Context, req *domain.PropertyRequest) error {
	cp := *req
	r.requests[req.ID] = &cp
	return nil
}

func (r *memRequestRepo) Save(ctx context.Context, req *domain.PropertyRequest) error {
	return r.Create(ctx, req)
}

func (r *memRequestRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.requests, id)
	return nil
}

func (r *memRequestRepo) DeleteRejectedBySeeker(_ context.Context, seekerID uuid.UUID) (int64, error) {
	var removed int64
	for id, req := range r.requests {
		if req.SeekerID == seekerID && req.Status == domain.RequestRejected {
			delete(r.requests, id)
			removed++
		}
	}
	return removed, nil
}

func (r *memRequestRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.PropertyRequest, error) {
	req, ok := r.requests[id]
	if !ok {
		return nil, nil
	}
	cp := *req
	return &cp, nil
}

func (r *memRequestRepo) FindBySeeker(_ context.Context, seekerID uuid.UUID) ([]*domain.PropertyRequest, error) {
	var out []*domain.PropertyRequest
	for _, req := range r.requests {
		if req.SeekerID == seekerID {
			cp := *req
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memRequestRepo) FindByLandlord(_ context.Context, landlordID uuid.UUID) ([]*domain.PropertyRequest, error) {
	var out []*domain.PropertyRequest
	for _, req := range r.requests {
		if r.landlordOf[req.PropertyID] == landlordID {
			cp := *req
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memRequestRepo) FindByProperty(_ context.Context, propertyID uuid.UUID) ([]*domain.PropertyRequest, error) {
	var out []*domain.PropertyRequest
	for _, req := range r.requests {
		if req.PropertyID == propertyID {
			cp := *req
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memRequestRepo) FindBySeekerAndProperty(_ context.Context, seekerID, propertyID uuid.UUID) ([]*domain.PropertyRequest, error) {
	var out []*domain.PropertyRequest
	for _, req := range r.requests {
		if req.SeekerID == seekerID && req.PropertyID == propertyID {
			cp := *req
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

type memRoomRequestRepo struct {
	requests map[uuid.UUID]*domain.RoomRequest
}

func newMemRoomRequestRepo() *memRoomRequestRepo {
	return &memRoomRequestRepo{requests: make(map[uuid.UUID]*domain.RoomRequest)}
}

func (r *memRoomRequestRepo) Create(_ context.Context, req *domain.RoomRequest) error {
	cp := *req
	r.requests[req.ID] = &cp
	return nil
}

func (r *memRoomRequestRepo) Save(ctx context.Context, req *domain.RoomRequest) error {
	return r.Create(ctx, req)
}

func (r *memRoomRequestRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.requests, id)
	return nil
}

func (r *memRoomRequestRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.RoomRequest, error) {
	req, ok := r.requests[id]
	if !ok {
		return nil, nil
	}
	cp := *req
	return &cp, nil
}

func (r *memRoomRequestRepo) FindBySeeker(_ context.Context, seekerID uuid.UUID) ([]*domain.RoomRequest, error) {
	var out []*domain.RoomRequest
	for _, req := range r.requests {
		if req.SeekerID == seekerID {
			cp := *req
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memRoomRequestRepo) FindActiveBySeeker(_ context.Context, seekerID uuid.UUID) ([]*domain.RoomRequest, error) {
	var out []*domain.RoomRequest
	for _, req := range r.requests {
		if req.SeekerID == seekerID && req.Active {
			cp := *req
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memRoomRequestRepo) FindActive(_ context.Context) ([]*domain.RoomRequest, error) {
	var out []*domain.RoomRequest
	for _, req := range r.requests {
		if req.Active {
			cp := *req
			out = append(out, &cp)
		}
	}
	return out, nil
}

type memSubscriptionRepo struct {
	subscriptions map[uuid.UUID]*domain.AvailabilitySubscription
}

func newMemSubscriptionRepo() *memSubscriptionRepo {
	return &memSubscriptionRepo{subscriptions: make(map[uuid.UUID]*domain.AvailabilitySubscription)}
}

func (r *memSubscriptionRepo) Create(_ context.Context, s *domain.AvailabilitySubscription) error {
	cp := *s
	r.subscriptions[s.ID] = &cp
	return nil
}

func (r *memSubscriptionRepo) Save(ctx context.Context, s *domain.AvailabilitySubscription) error {
	return r.Create(ctx, s)
}

func (r *memSubscriptionRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.AvailabilitySubscription, error) {
	s, ok := r.subscriptions[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *memSubscriptionRepo) FindActiveBySeeker(_ context.Context, seekerID uuid.UUID) ([]*domain.AvailabilitySubscription, error) {
	var out []*domain.AvailabilitySubscription
	for _, s := range r.subscriptions {
		if s.SeekerID == seekerID && s.Active {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memSubscriptionRepo) FindActiveByCity(_ context.Context, city string) ([]*domain.AvailabilitySubscription, error) {
	var out []*domain.AvailabilitySubscription
	for _, s := range r.subscriptions {
		if s.Active && s.City == city {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

// recordingNotifier собирает отправленные уведомления; адреса из failFor
// получают ошибку доставки.
type recordingNotifier struct {
	sent    []domain.Notification
	failFor map[string]bool
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{failFor: make(map[string]bool)}
}

func (n *recordingNotifier) Notify(_ context.Context, notification domain.Notification) error {
	if n.failFor[notification.RecipientEmail] {
		return errors.New("delivery failed")
	}
	n.sent = append(n.sent, notification)
	return nil
}

func (n *recordingNotifier) sentTo(email string) []domain.Notification {
	var out []domain.Notification
	for _, ntf := range n.sent {
		if ntf.RecipientEmail == email {
			out = append(out, ntf)
		}
	}
	return out
}

type stubTokenService struct {
	token  string
	claims *domain.Claims
	err    error
}

func (s *stubTokenService) GenerateToken(_ context.Context, _ *domain.User, _ time.Duration) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.token, nil
}

func (s *stubTokenService) ValidateToken(_ context.Context, _ string) (*domain.Claims, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.claims, nil
}

// stubSigner возвращает заранее заданный результат проверки callback-а.
type stubSigner struct {
	form map[string]string
	ref  domain.TransactionRef
	err  error
}

func (s *stubSigner) SignedForm(_ string, _ domain.TransactionRef) map[string]string {
	return s.form
}

func (s *stubSigner) VerifyCallback(_, _ string) (domain.TransactionRef, error) {
	if s.err != nil {
		return domain.TransactionRef{}, s.err
	}
	return s.ref, nil
}
