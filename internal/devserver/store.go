package devserver

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/you/estately/domain"
)

// Store errors
var (
	errUserNotFound     = errors.New("user not found")
	errEmailTaken       = errors.New("email already registered")
	errPropertyNotFound = errors.New("property not found")
	errBookingNotFound  = errors.New("booking not found")
)

// userRecord is the dev backend's view of an account.
type userRecord struct {
	Name      string
	Email     string
	ContactNo string
	Role      domain.Role
	Locked    bool
}

// MemStore holds all dev backend state in memory. It is reset on every start;
// durability is out of scope for a local fixture. Users and shortlists are
// keyed by contact number, properties and bookings by id.
type MemStore struct {
	mu         sync.RWMutex
	users      map[string]*userRecord
	properties map[string]*domain.Property
	bookings   map[string]*domain.Booking
	shortlists map[string][]*shortlistRecord
	order      []string // property insertion order
}

type shortlistRecord struct {
	ID         string
	PropertyID string
	AddedAt    time.Time
}

// NewMemStore creates an empty store.
func NewMemStore() *MemStore {
	return &MemStore{
		users:      make(map[string]*userRecord),
		properties: make(map[string]*domain.Property),
		bookings:   make(map[string]*domain.Booking),
		shortlists: make(map[string][]*shortlistRecord),
	}
}

// --- users ---

func (s *MemStore) FindUser(contactNo string) (*userRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[contactNo]
	if !ok {
		return nil, errUserNotFound
	}
	out := *u
	return &out, nil
}

func (s *MemStore) CreateUser(u *userRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return errEmailTaken
		}
	}
	record := *u
	s.users[u.ContactNo] = &record
	return nil
}

func (s *MemStore) UpdateUser(contactNo string, name, email string) (*userRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[contactNo]
	if !ok {
		return nil, errUserNotFound
	}
	if name != "" {
		u.Name = name
	}
	if email != "" {
		u.Email = email
	}
	out := *u
	return &out, nil
}

// --- properties ---

func (s *MemStore) ListProperties() []domain.Property {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Property, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.properties[id])
	}
	return out
}

func (s *MemStore) FeaturedProperties() []domain.Property {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Property, 0)
	for _, id := range s.order {
		if p := s.properties[id]; p.Featured {
			out = append(out, *p)
		}
	}
	return out
}

func (s *MemStore) GetProperty(id string) (*domain.Property, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.properties[id]
	if !ok {
		return nil, errPropertyNotFound
	}
	out := *p
	return &out, nil
}

func (s *MemStore) SearchProperties(q domain.PropertySearch) []domain.Property {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Property, 0)
	for _, id := range s.order {
		p := s.properties[id]
		if q.Location != "" && !strings.Contains(strings.ToLower(p.Location), strings.ToLower(q.Location)) {
			continue
		}
		if q.MinPrice > 0 && p.Price < q.MinPrice {
			continue
		}
		if q.MaxPrice > 0 && p.Price > q.MaxPrice {
			continue
		}
		if q.Bedrooms > 0 && p.Bedrooms != q.Bedrooms {
			continue
		}
		out = append(out, *p)
	}
	return out
}

func (s *MemStore) CreateProperty(p *domain.Property) *domain.Property {
	s.mu.Lock()
	defer s.mu.Unlock()
	record := *p
	record.ID = uuid.NewString()
	s.properties[record.ID] = &record
	s.order = append(s.order, record.ID)
	out := record
	return &out
}

func (s *MemStore) UpdateProperty(id string, p *domain.Property) (*domain.Property, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.properties[id]; !ok {
		return nil, errPropertyNotFound
	}
	record := *p
	record.ID = id
	s.properties[id] = &record
	out := record
	return &out, nil
}

func (s *MemStore) DeleteProperty(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.properties[id]; !ok {
		return errPropertyNotFound
	}
	delete(s.properties, id)
	for i, pid := range s.order {
		if pid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// --- bookings ---

func (s *MemStore) CreateBooking(b *domain.Booking) *domain.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	record := *b
	record.ID = uuid.NewString()
	if record.Status == "" {
		record.Status = domain.BookingPending
	}
	s.bookings[record.ID] = &record
	out := record
	return &out
}

func (s *MemStore) UserBookings(contactNo string) []domain.Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Booking, 0)
	for _, b := range s.bookings {
		if b.ContactNo == contactNo {
			out = append(out, *b)
		}
	}
	return out
}

func (s *MemStore) UserPropertyBooking(contactNo, propertyID string) (*domain.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, b := range s.bookings {
		if b.ContactNo == contactNo && b.PropertyID == propertyID {
			out := *b
			return &out, nil
		}
	}
	return nil, errBookingNotFound
}

func (s *MemStore) AllBookings() []domain.Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Booking, 0, len(s.bookings))
	for _, b := range s.bookings {
		out = append(out, *b)
	}
	return out
}

func (s *MemStore) UpdateBookingStatus(id string, status domain.BookingStatus) (*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok {
		return nil, errBookingNotFound
	}
	b.Status = status
	out := *b
	return &out, nil
}

// --- shortlists ---

func (s *MemStore) AddShortlist(contactNo, propertyID string) *shortlistRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.shortlists[contactNo] {
		if e.PropertyID == propertyID {
			out := *e
			return &out
		}
	}
	entry := &shortlistRecord{ID: uuid.NewString(), PropertyID: propertyID, AddedAt: time.Now().UTC()}
	s.shortlists[contactNo] = append(s.shortlists[contactNo], entry)
	out := *entry
	return &out
}

func (s *MemStore) UserShortlist(contactNo string) []domain.ShortlistEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.ShortlistEntry, 0, len(s.shortlists[contactNo]))
	for _, e := range s.shortlists[contactNo] {
		out = append(out, domain.ShortlistEntry{ID: e.ID, PropertyID: e.PropertyID, AddedAt: e.AddedAt})
	}
	return out
}

func (s *MemStore) RemoveShortlist(contactNo, entryID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries := s.shortlists[contactNo]
	for i, e := range entries {
		if e.ID == entryID {
			s.shortlists[contactNo] = append(entries[:i], entries[i+1:]...)
			return true
		}
	}
	return false
}

// ToggleShortlist adds the property if absent and removes it if present,
// reporting the resulting membership.
func (s *MemStore) ToggleShortlist(contactNo, propertyID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries := s.shortlists[contactNo]
	for i, e := range entries {
		if e.PropertyID == propertyID {
			s.shortlists[contactNo] = append(entries[:i], entries[i+1:]...)
			return false
		}
	}
	entry := &shortlistRecord{ID: uuid.NewString(), PropertyID: propertyID, AddedAt: time.Now().UTC()}
	s.shortlists[contactNo] = append(entries, entry)
	return true
}

// SeedUser registers an account directly, bypassing the OTP flow. Intended
// for fixtures and tests.
func (s *MemStore) SeedUser(name, email, contactNo string, role domain.Role, locked bool) error {
	return s.CreateUser(&userRecord{
		Name:      name,
		Email:     email,
		ContactNo: contactNo,
		Role:      role,
		Locked:    locked,
	})
}

// SeedProperties loads the sample catalogue used by a fresh dev backend.
func (s *MemStore) SeedProperties() {
	samples := []domain.Property{
		{Title: "Sunrise Heights 2BHK", Location: "Baner, Pune", Price: 7800000, Bedrooms: 2, Bathrooms: 2, AreaSqft: 1050, Featured: true},
		{Title: "Lakeview Residency 3BHK", Location: "Wakad, Pune", Price: 11200000, Bedrooms: 3, Bathrooms: 3, AreaSqft: 1540, Featured: true},
		{Title: "Green Acres Villa", Location: "Undri, Pune", Price: 21500000, Bedrooms: 4, Bathrooms: 4, AreaSqft: 2800, Featured: false},
		{Title: "Metro Park 1BHK", Location: "Kharadi, Pune", Price: 4500000, Bedrooms: 1, Bathrooms: 1, AreaSqft: 620, Featured: false},
	}
	for i := range samples {
		s.CreateProperty(&samples[i])
	}
}
