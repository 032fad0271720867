package reservation

import "sort"

// FirstReservationID is the id handed to the very first reservation a
// store ever creates; subsequent ids increase by exactly one.
const FirstReservationID uint32 = 1000000

// CookieGenerator produces the 48-byte cookie for a freshly minted
// reservation id.
type CookieGenerator interface {
	Generate(reservationID uint32) [48]byte
}

// TicketPool is the subset of the catalog a store needs to release
// held-but-unredeemed tickets back to on expiry.
type TicketPool interface {
	Release(eventID uint32, ticketCount uint16)
}

// Store is the append-only, ascending-id reservation sequence from
// spec.md §4.3. It is not safe for concurrent use; the dispatcher that
// owns it is itself single-threaded.
type Store struct {
	reservations []*Reservation
	reserved     int // logical capacity bookkeeping, mirrors the growable array this replaces

	nextID uint32
	timeoutSeconds int64

	firstUnexpiredIndex int
	expiredPendingCount int
	compactionCount     int

	pool    TicketPool
	cookies CookieGenerator
}

// New builds an empty store. timeoutSeconds is the fixed reservation
// lifetime applied to every reservation it creates.
func New(timeoutSeconds int64, pool TicketPool, cookies CookieGenerator) *Store {
	return &Store{
		reserved:       1,
		nextID:         FirstReservationID,
		timeoutSeconds: timeoutSeconds,
		pool:           pool,
		cookies:        cookies,
	}
}

// Capacity reports the store's current logical capacity, exposed only
// so tests can assert the geometric growth/shrink schedule matches the
// reference discipline.
func (s *Store) Capacity() int {
	return s.reserved
}

// Len reports the number of reservations currently retained, including
// ones that are expired-but-not-yet-compacted.
func (s *Store) Len() int {
	return len(s.reservations)
}

// CompactionCount reports how many times compact has run over the
// store's lifetime, exposed so the dispatcher can surface it as a
// metric.
func (s *Store) CompactionCount() int {
	return s.compactionCount
}

// Create allocates the next reservation id, generates its cookie, and
// appends it to the store.
func (s *Store) Create(eventID uint32, ticketCount uint16, now int64) *Reservation {
	r := &Reservation{
		ID:             s.nextID,
		EventID:        eventID,
		TicketCount:    ticketCount,
		Cookie:         s.cookies.Generate(s.nextID),
		ExpirationTime: now + s.timeoutSeconds,
	}
	s.nextID++
	s.append(r)
	return r
}

func (s *Store) append(r *Reservation) {
	s.reservations = append(s.reservations, r)
	if len(s.reservations) == s.reserved {
		s.reserved *= 2
	}
}

// Find performs the binary-search lookup described in spec.md §4.3: an
// exact reservation_id match whose stored cookie equals cookie.
func (s *Store) Find(reservationID uint32, cookie [48]byte) *Reservation {
	n := len(s.reservations)
	i := sort.Search(n, func(i int) bool {
		return s.reservations[i].ID >= reservationID
	})
	if i == n || s.reservations[i].ID != reservationID {
		return nil
	}
	r := s.reservations[i]
	if r.Cookie != cookie {
		return nil
	}
	return r
}

// Sweep walks forward from the last unswept reservation, releasing the
// tickets held by any that have reached their expiration without being
// redeemed, then compacts if at least half the store is now expired
// and pending.
func (s *Store) Sweep(now int64) {
	n := len(s.reservations)
	for s.firstUnexpiredIndex < n {
		r := s.reservations[s.firstUnexpiredIndex]
		if r.ExpirationTime > now {
			break
		}
		s.firstUnexpiredIndex++
		if r.Expired(now) {
			s.expiredPendingCount++
			s.pool.Release(r.EventID, r.TicketCount)
		}
	}
	if s.expiredPendingCount >= n/2 {
		s.compact(now)
	}
}

// compact retains only redeemed reservations and still-live pending
// ones, in place, then shrinks the logical capacity to match.
func (s *Store) compact(now int64) {
	count := 0
	for _, r := range s.reservations {
		if r.Redeemed() || r.ExpirationTime > now {
			s.reservations[count] = r
			count++
		}
	}
	for i := count; i < len(s.reservations); i++ {
		s.reservations[i] = nil
	}
	s.reservations = s.reservations[:count]
	s.expiredPendingCount = 0
	s.firstUnexpiredIndex = 0
	s.compactionCount++

	for s.reserved/4 > len(s.reservations) {
		s.reserved /= 2
	}
}
