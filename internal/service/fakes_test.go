package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Brayanhenaor/vetquestions/internal/model"
)

// memUserStore is an in-memory UserStore.
type memUserStore struct {
	mu    sync.Mutex
	users map[uuid.UUID]model.User
	roles map[uuid.UUID][]string
}

func newMemUserStore() *memUserStore {
	return &memUserStore{
		users: make(map[uuid.UUID]model.User),
		roles: make(map[uuid.UUID][]string),
	}
}

func (s *memUserStore) GetByUsername(_ context.Context, username string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return model.User{}, model.ErrNotFound
}

func (s *memUserStore) GetByEmail(_ context.Context, email string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return model.User{}, model.ErrNotFound
}

func (s *memUserStore) GetRoles(_ context.Context, userID uuid.UUID) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.roles[userID]...), nil
}

func (s *memUserStore) Create(_ context.Context, user model.User, role model.Role) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == user.Email || u.Username == user.Username {
			return model.User{}, model.ErrAlreadyExists
		}
	}
	s.users[user.ID] = user
	s.roles[user.ID] = []string{string(role)}
	return user, nil
}

// memOtpStore is an in-memory OtpStore.
type memOtpStore struct {
	mu     sync.Mutex
	nextID int64
	codes  map[int64]model.OtpCode
}

func newMemOtpStore() *memOtpStore {
	return &memOtpStore{codes: make(map[int64]model.OtpCode)}
}

func (s *memOtpStore) Create(_ context.Context, code model.OtpCode) (model.OtpCode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	code.ID = s.nextID
	s.codes[code.ID] = code
	return code, nil
}

func (s *memOtpStore) GetLatestByUser(_ context.Context, userID uuid.UUID) (model.OtpCode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var found []model.OtpCode
	for _, c := range s.codes {
		if c.UserID == userID {
			found = append(found, c)
		}
	}
	if len(found) == 0 {
		return model.OtpCode{}, model.ErrNotFound
	}
	sort.Slice(found, func(i, j int) bool {
		if found[i].GeneratedAt.Equal(found[j].GeneratedAt) {
			return found[i].ID > found[j].ID
		}
		return found[i].GeneratedAt.After(found[j].GeneratedAt)
	})
	return found[0], nil
}

func (s *memOtpStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.codes[id]; !ok {
		return model.ErrNotFound
	}
	delete(s.codes, id)
	return nil
}

func (s *memOtpStore) DeleteExpired(_ context.Context, before time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for id, c := range s.codes {
		if c.ExpiresAt.Before(before) {
			delete(s.codes, id)
			n++
		}
	}
	return n, nil
}

func (s *memOtpStore) countFor(userID uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.codes {
		if c.UserID == userID {
			n++
		}
	}
	return n
}

func (s *memOtpStore) total() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.codes)
}

// sentOtp is one notification captured by recordingNotifier.
type sentOtp struct {
	code  string
	email string
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []sentOtp
	err  error
}

func (n *recordingNotifier) SendOtp(_ context.Context, code, email string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, sentOtp{code: code, email: email})
	return n.err
}

func (n *recordingNotifier) last() sentOtp {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.sent) == 0 {
		return sentOtp{}
	}
	return n.sent[len(n.sent)-1]
}

// memJobQueue is an in-memory JobQueue and JobStore driven by a fake clock.
type memJobQueue struct {
	mu    sync.Mutex
	clock func() time.Time
	jobs  map[uuid.UUID]model.Job
}

func newMemJobQueue(clock func() time.Time) *memJobQueue {
	return &memJobQueue{clock: clock, jobs: make(map[uuid.UUID]model.Job)}
}

func (q *memJobQueue) Enqueue(_ context.Context, job model.Job) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	for _, j := range q.jobs {
		if j.DedupeKey == job.DedupeKey {
			return nil
		}
	}
	if job.ID == uuid.Nil {
		job.ID = uuid.New()
	}
	job.Status = model.JobStatusPending
	q.jobs[job.ID] = job
	return nil
}

func (q *memJobQueue) Lease(_ context.Context, consumer string, limit int, _ time.Time, leaseTTL time.Duration) ([]model.Job, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	now := q.clock()
	var leased []model.Job
	for id, j := range q.jobs {
		if len(leased) >= limit {
			break
		}
		if j.Status != model.JobStatusPending || j.RunAt.After(now) {
			continue
		}
		until := now.Add(leaseTTL)
		j.Status = model.JobStatusLeased
		j.LeaseOwner = consumer
		j.LeaseExpiresAt = &until
		j.Attempts++
		q.jobs[id] = j
		leased = append(leased, j)
	}
	return leased, nil
}

func (q *memJobQueue) Complete(_ context.Context, id uuid.UUID, _ string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if _, ok := q.jobs[id]; !ok {
		return model.ErrNotFound
	}
	delete(q.jobs, id)
	return nil
}

func (q *memJobQueue) Retry(_ context.Context, id uuid.UUID, _ string, runAt time.Time, lastError string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	j, ok := q.jobs[id]
	if !ok {
		return model.ErrNotFound
	}
	j.Status = model.JobStatusPending
	j.RunAt = runAt
	j.LastError = lastError
	q.jobs[id] = j
	return nil
}

func (q *memJobQueue) Dead(_ context.Context, id uuid.UUID, _ string, lastError string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	j, ok := q.jobs[id]
	if !ok {
		return model.ErrNotFound
	}
	j.Status = model.JobStatusDead
	j.LastError = lastError
	q.jobs[id] = j
	return nil
}

func (q *memJobQueue) pending() []model.Job {
	q.mu.Lock()
	defer q.mu.Unlock()
	var out []model.Job
	for _, j := range q.jobs {
		if j.Status == model.JobStatusPending {
			out = append(out, j)
		}
	}
	return out
}

// fakeClock is a settable time source.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
