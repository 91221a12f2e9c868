package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/ThomasMorgana/Webservice/internal/model"
	"github.com/ThomasMorgana/Webservice/internal/payment"
	"github.com/ThomasMorgana/Webservice/internal/queue"
	"github.com/ThomasMorgana/Webservice/internal/repository"
	"github.com/ThomasMorgana/Webservice/internal/utils"
)

// In-memory stands-ins for the repository layer, implementing the
// store interfaces the handlers consume.

type fakeUserStore struct {
	mu     sync.Mutex
	nextID int
	users  map[string]model.User // keyed by id
	getErr error                 // forced error for GetByEmail/GetByID
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[string]model.User{}}
}

func (f *fakeUserStore) Create(ctx context.Context, email, password, role string, cost int) (model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return model.User{}, repository.ErrEmailExists
		}
	}
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return model.User{}, err
	}
	f.nextID++
	u := model.User{
		ID:           "user-" + strconv.Itoa(f.nextID),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}
	f.users[u.ID] = u
	return u, nil
}

func (f *fakeUserStore) GetByEmail(ctx context.Context, email string) (model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return model.User{}, f.getErr
	}
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return model.User{}, repository.ErrNotFound
}

func (f *fakeUserStore) GetByID(ctx context.Context, id string) (model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return model.User{}, f.getErr
	}
	u, ok := f.users[id]
	if !ok {
		return model.User{}, repository.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserStore) List(ctx context.Context, p repository.Pagination) ([]model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUserStore) UpdateEmail(ctx context.Context, id, email string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	for _, other := range f.users {
		if other.ID != id && other.Email == email {
			return repository.ErrEmailExists
		}
	}
	u.Email = email
	f.users[id] = u
	return nil
}

func (f *fakeUserStore) Activate(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.Active = true
	f.users[id] = u
	return nil
}

func (f *fakeUserStore) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.users, id)
	return nil
}

type fakeResetStore struct {
	mu      sync.Mutex
	tokens  map[string]string // token hash -> user id, live tokens only
	lastNew string            // most recent password hash passed to Consume
}

func newFakeResetStore() *fakeResetStore {
	return &fakeResetStore{tokens: map[string]string{}}
}

func (f *fakeResetStore) Store(ctx context.Context, userID, tokenHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens[tokenHash] = userID
	return nil
}

func (f *fakeResetStore) Consume(ctx context.Context, tokenHash, newPasswordHash string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	userID, ok := f.tokens[tokenHash]
	if !ok {
		return "", repository.ErrTokenInvalid
	}
	delete(f.tokens, tokenHash)
	f.lastNew = newPasswordHash
	return userID, nil
}

func (f *fakeResetStore) RevokeAllForUser(ctx context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for h, id := range f.tokens {
		if id == userID {
			delete(f.tokens, h)
		}
	}
	return nil
}

type fakeOutbox struct {
	mu     sync.Mutex
	events []queue.MailRequestedEvent
	err    error
}

func (f *fakeOutbox) PublishMailRequested(ctx context.Context, ev queue.MailRequestedEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, ev)
	return nil
}

func (f *fakeOutbox) sent() []queue.MailRequestedEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]queue.MailRequestedEvent(nil), f.events...)
}

type fakeSubStore struct {
	mu        sync.Mutex
	nextID    int
	subs      map[string]model.Subscription
	createErr error
	deleted   []string
}

func newFakeSubStore() *fakeSubStore {
	return &fakeSubStore{subs: map[string]model.Subscription{}}
}

func (f *fakeSubStore) Create(ctx context.Context, userID string) (model.Subscription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return model.Subscription{}, f.createErr
	}
	f.nextID++
	s := model.Subscription{ID: "sub-" + strconv.Itoa(f.nextID), UserID: userID}
	f.subs[s.ID] = s
	return s, nil
}

func (f *fakeSubStore) GetByID(ctx context.Context, id string) (model.Subscription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.subs[id]
	if !ok {
		return model.Subscription{}, repository.ErrNotFound
	}
	return s, nil
}

func (f *fakeSubStore) List(ctx context.Context, p repository.Pagination) ([]model.Subscription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.Subscription, 0, len(f.subs))
	for _, s := range f.subs {
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeSubStore) Activate(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.subs[id]
	if !ok {
		return repository.ErrNotFound
	}
	s.Active = true
	f.subs[id] = s
	return nil
}

func (f *fakeSubStore) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.subs[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.subs, id)
	f.deleted = append(f.deleted, id)
	return nil
}

type fakePayments struct {
	intents   []string // subscription ids intents were created for
	intentErr error
	event     payment.Event
	verifyErr error
}

func (f *fakePayments) CreatePaymentIntent(ctx context.Context, subscriptionID string, amountCents int64, currency string) (string, error) {
	if f.intentErr != nil {
		return "", f.intentErr
	}
	f.intents = append(f.intents, subscriptionID)
	return "pi_" + subscriptionID, nil
}

func (f *fakePayments) VerifyWebhook(payload []byte, sigHeader string) (payment.Event, error) {
	if f.verifyErr != nil {
		return payment.Event{}, f.verifyErr
	}
	return f.event, nil
}

type fakeCarStore struct {
	mu     sync.Mutex
	nextID uint64
	cars   map[uint64]model.Car
}

func newFakeCarStore() *fakeCarStore {
	return &fakeCarStore{cars: map[uint64]model.Car{}}
}

func (f *fakeCarStore) Create(ctx context.Context, c *model.Car) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	c.ID = f.nextID
	f.cars[c.ID] = *c
	return nil
}

func (f *fakeCarStore) GetByID(ctx context.Context, id uint64) (model.Car, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.cars[id]
	if !ok {
		return model.Car{}, repository.ErrNotFound
	}
	return c, nil
}

func (f *fakeCarStore) List(ctx context.Context, p repository.Pagination) ([]model.Car, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.Car, 0, len(f.cars))
	for _, c := range f.cars {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeCarStore) Update(ctx context.Context, c model.Car) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.cars[c.ID]; !ok {
		return repository.ErrNotFound
	}
	f.cars[c.ID] = c
	return nil
}

func (f *fakeCarStore) Delete(ctx context.Context, id uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.cars[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.cars, id)
	return nil
}

// newTestContext builds an Echo context around an httptest recorder
// with the request validator installed, the way the router wires it.
func newTestContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}
