package handler

import (
	"context"

	"github.com/ThomasMorgana/Webservice/internal/model"
	"github.com/ThomasMorgana/Webservice/internal/queue"
	"github.com/ThomasMorgana/Webservice/internal/repository"
)

// Handler-side views of the repositories and collaborators.  Declaring
// them here keeps handlers testable with in-memory fakes while the
// repository package stays free of interface clutter.

type userStore interface {
	Create(ctx context.Context, email, password, role string, cost int) (model.User, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
	GetByID(ctx context.Context, id string) (model.User, error)
	List(ctx context.Context, p repository.Pagination) ([]model.User, error)
	UpdateEmail(ctx context.Context, id, email string) error
	Activate(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type resetStore interface {
	Store(ctx context.Context, userID, tokenHash string) error
	Consume(ctx context.Context, tokenHash, newPasswordHash string) (string, error)
	RevokeAllForUser(ctx context.Context, userID string) error
}

type carStore interface {
	Create(ctx context.Context, c *model.Car) error
	GetByID(ctx context.Context, id uint64) (model.Car, error)
	List(ctx context.Context, p repository.Pagination) ([]model.Car, error)
	Update(ctx context.Context, c model.Car) error
	Delete(ctx context.Context, id uint64) error
}

type garageStore interface {
	Create(ctx context.Context, g *model.Garage) error
	GetByID(ctx context.Context, id uint64) (model.Garage, error)
	List(ctx context.Context, p repository.Pagination) ([]model.Garage, error)
	Update(ctx context.Context, g model.Garage) error
	Delete(ctx context.Context, id uint64) error
}

type subscriptionStore interface {
	Create(ctx context.Context, userID string) (model.Subscription, error)
	GetByID(ctx context.Context, id string) (model.Subscription, error)
	List(ctx context.Context, p repository.Pagination) ([]model.Subscription, error)
	Activate(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

// mailPublisher hands delivery requests to the outbox queue.  Publish
// failures must never fail the request that triggered the mail.
type mailPublisher interface {
	PublishMailRequested(ctx context.Context, event queue.MailRequestedEvent) error
}
