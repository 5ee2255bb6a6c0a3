package guest

import (
	"context"
	"errors"
	"time"
)

var ErrGuestNotFound = errors.New("guest: not found")

type Guest struct {
	ID         string
	FirstName  string
	LastName   string
	Email      string
	Phone      string
	DateJoined time.Time
}

func (g Guest) FullName() string {
	return g.FirstName + " " + g.LastName
}

type Repository interface {
	ByID(ctx context.Context, id string) (*Guest, error)
	Save(ctx context.Context, g *Guest) error
	List(ctx context.Context) ([]*Guest, error)
}
