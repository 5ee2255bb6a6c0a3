package owner

import (
	"context"
	"errors"
	"time"
)

var ErrOwnerNotFound = errors.New("owner: not found")

type Owner struct {
	ID         string
	FirstName  string
	LastName   string
	Email      string
	Phone      string
	Address    string
	DateJoined time.Time
}

func (o Owner) FullName() string {
	return o.FirstName + " " + o.LastName
}

type Repository interface {
	ByID(ctx context.Context, id string) (*Owner, error)
	Save(ctx context.Context, o *Owner) error
	List(ctx context.Context) ([]*Owner, error)
}
