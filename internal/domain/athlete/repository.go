package athlete

import "context"

type Repository interface {
	List(ctx context.Context) ([]Profile, error)
	Get(ctx context.Context, id string) (Profile, bool, error)
	Save(ctx context.Context, p Profile) error
}
