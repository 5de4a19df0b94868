package docker

import (
	"context"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/container"
)

// engineAPI on se osa Docker clientista jota watcher käyttää.
// Interface mahdollistaa mockauksen testeissä.
type engineAPI interface {
	ContainerList(ctx context.Context, options container.ListOptions) ([]types.Container, error)
	Ping(ctx context.Context) (types.Ping, error)
	Close() error
}
