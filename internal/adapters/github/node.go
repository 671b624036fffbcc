package github

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"go.trai.ch/gitres/internal/adapters/logger"
	"go.trai.ch/gitres/internal/core/domain"
	"go.trai.ch/gitres/internal/core/ports"
)

// NodeID is the unique identifier for the repository client Graft node.
const NodeID graft.ID = "adapter.repository_client"

func init() {
	graft.Register(graft.Node[ports.RepositoryClient]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.RepositoryClient, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			client, err := NewClient(log, WithBaseURL(os.Getenv(domain.APIURLEnvVar)))
			if err != nil {
				return nil, err
			}
			return client, nil
		},
	})
}
