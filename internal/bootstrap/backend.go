package bootstrap

import (
	"context"
	"fmt"

	"github.com/if-project/agenda-backend/config"
	"github.com/if-project/agenda-backend/internal/auth"
	"github.com/if-project/agenda-backend/internal/blob"
	"github.com/if-project/agenda-backend/internal/identity"
	"github.com/if-project/agenda-backend/internal/store"
)

// Backend groups the three remote collaborators every service is built on.
type Backend struct {
	Tree      store.Tree
	Directory identity.Directory
	Blobs     blob.Store
}

// OpenBackend wires Firebase (database, auth, storage) or the in-process
// fakes, depending on BACKEND.
func OpenBackend(ctx context.Context, cfg *config.Config) (*Backend, error) {
	if cfg.App.Backend == config.BackendMemory {
		return &Backend{
			Tree:      store.NewMemoryTree(),
			Directory: identity.NewMemoryDirectory(),
			Blobs:     blob.NewMemoryStore(),
		}, nil
	}

	app, err := auth.InitializeFirebase(ctx, &cfg.Firebase)
	if err != nil {
		return nil, err
	}

	dbClient, err := app.Database(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase database: %w", err)
	}
	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase auth: %w", err)
	}
	storageClient, err := app.Storage(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase storage: %w", err)
	}
	bucket, err := storageClient.Bucket(cfg.Firebase.StorageBucket)
	if err != nil {
		return nil, fmt.Errorf("firebase bucket: %w", err)
	}

	return &Backend{
		Tree:      store.NewFirebaseTree(dbClient),
		Directory: identity.NewFirebaseDirectory(authClient),
		Blobs:     blob.NewFirebaseBucket(bucket, cfg.Firebase.StorageBucket),
	}, nil
}
