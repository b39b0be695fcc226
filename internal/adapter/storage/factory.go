package storage

import (
	"context"
	"fmt"
	"os"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"taskvault/internal/adapter/storage/file"
	"taskvault/internal/adapter/storage/mongodb"
	"taskvault/internal/config"
	"taskvault/internal/core/ports"
)

// Backend bundles the Record Stores of one storage family. Open is the only
// place stores are constructed; everything downstream receives them as
// injected dependencies.
type Backend struct {
	Tasks      ports.TaskStore
	Categories ports.CategoryStore
	Users      ports.UserStore

	storageType string
	dataDir     string
	client      *mongo.Client
}

// Open selects the backend family from configuration and fails fast when the
// selected backend cannot be prepared.
func Open(ctx context.Context, conf *config.Config) (*Backend, error) {
	switch conf.StorageType {
	case config.StorageFile:
		return openFile(conf)
	case config.StorageMongoDB:
		return openMongo(ctx, conf)
	default:
		return nil, fmt.Errorf("unknown storage type %q", conf.StorageType)
	}
}

func openFile(conf *config.Config) (*Backend, error) {
	tasks, err := file.NewTaskStore(conf.DataDir)
	if err != nil {
		return nil, err
	}
	categories, err := file.NewCategoryStore(conf.DataDir)
	if err != nil {
		return nil, err
	}
	users, err := file.NewUserStore(conf.DataDir)
	if err != nil {
		return nil, err
	}

	return &Backend{
		Tasks:       tasks,
		Categories:  categories,
		Users:       users,
		storageType: config.StorageFile,
		dataDir:     conf.DataDir,
	}, nil
}

func openMongo(ctx context.Context, conf *config.Config) (*Backend, error) {
	client, db, err := mongodb.Connect(ctx, conf)
	if err != nil {
		return nil, err
	}

	return &Backend{
		Tasks:       mongodb.NewTaskStore(db),
		Categories:  mongodb.NewCategoryStore(db),
		Users:       mongodb.NewUserStore(db),
		storageType: config.StorageMongoDB,
		client:      client,
	}, nil
}

func (b *Backend) StorageType() string {
	return b.storageType
}

// Ping reports whether the backend is currently usable. The file backend
// just checks its data directory is still there.
func (b *Backend) Ping(ctx context.Context) error {
	if b.client != nil {
		return b.client.Ping(ctx, readpref.Primary())
	}

	if _, err := os.Stat(b.dataDir); err != nil {
		return fmt.Errorf("data dir unavailable: %w", err)
	}
	return nil
}

func (b *Backend) Close(ctx context.Context) error {
	if b.client != nil {
		return b.client.Disconnect(ctx)
	}
	return nil
}
