package mongodb_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"taskvault/internal/adapter/storage/mongodb"
	"taskvault/internal/adapter/storage/storetest"
	"taskvault/internal/config"
)

// TestMongoStoreConformance runs the shared backend suite against a live
// server. Set MONGO_TEST_URI to enable it; each subtest works in a throwaway
// database that is dropped on cleanup.
func TestMongoStoreConformance(t *testing.T) {
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}

	storetest.Run(t, func(t *testing.T) storetest.Stores {
		conf := &config.Config{
			MongoURI:      uri,
			MongoDatabase: fmt.Sprintf("taskvault_test_%d", time.Now().UnixNano()),
		}

		ctx := context.Background()
		client, db, err := mongodb.Connect(ctx, conf)
		require.NoError(t, err)

		t.Cleanup(func() {
			_ = db.Drop(context.Background())
			_ = client.Disconnect(context.Background())
		})

		return storetest.Stores{
			Tasks:      mongodb.NewTaskStore(db),
			Categories: mongodb.NewCategoryStore(db),
			Users:      mongodb.NewUserStore(db),
		}
	})
}
