// Command migratedb performs the one-time bulk copy from the legacy
// DynamoDB tables into the MongoDB collections of the same name. Re-running
// it duplicates records; there is no conflict resolution.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/CloudGalleryGo/CloudGallery/internal/database/dynamo"
	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func main() {
	_ = godotenv.Load()

	ctx := context.Background()

	source, err := dynamo.NewClient(ctx,
		os.Getenv("AWS_ACCESS_KEY"),
		os.Getenv("AWS_SECRET_KEY"),
		envOr("AWS_REGION", "us-east-2"),
	)
	if err != nil {
		log.Fatalf("failed to build DynamoDB client: %v", err)
	}

	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(os.Getenv("MONGO_URI")))
	if err != nil {
		log.Fatalf("failed to connect to MongoDB: %v", err)
	}
	defer mongoClient.Disconnect(ctx)

	db := mongoClient.Database(envOr("MONGO_DB_NAME", "CloudGalleryDB"))

	for _, table := range []string{dynamo.UsersTable, dynamo.PhotoGalleryTable} {
		fmt.Printf("Migrating %s...\n", table)

		items, err := source.ScanAll(ctx, table)
		if err != nil {
			log.Fatalf("failed to scan DynamoDB table %s: %v", table, err)
		}
		if len(items) == 0 {
			fmt.Printf("No data found in DynamoDB table: %s\n", table)
			continue
		}

		docs := make([]interface{}, len(items))
		for i, item := range items {
			docs[i] = item
		}
		if _, err := db.Collection(table).InsertMany(ctx, docs); err != nil {
			log.Fatalf("failed to insert into MongoDB collection %s: %v", table, err)
		}
		fmt.Printf("Successfully migrated %d items to MongoDB collection: %s\n", len(items), table)
	}
}
