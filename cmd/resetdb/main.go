// Command resetdb deletes and recreates the legacy DynamoDB tables,
// printing per-step status. There is no rollback on partial failure.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/CloudGalleryGo/CloudGallery/internal/database/dynamo"
	"github.com/joho/godotenv"
)

const waitTimeout = 5 * time.Minute

var tables = map[string]string{
	dynamo.UsersTable:        dynamo.UsersTableKey,
	dynamo.PhotoGalleryTable: dynamo.PhotoGalleryTableKey,
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func main() {
	_ = godotenv.Load()

	ctx := context.Background()
	client, err := dynamo.NewClient(ctx,
		os.Getenv("AWS_ACCESS_KEY"),
		os.Getenv("AWS_SECRET_KEY"),
		envOr("AWS_REGION", "us-east-2"),
	)
	if err != nil {
		log.Fatalf("failed to build DynamoDB client: %v", err)
	}

	for _, name := range []string{dynamo.UsersTable, dynamo.PhotoGalleryTable} {
		fmt.Printf("Deleting table: %s...\n", name)
		if err := client.DeleteTable(ctx, name); err != nil {
			fmt.Printf("Table %s did not exist or could not be deleted: %v\n", name, err)
			continue
		}
		if err := client.WaitUntilNotExists(ctx, name, waitTimeout); err != nil {
			fmt.Printf("Failed waiting for %s deletion: %v\n", name, err)
			continue
		}
		fmt.Printf("Successfully deleted %s.\n", name)
	}

	fmt.Println("\n--- Starting Recreation ---")

	for name, hashKey := range tables {
		fmt.Printf("Creating %s table...\n", name)
		if err := client.CreateTable(ctx, name, hashKey); err != nil {
			log.Fatalf("failed to create table %s: %v", name, err)
		}
	}

	fmt.Println("Waiting for tables to become ACTIVE...")
	for name := range tables {
		if err := client.WaitUntilExists(ctx, name, waitTimeout); err != nil {
			log.Fatalf("failed waiting for table %s: %v", name, err)
		}
		fmt.Printf("Table %s is now ACTIVE and ready for use.\n", name)
	}
}
