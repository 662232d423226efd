// Command initdb provisions the legacy DynamoDB tables. It runs out of
// band and is never invoked by the web process.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/CloudGalleryGo/CloudGallery/internal/database/dynamo"
	"github.com/joho/godotenv"
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
	client, err := dynamo.NewClient(ctx,
		os.Getenv("AWS_ACCESS_KEY"),
		os.Getenv("AWS_SECRET_KEY"),
		envOr("AWS_REGION", "us-east-2"),
	)
	if err != nil {
		log.Fatalf("failed to build DynamoDB client: %v", err)
	}

	fmt.Println("Creating Users table...")
	if err := client.CreateTable(ctx, dynamo.UsersTable, dynamo.UsersTableKey); err != nil {
		log.Fatalf("failed to create Users table: %v", err)
	}

	fmt.Println("Creating PhotoGallery table...")
	if err := client.CreateTable(ctx, dynamo.PhotoGalleryTable, dynamo.PhotoGalleryTableKey); err != nil {
		log.Fatalf("failed to create PhotoGallery table: %v", err)
	}

	fmt.Println("Tables are being created. This may take a minute!")
}
