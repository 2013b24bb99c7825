package mongo

import (
	"context"
	"fmt"
	"time"

	"clinicbook/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// SeedAdminUser creates the administrator account if it does not exist.
// Safe to run repeatedly.
func SeedAdminUser(ctx context.Context, client *mongo.Client, dbName, email, password string) error {
	if email == "" || password == "" {
		fmt.Println("ℹ️ Admin seed skipped, no credentials provided")
		return nil
	}

	coll := client.Database(dbName).Collection("Users")

	count, err := coll.CountDocuments(ctx, bson.M{"email": email})
	if err != nil {
		return fmt.Errorf("failed to check for existing admin: %w", err)
	}
	if count > 0 {
		fmt.Printf("ℹ️ Admin user %s already exists\n", email)
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	_, err = coll.InsertOne(ctx, model.User{
		Name:         "Admin User",
		Email:        email,
		PasswordHash: string(hash),
		Role:         model.RoleAdmin,
		CreatedAt:    time.Now().UTC().Truncate(time.Millisecond),
	})
	if err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	fmt.Printf("✅ Seeded admin user %s\n", email)
	return nil
}
