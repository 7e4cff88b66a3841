package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/aerovital/navigator-api/schema"
)

// CreateProfile stores the onboarding profile. One document per account;
// registering twice is an error.
func (m *mongoDB) CreateProfile(profile schema.UserProfile) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	c := m.client.Database(m.database).Collection(schema.ProfileCollection)

	count, err := c.CountDocuments(ctx, bson.M{"account_number": profile.AccountNumber})
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrProfileExists
	}

	_, err = c.InsertOne(ctx, profile)
	return err
}

// GetProfile returns the persisted profile for an account.
func (m *mongoDB) GetProfile(accountNumber string) (*schema.UserProfile, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	var profile schema.UserProfile
	err := m.client.Database(m.database).Collection(schema.ProfileCollection).
		FindOne(ctx, bson.M{"account_number": accountNumber}).Decode(&profile)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	return &profile, nil
}

// ReplaceProfile swaps the whole document. Partial updates are not
// supported; the profile is read-only except full replacement.
func (m *mongoDB) ReplaceProfile(profile schema.UserProfile) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	result, err := m.client.Database(m.database).Collection(schema.ProfileCollection).
		ReplaceOne(ctx, bson.M{"account_number": profile.AccountNumber}, profile)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrProfileNotFound
	}

	return nil
}

// DeleteProfile removes the account's profile document.
func (m *mongoDB) DeleteProfile(accountNumber string) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	result, err := m.client.Database(m.database).Collection(schema.ProfileCollection).
		DeleteOne(ctx, bson.M{"account_number": accountNumber})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrProfileNotFound
	}

	return nil
}
