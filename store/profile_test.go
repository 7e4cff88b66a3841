package store

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/aerovital/navigator-api/schema"
)

// ProfileTestSuite exercises the profile collection against a real mongo
// instance. Configure AEROVITAL_MONGO_TEST_CONN to run it; without a
// connection string the suite is skipped.
type ProfileTestSuite struct {
	suite.Suite
	connURI      string
	testDBName   string
	mongoClient  *mongo.Client
	store        AeroVitalStore
	testDatabase *mongo.Database
}

func NewProfileTestSuite(connURI, dbName string) *ProfileTestSuite {
	return &ProfileTestSuite{
		connURI:    connURI,
		testDBName: dbName,
	}
}

func (s *ProfileTestSuite) SetupSuite() {
	if s.connURI == "" || s.testDBName == "" {
		s.T().Skip("mongo test connection not configured")
	}

	opts := options.Client().ApplyURI(s.connURI)
	mongoClient, err := mongo.Connect(context.Background(), opts)
	if nil != err {
		s.T().Fatalf("connect mongo database with error: %s", err)
	}

	s.mongoClient = mongoClient
	s.testDatabase = mongoClient.Database(s.testDBName)
	s.store = NewMongoStore(mongoClient, s.testDBName)

	if err := s.testDatabase.Collection(schema.ProfileCollection).Drop(context.Background()); err != nil {
		s.T().Fatal(err)
	}
}

func (s *ProfileTestSuite) TearDownSuite() {
	if s.mongoClient != nil {
		_ = s.mongoClient.Disconnect(context.Background())
	}
}

func (s *ProfileTestSuite) TestProfileRoundTrip() {
	original := schema.NewUserProfile(schema.UserProfile{
		AccountNumber: "round-trip",
		Name:          "test",
		Age:           61,
		Weight:        82,
		Height:        180,
		MedicalConditions: schema.MedicalConditions{
			Cardiovascular:     true,
			SpecificConditions: []string{"hypertension"},
		},
		Medications:  []string{"metformin"},
		FitnessLevel: schema.FitnessBeginner,
	})
	// mongo stores times at millisecond precision
	original.CreatedAt = original.CreatedAt.Truncate(time.Millisecond)

	s.NoError(s.store.CreateProfile(original), "wrong CreateProfile")

	reloaded, err := s.store.GetProfile("round-trip")
	s.NoError(err, "wrong GetProfile")

	s.Equal(original.ID, reloaded.ID, "wrong id")
	s.Equal(original.Age, reloaded.Age, "wrong age")
	s.Equal(original.BMI, reloaded.BMI, "wrong bmi")
	s.Equal(original.MedicalConditions, reloaded.MedicalConditions, "wrong medical conditions")
	s.Equal(original.Medications, reloaded.Medications, "wrong medications")
	s.Equal(original.FitnessLevel, reloaded.FitnessLevel, "wrong fitness level")
	s.True(original.CreatedAt.Equal(reloaded.CreatedAt), "wrong created time")
}

func (s *ProfileTestSuite) TestDuplicateProfileRejected() {
	p := schema.NewUserProfile(schema.UserProfile{AccountNumber: "dup", Name: "a", Age: 30, Weight: 70, Height: 170})
	s.NoError(s.store.CreateProfile(p), "wrong CreateProfile")

	err := s.store.CreateProfile(p)
	s.ErrorIs(err, ErrProfileExists, "duplicate registration must be rejected")
}

func (s *ProfileTestSuite) TestReplaceProfile() {
	p := schema.NewUserProfile(schema.UserProfile{AccountNumber: "replace", Name: "a", Age: 30, Weight: 70, Height: 170})
	s.NoError(s.store.CreateProfile(p), "wrong CreateProfile")

	p.Age = 31
	p.FitnessLevel = schema.FitnessAdvanced
	s.NoError(s.store.ReplaceProfile(p), "wrong ReplaceProfile")

	reloaded, err := s.store.GetProfile("replace")
	s.NoError(err, "wrong GetProfile")
	s.Equal(31, reloaded.Age, "replacement not persisted")
	s.Equal(schema.FitnessAdvanced, reloaded.FitnessLevel, "replacement not persisted")
}

func (s *ProfileTestSuite) TestMissingProfile() {
	_, err := s.store.GetProfile("nobody")
	s.ErrorIs(err, ErrProfileNotFound, "wrong missing profile error")

	s.ErrorIs(s.store.DeleteProfile("nobody"), ErrProfileNotFound, "wrong delete error")
	s.ErrorIs(s.store.ReplaceProfile(schema.UserProfile{AccountNumber: "nobody"}), ErrProfileNotFound, "wrong replace error")
}

func (s *ProfileTestSuite) TestDeleteProfile() {
	p := schema.NewUserProfile(schema.UserProfile{AccountNumber: "delete", Name: "a", Age: 30, Weight: 70, Height: 170})
	s.NoError(s.store.CreateProfile(p), "wrong CreateProfile")

	s.NoError(s.store.DeleteProfile("delete"), "wrong DeleteProfile")

	_, err := s.store.GetProfile("delete")
	s.ErrorIs(err, ErrProfileNotFound, "profile survived deletion")
}

func TestProfileSuite(t *testing.T) {
	suite.Run(t, NewProfileTestSuite(
		os.Getenv("AEROVITAL_MONGO_TEST_CONN"),
		os.Getenv("AEROVITAL_MONGO_TEST_DBNAME"),
	))
}
