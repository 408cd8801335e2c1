package dao

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/companieshouse/chs.go/log"
	"github.com/gidf/donations.api.gidf.org.et/config"
	"github.com/gidf/donations.api.gidf.org.et/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var client *mongo.Client
var clientOnce sync.Once

// MongoDatabaseInterface is an interface with the database methods used by
// the service, allowing the database to be mocked in tests
type MongoDatabaseInterface interface {
	Collection(name string, opts ...*options.CollectionOptions) *mongo.Collection
}

func getMongoClient(mongoDBURL string) *mongo.Client {
	clientOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		clientOptions := options.Client().ApplyURI(mongoDBURL)
		var err error
		client, err = mongo.Connect(ctx, clientOptions)
		if err != nil {
			log.Error(fmt.Errorf("error connecting to mongodb: %s", err))
			os.Exit(1)
		}

		// Assert connectivity up front rather than on first query
		pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer pingCancel()
		err = client.Ping(pingCtx, nil)
		if err != nil {
			log.Error(fmt.Errorf("error pinging mongodb: %s", err))
			os.Exit(1)
		}

		log.Info("connected to mongodb successfully")
	})

	return client
}

func getMongoDatabase(mongoDBURL, databaseName string) MongoDatabaseInterface {
	return getMongoClient(mongoDBURL).Database(databaseName)
}

// MongoService is an implementation of the DAO interface using MongoDB as
// the backend driver
type MongoService struct {
	db                       MongoDatabaseInterface
	DonorsCollectionName     string
	MessagesCollectionName   string
	APIConfigsCollectionName string
}

// NewMongoService connects to MongoDB and returns a DAO backed by it
func NewMongoService(cfg *config.Config) *MongoService {
	database := getMongoDatabase(cfg.MongoDBURL, cfg.Database)
	return &MongoService{
		db:                       database,
		DonorsCollectionName:     cfg.DonorsCollection,
		MessagesCollectionName:   cfg.MessagesCollection,
		APIConfigsCollectionName: cfg.APIConfigsCollection,
	}
}

// CreateDonorResource writes a new donor record to the DB
func (m *MongoService) CreateDonorResource(donor *models.DonorResourceDB) error {
	collection := m.db.Collection(m.DonorsCollectionName)
	_, err := collection.InsertOne(context.Background(), donor)

	return err
}

// GetDonorResource gets a donor record from the DB.
// If the donor is not found, nil is returned with no error.
func (m *MongoService) GetDonorResource(id string) (*models.DonorResourceDB, error) {
	var resource models.DonorResourceDB

	collection := m.db.Collection(m.DonorsCollectionName)
	dbResource := collection.FindOne(context.Background(), bson.M{"_id": id})

	err := dbResource.Err()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}

	err = dbResource.Decode(&resource)
	if err != nil {
		return nil, err
	}

	return &resource, nil
}

// GetDonorResourceByReference gets the donor record correlated with the given
// checkout reference. If none is found, nil is returned with no error.
func (m *MongoService) GetDonorResourceByReference(txRef string) (*models.DonorResourceDB, error) {
	var resource models.DonorResourceDB

	collection := m.db.Collection(m.DonorsCollectionName)
	dbResource := collection.FindOne(context.Background(), bson.M{"tx_ref": txRef})

	err := dbResource.Err()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}

	err = dbResource.Decode(&resource)
	if err != nil {
		return nil, err
	}

	return &resource, nil
}

// ListDonorResources returns donor records matching the filter, newest first
func (m *MongoService) ListDonorResources(filter models.DonorFilter) ([]models.DonorResourceDB, error) {
	query := bson.M{}
	if filter.TxRef != "" {
		query["tx_ref"] = filter.TxRef
	} else if filter.TransactionID != "" {
		query["data.transaction_id"] = filter.TransactionID
	}

	collection := m.db.Collection(m.DonorsCollectionName)
	opts := options.Find().SetSort(bson.D{{Key: "data.created_at", Value: -1}})

	cursor, err := collection.Find(context.Background(), query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(context.Background())

	donors := []models.DonorResourceDB{}
	err = cursor.All(context.Background(), &donors)
	if err != nil {
		return nil, err
	}

	return donors, nil
}

// PatchDonorResourceStatus moves a pending donor record to the given terminal
// status. The filter includes the pending status so the update is atomic and
// completed or failed records are never overwritten.
func (m *MongoService) PatchDonorResourceStatus(id, status, transactionID string) (bool, error) {
	collection := m.db.Collection(m.DonorsCollectionName)

	patch := bson.M{
		"data.status":       status,
		"data.completed_at": time.Now().Truncate(time.Millisecond),
	}
	if transactionID != "" {
		patch["data.transaction_id"] = transactionID
	}

	result, err := collection.UpdateOne(
		context.Background(),
		bson.M{"_id": id, "data.status": "pending"},
		bson.M{"$set": patch},
	)
	if err != nil {
		return false, err
	}

	return result.MatchedCount == 1, nil
}

// CreateMessageResource writes a new contact message record to the DB
func (m *MongoService) CreateMessageResource(message *models.MessageResourceDB) error {
	collection := m.db.Collection(m.MessagesCollectionName)
	_, err := collection.InsertOne(context.Background(), message)

	return err
}

// ListMessageResources returns all contact message records, newest first
func (m *MongoService) ListMessageResources() ([]models.MessageResourceDB, error) {
	collection := m.db.Collection(m.MessagesCollectionName)
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := collection.Find(context.Background(), bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(context.Background())

	messages := []models.MessageResourceDB{}
	err = cursor.All(context.Background(), &messages)
	if err != nil {
		return nil, err
	}

	return messages, nil
}

// CreateAPIConfig writes a new bank API credential record to the DB
func (m *MongoService) CreateAPIConfig(apiConfig *models.APIConfigResourceDB) error {
	collection := m.db.Collection(m.APIConfigsCollectionName)
	_, err := collection.InsertOne(context.Background(), apiConfig)

	return err
}

// GetAPIConfig gets the credential record for the bank regardless of state.
// If none is found, nil is returned with no error.
func (m *MongoService) GetAPIConfig(bankName string) (*models.APIConfigResourceDB, error) {
	return m.findAPIConfig(bson.M{"_id": bankName})
}

// GetActiveAPIConfig gets the credential record for the bank only if it is
// active and unexpired. If none is found, nil is returned with no error.
func (m *MongoService) GetActiveAPIConfig(bankName string) (*models.APIConfigResourceDB, error) {
	return m.findAPIConfig(bson.M{
		"_id":             bankName,
		"is_active":       true,
		"expiration_date": bson.M{"$gt": time.Now()},
	})
}

func (m *MongoService) findAPIConfig(query bson.M) (*models.APIConfigResourceDB, error) {
	var resource models.APIConfigResourceDB

	collection := m.db.Collection(m.APIConfigsCollectionName)
	dbResource := collection.FindOne(context.Background(), query)

	err := dbResource.Err()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}

	err = dbResource.Decode(&resource)
	if err != nil {
		return nil, err
	}

	return &resource, nil
}

// IncrementAPIConfigUsage bumps the usage counter and last-used time
func (m *MongoService) IncrementAPIConfigUsage(bankName string) error {
	collection := m.db.Collection(m.APIConfigsCollectionName)

	_, err := collection.UpdateOne(
		context.Background(),
		bson.M{"_id": bankName},
		bson.M{
			"$inc": bson.M{"usage_count": 1},
			"$set": bson.M{"last_used_at": time.Now().Truncate(time.Millisecond)},
		},
	)

	return err
}

// UpdateAPIConfig applies the allow-listed update fields
func (m *MongoService) UpdateAPIConfig(bankName string, update *models.APIConfigUpdate) (bool, error) {
	patch := bson.M{"updated_at": time.Now().Truncate(time.Millisecond)}
	if update.APIEndpoint != "" {
		patch["api_endpoint"] = update.APIEndpoint
	}
	if update.ExpirationDate != nil {
		patch["expiration_date"] = *update.ExpirationDate
	}
	if update.IsActive != nil {
		patch["is_active"] = *update.IsActive
	}

	collection := m.db.Collection(m.APIConfigsCollectionName)
	result, err := collection.UpdateOne(
		context.Background(),
		bson.M{"_id": bankName},
		bson.M{"$set": patch},
	)
	if err != nil {
		return false, err
	}

	return result.MatchedCount == 1, nil
}

// RenewAPIConfig replaces credential material, stamps the renewal date and
// clears the alert debounce flag
func (m *MongoService) RenewAPIConfig(bankName string, renewal *models.APIConfigRenewal) (bool, error) {
	now := time.Now().Truncate(time.Millisecond)

	collection := m.db.Collection(m.APIConfigsCollectionName)
	result, err := collection.UpdateOne(
		context.Background(),
		bson.M{"_id": bankName},
		bson.M{"$set": bson.M{
			"api_key":            renewal.APIKey,
			"api_secret":         renewal.APISecret,
			"merchant_id":        renewal.MerchantID,
			"expiration_date":    renewal.ExpirationDate,
			"last_renewal_date":  now,
			"renewal_alert_sent": false,
			"updated_at":         now,
		}},
	)
	if err != nil {
		return false, err
	}

	return result.MatchedCount == 1, nil
}

// GetActiveAPIConfigs returns all active, unexpired credential records
func (m *MongoService) GetActiveAPIConfigs() ([]models.APIConfigResourceDB, error) {
	return m.findAPIConfigs(bson.M{
		"is_active":       true,
		"expiration_date": bson.M{"$gt": time.Now()},
	})
}

// GetExpiringAPIConfigs returns active records expiring within the given
// number of days
func (m *MongoService) GetExpiringAPIConfigs(days int) ([]models.APIConfigResourceDB, error) {
	now := time.Now()
	return m.findAPIConfigs(bson.M{
		"is_active": true,
		"expiration_date": bson.M{
			"$gte": now,
			"$lte": now.Add(time.Duration(days) * 24 * time.Hour),
		},
	})
}

func (m *MongoService) findAPIConfigs(query bson.M) ([]models.APIConfigResourceDB, error) {
	collection := m.db.Collection(m.APIConfigsCollectionName)

	cursor, err := collection.Find(context.Background(), query)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(context.Background())

	apiConfigs := []models.APIConfigResourceDB{}
	err = cursor.All(context.Background(), &apiConfigs)
	if err != nil {
		return nil, err
	}

	return apiConfigs, nil
}

// MarkRenewalAlertSent sets the alert debounce flag
func (m *MongoService) MarkRenewalAlertSent(bankName string) error {
	collection := m.db.Collection(m.APIConfigsCollectionName)

	_, err := collection.UpdateOne(
		context.Background(),
		bson.M{"_id": bankName},
		bson.M{"$set": bson.M{"renewal_alert_sent": true}},
	)

	return err
}

// GetAPIConfigStats aggregates registry-wide usage statistics
func (m *MongoService) GetAPIConfigStats() (*models.APIConfigStatsDB, error) {
	now := time.Now()

	activeCond := bson.D{{Key: "$cond", Value: bson.A{
		bson.D{{Key: "$and", Value: bson.A{
			bson.D{{Key: "$eq", Value: bson.A{"$is_active", true}}},
			bson.D{{Key: "$gt", Value: bson.A{"$expiration_date", now}}},
		}}},
		1, 0,
	}}}
	expiredCond := bson.D{{Key: "$cond", Value: bson.A{
		bson.D{{Key: "$lt", Value: bson.A{"$expiration_date", now}}},
		1, 0,
	}}}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "total_apis", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "active_apis", Value: bson.D{{Key: "$sum", Value: activeCond}}},
			{Key: "expired_apis", Value: bson.D{{Key: "$sum", Value: expiredCond}}},
			{Key: "total_usage", Value: bson.D{{Key: "$sum", Value: "$usage_count"}}},
		}}},
	}

	collection := m.db.Collection(m.APIConfigsCollectionName)
	cursor, err := collection.Aggregate(context.Background(), pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(context.Background())

	stats := []models.APIConfigStatsDB{}
	err = cursor.All(context.Background(), &stats)
	if err != nil {
		return nil, err
	}

	// An empty registry aggregates to no groups at all
	if len(stats) == 0 {
		return &models.APIConfigStatsDB{}, nil
	}

	return &stats[0], nil
}

// Ping checks store connectivity
func (m *MongoService) Ping(ctx context.Context) error {
	if client == nil {
		return errors.New("mongodb client not initialised")
	}
	return client.Ping(ctx, nil)
}

// Close drains the store connection
func (m *MongoService) Close(ctx context.Context) error {
	if client == nil {
		return nil
	}
	return client.Disconnect(ctx)
}
