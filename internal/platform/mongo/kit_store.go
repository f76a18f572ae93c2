package mongo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/brandkit-api/internal/domain"
	"github.com/phrazzld/brandkit-api/internal/platform/logger"
	"github.com/phrazzld/brandkit-api/internal/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection is the subset of *mongo.Collection the store uses.
type Collection interface {
	ReplaceOne(
		ctx context.Context,
		filter interface{},
		replacement interface{},
		opts ...*options.ReplaceOptions,
	) (*mongo.UpdateResult, error)
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) *mongo.SingleResult
}

// kitDocument is the stored shape. CreatedAt is duplicated out of the body
// for sorting and TTL indexes; Get always reads the body's value.
type kitDocument struct {
	ID        string    `bson:"_id"`
	CreatedAt time.Time `bson:"createdAt"`
	Kit       bson.Raw  `bson:"kit"`
}

// KitStore implements store.KitStore on a MongoDB collection.
type KitStore struct {
	coll   Collection
	logger *slog.Logger
}

var _ store.KitStore = (*KitStore)(nil)

// NewKitStore creates a store over coll.
func NewKitStore(coll Collection, log *slog.Logger) *KitStore {
	if log == nil {
		log = slog.Default()
	}
	return &KitStore{
		coll:   coll,
		logger: log.With(slog.String("component", "mongo_kit_store")),
	}
}

// Put implements store.KitStore as an upsert on _id.
func (s *KitStore) Put(ctx context.Context, kit *domain.BrandKitFull) error {
	if err := store.ValidateKit(kit); err != nil {
		return err
	}

	body, err := encodeKit(kit)
	if err != nil {
		return store.NewStoreError(store.KitEntity, "put", "failed to encode kit", err)
	}

	doc := kitDocument{
		ID:        kit.ID.String(),
		CreatedAt: kit.CreatedAt,
		Kit:       body,
	}

	_, err = s.coll.ReplaceOne(ctx,
		bson.M{"_id": doc.ID},
		doc,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return store.NewStoreError(store.KitEntity, "put", "replace failed", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Debug("brand kit stored",
		slog.String("kit_id", doc.ID))
	return nil
}

// Get implements store.KitStore.
func (s *KitStore) Get(ctx context.Context, id uuid.UUID) (*domain.BrandKitFull, error) {
	var doc kitDocument
	err := s.coll.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, store.ErrKitNotFound
		}
		return nil, store.NewStoreError(store.KitEntity, "get", "find failed", err)
	}

	kit, err := decodeKit(doc.Kit)
	if err != nil {
		return nil, store.NewStoreError(store.KitEntity, "get", "failed to decode kit", err)
	}
	if kit.ID != id {
		return nil, store.NewStoreError(store.KitEntity, "get",
			fmt.Sprintf("stored kit id %s does not match _id", kit.ID), nil)
	}
	return kit, nil
}

// encodeKit converts the kit's JSON form into a BSON document so field
// names match the HTTP representation.
func encodeKit(kit *domain.BrandKitFull) (bson.Raw, error) {
	data, err := json.Marshal(kit)
	if err != nil {
		return nil, err
	}

	var body bson.D
	if err := bson.UnmarshalExtJSON(data, false, &body); err != nil {
		return nil, err
	}
	return bson.Marshal(body)
}

func decodeKit(body bson.Raw) (*domain.BrandKitFull, error) {
	if len(body) == 0 {
		return nil, errors.New("document has no kit body")
	}

	data, err := bson.MarshalExtJSON(body, false, false)
	if err != nil {
		return nil, err
	}

	var kit domain.BrandKitFull
	if err := json.Unmarshal(data, &kit); err != nil {
		return nil, err
	}
	return &kit, nil
}

// Open connects to uri, verifies the connection and returns the client.
func Open(ctx context.Context, uri string, log *slog.Logger) (*mongo.Client, error) {
	if log == nil {
		log = slog.Default()
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	clientOpts := options.Client().
		ApplyURI(uri).
		SetMaxPoolSize(20).
		SetMaxConnIdleTime(30 * time.Second)

	client, err := mongo.Connect(connectCtx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	log.Info("MongoDB connection established")
	return client, nil
}

// EnsureIndexes creates the createdAt index used for listing and expiry.
func EnsureIndexes(ctx context.Context, coll *mongo.Collection) error {
	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "createdAt", Value: -1}},
		Options: options.Index().SetName("created_at_desc"),
	})
	if err != nil {
		return fmt.Errorf("failed to create createdAt index: %w", err)
	}
	return nil
}
