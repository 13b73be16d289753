package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bytebank/ledger-api/internal/core/domain"
)

const collectionTransactions = "transactions"

// newestFirst orders by calendar date, then by insertion order. ObjectIDs
// grow with creation time, so equal dates list the latest record first.
var newestFirst = bson.D{{Key: "date_key", Value: -1}, {Key: "_id", Value: -1}}

type TransactionRepository struct {
	col *mongo.Collection
}

func NewTransactionRepository(db *mongo.Database) *TransactionRepository {
	return &TransactionRepository{col: db.Collection(collectionTransactions)}
}

type transactionDoc struct {
	ID      primitive.ObjectID `bson:"_id,omitempty"`
	User    primitive.ObjectID `bson:"user"`
	Date    string             `bson:"date"`
	DateKey int                `bson:"date_key"`
	Alias   string             `bson:"alias,omitempty"`
	Type    string             `bson:"type"`
	Desc    string             `bson:"desc"`
	Value   float64            `bson:"value"`
}

func (d *transactionDoc) toDomain() *domain.Transaction {
	return &domain.Transaction{
		ID:      d.ID.Hex(),
		OwnerID: d.User.Hex(),
		Date:    d.Date,
		Alias:   d.Alias,
		Type:    domain.TransactionType(d.Type),
		Desc:    domain.TransactionDesc(d.Desc),
		Value:   d.Value,
		DateKey: d.DateKey,
	}
}

func transactionNotFound(id string) error {
	return domain.NotFoundf("transaction %s not found", id)
}

// scoped returns the {_id, user} filter. ok is false when either id is not
// a valid ObjectID, in which case nothing can match.
func scoped(id, ownerID string) (bson.M, bool) {
	oid, ok := objectID(id)
	if !ok {
		return nil, false
	}
	owner, ok := objectID(ownerID)
	if !ok {
		return nil, false
	}
	return bson.M{"_id": oid, "user": owner}, true
}

func (r *TransactionRepository) FindByOwner(ctx context.Context, ownerID string, skip, limit int) ([]*domain.Transaction, error) {
	opts := options.Find().
		SetSort(newestFirst).
		SetSkip(int64(skip)).
		SetLimit(int64(limit))
	return r.find(ctx, ownerID, opts)
}

func (r *TransactionRepository) FindAllByOwner(ctx context.Context, ownerID string) ([]*domain.Transaction, error) {
	return r.find(ctx, ownerID, options.Find().SetSort(newestFirst))
}

func (r *TransactionRepository) find(ctx context.Context, ownerID string, opts *options.FindOptions) ([]*domain.Transaction, error) {
	owner, ok := objectID(ownerID)
	if !ok {
		return []*domain.Transaction{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"user": owner}, opts)
	if err != nil {
		return nil, fmt.Errorf("find transactions: %w", err)
	}
	defer cur.Close(ctx)

	var docs []transactionDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode transactions: %w", err)
	}

	out := make([]*domain.Transaction, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toDomain())
	}
	return out, nil
}

func (r *TransactionRepository) CountByOwner(ctx context.Context, ownerID string) (int64, error) {
	owner, ok := objectID(ownerID)
	if !ok {
		return 0, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.M{"user": owner})
	if err != nil {
		return 0, fmt.Errorf("count transactions: %w", err)
	}
	return n, nil
}

func (r *TransactionRepository) FindOne(ctx context.Context, id, ownerID string) (*domain.Transaction, error) {
	filter, ok := scoped(id, ownerID)
	if !ok {
		return nil, transactionNotFound(id)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc transactionDoc
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, transactionNotFound(id)
		}
		return nil, fmt.Errorf("find transaction: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *TransactionRepository) Insert(ctx context.Context, t *domain.Transaction) error {
	owner, ok := objectID(t.OwnerID)
	if !ok {
		return domain.Validationf("invalid owner id %q", t.OwnerID)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := transactionDoc{
		User:    owner,
		Date:    t.Date,
		DateKey: t.DateKey,
		Alias:   t.Alias,
		Type:    string(t.Type),
		Desc:    string(t.Desc),
		Value:   t.Value,
	}
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		t.ID = oid.Hex()
	}
	return nil
}

func (r *TransactionRepository) Update(ctx context.Context, id, ownerID string, patch domain.TransactionPatch) (*domain.Transaction, error) {
	filter, ok := scoped(id, ownerID)
	if !ok {
		return nil, transactionNotFound(id)
	}

	set := bson.M{}
	if patch.Date != nil {
		set["date"] = *patch.Date
	}
	if patch.DateKey != nil {
		set["date_key"] = *patch.DateKey
	}
	if patch.Alias != nil {
		set["alias"] = *patch.Alias
	}
	if patch.Type != nil {
		set["type"] = string(*patch.Type)
	}
	if patch.Desc != nil {
		set["desc"] = string(*patch.Desc)
	}
	if patch.Value != nil {
		set["value"] = *patch.Value
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc transactionDoc
	if err := r.col.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, transactionNotFound(id)
		}
		return nil, fmt.Errorf("update transaction: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *TransactionRepository) Delete(ctx context.Context, id, ownerID string) error {
	filter, ok := scoped(id, ownerID)
	if !ok {
		return transactionNotFound(id)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if err := r.col.FindOneAndDelete(ctx, filter).Err(); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return transactionNotFound(id)
		}
		return fmt.Errorf("delete transaction: %w", err)
	}
	return nil
}

func (r *TransactionRepository) DeleteByOwner(ctx context.Context, ownerID string) (int64, error) {
	owner, ok := objectID(ownerID)
	if !ok {
		return 0, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteMany(ctx, bson.M{"user": owner})
	if err != nil {
		return 0, fmt.Errorf("delete transactions: %w", err)
	}
	return res.DeletedCount, nil
}

// EnsureIndexes creates necessary indexes on the transactions collection.
func (r *TransactionRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user", Value: 1}, {Key: "date_key", Value: -1}, {Key: "_id", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
