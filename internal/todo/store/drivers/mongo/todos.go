package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tickbox/tickbox/internal/todo/domain"
	"github.com/tickbox/tickbox/internal/todo/store"
)

type todosRepo struct {
	col *mongo.Collection
}

type todoDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Text        string             `bson:"text"`
	Completed   bool               `bson:"completed"`
	CompletedAt *int64             `bson:"completedAt"`
	Creator     primitive.ObjectID `bson:"_creator"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

func (r *todosRepo) CreateTodo(ctx context.Context, t domain.Todo) (domain.Todo, error) {
	creator, err := primitive.ObjectIDFromHex(t.OwnerID)
	if err != nil {
		return domain.Todo{}, store.ErrNotFound
	}

	now := time.Now().UTC()
	doc := todoDoc{
		ID:          primitive.NewObjectID(),
		Text:        t.Text,
		Completed:   t.Completed,
		CompletedAt: t.CompletedAt,
		Creator:     creator,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return domain.Todo{}, err
	}
	return doc.toDomain(), nil
}

func (r *todosRepo) ListTodosByOwner(ctx context.Context, ownerID string) ([]domain.Todo, error) {
	creator, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, store.ErrNotFound
	}

	cursor, err := r.col.Find(ctx, bson.M{"_creator": creator})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	todos := []domain.Todo{}
	for cursor.Next(ctx) {
		var doc todoDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		todos = append(todos, doc.toDomain())
	}
	return todos, cursor.Err()
}

func (r *todosRepo) GetTodoForOwner(ctx context.Context, id, ownerID string) (domain.Todo, error) {
	filter, err := ownedFilter(id, ownerID)
	if err != nil {
		return domain.Todo{}, err
	}

	var doc todoDoc
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		return domain.Todo{}, mapNotFound(err)
	}
	return doc.toDomain(), nil
}

func (r *todosRepo) UpdateTodoForOwner(ctx context.Context, id, ownerID string, change domain.TodoChange) (domain.Todo, error) {
	filter, err := ownedFilter(id, ownerID)
	if err != nil {
		return domain.Todo{}, err
	}

	// Completed and completedAt are always written together; a nil
	// CompletedAt marshals to BSON null, clearing the field.
	set := bson.M{
		"completed":   change.Completed,
		"completedAt": change.CompletedAt,
		"updatedAt":   time.Now().UTC(),
	}
	if change.Text != nil {
		set["text"] = *change.Text
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc todoDoc
	if err := r.col.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&doc); err != nil {
		return domain.Todo{}, mapNotFound(err)
	}
	return doc.toDomain(), nil
}

func (r *todosRepo) DeleteTodoForOwner(ctx context.Context, id, ownerID string) (domain.Todo, error) {
	filter, err := ownedFilter(id, ownerID)
	if err != nil {
		return domain.Todo{}, err
	}

	var doc todoDoc
	if err := r.col.FindOneAndDelete(ctx, filter).Decode(&doc); err != nil {
		return domain.Todo{}, mapNotFound(err)
	}
	return doc.toDomain(), nil
}

// ownedFilter builds the owner-scoped filter every single-item todo
// operation uses. A malformed id resolves to ErrNotFound so garbage
// ids are indistinguishable from absent records.
func ownedFilter(id, ownerID string) (bson.M, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, store.ErrNotFound
	}
	creator, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, store.ErrNotFound
	}
	return bson.M{"_id": oid, "_creator": creator}, nil
}

func (d todoDoc) toDomain() domain.Todo {
	return domain.Todo{
		ID:          d.ID.Hex(),
		Text:        d.Text,
		Completed:   d.Completed,
		CompletedAt: d.CompletedAt,
		OwnerID:     d.Creator.Hex(),
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}
