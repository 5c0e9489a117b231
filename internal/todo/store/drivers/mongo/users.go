package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/tickbox/tickbox/internal/todo/domain"
	"github.com/tickbox/tickbox/internal/todo/store"
)

type usersRepo struct {
	col *mongo.Collection
}

type tokenDoc struct {
	Access string `bson:"access"`
	Token  string `bson:"token"`
}

type userDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Email     string             `bson:"email"`
	Password  string             `bson:"password"`
	Tokens    []tokenDoc         `bson:"tokens"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) (domain.User, error) {
	now := time.Now().UTC()
	doc := userDoc{
		ID:        primitive.NewObjectID(),
		Email:     u.Email,
		Password:  u.PasswordHash,
		Tokens:    toTokenDocs(u.Tokens),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.User{}, store.ErrAlreadyExists
		}
		return domain.User{}, err
	}

	return doc.toDomain(), nil
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.User{}, store.ErrNotFound
	}

	var doc userDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return doc.toDomain(), nil
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	var doc userDoc
	if err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&doc); err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return doc.toDomain(), nil
}

func (r *usersRepo) GetUserByAuthToken(ctx context.Context, id, access, token string) (domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.User{}, store.ErrNotFound
	}

	// $elemMatch keeps the access and token comparison on the same
	// array entry.
	filter := bson.M{
		"_id": oid,
		"tokens": bson.M{"$elemMatch": bson.M{
			"access": access,
			"token":  token,
		}},
	}

	var doc userDoc
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return doc.toDomain(), nil
}

func (r *usersRepo) AppendToken(ctx context.Context, userID string, t domain.AuthToken) error {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return store.ErrNotFound
	}

	res, err := r.col.UpdateByID(ctx, oid, bson.M{
		"$push": bson.M{"tokens": tokenDoc{Access: t.Access, Token: t.Token}},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *usersRepo) RemoveToken(ctx context.Context, userID, token string) error {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return store.ErrNotFound
	}

	// $pull of an absent entry matches the user and changes nothing,
	// which is exactly the idempotence the revocation contract wants.
	res, err := r.col.UpdateByID(ctx, oid, bson.M{
		"$pull": bson.M{"tokens": bson.M{"token": token}},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func toTokenDocs(tokens []domain.AuthToken) []tokenDoc {
	docs := make([]tokenDoc, 0, len(tokens))
	for _, t := range tokens {
		docs = append(docs, tokenDoc{Access: t.Access, Token: t.Token})
	}
	return docs
}

func (d userDoc) toDomain() domain.User {
	tokens := make([]domain.AuthToken, 0, len(d.Tokens))
	for _, t := range d.Tokens {
		tokens = append(tokens, domain.AuthToken{Access: t.Access, Token: t.Token})
	}
	return domain.User{
		ID:           d.ID.Hex(),
		Email:        d.Email,
		PasswordHash: d.Password,
		Tokens:       tokens,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}
