package comment

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore implements Store on a MongoDB collection.
type MongoStore struct {
	coll *mongo.Collection
}

func NewMongoStore(coll *mongo.Collection) *MongoStore {
	return &MongoStore{coll: coll}
}

// EnsureIndexes creates the unique id index and the (postId, createdAt)
// secondary index that backs per-post listing.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "commentId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "postId", Value: 1}, {Key: "createdAt", Value: 1}},
		},
	})
	if err != nil {
		return fmt.Errorf("create comment indexes: %w", err)
	}
	return nil
}

func (s *MongoStore) Insert(ctx context.Context, c *Comment) error {
	_, err := s.coll.InsertOne(ctx, c)
	return err
}

func (s *MongoStore) FindByID(ctx context.Context, commentID string) (*Comment, error) {
	var c Comment
	err := s.coll.FindOne(ctx, bson.M{"commentId": commentID}).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *MongoStore) MarkDeleted(ctx context.Context, commentID string) error {
	_, err := s.coll.UpdateOne(ctx,
		bson.M{"commentId": commentID},
		bson.M{"$set": bson.M{"isDeleted": true}},
	)
	return err
}

func (s *MongoStore) ListByPost(ctx context.Context, postID string) ([]Comment, error) {
	cursor, err := s.coll.Find(ctx,
		bson.M{"postId": postID, "isDeleted": false},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var comments []Comment
	if err := cursor.All(ctx, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}
