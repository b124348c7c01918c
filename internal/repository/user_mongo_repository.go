package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"vidtube/config"
	"vidtube/internal/model"
	"vidtube/internal/util"
)

const usersCollection = "users"

// userDocument : представление пользователя в коллекции users
type userDocument struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty"`
	Username           string             `bson:"username"`
	Email              string             `bson:"email"`
	FullName           string             `bson:"fullName"`
	AvatarURL          string             `bson:"avatar"`
	AvatarPublicID     string             `bson:"avatarPublicId"`
	CoverImageURL      string             `bson:"coverImage"`
	CoverImagePublicID string             `bson:"coverImagePublicId"`
	PasswordHash       string             `bson:"password"`
	RefreshToken       *string            `bson:"refreshToken"`
	CreatedAt          time.Time          `bson:"createdAt"`
	UpdatedAt          time.Time          `bson:"updatedAt"`
}

func (d *userDocument) toModel() *model.User {
	return &model.User{
		UUID:               d.ID.Hex(),
		Username:           d.Username,
		Email:              d.Email,
		FullName:           d.FullName,
		AvatarURL:          d.AvatarURL,
		AvatarPublicID:     d.AvatarPublicID,
		CoverImageURL:      d.CoverImageURL,
		CoverImagePublicID: d.CoverImagePublicID,
		PasswordHash:       d.PasswordHash,
		RefreshToken:       d.RefreshToken,
		CreatedAt:          d.CreatedAt,
		UpdatedAt:          d.UpdatedAt,
	}
}

// UserMongoRepository : хранилище учётных записей в MongoDB
type UserMongoRepository struct {
	users *mongodriver.Collection
}

// NewUserMongoRepository : создаёт репозиторий и уникальные индексы по username и email
func NewUserMongoRepository(ctx context.Context, db *config.MongoDatabase) (*UserMongoRepository, error) {
	r := &UserMongoRepository{users: db.Collection(usersCollection)}
	if err := r.ensureIndexes(ctx); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *UserMongoRepository) ensureIndexes(ctx context.Context) error {
	models := []mongodriver.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetName("uniq_username").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName("uniq_email").SetUnique(true),
		},
	}

	if _, err := r.users.Indexes().CreateMany(ctx, models); err != nil {
		return fmt.Errorf("[UserMongoRepo] ошибка создания индексов: %w", err)
	}
	return nil
}

func (r *UserMongoRepository) Create(ctx context.Context, user *model.User) (*model.User, error) {
	now := time.Now().UTC().Truncate(time.Millisecond)
	doc := userDocument{
		ID:                 primitive.NewObjectID(),
		Username:           strings.ToLower(user.Username),
		Email:              strings.ToLower(user.Email),
		FullName:           user.FullName,
		AvatarURL:          user.AvatarURL,
		AvatarPublicID:     user.AvatarPublicID,
		CoverImageURL:      user.CoverImageURL,
		CoverImagePublicID: user.CoverImagePublicID,
		PasswordHash:       user.PasswordHash,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if _, err := r.users.InsertOne(ctx, doc); err != nil {
		if mongodriver.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("[UserMongoRepo] %w", model.ErrUserAlreadyExists)
		}
		return nil, util.LogError(ctx, "[UserMongoRepo] ошибка вставки документа", err)
	}

	return doc.toModel(), nil
}

func (r *UserMongoRepository) FindByUUID(ctx context.Context, id string) (*model.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("[UserMongoRepo] %w", model.ErrUserNotFound)
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

// FindByUsernameOrEmail : совпадение по email важнее совпадения по username
func (r *UserMongoRepository) FindByUsernameOrEmail(ctx context.Context, username, email string) (*model.User, error) {
	if email != "" {
		user, err := r.findOne(ctx, bson.M{"email": strings.ToLower(email)})
		if err == nil || !errors.Is(err, model.ErrUserNotFound) || username == "" {
			return user, err
		}
	}
	return r.findOne(ctx, bson.M{"username": strings.ToLower(username)})
}

func (r *UserMongoRepository) UpdateRefreshToken(ctx context.Context, id string, refreshToken *string) error {
	return r.updateOne(ctx, id, bson.M{"refreshToken": refreshToken})
}

func (r *UserMongoRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	return r.updateOne(ctx, id, bson.M{"password": passwordHash})
}

func (r *UserMongoRepository) UpdateAccount(ctx context.Context, id string, update model.AccountUpdate) (*model.User, error) {
	return r.findAndUpdate(ctx, id, bson.M{
		"fullName": update.FullName,
		"email":    strings.ToLower(update.Email),
	})
}

func (r *UserMongoRepository) UpdateMedia(ctx context.Context, id string, kind model.MediaKind, media model.Media) (*model.User, error) {
	switch kind {
	case model.MediaAvatar:
		return r.findAndUpdate(ctx, id, bson.M{"avatar": media.URL, "avatarPublicId": media.PublicID})
	case model.MediaCoverImage:
		return r.findAndUpdate(ctx, id, bson.M{"coverImage": media.URL, "coverImagePublicId": media.PublicID})
	default:
		return nil, fmt.Errorf("[UserMongoRepo] неизвестный тип медиа: %s", kind)
	}
}

func (r *UserMongoRepository) findOne(ctx context.Context, filter interface{}) (*model.User, error) {
	var doc userDocument
	if err := r.users.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, fmt.Errorf("[UserMongoRepo] %w", model.ErrUserNotFound)
		}
		return nil, util.LogError(ctx, "[UserMongoRepo] ошибка поиска документа", err)
	}
	return doc.toModel(), nil
}

func (r *UserMongoRepository) updateOne(ctx context.Context, id string, set bson.M) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("[UserMongoRepo] %w", model.ErrUserNotFound)
	}

	set["updatedAt"] = time.Now().UTC()
	res, err := r.users.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return util.LogError(ctx, "[UserMongoRepo] ошибка обновления документа", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("[UserMongoRepo] %w", model.ErrUserNotFound)
	}
	return nil
}

func (r *UserMongoRepository) findAndUpdate(ctx context.Context, id string, set bson.M) (*model.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("[UserMongoRepo] %w", model.ErrUserNotFound)
	}

	set["updatedAt"] = time.Now().UTC()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc userDocument
	err = r.users.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&doc)
	if err != nil {
		switch {
		case errors.Is(err, mongodriver.ErrNoDocuments):
			return nil, fmt.Errorf("[UserMongoRepo] %w", model.ErrUserNotFound)
		case mongodriver.IsDuplicateKeyError(err):
			return nil, fmt.Errorf("[UserMongoRepo] %w", model.ErrUserAlreadyExists)
		}
		return nil, util.LogError(ctx, "[UserMongoRepo] ошибка обновления документа", err)
	}
	return doc.toModel(), nil
}
