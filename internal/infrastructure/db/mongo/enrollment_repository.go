package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ghayamathia/course-catalog/internal/core/domain"
	"github.com/ghayamathia/course-catalog/internal/core/ports"
)

const collectionEnrollments = "enrollments"

type EnrollmentRepository struct {
	db  *mongo.Database
	col *mongo.Collection
}

var _ ports.EnrollmentRepository = (*EnrollmentRepository)(nil)

func NewEnrollmentRepository(db *mongo.Database) *EnrollmentRepository {
	return &EnrollmentRepository{db: db, col: db.Collection(collectionEnrollments)}
}

type mongoEnrollment struct {
	ID        int64     `bson:"_id"`
	UserID    int64     `bson:"user_id"`
	CourseID  int64     `bson:"course_id"`
	Status    string    `bson:"status"`
	CreatedAt time.Time `bson:"created_at"`
}

func (me mongoEnrollment) toDomain() *domain.Enrollment {
	return &domain.Enrollment{
		ID:        me.ID,
		UserID:    me.UserID,
		CourseID:  me.CourseID,
		Status:    domain.EnrollmentStatus(me.Status),
		CreatedAt: me.CreatedAt.UTC(),
	}
}

var newestFirst = bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}

func (r *EnrollmentRepository) findOne(ctx context.Context, filter bson.M) (*domain.Enrollment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var me mongoEnrollment
	if err := r.col.FindOne(ctx, filter).Decode(&me); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrEnrollmentNotFound
		}
		return nil, fmt.Errorf("find enrollment: %w", err)
	}
	return me.toDomain(), nil
}

func (r *EnrollmentRepository) FindByID(ctx context.Context, id int64) (*domain.Enrollment, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *EnrollmentRepository) FindByUserAndCourse(ctx context.Context, userID, courseID int64) (*domain.Enrollment, error) {
	return r.findOne(ctx, bson.M{"user_id": userID, "course_id": courseID})
}

func newEnrollmentDoc(id int64, e *domain.Enrollment) mongoEnrollment {
	return mongoEnrollment{
		ID:        id,
		UserID:    e.UserID,
		CourseID:  e.CourseID,
		Status:    string(e.Status),
		CreatedAt: storedTime(e.CreatedAt),
	}
}

func (r *EnrollmentRepository) Create(ctx context.Context, e *domain.Enrollment) (*domain.Enrollment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := nextID(ctx, r.db, collectionEnrollments)
	if err != nil {
		return nil, err
	}

	doc := newEnrollmentDoc(id, e)
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateEnrollment
		}
		return nil, fmt.Errorf("insert enrollment: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *EnrollmentRepository) list(ctx context.Context, filter bson.M) ([]*domain.Enrollment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(newestFirst))
	if err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoEnrollment
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode enrollments: %w", err)
	}

	out := make([]*domain.Enrollment, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (r *EnrollmentRepository) ListByUser(ctx context.Context, userID int64) ([]*domain.Enrollment, error) {
	return r.list(ctx, bson.M{"user_id": userID})
}

func (r *EnrollmentRepository) ListAll(ctx context.Context) ([]*domain.Enrollment, error) {
	return r.list(ctx, bson.M{})
}

func (r *EnrollmentRepository) UpdateStatus(ctx context.Context, id int64, status domain.EnrollmentStatus) (*domain.Enrollment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var me mongoEnrollment
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": string(status)}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&me)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrEnrollmentNotFound
		}
		return nil, fmt.Errorf("update enrollment: %w", err)
	}
	return me.toDomain(), nil
}

// EnsureIndexes creates the (user_id, course_id) unique index and the
// secondary indexes used by listing and cascade deletes.
func (r *EnrollmentRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "course_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uq_enrollment_user_course"),
		},
		{Keys: bson.D{{Key: "course_id", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
