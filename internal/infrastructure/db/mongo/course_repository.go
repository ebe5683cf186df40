package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ghayamathia/course-catalog/internal/core/domain"
	"github.com/ghayamathia/course-catalog/internal/core/ports"
)

const collectionCourses = "courses"

type CourseRepository struct {
	db          *mongo.Database
	col         *mongo.Collection
	enrollments *mongo.Collection
}

var _ ports.CourseRepository = (*CourseRepository)(nil)

func NewCourseRepository(db *mongo.Database) *CourseRepository {
	return &CourseRepository{
		db:          db,
		col:         db.Collection(collectionCourses),
		enrollments: db.Collection(collectionEnrollments),
	}
}

type mongoCourse struct {
	ID              int64  `bson:"_id"`
	Title           string `bson:"title"`
	Description     string `bson:"description"`
	Level           string `bson:"level"`
	DurationMinutes int    `bson:"duration_minutes"`
	PriceCents      int    `bson:"price_cents"`
	Published       bool   `bson:"published"`
}

func (mc mongoCourse) toDomain() *domain.Course {
	return &domain.Course{
		ID:              mc.ID,
		Title:           mc.Title,
		Description:     mc.Description,
		Level:           mc.Level,
		DurationMinutes: mc.DurationMinutes,
		PriceCents:      mc.PriceCents,
		Published:       mc.Published,
	}
}

func fromCourse(id int64, c *domain.Course) mongoCourse {
	return mongoCourse{
		ID:              id,
		Title:           c.Title,
		Description:     c.Description,
		Level:           c.Level,
		DurationMinutes: c.DurationMinutes,
		PriceCents:      c.PriceCents,
		Published:       c.Published,
	}
}

// List returns courses with the highest id first.
func (r *CourseRepository) List(ctx context.Context, filter ports.CourseFilter) ([]*domain.Course, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	q := bson.M{}
	if filter.PublishedOnly {
		q["published"] = true
	}

	cur, err := r.col.Find(ctx, q, options.Find().SetSort(bson.D{{Key: "_id", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoCourse
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode courses: %w", err)
	}

	courses := make([]*domain.Course, 0, len(docs))
	for _, d := range docs {
		courses = append(courses, d.toDomain())
	}
	return courses, nil
}

func (r *CourseRepository) FindByID(ctx context.Context, id int64) (*domain.Course, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mc mongoCourse
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&mc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCourseNotFound
		}
		return nil, fmt.Errorf("find course: %w", err)
	}
	return mc.toDomain(), nil
}

func (r *CourseRepository) Create(ctx context.Context, course *domain.Course) (*domain.Course, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := nextID(ctx, r.db, collectionCourses)
	if err != nil {
		return nil, err
	}

	doc := fromCourse(id, course)
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert course: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *CourseRepository) Update(ctx context.Context, course *domain.Course) (*domain.Course, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := fromCourse(course.ID, course)
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": course.ID}, doc)
	if err != nil {
		return nil, fmt.Errorf("update course: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrCourseNotFound
	}
	return doc.toDomain(), nil
}

// Delete removes the course and then every enrollment that referenced it.
func (r *CourseRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete course: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrCourseNotFound
	}

	if _, err := r.enrollments.DeleteMany(ctx, bson.M{"course_id": id}); err != nil {
		return fmt.Errorf("delete course enrollments: %w", err)
	}
	return nil
}
