package mongo

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/ghayamathia/course-catalog/internal/core/domain"
)

// created carries sub-millisecond digits that BSON datetimes drop.
var created = time.Date(2026, 5, 4, 10, 30, 15, 123456789, time.FixedZone("CST", -6*3600))

func TestEnrollmentDoc_CreatedAtSurvivesStorage(t *testing.T) {
	doc := newEnrollmentDoc(3, &domain.Enrollment{
		UserID:    1,
		CourseID:  2,
		Status:    domain.EnrollmentPending,
		CreatedAt: created,
	})

	raw, err := bson.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var stored mongoEnrollment
	if err := bson.Unmarshal(raw, &stored); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	returned, reread := doc.toDomain(), stored.toDomain()
	if !returned.CreatedAt.Equal(reread.CreatedAt) {
		t.Fatalf("create returned %v, read returned %v", returned.CreatedAt, reread.CreatedAt)
	}
	if returned.CreatedAt.Location() != time.UTC {
		t.Fatalf("expected UTC, got %v", returned.CreatedAt.Location())
	}
}

func TestUserDoc_CreatedAtSurvivesStorage(t *testing.T) {
	doc := newUserDoc(9, &domain.User{Email: "a@example.com", Role: domain.RoleUser, IsActive: true, CreatedAt: created})

	raw, err := bson.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var stored mongoUser
	if err := bson.Unmarshal(raw, &stored); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if got, want := stored.toDomain().CreatedAt, doc.toDomain().CreatedAt; !got.Equal(want) {
		t.Fatalf("create returned %v, read returned %v", want, got)
	}
	if want := created.Truncate(time.Millisecond); !doc.CreatedAt.Equal(want) {
		t.Fatalf("expected %v, got %v", want, doc.CreatedAt)
	}
}
