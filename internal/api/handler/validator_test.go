package handler

import (
	"testing"
)

func TestRequestValidator_Messages(t *testing.T) {
	v := NewValidator()

	cases := []struct {
		name string
		in   any
		want string
	}{
		{"valid", &registerRequest{Email: "ada@example.com", Password: "secret"}, ""},
		{"missing both", &registerRequest{}, "email is required; password is required"},
		{"bad email", &registerRequest{Email: "nope", Password: "x"}, "email must be a valid email"},
		{"course id", &enrollRequest{}, "course_id is required"},
		{"negative course id", &enrollRequest{CourseID: -1}, "course_id must be greater than 0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := v.Validate(tc.in)
			if tc.want == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || err.Error() != tc.want {
				t.Fatalf("expected %q, got %v", tc.want, err)
			}
		})
	}
}
