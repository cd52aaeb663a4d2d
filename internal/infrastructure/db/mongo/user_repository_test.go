package mongo

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/foodmarket/platform-api/internal/core/domain"
)

func TestBuildProfileUpdate(t *testing.T) {
	at := time.Date(2026, 6, 1, 9, 30, 0, 0, time.FixedZone("EEST", 3*60*60))
	name := "Olena"
	locale := domain.LocaleUA

	tests := []struct {
		name  string
		patch domain.UserPatch
		want  bson.M
	}{
		{
			name:  "name only",
			patch: domain.UserPatch{Name: &name},
			want:  bson.M{"name": "Olena", "updated_at": at.UTC()},
		},
		{
			name:  "locale only",
			patch: domain.UserPatch{Locale: &locale},
			want:  bson.M{"locale": "ua", "updated_at": at.UTC()},
		},
		{
			name:  "both",
			patch: domain.UserPatch{Name: &name, Locale: &locale},
			want:  bson.M{"name": "Olena", "locale": "ua", "updated_at": at.UTC()},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			update := buildProfileUpdate(tt.patch, at)
			set, ok := update["$set"].(bson.M)
			if !ok {
				t.Fatalf("expected $set document, got %#v", update)
			}
			if len(set) != len(tt.want) {
				t.Fatalf("expected %d fields, got %#v", len(tt.want), set)
			}
			for k, v := range tt.want {
				got := set[k]
				if gt, isTime := got.(time.Time); isTime {
					if !gt.Equal(v.(time.Time)) || gt.Location() != time.UTC {
						t.Errorf("%s = %v, want %v in UTC", k, gt, v)
					}
					continue
				}
				if got != v {
					t.Errorf("%s = %v, want %v", k, got, v)
				}
			}
		})
	}
}

func TestMongoUser_RoundTrip(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	in := &domain.User{
		ID:           "665f1c2e9b1d4a0012345678",
		Email:        "shop@example.com",
		Name:         "Shop Owner",
		Role:         domain.RoleMarketAdmin,
		Locale:       domain.LocaleEN,
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	doc := toMongoUser(in)
	if doc.HashedPassword != in.PasswordHash {
		t.Fatalf("hashed_password not carried: %q", doc.HashedPassword)
	}

	out := doc.toDomain()
	if *out != *in {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", out, in)
	}
}
