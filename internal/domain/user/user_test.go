package user

import (
	"errors"
	"testing"

	"github.com/beyond-ems/ems-attendance-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestIsAdmin(t *testing.T) {
	tests := []struct {
		rank       Rank
		isWebAdmin bool
		want       bool
	}{
		{RankDirektur, false, true},
		{RankWakdir, false, true},
		{RankHRD, false, true},
		{RankSekretaris, false, false},
		{RankDokterSpesialis, false, false},
		{RankDokterUmum, false, false},
		{RankPerawat, false, false},
		{RankTrainee, false, false},
		{RankTrainee, true, true},
		{Rank("unknown"), true, true},
		{Rank("direktur"), false, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsAdmin(tt.rank, tt.isWebAdmin), "IsAdmin(%q, %v)", tt.rank, tt.isWebAdmin)
	}
}

func TestUser_EffectiveName(t *testing.T) {
	u := User{Username: "medic", DisplayName: "Medic One"}
	assert.Equal(t, "Medic One", u.EffectiveName())

	u.CustomName = strPtr("Dr. Medic")
	assert.Equal(t, "Dr. Medic", u.EffectiveName())

	u.CustomName = strPtr("")
	assert.Equal(t, "Medic One", u.EffectiveName())

	u.DisplayName = ""
	assert.Equal(t, "medic", u.EffectiveName())
}

func TestLoginOrCreateRequest_Validate(t *testing.T) {
	req := LoginOrCreateRequest{DiscordID: "123456789012345678", Username: "medic"}
	assert.NoError(t, req.Validate())

	req = LoginOrCreateRequest{DiscordID: "abc", Username: ""}
	err := req.Validate()
	require.Error(t, err)

	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	fields := verrs.ToMap()
	assert.Contains(t, fields, "discord_id")
	assert.Contains(t, fields, "username")
}

func TestUpdateUserRequest_Validate(t *testing.T) {
	req := UpdateUserRequest{ID: "u1", Rank: strPtr("Perawat"), Department: strPtr("Fire Department")}
	assert.NoError(t, req.Validate())

	req = UpdateUserRequest{ID: "u1", Rank: strPtr(""), Department: strPtr("")}
	assert.NoError(t, req.Validate(), "blank rank and department mean keep current")

	req = UpdateUserRequest{ID: "u1", Rank: strPtr("Captain")}
	err := req.Validate()
	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Equal(t, "invalid rank", verrs.ToMap()["rank"])

	req = UpdateUserRequest{ID: "", Department: strPtr("Police")}
	err = req.Validate()
	require.True(t, errors.As(err, &verrs))
	assert.Contains(t, verrs.ToMap(), "id")
	assert.Contains(t, verrs.ToMap(), "department")
}

func TestUpdateUserRequest_Apply(t *testing.T) {
	existing := User{
		ID:         "u1",
		CustomName: strPtr("Old"),
		Rank:       RankTrainee,
		Department: DepartmentEMS,
		IsActive:   true,
		IsWebAdmin: false,
	}

	t.Run("rank only keeps other fields and clears custom name", func(t *testing.T) {
		req := UpdateUserRequest{ID: "u1", Rank: strPtr("Perawat")}
		got := req.Apply(existing)
		assert.Equal(t, RankPerawat, got.Rank)
		assert.Equal(t, DepartmentEMS, got.Department)
		assert.True(t, got.IsActive)
		assert.False(t, got.IsWebAdmin)
		assert.Nil(t, got.CustomName)
	})

	t.Run("blank custom name clears", func(t *testing.T) {
		req := UpdateUserRequest{ID: "u1", CustomName: strPtr("  ")}
		got := req.Apply(existing)
		assert.Nil(t, got.CustomName)
	})

	t.Run("custom name is trimmed", func(t *testing.T) {
		req := UpdateUserRequest{ID: "u1", CustomName: strPtr(" Dr. House ")}
		got := req.Apply(existing)
		require.NotNil(t, got.CustomName)
		assert.Equal(t, "Dr. House", *got.CustomName)
	})

	t.Run("flags are applied when present", func(t *testing.T) {
		req := UpdateUserRequest{ID: "u1", IsActive: boolPtr(false), IsWebAdmin: boolPtr(true)}
		got := req.Apply(existing)
		assert.False(t, got.IsActive)
		assert.True(t, got.IsWebAdmin)
		assert.True(t, got.IsAdmin())
	})
}

func TestListUserFilter_Normalize(t *testing.T) {
	f := ListUserFilter{}
	f.Normalize()
	assert.Equal(t, 20, f.Limit)

	f = ListUserFilter{Limit: 500, Offset: -3}
	f.Normalize()
	assert.Equal(t, 100, f.Limit)
	assert.Equal(t, 0, f.Offset)
}

func TestToResponse(t *testing.T) {
	u := User{ID: "u1", DiscordID: "123456789012345678", Username: "medic", DisplayName: "Medic", Rank: RankHRD, TotalMinutes: 125}
	got := ToResponse(u)
	assert.Equal(t, "Medic", got.Name)
	assert.Equal(t, "2h 5m", got.TotalHours)
	assert.True(t, got.IsAdmin)
}
