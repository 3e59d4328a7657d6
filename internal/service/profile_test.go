package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devconnect/backend/internal/models"
	"github.com/devconnect/backend/internal/testhelpers"
	"github.com/devconnect/backend/internal/types"
)

func strptr(s string) *string { return &s }

func TestUpsertCreatesThenUpdates(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewProfileService(db)
	ctx := context.Background()
	user := testhelpers.CreateTestUser(t, db, "Ada", "ada@example.com")

	created, err := svc.Upsert(ctx, user.ID, &types.UpsertProfileRequest{
		Status:  "Developer",
		Skills:  "js, node, react",
		Company: strptr("Initech"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Developer", created.Status)
	assert.Equal(t, models.JSONBStringArray{"js", "node", "react"}, created.Skills)
	assert.Equal(t, "Initech", created.Company)
	assert.Equal(t, "Ada", created.User.Name)

	// A second submission updates in place and never duplicates.
	updated, err := svc.Upsert(ctx, user.ID, &types.UpsertProfileRequest{
		Status: "Senior Developer",
		Skills: "go",
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Senior Developer", updated.Status)

	var count int64
	require.NoError(t, db.Model(&models.Profile{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestUpsertPartialUpdateByPresence(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewProfileService(db)
	ctx := context.Background()
	user := testhelpers.CreateTestUser(t, db, "Ada", "ada@example.com")

	_, err := svc.Upsert(ctx, user.ID, &types.UpsertProfileRequest{
		Status:  "Developer",
		Skills:  "go",
		Website: strptr("https://ada.dev"),
		Twitter: strptr("https://twitter.com/ada"),
	})
	require.NoError(t, err)

	// Absent fields must not clear stored values.
	updated, err := svc.Upsert(ctx, user.ID, &types.UpsertProfileRequest{
		Status:   "Developer",
		Skills:   "go, sql",
		Location: strptr("Portland"),
	})
	require.NoError(t, err)
	assert.Equal(t, "https://ada.dev", updated.Website)
	assert.Equal(t, "https://twitter.com/ada", updated.Social.Twitter)
	assert.Equal(t, "Portland", updated.Location)
}

func TestSplitSkills(t *testing.T) {
	assert.Equal(t, models.JSONBStringArray{"js", "node", "react"}, splitSkills("js, node, react"))
	assert.Equal(t, models.JSONBStringArray{"go"}, splitSkills("  go  "))
	assert.Empty(t, splitSkills(" , ,"))
}

func TestGetByUserIDNotFound(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewProfileService(db)

	_, err := svc.GetByUserID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestAddExperienceNewestFirst(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewProfileService(db)
	ctx := context.Background()
	user := testhelpers.CreateTestUser(t, db, "Ada", "ada@example.com")

	_, err := svc.Upsert(ctx, user.ID, &types.UpsertProfileRequest{Status: "Developer", Skills: "go"})
	require.NoError(t, err)

	from := time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC)
	_, err = svc.AddExperience(ctx, user.ID, &types.AddExperienceRequest{
		Company: "Initech", Title: "Engineer", From: from,
	})
	require.NoError(t, err)

	profile, err := svc.AddExperience(ctx, user.ID, &types.AddExperienceRequest{
		Company: "Hooli", Title: "Senior Engineer", From: from.AddDate(2, 0, 0),
	})
	require.NoError(t, err)

	require.Len(t, profile.Experience, 2)
	assert.Equal(t, "Hooli", profile.Experience[0].Company)
	assert.Equal(t, "Initech", profile.Experience[1].Company)
}

func TestAddExperienceWithoutProfile(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewProfileService(db)
	user := testhelpers.CreateTestUser(t, db, "Ada", "ada@example.com")

	_, err := svc.AddExperience(context.Background(), user.ID, &types.AddExperienceRequest{
		Company: "Initech", Title: "Engineer", From: time.Now(),
	})
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestRemoveExperience(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewProfileService(db)
	ctx := context.Background()
	user := testhelpers.CreateTestUser(t, db, "Ada", "ada@example.com")

	_, err := svc.Upsert(ctx, user.ID, &types.UpsertProfileRequest{Status: "Developer", Skills: "go"})
	require.NoError(t, err)

	from := time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC)
	for _, company := range []string{"Initech", "Hooli", "Pied Piper"} {
		_, err = svc.AddExperience(ctx, user.ID, &types.AddExperienceRequest{
			Company: company, Title: "Engineer", From: from,
		})
		require.NoError(t, err)
	}

	profile, err := svc.GetByUserID(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, profile.Experience, 3)

	// Removing a known id removes exactly that entry.
	removed := profile.Experience[1]
	after, err := svc.RemoveExperience(ctx, user.ID, removed.ID)
	require.NoError(t, err)
	require.Len(t, after.Experience, 2)
	for _, e := range after.Experience {
		assert.NotEqual(t, removed.ID, e.ID)
	}
}

func TestRemoveExperienceUnknownIDLeavesListIntact(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewProfileService(db)
	ctx := context.Background()
	user := testhelpers.CreateTestUser(t, db, "Ada", "ada@example.com")

	_, err := svc.Upsert(ctx, user.ID, &types.UpsertProfileRequest{Status: "Developer", Skills: "go"})
	require.NoError(t, err)

	from := time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC)
	for _, company := range []string{"Initech", "Hooli"} {
		_, err = svc.AddExperience(ctx, user.ID, &types.AddExperienceRequest{
			Company: company, Title: "Engineer", From: from,
		})
		require.NoError(t, err)
	}

	_, err = svc.RemoveExperience(ctx, user.ID, uuid.New())
	assert.ErrorIs(t, err, ErrEntryNotFound)

	profile, err := svc.GetByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, profile.Experience, 2)
}

func TestEducationLifecycle(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewProfileService(db)
	ctx := context.Background()
	user := testhelpers.CreateTestUser(t, db, "Ada", "ada@example.com")

	_, err := svc.Upsert(ctx, user.ID, &types.UpsertProfileRequest{Status: "Student", Skills: "python"})
	require.NoError(t, err)

	from := time.Date(2015, 9, 1, 0, 0, 0, 0, time.UTC)
	profile, err := svc.AddEducation(ctx, user.ID, &types.AddEducationRequest{
		School: "MIT", Degree: "BSc", FieldOfStudy: "CS", From: from,
	})
	require.NoError(t, err)
	require.Len(t, profile.Education, 1)
	assert.Equal(t, "MIT", profile.Education[0].School)

	after, err := svc.RemoveEducation(ctx, user.ID, profile.Education[0].ID)
	require.NoError(t, err)
	assert.Empty(t, after.Education)

	_, err = svc.RemoveEducation(ctx, user.ID, uuid.New())
	assert.ErrorIs(t, err, ErrEntryNotFound)
}

func TestDeleteAccountCascades(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	profiles := NewProfileService(db)
	posts := NewPostService(db)
	ctx := context.Background()
	user := testhelpers.CreateTestUser(t, db, "Ada", "ada@example.com")
	other := testhelpers.CreateTestUser(t, db, "Marcus", "marcus@example.com")

	_, err := profiles.Upsert(ctx, user.ID, &types.UpsertProfileRequest{Status: "Developer", Skills: "go"})
	require.NoError(t, err)
	_, err = profiles.AddExperience(ctx, user.ID, &types.AddExperienceRequest{
		Company: "Initech", Title: "Engineer", From: time.Now(),
	})
	require.NoError(t, err)

	post, err := posts.Create(ctx, user.ID, "hello world")
	require.NoError(t, err)
	_, err = posts.Like(ctx, other.ID, post.ID)
	require.NoError(t, err)

	otherPost, err := posts.Create(ctx, other.ID, "still here")
	require.NoError(t, err)

	require.NoError(t, profiles.DeleteAccount(ctx, user.ID))

	var count int64
	db.Model(&models.User{}).Where("id = ?", user.ID).Count(&count)
	assert.Zero(t, count, "user should be gone")
	db.Model(&models.Profile{}).Where("user_id = ?", user.ID).Count(&count)
	assert.Zero(t, count, "profile should be gone")
	db.Model(&models.Post{}).Where("user_id = ?", user.ID).Count(&count)
	assert.Zero(t, count, "posts should be gone")
	db.Model(&models.Experience{}).Count(&count)
	assert.Zero(t, count, "experience entries should be gone")

	// Other users' data survives.
	_, err = posts.Get(ctx, otherPost.ID)
	assert.NoError(t, err)
}

func TestDeleteAccountWithoutProfile(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewProfileService(db)
	user := testhelpers.CreateTestUser(t, db, "Ada", "ada@example.com")

	assert.NoError(t, svc.DeleteAccount(context.Background(), user.ID))
}

func TestListProfiles(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewProfileService(db)
	ctx := context.Background()

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	for _, u := range []struct{ name, email string }{
		{"Ada", "ada@example.com"},
		{"Marcus", "marcus@example.com"},
	} {
		user := testhelpers.CreateTestUser(t, db, u.name, u.email)
		_, err := svc.Upsert(ctx, user.ID, &types.UpsertProfileRequest{Status: "Developer", Skills: "go"})
		require.NoError(t, err)
	}

	list, err = svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	for _, p := range list {
		assert.NotEmpty(t, p.User.Name)
	}
}
