package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/student-profiles-api/internal/storage"
	"github.com/aanand-mishra/student-profiles-api/internal/storage/sqlite"
	"github.com/aanand-mishra/student-profiles-api/internal/types"
)

func openTemp(t *testing.T) *sqlite.SQLite {
	t.Helper()
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "profiles.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(context.Background()) })
	return db
}

func resume(email string) types.ResumeDetails {
	return types.ResumeDetails{
		BasicInformation: types.BasicInformation{
			FirstName: "Priya",
			LastName:  "Sharma",
			Email:     email,
			Mobile:    "9876543210",
			Address:   types.Address{Country: "India", State: "Telangana", City: "Hyderabad"},
		},
		Summary: types.Summary{Summary: "CS student"},
		Skills:  []string{"Go"},
	}
}

func TestCreateAndFindOne(t *testing.T) {
	ctx := context.Background()
	db := openTemp(t)

	id, err := db.Create(ctx, types.KindResumeDetails, resume("priya@example.com"))
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	var got types.ResumeDetails
	foundID, err := db.FindOne(ctx, types.KindResumeDetails, storage.ResumeEmailField, "priya@example.com", &got)
	require.NoError(t, err)

	assert.Equal(t, id, foundID)
	assert.Equal(t, "Priya", got.BasicInformation.FirstName)
	assert.Equal(t, []string{"Go"}, got.Skills)
	assert.Nil(t, got.BasicInformation.MiddleName)
}

func TestCreate_DuplicateEmailConflicts(t *testing.T) {
	ctx := context.Background()
	db := openTemp(t)

	_, err := db.Create(ctx, types.KindResumeDetails, resume("dup@example.com"))
	require.NoError(t, err)

	_, err = db.Create(ctx, types.KindResumeDetails, resume("dup@example.com"))
	assert.ErrorIs(t, err, storage.ErrConflict)

	_, err = db.Create(ctx, types.KindResumeDetails, resume("other@example.com"))
	assert.NoError(t, err)
}

func TestCreate_RegistrationsAreNotEmailUnique(t *testing.T) {
	ctx := context.Background()
	db := openTemp(t)

	reg := types.Registration{FirstName: "Priya", Course: "B.Tech", Branch: "CSE"}
	_, err := db.Create(ctx, types.KindRegistration, reg)
	require.NoError(t, err)
	_, err = db.Create(ctx, types.KindRegistration, reg)
	assert.NoError(t, err)
}

func TestFindOne_NotFound(t *testing.T) {
	ctx := context.Background()
	db := openTemp(t)

	_, err := db.Create(ctx, types.KindResumeDetails, resume("priya@example.com"))
	require.NoError(t, err)

	var got types.ResumeDetails
	_, err = db.FindOne(ctx, types.KindResumeDetails, storage.ResumeEmailField, "nobody@example.com", &got)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	// the same value under another kind does not match
	_, err = db.FindOne(ctx, types.KindRegistration, storage.ResumeEmailField, "priya@example.com", &got)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestGatewayContract(t *testing.T) {
	var _ storage.Gateway = (*sqlite.SQLite)(nil)
}
