package profile_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/student-profiles-api/internal/profile"
	"github.com/aanand-mishra/student-profiles-api/internal/refdata"
	"github.com/aanand-mishra/student-profiles-api/internal/storage"
	"github.com/aanand-mishra/student-profiles-api/internal/types"
	"github.com/aanand-mishra/student-profiles-api/internal/validation"
)

// fakeGateway is a small in-memory implementation of storage.Gateway.
// Documents are kept as JSON so FindOne decodes like a real store would.
type fakeGateway struct {
	mu      sync.Mutex
	docs    map[types.EntityKind][][]byte
	emails  map[string]bool
	failErr error
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		docs:   make(map[types.EntityKind][][]byte),
		emails: make(map[string]bool),
	}
}

var _ storage.Gateway = (*fakeGateway)(nil)

func (f *fakeGateway) Create(_ context.Context, kind types.EntityKind, record any) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failErr != nil {
		return "", f.failErr
	}
	if r, ok := record.(types.ResumeDetails); ok {
		if f.emails[r.BasicInformation.Email] {
			return "", storage.ErrConflict
		}
		f.emails[r.BasicInformation.Email] = true
	}

	body, err := json.Marshal(record)
	if err != nil {
		return "", err
	}
	f.docs[kind] = append(f.docs[kind], body)
	return string(kind) + "-" + strconv.Itoa(len(f.docs[kind])), nil
}

func (f *fakeGateway) FindOne(_ context.Context, kind types.EntityKind, field string, value any, out any) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failErr != nil {
		return "", f.failErr
	}
	for i, body := range f.docs[kind] {
		var r types.ResumeDetails
		if err := json.Unmarshal(body, &r); err != nil {
			return "", err
		}
		if field == storage.ResumeEmailField && r.BasicInformation.Email == value {
			return string(kind) + "-" + strconv.Itoa(i+1), json.Unmarshal(body, out)
		}
	}
	return "", storage.ErrNotFound
}

func (f *fakeGateway) Close(context.Context) error { return nil }

func newService(t *testing.T, store storage.Gateway) *profile.Service {
	t.Helper()
	table, err := refdata.Parse([]byte(`{"B.Tech": ["CSE", "ECE"]}`))
	require.NoError(t, err)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return profile.New(validation.New(table), store, log)
}

func registration() map[string]any {
	return map[string]any{
		"firstName":        "Priya",
		"lastName":         "Sharma",
		"collegeName":      "IIT Hyderabad",
		"specialization":   "Undergraduate",
		"course":           "B.Tech",
		"branch":           "CSE",
		"passOutYear":      float64(2025),
		"cgpaOrPercentage": 8.7,
		"gender":           "Female",
		"githubProfile":    "https://github.com/priya",
		"linkedInProfile":  "https://www.linkedin.com/in/priya",
	}
}

func resume(email string) map[string]any {
	school := func() map[string]any {
		return map[string]any{
			"institutionName": "KV",
			"boardName":       "CBSE",
			"state":           "Telangana",
			"city":            "Hyderabad",
			"startDate":       "2015-06-01",
			"endDate":         "2017-03-31",
		}
	}
	grades := school()
	grades["stream"] = "MPC"

	return map[string]any{
		"basicInformation": map[string]any{
			"firstName": "Priya",
			"lastName":  "Sharma",
			"address":   map[string]any{"country": "India", "state": "Telangana", "city": "Hyderabad"},
			"email":     email,
			"mobile":    "9876543210",
		},
		"summary":   map[string]any{"summary": "Student"},
		"education": map[string]any{"ssc": school(), "grades11And12": grades},
	}
}

func TestSubmitRegistration(t *testing.T) {
	store := newFakeGateway()
	svc := newService(t, store)

	require.NoError(t, svc.SubmitRegistration(context.Background(), registration()))
	assert.Len(t, store.docs[types.KindRegistration], 1)
}

func TestSubmitRegistration_InvalidIsNotStored(t *testing.T) {
	store := newFakeGateway()
	svc := newService(t, store)

	raw := registration()
	raw["branch"] = "Mechanical"

	err := svc.SubmitRegistration(context.Background(), raw)

	var vs validation.Violations
	require.ErrorAs(t, err, &vs)
	assert.True(t, vs.Has("branch", validation.KindInvalidForCourse))
	assert.Equal(t, profile.OutcomeInvalid, profile.Outcome(err))
	assert.Empty(t, store.docs[types.KindRegistration])
}

func TestSubmitResumeDetails_AndLookup(t *testing.T) {
	ctx := context.Background()
	svc := newService(t, newFakeGateway())

	stored, err := svc.SubmitResumeDetails(ctx, resume("priya@example.com"))
	require.NoError(t, err)
	assert.NotEmpty(t, stored.ID)

	got, err := svc.GetResumeDetailsByEmail(ctx, "  priya@example.com ")
	require.NoError(t, err)
	assert.Equal(t, stored.ID, got.ID)
	assert.Equal(t, "Priya", got.BasicInformation.FirstName)
	assert.Equal(t, "MPC", *got.Education.Grades11And12.Stream)
}

func TestSubmitResumeDetails_DuplicateEmailIsConflict(t *testing.T) {
	ctx := context.Background()
	svc := newService(t, newFakeGateway())

	_, err := svc.SubmitResumeDetails(ctx, resume("dup@example.com"))
	require.NoError(t, err)

	_, err = svc.SubmitResumeDetails(ctx, resume("dup@example.com"))
	assert.ErrorIs(t, err, storage.ErrConflict)
	assert.Equal(t, profile.OutcomeConflict, profile.Outcome(err))
}

func TestSubmitResumeDetails_StorageFailure(t *testing.T) {
	store := newFakeGateway()
	store.failErr = errors.New("connection refused")
	svc := newService(t, store)

	_, err := svc.SubmitResumeDetails(context.Background(), resume("priya@example.com"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, storage.ErrConflict)
	assert.Equal(t, profile.OutcomeError, profile.Outcome(err))
}

func TestGetResumeDetailsByEmail_Errors(t *testing.T) {
	ctx := context.Background()
	svc := newService(t, newFakeGateway())

	_, err := svc.GetResumeDetailsByEmail(ctx, "   ")
	assert.ErrorIs(t, err, profile.ErrEmailRequired)

	_, err = svc.GetResumeDetailsByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.Equal(t, profile.OutcomeNotFound, profile.Outcome(err))
}
