package profile

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devlinkhq/devlink/adapters/event"
	"github.com/devlinkhq/devlink/internal/domain/profile"
	"github.com/devlinkhq/devlink/pkg/logger"
)

// fakeProfileRepo mimics the Postgres repo's optimistic versioning: readers
// get snapshots, writers only land when the stored version still matches.
type fakeProfileRepo struct {
	mu       sync.Mutex
	profiles map[uuid.UUID]*profile.Profile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[uuid.UUID]*profile.Profile)}
}

func cloneProfile(p *profile.Profile) *profile.Profile {
	c := *p
	c.Skills = append([]string(nil), p.Skills...)
	c.Experience = append([]profile.Experience(nil), p.Experience...)
	c.Education = append([]profile.Education(nil), p.Education...)
	return &c
}

func (f *fakeProfileRepo) GetByOwner(_ context.Context, ownerID uuid.UUID) (*profile.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[ownerID]
	if !ok {
		return nil, profile.ErrProfileNotFound
	}
	return cloneProfile(p), nil
}

func (f *fakeProfileRepo) List(_ context.Context) ([]*profile.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*profile.Profile, 0, len(f.profiles))
	for _, p := range f.profiles {
		out = append(out, cloneProfile(p))
	}
	return out, nil
}

func (f *fakeProfileRepo) Create(_ context.Context, p *profile.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.profiles[p.OwnerID]; ok {
		return profile.ErrVersionConflict
	}
	p.Version = 1
	f.profiles[p.OwnerID] = cloneProfile(p)
	return nil
}

func (f *fakeProfileRepo) Update(_ context.Context, p *profile.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.profiles[p.OwnerID]
	if !ok || stored.Version != p.Version {
		return profile.ErrVersionConflict
	}
	p.Version++
	f.profiles[p.OwnerID] = cloneProfile(p)
	return nil
}

func (f *fakeProfileRepo) DeleteCascade(_ context.Context, ownerID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.profiles[ownerID]; !ok {
		return profile.ErrProfileNotFound
	}
	delete(f.profiles, ownerID)
	return nil
}

type fakeListCache struct {
	mu      sync.Mutex
	entries []*profile.Profile
	warm    bool
}

func (f *fakeListCache) Get(_ context.Context) ([]*profile.Profile, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.entries, f.warm
}

func (f *fakeListCache) Set(_ context.Context, profiles []*profile.Profile) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries, f.warm = profiles, true
}

type fakePublisher struct {
	mu     sync.Mutex
	events []event.ProfileEventPayload
}

func (f *fakePublisher) PublishProfileEvent(_ context.Context, payload event.ProfileEventPayload) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, payload)
	return nil
}

func newTestUseCase() (*ProfileUseCase, *fakeProfileRepo, *fakePublisher) {
	repo := newFakeProfileRepo()
	pub := &fakePublisher{}
	uc := NewProfileUseCase(repo, &fakeListCache{}, pub, logger.NewNop())
	return uc, repo, pub
}

func strPtr(s string) *string { return &s }

func TestUpsert_CreateParsesSkills(t *testing.T) {
	uc, _, _ := newTestUseCase()
	owner := uuid.New()

	p, err := uc.Upsert(context.Background(), UpsertProfileInput{
		OwnerID: owner,
		Status:  "Developer",
		Skills:  "js, css, html",
	})

	require.NoError(t, err)
	assert.Equal(t, owner, p.OwnerID)
	assert.Equal(t, "Developer", p.Status)
	assert.Equal(t, []string{"js", "css", "html"}, p.Skills)
	assert.Empty(t, p.Company, "unsupplied fields stay empty on create")
}

func TestUpsert_PartialMergePreservesUntouchedFields(t *testing.T) {
	uc, _, _ := newTestUseCase()
	owner := uuid.New()
	ctx := context.Background()

	_, err := uc.Upsert(ctx, UpsertProfileInput{
		OwnerID: owner,
		Status:  "Developer",
		Skills:  "go",
		Company: strPtr("Acme"),
		Youtube: strPtr("https://youtube.com/acme"),
	})
	require.NoError(t, err)

	p, err := uc.Upsert(ctx, UpsertProfileInput{
		OwnerID:  owner,
		Status:   "Senior Developer",
		Skills:   "go, sql",
		Location: strPtr("Berlin"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Senior Developer", p.Status, "supplied fields overwrite")
	assert.Equal(t, []string{"go", "sql"}, p.Skills)
	assert.Equal(t, "Berlin", p.Location)
	assert.Equal(t, "Acme", p.Company, "unsupplied fields persist from the first call")
	assert.Equal(t, "https://youtube.com/acme", p.Social.Youtube)
}

func TestUpsert_Idempotent(t *testing.T) {
	uc, _, _ := newTestUseCase()
	owner := uuid.New()
	ctx := context.Background()
	input := UpsertProfileInput{
		OwnerID: owner,
		Status:  "Developer",
		Skills:  "go",
		Bio:     strPtr("hello"),
	}

	first, err := uc.Upsert(ctx, input)
	require.NoError(t, err)
	second, err := uc.Upsert(ctx, input)
	require.NoError(t, err)

	assert.Equal(t, first.Status, second.Status)
	assert.Equal(t, first.Skills, second.Skills)
	assert.Equal(t, first.Bio, second.Bio)
	assert.Equal(t, first.Social, second.Social)
}

func TestAddExperience_InsertThenUpdateByNaturalKey(t *testing.T) {
	uc, _, _ := newTestUseCase()
	owner := uuid.New()
	ctx := context.Background()
	from, _ := time.Parse("2006-01-02", "2020-01-01")

	_, err := uc.Upsert(ctx, UpsertProfileInput{OwnerID: owner, Status: "Dev", Skills: "go"})
	require.NoError(t, err)

	p, err := uc.AddExperience(ctx, ExperienceInput{
		OwnerID: owner, Title: "Eng", Company: "Acme", From: from,
	})
	require.NoError(t, err)
	require.Len(t, p.Experience, 1)
	firstID := p.Experience[0].ID

	p, err = uc.AddExperience(ctx, ExperienceInput{
		OwnerID: owner, Title: "Eng", Company: "Acme", From: from, Description: "updated",
	})
	require.NoError(t, err)
	require.Len(t, p.Experience, 1, "same natural key must not duplicate")
	assert.Equal(t, "updated", p.Experience[0].Description)
	assert.Equal(t, firstID, p.Experience[0].ID)
}

func TestAddExperience_WithoutProfileFails(t *testing.T) {
	uc, _, _ := newTestUseCase()

	_, err := uc.AddExperience(context.Background(), ExperienceInput{
		OwnerID: uuid.New(), Title: "Eng", Company: "Acme",
	})

	assert.ErrorIs(t, err, profile.ErrProfileNotFound)
}

func TestRemoveExperience_UnknownID(t *testing.T) {
	uc, _, _ := newTestUseCase()
	owner := uuid.New()
	ctx := context.Background()

	_, err := uc.Upsert(ctx, UpsertProfileInput{OwnerID: owner, Status: "Dev", Skills: "go"})
	require.NoError(t, err)
	_, err = uc.AddExperience(ctx, ExperienceInput{OwnerID: owner, Title: "Eng", Company: "Acme"})
	require.NoError(t, err)

	_, err = uc.RemoveExperience(ctx, owner, uuid.New())
	assert.ErrorIs(t, err, profile.ErrEntryNotFound)

	p, err := uc.GetByOwner(ctx, owner)
	require.NoError(t, err)
	assert.Len(t, p.Experience, 1, "failed removal leaves list unchanged")
}

func TestRemoveEducation_RemovesExactlyOne(t *testing.T) {
	uc, _, _ := newTestUseCase()
	owner := uuid.New()
	ctx := context.Background()

	_, err := uc.Upsert(ctx, UpsertProfileInput{OwnerID: owner, Status: "Dev", Skills: "go"})
	require.NoError(t, err)
	_, err = uc.AddEducation(ctx, EducationInput{OwnerID: owner, School: "MIT", Degree: "BSc", FieldOfStudy: "CS"})
	require.NoError(t, err)
	p, err := uc.AddEducation(ctx, EducationInput{OwnerID: owner, School: "ETH", Degree: "MSc", FieldOfStudy: "CS"})
	require.NoError(t, err)
	require.Len(t, p.Education, 2)
	keep := p.Education[1]

	p, err = uc.RemoveEducation(ctx, owner, p.Education[0].ID)
	require.NoError(t, err)
	require.Len(t, p.Education, 1)
	assert.Equal(t, keep.ID, p.Education[0].ID)
}

func TestConcurrentExperienceAdds_NoLostUpdate(t *testing.T) {
	uc, _, _ := newTestUseCase()
	owner := uuid.New()
	ctx := context.Background()

	_, err := uc.Upsert(ctx, UpsertProfileInput{OwnerID: owner, Status: "Dev", Skills: "go"})
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	titles := []string{"Backend Eng", "Frontend Eng"}
	for i := range titles {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.AddExperience(ctx, ExperienceInput{
				OwnerID: owner, Title: titles[i], Company: "Acme",
			})
		}(i)
	}
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])

	p, err := uc.GetByOwner(ctx, owner)
	require.NoError(t, err)
	assert.Len(t, p.Experience, 2, "both concurrent writers must land")
}

func TestDeleteAccount_PublishesDeletedEvent(t *testing.T) {
	uc, repo, pub := newTestUseCase()
	owner := uuid.New()
	ctx := context.Background()

	_, err := uc.Upsert(ctx, UpsertProfileInput{OwnerID: owner, Status: "Dev", Skills: "go"})
	require.NoError(t, err)

	require.NoError(t, uc.DeleteAccount(ctx, owner))

	_, err = repo.GetByOwner(ctx, owner)
	assert.ErrorIs(t, err, profile.ErrProfileNotFound)

	require.NotEmpty(t, pub.events)
	assert.Equal(t, event.EventProfileDeleted, pub.events[len(pub.events)-1].EventType)
}

func TestList_ServesFromWarmCache(t *testing.T) {
	repo := newFakeProfileRepo()
	cache := &fakeListCache{}
	uc := NewProfileUseCase(repo, cache, &fakePublisher{}, logger.NewNop())
	ctx := context.Background()

	_, err := uc.Upsert(ctx, UpsertProfileInput{OwnerID: uuid.New(), Status: "Dev", Skills: "go"})
	require.NoError(t, err)

	first, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, first, 1)

	// a second owner bypassing cache invalidation stays invisible until TTL
	_, err = uc.Upsert(ctx, UpsertProfileInput{OwnerID: uuid.New(), Status: "Dev", Skills: "go"})
	require.NoError(t, err)

	second, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, second, 1, "warm cache short-circuits the repository")
}
