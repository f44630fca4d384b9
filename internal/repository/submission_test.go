package repository_test

import (
	"errors"
	"testing"

	"github.com/questx-lab/rewards/internal/entity"
	"github.com/questx-lab/rewards/internal/repository"
	"github.com/questx-lab/rewards/pkg/testutil"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func Test_submissionRepository_UniquePost(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	repo := repository.NewSubmissionRepository()

	require.NoError(t, repo.Create(ctx, &entity.Submission{
		Base:   entity.Base{ID: "s1"},
		UserID: testutil.User1.ID,
		PostID: "42",
		Status: entity.SubmissionScored,
	}))

	err := repo.Create(ctx, &entity.Submission{
		Base:   entity.Base{ID: "s2"},
		UserID: testutil.User2.ID,
		PostID: "42",
	})
	require.Error(t, err)

	s, err := repo.GetByPostID(ctx, "42")
	require.NoError(t, err)
	require.Equal(t, "s1", s.ID)

	_, err = repo.GetByPostIDAndUserID(ctx, "42", testutil.User2.ID)
	require.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	s, err = repo.GetByPostIDAndUserID(ctx, "42", testutil.User1.ID)
	require.NoError(t, err)
	require.Equal(t, entity.SubmissionScored, s.Status)
}
