package service

import (
	"fmt"
	"testing"

	"ortprep_backend/internal/model"
	"ortprep_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestProgressPercent(t *testing.T) {
	assert.Equal(t, -1, progressPercent(0, 0))
	assert.Equal(t, -1, progressPercent(5, -1))
	assert.Equal(t, 0, progressPercent(0, 30))
	assert.Equal(t, 3, progressPercent(1, 30))
	assert.Equal(t, 50, progressPercent(15, 30))
	// floored, never rounded up
	assert.Equal(t, 66, progressPercent(2, 3))
	assert.Equal(t, 100, progressPercent(30, 30))
	assert.Equal(t, 103, progressPercent(31, 30))
}

func TestIsFinished(t *testing.T) {
	answered := func(n int) model.AnswerList {
		answers := make(model.AnswerList, n)
		for i := range answers {
			answers[i] = model.SubmittedAnswer{QuestionID: "q", SelectedOptionID: "a"}
		}
		return answers
	}

	inProgress := &model.TestProgress{Status: model.ProgressInProgress, Answers: answered(5)}
	assert.False(t, isFinished(inProgress, 30))

	full := &model.TestProgress{Status: model.ProgressInProgress, Answers: answered(30)}
	assert.True(t, isFinished(full, 30))

	completed := &model.TestProgress{Status: model.ProgressCompleted}
	assert.True(t, isFinished(completed, 30))

	// a zero-question test is never resumable
	empty := &model.TestProgress{Status: model.ProgressInProgress}
	assert.True(t, isFinished(empty, 0))
}

type fakeProgressStore struct {
	rows map[string]*model.TestProgress
}

func newFakeProgressStore() *fakeProgressStore {
	return &fakeProgressStore{rows: map[string]*model.TestProgress{}}
}

func progressKey(userID uint, testID string) string {
	return fmt.Sprintf("%d/%s", userID, testID)
}

func (f *fakeProgressStore) Upsert(p *model.TestProgress) (*model.TestProgress, error) {
	saved := *p
	saved.Revision = 1
	if prev, ok := f.rows[progressKey(p.UserID, p.TestID)]; ok {
		saved.Revision = prev.Revision + 1
	}
	f.rows[progressKey(p.UserID, p.TestID)] = &saved
	return &saved, nil
}

func (f *fakeProgressStore) Find(userID uint, testID string) (*model.TestProgress, error) {
	p, ok := f.rows[progressKey(userID, testID)]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (f *fakeProgressStore) ListByUser(userID uint) ([]model.TestProgress, error) {
	var out []model.TestProgress
	for _, p := range f.rows {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeProgressStore) Delete(userID uint, testID string) (bool, error) {
	if _, ok := f.rows[progressKey(userID, testID)]; !ok {
		return false, nil
	}
	delete(f.rows, progressKey(userID, testID))
	return true, nil
}

type fakeTestStore struct {
	tests     map[string]*model.Test
	questions map[string]int64
}

func (f *fakeTestStore) FindByID(id string) (*model.Test, error) {
	test, ok := f.tests[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return test, nil
}

func (f *fakeTestStore) CountQuestions(testID string) (int64, error) {
	return f.questions[testID], nil
}

func makeAnswers(n int) model.AnswerList {
	answers := make(model.AnswerList, n)
	for i := range answers {
		answers[i] = model.SubmittedAnswer{
			QuestionID:       fmt.Sprintf("q%d", i+1),
			SelectedOptionID: "a",
		}
	}
	return answers
}

func progressFixture() (*TestProgressService, *fakeProgressStore) {
	progress := newFakeProgressStore()
	tests := &fakeTestStore{
		tests:     map[string]*model.Test{"t1": {Title: "Алгебра", TimeLimit: 2700}},
		questions: map[string]int64{"t1": 30},
	}
	return &TestProgressService{ProgressRepo: progress, TestRepo: tests}, progress
}

func TestSaveUpsertsPartialAttempt(t *testing.T) {
	svc, _ := progressFixture()

	res, err := svc.Save(7, "t1", 4, makeAnswers(5), 2400)
	require.NoError(t, err)
	assert.False(t, res.Completed)
	require.NotNil(t, res.Progress)
	assert.Equal(t, model.ProgressInProgress, res.Progress.Status)
	assert.Equal(t, 1, res.Progress.Revision)

	// a second save overwrites and bumps the revision
	res, err = svc.Save(7, "t1", 9, makeAnswers(10), 2100)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Progress.Revision)

	detail, err := svc.Get(7, "t1")
	require.NoError(t, err)
	assert.Equal(t, "Алгебра", detail.Title)
	assert.Equal(t, 2700, detail.TimeLimit)
	assert.Equal(t, 30, detail.TotalQuestions)
	assert.Len(t, detail.Answers, 10)
}

func TestSaveFullAnswersCompletes(t *testing.T) {
	svc, store := progressFixture()

	_, err := svc.Save(7, "t1", 4, makeAnswers(5), 2400)
	require.NoError(t, err)

	res, err := svc.Save(7, "t1", 29, makeAnswers(30), 600)
	require.NoError(t, err)
	assert.True(t, res.Completed)
	assert.Equal(t, "t1", res.TestID)
	assert.Nil(t, res.Progress)
	assert.Empty(t, store.rows)

	// the attempt is gone, not readable as completed
	_, err = svc.Get(7, "t1")
	assert.ErrorIs(t, err, util.ErrProgressNotFound)
}

func TestSaveUnknownTest(t *testing.T) {
	svc, _ := progressFixture()

	_, err := svc.Save(7, "missing", 0, makeAnswers(1), 100)
	assert.ErrorIs(t, err, util.ErrTestNotFound)
}

func TestGetPurgesFinishedRow(t *testing.T) {
	svc, store := progressFixture()

	store.rows[progressKey(7, "t1")] = &model.TestProgress{
		UserID: 7,
		TestID: "t1",
		Status: model.ProgressCompleted,
	}

	_, err := svc.Get(7, "t1")
	assert.ErrorIs(t, err, util.ErrProgressNotFound)
	assert.Empty(t, store.rows)
}
