package history

import (
	"context"
	"errors"
	"strings"
	"testing"

	"finance-insights-be/internal/entity"
	"finance-insights-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHistoryRepo struct {
	created []*entity.ChatHistory
	err     error
}

func (f *fakeHistoryRepo) Create(ctx context.Context, history *entity.ChatHistory) error {
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, history)
	return nil
}

func (f *fakeHistoryRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatHistory, error) {
	return nil, nil
}

func (f *fakeHistoryRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatHistory, error) {
	return nil, nil
}

func (f *fakeHistoryRepo) Delete(ctx context.Context, id uuid.UUID, userId string) (int64, error) {
	return 0, nil
}

func TestRecordStoresExchange(t *testing.T) {
	repo := &fakeHistoryRepo{}
	r := NewRecorder(repo)

	id, err := r.Record(context.Background(), "what moved the market", "Stocks rallied.", "chatgpt", "US", "user-1")
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, id)

	require.Len(t, repo.created, 1)
	entry := repo.created[0]
	assert.Equal(t, id, entry.Id)
	assert.Equal(t, "user-1", entry.UserId)
	assert.Equal(t, "what moved the market", entry.Title)
	assert.Equal(t, "chatgpt", entry.Model)
	assert.Equal(t, "US", entry.Region)

	require.Len(t, entry.Messages, 2)
	userMsg, assistantMsg := entry.Messages[0], entry.Messages[1]
	assert.Equal(t, "user", userMsg.Role)
	assert.Equal(t, "what moved the market", userMsg.Content)
	assert.True(t, strings.HasPrefix(userMsg.Id, "msg-"))
	assert.True(t, strings.HasSuffix(userMsg.Id, "-user"))

	assert.Equal(t, "assistant", assistantMsg.Role)
	assert.Equal(t, "Stocks rallied.", assistantMsg.Content)
	assert.True(t, strings.HasSuffix(assistantMsg.Id, "-assistant"))
	assert.Equal(t, "chatgpt", assistantMsg.Model)
	assert.Equal(t, "US", assistantMsg.Region)
}

func TestRecordTruncatesLongTitles(t *testing.T) {
	repo := &fakeHistoryRepo{}
	r := NewRecorder(repo)

	query := strings.Repeat("q", 80)
	_, err := r.Record(context.Background(), query, "answer", "llama", "", "u")
	require.NoError(t, err)

	title := repo.created[0].Title
	assert.Equal(t, query[:50]+"...", title)
	// The full query is still preserved in the message itself.
	assert.Equal(t, query, repo.created[0].Messages[0].Content)
}

func TestRecordDefaultsRegionAndUser(t *testing.T) {
	repo := &fakeHistoryRepo{}
	r := NewRecorder(repo)

	_, err := r.Record(context.Background(), "q", "a", "chatgpt", "", "")
	require.NoError(t, err)

	entry := repo.created[0]
	assert.Equal(t, "Global", entry.Region)
	assert.Equal(t, "anonymous", entry.UserId)
}

func TestRecordSanitizesAnswerAgain(t *testing.T) {
	repo := &fakeHistoryRepo{}
	r := NewRecorder(repo)

	_, err := r.Record(context.Background(), "q", "<think>leak</think>Clean answer.", "deepseek", "Asia", "u")
	require.NoError(t, err)
	assert.Equal(t, "Clean answer.", repo.created[0].Messages[1].Content)
}

func TestRecordPropagatesRepoFailure(t *testing.T) {
	repo := &fakeHistoryRepo{err: errors.New("db down")}
	r := NewRecorder(repo)

	id, err := r.Record(context.Background(), "q", "a", "chatgpt", "US", "u")
	assert.Error(t, err)
	assert.Equal(t, uuid.Nil, id)
}
