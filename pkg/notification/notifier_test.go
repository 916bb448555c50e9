package notification

import (
	"context"
	"errors"
	"testing"

	"foodgram/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticFollowers map[uuid.UUID][]string

func (f staticFollowers) GetFollowerEmails(_ context.Context, authorID uuid.UUID) ([]string, error) {
	return f[authorID], nil
}

type recordingMailer struct {
	to     []string
	failOn map[string]bool
}

func (m *recordingMailer) SendMail(to, _, _ string) error {
	if m.failOn[to] {
		return errors.New("smtp down")
	}
	m.to = append(m.to, to)
	return nil
}

type channelConsumer struct {
	events []domain.RecipePublishedEvent
	errs   []error
}

func (c *channelConsumer) ConsumeRecipePublished(ctx context.Context, handler func(context.Context, domain.RecipePublishedEvent) error) error {
	for _, e := range c.events {
		c.errs = append(c.errs, handler(ctx, e))
	}
	return nil
}

func TestNotifierMailsFollowers(t *testing.T) {
	author := uuid.New()
	mailer := &recordingMailer{}
	n := NewNotifier(staticFollowers{author: {"a@example.com", "b@example.com"}}, mailer, "http://foodgram.test")

	err := n.HandleRecipePublished(context.Background(), domain.RecipePublishedEvent{
		RecipeID:   uuid.New(),
		AuthorID:   author,
		AuthorName: "chef",
		RecipeName: "Pancakes",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a@example.com", "b@example.com"}, mailer.to)
}

func TestNotifierWithoutFollowers(t *testing.T) {
	mailer := &recordingMailer{}
	n := NewNotifier(staticFollowers{}, mailer, "http://foodgram.test")

	require.NoError(t, n.HandleRecipePublished(context.Background(), domain.RecipePublishedEvent{AuthorID: uuid.New()}))
	assert.Empty(t, mailer.to)
}

func TestNotifierFailsOnlyWhenNothingWasSent(t *testing.T) {
	author := uuid.New()
	followers := staticFollowers{author: {"a@example.com", "b@example.com"}}
	event := domain.RecipePublishedEvent{RecipeID: uuid.New(), AuthorID: author}

	partial := NewNotifier(followers, &recordingMailer{failOn: map[string]bool{"a@example.com": true}}, "")
	assert.NoError(t, partial.HandleRecipePublished(context.Background(), event))

	total := NewNotifier(followers, &recordingMailer{failOn: map[string]bool{"a@example.com": true, "b@example.com": true}}, "")
	assert.Error(t, total.HandleRecipePublished(context.Background(), event))
}

func TestWorkerRunsNotifier(t *testing.T) {
	author := uuid.New()
	mailer := &recordingMailer{}
	consumer := &channelConsumer{events: []domain.RecipePublishedEvent{{RecipeID: uuid.New(), AuthorID: author}}}

	w := NewWorker(consumer, NewNotifier(staticFollowers{author: {"f@example.com"}}, mailer, ""))
	require.NoError(t, w.Run(context.Background()))
	assert.Equal(t, []string{"f@example.com"}, mailer.to)
	assert.Equal(t, []error{nil}, consumer.errs)
}
