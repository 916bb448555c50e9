package notification

import (
	"context"
	"errors"
	"strings"

	"foodgram/domain"
	"foodgram/internal/logging"
	"foodgram/internal/utils/mailing"

	"github.com/google/uuid"
)

type (
	// FollowerLister lists the email addresses subscribed to an author.
	FollowerLister interface {
		GetFollowerEmails(ctx context.Context, authorID uuid.UUID) ([]string, error)
	}

	Notifier interface {
		HandleRecipePublished(ctx context.Context, event domain.RecipePublishedEvent) error
	}

	notifier struct {
		followers FollowerLister
		mailer    mailing.Mailer
		appURL    string
	}
)

func NewNotifier(followers FollowerLister, mailer mailing.Mailer, appURL string) Notifier {
	return &notifier{followers: followers, mailer: mailer, appURL: strings.TrimRight(appURL, "/")}
}

// HandleRecipePublished mails every follower of the author. It fails only when no mail
// could be sent, so a redelivery does not spam the recipients that were reached.
func (n *notifier) HandleRecipePublished(ctx context.Context, event domain.RecipePublishedEvent) error {
	emails, err := n.followers.GetFollowerEmails(ctx, event.AuthorID)
	if err != nil {
		return err
	}
	if len(emails) == 0 {
		return nil
	}

	body, err := mailing.RenderNewRecipe(mailing.NewRecipeData{
		AuthorName: event.AuthorName,
		RecipeName: event.RecipeName,
		Link:       n.appURL + "/recipes/" + event.RecipeID.String(),
	})
	if err != nil {
		return err
	}

	var errs []error
	for _, email := range emails {
		if err := n.mailer.SendMail(email, "New recipe from "+event.AuthorName, body); err != nil {
			errs = append(errs, err)
		}
	}
	logging.Info().
		Str("recipe_id", event.RecipeID.String()).
		Int("recipients", len(emails)).
		Int("failed", len(errs)).
		Msg("new recipe notification sent")
	if len(errs) == len(emails) {
		return errors.Join(errs...)
	}
	return nil
}

// Worker feeds consumed events to a Notifier.
type Worker struct {
	consumer Consumer
	notifier Notifier
}

func NewWorker(consumer Consumer, notifier Notifier) *Worker {
	return &Worker{consumer: consumer, notifier: notifier}
}

// Run blocks until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	logging.Info().Msg("notification worker started")
	return w.consumer.ConsumeRecipePublished(ctx, w.notifier.HandleRecipePublished)
}
