package domain

import "fmt"

var (
	MessageSuccessSubscribe        = "subscribed successfully"
	MessageSuccessUnsubscribe      = "unsubscribed successfully"
	MessageSuccessGetSubscriptions = "success get subscriptions"

	MessageFailedSubscribe        = "failed to subscribe"
	MessageFailedUnsubscribe      = "failed to unsubscribe"
	MessageFailedGetSubscriptions = "failed to get subscriptions"

	ErrSelfSubscription    = NewFieldError("author", "cannot subscribe to yourself")
	ErrAlreadySubscribed   = fmt.Errorf("subscription %w", ErrConflict)
	ErrSubscriptionMissing = fmt.Errorf("subscription %w", ErrNotFound)
)

type SubscriptionResponse struct {
	UserResponse
	Recipes      []RecipeShortResponse `json:"recipes"`
	RecipesCount int64                 `json:"recipes_count"`
}
