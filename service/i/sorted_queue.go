package i

import "context"

// SortedQueue is score-ordered storage with the lowest scores ranked first.
type SortedQueue interface {
	// Enqueue adds a member with the given score.
	Enqueue(ctx context.Context, queueKey string, score float64, member string) error

	// Tops returns up to `amount` members with the lowest scores without
	// removing them.
	Tops(ctx context.Context, queueKey string, amount int64) ([]string, error)

	// Count returns the number of members in the queue.
	Count(ctx context.Context, queueKey string) int64
}
