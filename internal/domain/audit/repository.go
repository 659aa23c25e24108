package audit

import "context"

// Repository is deliberately append-and-query only. There is no update or
// delete; the schema backs that up with triggers that raise on both.
type Repository interface {
	Append(ctx context.Context, entry Entry) error
	Query(ctx context.Context, filter QueryFilter) ([]Entry, error)
}
