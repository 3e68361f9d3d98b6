package audit

import "context"

// ChannelStore decouples emission from persistence: Append hands the event to
// the worker inbox so a profile save never waits on the audit sink. Reads go
// straight to the backing store the worker writes into.
type ChannelStore struct {
	inbox   chan<- Event
	backing Store
}

func NewChannelStore(inbox chan<- Event, backing Store) *ChannelStore {
	return &ChannelStore{inbox: inbox, backing: backing}
}

func (s *ChannelStore) Append(ctx context.Context, event Event) error {
	select {
	case s.inbox <- event:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *ChannelStore) ListByIdentity(ctx context.Context, identityID string) ([]Event, error) {
	return s.backing.ListByIdentity(ctx, identityID)
}
