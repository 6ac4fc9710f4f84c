package repository

import "context"

// LinkResolver obtains a fresh temporary URL for a media ID from the
// upstream file host. The host is rate-limited and occasionally
// unavailable; failures are expected and retried on later passes.
type LinkResolver interface {
	Resolve(ctx context.Context, mediaID string) (string, error)
}

// LinkHealthChecker probes whether an existing temporary URL is still
// servable. A network failure counts as dead: the renewal pipeline then
// resolves a fresh link, which is harmless if the old one was fine.
type LinkHealthChecker interface {
	IsAlive(ctx context.Context, link string) bool
}
