package cli

import (
	"context"
	"fmt"
)

// Status prints connectivity and sync state.
func (a *App) Status(ctx context.Context) error {
	online := "offline"
	if a.watcher.Online() {
		online = "online"
	}
	printlnFn(fmt.Sprintf("Network: %s", online))
	printlnFn(fmt.Sprintf("Sync: %s", a.store.SyncStatus()))
	if msg := a.store.Err(); msg != "" {
		printlnFn("Error:", msg)
	}
	if a.user != nil {
		printlnFn(fmt.Sprintf("Signed in as %s <%s>", a.user.DisplayName, a.user.Email))
	}
	return nil
}

// Refresh forces the store back through a sync cycle.
func (a *App) Refresh(ctx context.Context) error {
	a.store.Refresh(ctx)
	printlnFn("Refreshing...")
	return nil
}
