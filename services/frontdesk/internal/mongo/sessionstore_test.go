package mongo

import (
	"context"
	"testing"
	"time"

	"github.com/appetiteclub/apt"
)

func TestSessionStoreNotStarted(t *testing.T) {
	store := NewSessionStore(apt.NewConfig(), time.Hour, nil)
	ctx := context.Background()

	if _, err := store.Load(ctx, "s1"); err == nil {
		t.Error("Load() before Start should fail")
	}
	if err := store.Save(ctx, "s1", map[string][]byte{"cart": []byte("[]")}); err == nil {
		t.Error("Save() before Start should fail")
	}
	if err := store.Delete(ctx, "s1"); err == nil {
		t.Error("Delete() before Start should fail")
	}
	if err := store.Stop(ctx); err != nil {
		t.Errorf("Stop() before Start error = %v", err)
	}
}
