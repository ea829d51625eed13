package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"recruitment-buddy/internal/domain"
)

type mockRedisKV struct {
	data   map[string][]byte
	ttls   map[string]time.Duration
	getErr error
	setErr error
}

func newMockRedisKV() *mockRedisKV {
	return &mockRedisKV{data: make(map[string][]byte), ttls: make(map[string]time.Duration)}
}

func (m *mockRedisKV) Get(ctx context.Context, key string) *redis.StringCmd {
	cmd := redis.NewStringCmd(ctx)
	if m.getErr != nil {
		cmd.SetErr(m.getErr)
		return cmd
	}
	val, ok := m.data[key]
	if !ok {
		cmd.SetErr(redis.Nil)
		return cmd
	}
	cmd.SetVal(string(val))
	return cmd
}

func (m *mockRedisKV) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	cmd := redis.NewStatusCmd(ctx)
	if m.setErr != nil {
		cmd.SetErr(m.setErr)
		return cmd
	}
	switch v := value.(type) {
	case []byte:
		m.data[key] = v
	case string:
		m.data[key] = []byte(v)
	}
	m.ttls[key] = expiration
	cmd.SetVal("OK")
	return cmd
}

func (m *mockRedisKV) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	cmd := redis.NewIntCmd(ctx)
	var n int64
	for _, k := range keys {
		if _, ok := m.data[k]; ok {
			delete(m.data, k)
			n++
		}
	}
	cmd.SetVal(n)
	return cmd
}

func exerciseStateStore(t *testing.T, store QuestionnaireStateStore) {
	t.Helper()
	ctx := context.Background()

	fresh, err := store.Load(ctx, "u1")
	if err != nil {
		t.Fatalf("load empty: %v", err)
	}
	if fresh.NextStep != domain.StepAnalytical || fresh.Responses == nil {
		t.Fatalf("expected fresh state, got %+v", fresh)
	}

	fresh.Responses[domain.DimensionAnalytical] = 6
	fresh.NextStep = domain.StepCreative
	fresh.Scores = &domain.RawScores{Analytical: 6}
	if err := store.Save(ctx, fresh); err != nil {
		t.Fatalf("save: %v", err)
	}

	// El mapa del llamador no debe filtrarse al almacen.
	fresh.Responses[domain.DimensionCreative] = 1

	loaded, err := store.Load(ctx, "u1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.NextStep != domain.StepCreative || loaded.Responses[domain.DimensionAnalytical] != 6 {
		t.Fatalf("unexpected loaded state: %+v", loaded)
	}
	if _, leaked := loaded.Responses[domain.DimensionCreative]; leaked {
		t.Fatalf("expected stored copy to be isolated")
	}
	if loaded.Scores == nil || loaded.Scores.Analytical != 6 {
		t.Fatalf("expected scores persisted, got %+v", loaded.Scores)
	}

	if err := store.Clear(ctx, "u1"); err != nil {
		t.Fatalf("clear: %v", err)
	}
	cleared, _ := store.Load(ctx, "u1")
	if len(cleared.Responses) != 0 || cleared.Scores != nil {
		t.Fatalf("expected cleared state, got %+v", cleared)
	}

	if err := store.Save(ctx, domain.QuestionnaireState{}); err == nil {
		t.Fatalf("expected error saving state without user")
	}
}

func TestMemoryQuestionnaireStateStore(t *testing.T) {
	exerciseStateStore(t, NewMemoryQuestionnaireStateStore())
}

func TestRedisQuestionnaireStateStore(t *testing.T) {
	kv := newMockRedisKV()
	store := &redisQuestionnaireStateStore{client: kv, prefix: "questionnaire:state:", ttl: time.Hour}
	exerciseStateStore(t, store)

	_ = store.Save(context.Background(), domain.NewQuestionnaireState("u2"))
	if kv.ttls["questionnaire:state:u2"] != time.Hour {
		t.Fatalf("expected ttl applied, got %v", kv.ttls["questionnaire:state:u2"])
	}
}

func TestRedisQuestionnaireStateStore_Errors(t *testing.T) {
	kv := newMockRedisKV()
	kv.getErr = errors.New("conn refused")
	store := &redisQuestionnaireStateStore{client: kv, prefix: "p:", ttl: time.Hour}
	if _, err := store.Load(context.Background(), "u1"); err == nil {
		t.Fatalf("expected load error")
	}

	kv.getErr = nil
	kv.data["p:u1"] = []byte("{not-json")
	if _, err := store.Load(context.Background(), "u1"); err == nil {
		t.Fatalf("expected decode error")
	}

	if NewRedisQuestionnaireStateStore(nil) != nil {
		t.Fatalf("expected nil store for nil client")
	}
}
