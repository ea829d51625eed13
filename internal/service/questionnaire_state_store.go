package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"recruitment-buddy/internal/domain"
)

// QuestionnaireStateStore guarda el acumulador de cada usuario autenticado.
// Load devuelve un estado nuevo cuando no hay nada guardado.
type QuestionnaireStateStore interface {
	Load(ctx context.Context, userID string) (domain.QuestionnaireState, error)
	Save(ctx context.Context, state domain.QuestionnaireState) error
	Clear(ctx context.Context, userID string) error
}

const questionnaireStateTTL = 24 * time.Hour

type memoryQuestionnaireStateStore struct {
	mu    sync.Mutex
	items map[string][]byte
}

func NewMemoryQuestionnaireStateStore() QuestionnaireStateStore {
	return &memoryQuestionnaireStateStore{items: make(map[string][]byte)}
}

// Los estados se copian via JSON para que ningun llamador comparta mapas.
func (s *memoryQuestionnaireStateStore) Load(_ context.Context, userID string) (domain.QuestionnaireState, error) {
	s.mu.Lock()
	raw, ok := s.items[userID]
	s.mu.Unlock()
	if !ok {
		return domain.NewQuestionnaireState(userID), nil
	}
	return decodeQuestionnaireState(userID, raw)
}

func (s *memoryQuestionnaireStateStore) Save(_ context.Context, state domain.QuestionnaireState) error {
	if strings.TrimSpace(state.UserID) == "" {
		return errors.New("questionnaire state without user")
	}
	raw, err := json.Marshal(state)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[state.UserID] = raw
	return nil
}

func (s *memoryQuestionnaireStateStore) Clear(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, userID)
	return nil
}

type redisKV interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

type redisQuestionnaireStateStore struct {
	client redisKV
	prefix string
	ttl    time.Duration
}

func NewRedisQuestionnaireStateStore(client *redis.Client) QuestionnaireStateStore {
	if client == nil {
		return nil
	}
	return &redisQuestionnaireStateStore{
		client: client,
		prefix: "questionnaire:state:",
		ttl:    questionnaireStateTTL,
	}
}

func (s *redisQuestionnaireStateStore) Load(ctx context.Context, userID string) (domain.QuestionnaireState, error) {
	raw, err := s.client.Get(ctx, s.prefix+userID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.NewQuestionnaireState(userID), nil
		}
		return domain.QuestionnaireState{}, err
	}
	return decodeQuestionnaireState(userID, raw)
}

func (s *redisQuestionnaireStateStore) Save(ctx context.Context, state domain.QuestionnaireState) error {
	if strings.TrimSpace(state.UserID) == "" {
		return errors.New("questionnaire state without user")
	}
	raw, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.prefix+state.UserID, raw, s.ttl).Err()
}

func (s *redisQuestionnaireStateStore) Clear(ctx context.Context, userID string) error {
	return s.client.Del(ctx, s.prefix+userID).Err()
}

func decodeQuestionnaireState(userID string, raw []byte) (domain.QuestionnaireState, error) {
	var state domain.QuestionnaireState
	if err := json.Unmarshal(raw, &state); err != nil {
		return domain.QuestionnaireState{}, err
	}
	state.UserID = userID
	if state.Responses == nil {
		state.Responses = make(map[domain.Dimension]float64, domain.TotalSteps)
	}
	if state.NextStep == 0 {
		state.NextStep = domain.StepAnalytical
	}
	return state, nil
}
