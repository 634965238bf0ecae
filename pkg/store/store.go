// Package store provides in-memory history of evaluated expressions.
package store

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lemonberrylabs/truthtable/pkg/engine"
	"github.com/lemonberrylabs/truthtable/pkg/types"
)

// DefaultCapacity is the number of evaluations kept before the oldest are
// evicted.
const DefaultCapacity = 100

// EvaluationState represents the outcome of an evaluation.
type EvaluationState string

const (
	EvaluationSucceeded EvaluationState = "SUCCEEDED"
	EvaluationFailed    EvaluationState = "FAILED"
)

// Evaluation is one stored request and its outcome.
type Evaluation struct {
	ID         string           `json:"id"`
	Name       string           `json:"name"`
	Expression string           `json:"expression"`
	State      EvaluationState  `json:"state"`
	Error      *EvaluationError `json:"error,omitempty"`
	CreateTime time.Time        `json:"createTime"`
	Result     *engine.Result   `json:"-"`
}

// EvaluationError describes why an evaluation failed.
type EvaluationError struct {
	Tags    []string `json:"tags"`
	Rule    string   `json:"rule,omitempty"`
	Max     int      `json:"maxVariables,omitempty"`
	Message string   `json:"message"`
}

// ErrNotFound is returned for unknown evaluation ids.
var ErrNotFound = errors.New("evaluation not found")

// Store is a thread-safe in-memory store of evaluations.
type Store struct {
	mu          sync.RWMutex
	evaluations map[string]*Evaluation
	order       []string // ids, oldest first
	capacity    int
}

// New creates a new empty store with DefaultCapacity.
func New() *Store {
	return NewWithCapacity(DefaultCapacity)
}

// NewWithCapacity creates a store that keeps at most capacity evaluations.
func NewWithCapacity(capacity int) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Store{
		evaluations: make(map[string]*Evaluation),
		capacity:    capacity,
	}
}

// Record stores the outcome of evaluating expression. Exactly one of res and
// evalErr is expected to be non-nil.
func (s *Store) Record(expression string, res *engine.Result, evalErr error) *Evaluation {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.NewString()
	ev := &Evaluation{
		ID:         id,
		Name:       "tables/" + id,
		Expression: expression,
		State:      EvaluationSucceeded,
		CreateTime: time.Now(),
		Result:     res,
	}
	if evalErr != nil {
		ev.State = EvaluationFailed
		ev.Result = nil
		ev.Error = newEvaluationError(evalErr)
	}

	s.evaluations[id] = ev
	s.order = append(s.order, id)
	for len(s.order) > s.capacity {
		delete(s.evaluations, s.order[0])
		s.order = s.order[1:]
	}
	return ev
}

func newEvaluationError(err error) *EvaluationError {
	var ee *types.EngineError
	if errors.As(err, &ee) {
		return &EvaluationError{Tags: ee.Tags, Rule: ee.Rule, Max: ee.Max, Message: ee.Message}
	}
	return &EvaluationError{Tags: []string{types.TagInternalError}, Message: err.Error()}
}

// Get retrieves an evaluation by id.
func (s *Store) Get(id string) (*Evaluation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ev, ok := s.evaluations[id]
	if !ok {
		return nil, fmt.Errorf("%w: '%s'", ErrNotFound, id)
	}
	return ev, nil
}

// List returns all evaluations, newest first.
func (s *Store) List() []*Evaluation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*Evaluation, 0, len(s.order))
	for i := len(s.order) - 1; i >= 0; i-- {
		result = append(result, s.evaluations[s.order[i]])
	}
	return result
}

// Delete removes an evaluation.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.evaluations[id]; !ok {
		return fmt.Errorf("%w: '%s'", ErrNotFound, id)
	}
	delete(s.evaluations, id)
	for i, o := range s.order {
		if o == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// Len returns the number of stored evaluations.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}
