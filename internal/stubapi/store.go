package stubapi

import (
	"sync"
	"time"

	api "github.com/auditlens/auditlens/api/v1alpha1"
	"github.com/google/uuid"
)

// followUpStore is the stub's in-memory follow-up register. It exists only
// so PATCH and comment flows have something to act on; the real register
// lives behind the analytics service.
type followUpStore struct {
	mu    sync.Mutex
	items []api.FollowUpItem
}

func newFollowUpStore() *followUpStore {
	base := time.Now().Add(-72 * time.Hour).UTC().Truncate(time.Second)
	return &followUpStore{
		items: []api.FollowUpItem{
			{
				ID:          uuid.NewString(),
				Description: "Revenue up 40% over prior period without volume support",
				Severity:    api.SeverityHigh,
				Disposition: api.DispositionOpen,
				ToolSource:  "flux",
				CreatedAt:   base,
			},
			{
				ID:          uuid.NewString(),
				Description: "Journal entries posted on weekends by terminated user",
				Severity:    api.SeverityHigh,
				Disposition: api.DispositionOpen,
				ToolSource:  "je_testing",
				AssignedTo:  "rlee",
				CreatedAt:   base.Add(2 * time.Hour),
			},
			{
				ID:          uuid.NewString(),
				Description: "Suspense account carries a non-zero balance at period end",
				Severity:    api.SeverityMedium,
				Disposition: api.DispositionOpen,
				ToolSource:  "tb_diagnostics",
				CreatedAt:   base.Add(4 * time.Hour),
			},
			{
				ID:          uuid.NewString(),
				Description: "Outstanding check older than 90 days",
				Notes:       "carried from prior engagement",
				Severity:    api.SeverityLow,
				Disposition: api.DispositionWaived,
				ToolSource:  "bank_reconciliation",
				CreatedAt:   base.Add(6 * time.Hour),
			},
		},
	}
}

func (s *followUpStore) List() []api.FollowUpItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]api.FollowUpItem, len(s.items))
	copy(out, s.items)
	return out
}

func (s *followUpStore) Update(id string, update api.FollowUpUpdate) (*api.FollowUpItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID != id {
			continue
		}
		if update.Notes != nil {
			s.items[i].Notes = *update.Notes
		}
		if update.Disposition != nil {
			s.items[i].Disposition = *update.Disposition
		}
		if update.AssignedTo != nil {
			s.items[i].AssignedTo = *update.AssignedTo
		}
		item := s.items[i]
		return &item, true
	}
	return nil, false
}

func (s *followUpStore) AddComment(id, author, body string) (*api.FollowUpItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID != id {
			continue
		}
		s.items[i].Comments = append(s.items[i].Comments, api.FollowUpComment{
			ID:        uuid.NewString(),
			Author:    author,
			Body:      body,
			CreatedAt: time.Now().UTC(),
		})
		item := s.items[i]
		return &item, true
	}
	return nil, false
}
