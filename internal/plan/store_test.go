package plan

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"nutriplan/models"
)

var _ Store = (*memoryStore)(nil)

// memoryStore is an in-process Store used by the package tests.
type memoryStore struct {
	mu        sync.Mutex
	menus     map[string]models.DailyMenu
	nextID    int
	insertErr error
	findErr   error
	reverse   bool
	filters   []Filter
}

func newMemoryStore(menus ...models.DailyMenu) *memoryStore {
	s := &memoryStore{menus: map[string]models.DailyMenu{}}
	if _, err := s.InsertMany(context.Background(), menus); err != nil {
		panic(err)
	}
	return s
}

func (s *memoryStore) Find(_ context.Context, filter Filter, order Order) ([]models.DailyMenu, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters = append(s.filters, filter)
	if s.findErr != nil {
		return nil, s.findErr
	}

	var out []models.DailyMenu
	for _, menu := range s.menus {
		if filter.CreatedBy != "" && menu.CreatedBy != filter.CreatedBy {
			continue
		}
		if filter.From != "" && menu.TargetDate < filter.From {
			continue
		}
		if filter.To != "" && menu.TargetDate > filter.To {
			continue
		}
		if filter.FavoritesOnly && !menu.IsFavorite {
			continue
		}
		out = append(out, menu)
	}
	desc := order == OrderDescending
	if s.reverse {
		desc = !desc
	}
	sort.Slice(out, func(i, j int) bool {
		if desc {
			return out[i].TargetDate > out[j].TargetDate
		}
		return out[i].TargetDate < out[j].TargetDate
	})
	return out, nil
}

func (s *memoryStore) InsertMany(_ context.Context, menus []models.DailyMenu) ([]models.DailyMenu, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.insertErr != nil {
		return nil, s.insertErr
	}

	saved := make([]models.DailyMenu, 0, len(menus))
	for _, menu := range menus {
		for id, existing := range s.menus {
			if existing.CreatedBy == menu.CreatedBy && existing.TargetDate == menu.TargetDate {
				menu.ID = id
				menu.IsFavorite = existing.IsFavorite
			}
		}
		if menu.ID == "" {
			s.nextID++
			menu.ID = fmt.Sprintf("menu-%d", s.nextID)
		}
		s.menus[menu.ID] = menu
		saved = append(saved, menu)
	}
	return saved, nil
}

func (s *memoryStore) Get(_ context.Context, id string) (models.DailyMenu, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	menu, ok := s.menus[id]
	if !ok {
		return models.DailyMenu{}, ErrMenuNotFound
	}
	return menu, nil
}

func (s *memoryStore) Update(_ context.Context, id string, fields map[string]any) (models.DailyMenu, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	menu, ok := s.menus[id]
	if !ok {
		return models.DailyMenu{}, ErrMenuNotFound
	}
	if v, ok := fields["is_favorite"].(bool); ok {
		menu.IsFavorite = v
	}
	if v, ok := fields["title"].(string); ok {
		menu.Title = v
	}
	s.menus[id] = menu
	return menu, nil
}

func (s *memoryStore) DeleteByID(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.menus[id]; !ok {
		return ErrMenuNotFound
	}
	delete(s.menus, id)
	return nil
}

func (s *memoryStore) DeleteBefore(_ context.Context, cutoff string, keepFavorites bool) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var removed int64
	for id, menu := range s.menus {
		if menu.TargetDate < cutoff && !(keepFavorites && menu.IsFavorite) {
			delete(s.menus, id)
			removed++
		}
	}
	return removed, nil
}

var errDriver = errors.New("connection refused")
