package book_repo

import (
	"context"
	"fmt"
	"slices"
	"slot_math/internal/model"
	"slot_math/internal/repository"
	"sync"
)

type modeBooks struct {
	books []model.Book
	index map[int]int
}

type memRepo struct {
	mtx   sync.RWMutex
	modes map[string]*modeBooks
}

// NewMemoryBookRepository Book Store в памяти процесса
func NewMemoryBookRepository() repository.BookRepository {
	return &memRepo{
		modes: make(map[string]*modeBooks),
	}
}

// AppendBatch добавляет пачку раундов под одной блокировкой.
// Пачка с повторяющимся id отклоняется целиком.
func (r *memRepo) AppendBatch(_ context.Context, mode string, books []model.Book) error {
	if len(books) == 0 {
		return nil
	}

	r.mtx.Lock()
	defer r.mtx.Unlock()

	mb, ok := r.modes[mode]
	if !ok {
		mb = &modeBooks{index: make(map[int]int)}
		r.modes[mode] = mb
	}

	seen := make(map[int]struct{}, len(books))
	for _, b := range books {
		_, dupBatch := seen[b.ID]
		_, dupStore := mb.index[b.ID]
		if dupBatch || dupStore {
			return fmt.Errorf("mode %s id %d: %w", mode, b.ID, model.ErrDuplicateID)
		}
		seen[b.ID] = struct{}{}
	}

	for _, b := range books {
		b.Mode = mode
		mb.index[b.ID] = len(mb.books)
		mb.books = append(mb.books, b)
	}
	return nil
}

// Books копия раундов режима, отсортированная по id
func (r *memRepo) Books(_ context.Context, mode string) ([]model.Book, error) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	mb, ok := r.modes[mode]
	if !ok {
		return nil, nil
	}
	out := slices.Clone(mb.books)
	slices.SortFunc(out, func(a, b model.Book) int { return a.ID - b.ID })
	return out, nil
}

func (r *memRepo) Book(_ context.Context, mode string, id int) (*model.Book, error) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	mb, ok := r.modes[mode]
	if !ok {
		return nil, model.ErrModeNotFound
	}
	i, ok := mb.index[id]
	if !ok {
		return nil, model.ErrBookNotFound
	}
	b := mb.books[i]
	return &b, nil
}

func (r *memRepo) Modes(_ context.Context) ([]string, error) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	out := make([]string, 0, len(r.modes))
	for m := range r.modes {
		out = append(out, m)
	}
	slices.Sort(out)
	return out, nil
}

func (r *memRepo) Reset(_ context.Context, mode string) error {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	delete(r.modes, mode)
	return nil
}
