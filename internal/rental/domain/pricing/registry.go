package pricing

import (
	"sync"

	"movierental/internal/rental/domain/errs"
)

// ErrUnknownCategory возвращается, если категория с таким именем не зарегистрирована.
var ErrUnknownCategory = errs.NotFound("unknown price category")

// Registry находит категорию по отображаемому имени.
type Registry struct {
	mu         sync.RWMutex
	categories []Category
}

// NewRegistry создает пустой реестр.
func NewRegistry() *Registry {
	return &Registry{}
}

// DefaultRegistry создает реестр с тремя стандартными категориями.
// Вызывается один раз при старте процесса.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(Regular)
	r.Register(Children)
	r.Register(NewRelease)
	return r
}

// Register добавляет категорию. Повторная регистрация категории с тем же именем ничего не делает.
// Возвращает true, если категория была добавлена.
func (r *Registry) Register(c Category) bool {
	if c == nil {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.categories {
		if existing.Name() == c.Name() {
			return false
		}
	}
	r.categories = append(r.categories, c)
	return true
}

// Lookup возвращает категорию с именем name или ErrUnknownCategory.
func (r *Registry) Lookup(name string) (Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.categories {
		if c.Name() == name {
			return c, nil
		}
	}
	return nil, ErrUnknownCategory
}

// Names возвращает имена категорий в порядке регистрации.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.categories))
	for _, c := range r.categories {
		names = append(names, c.Name())
	}
	return names
}
