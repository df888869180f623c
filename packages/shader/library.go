package shader

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/ikemen-engine/presenter/packages/glapi"
)

const defaultLibrarySize = 8

// Library compiles programs on first use and keeps the most recently used
// ones. Evicted programs are released, so a program returned by Get must not
// be kept across later Get calls. Pinned programs are never evicted.
type Library struct {
	api     glapi.API
	dialect Dialect
	cache   *lru.Cache[string, *Shader]
	pinned  map[string]*Shader
}

// NewLibrary creates a library holding up to size programs. A non-positive
// size selects a default.
func NewLibrary(api glapi.API, dialect Dialect, size int) *Library {
	if size <= 0 {
		size = defaultLibrarySize
	}

	cache, _ := lru.NewWithEvict[string, *Shader](size, releaseShaderOnEviction)

	return &Library{
		api:     api,
		dialect: dialect,
		cache:   cache,
		pinned:  make(map[string]*Shader),
	}
}

func (l *Library) Dialect() Dialect {
	return l.dialect
}

// Get returns the program for spec, building it if needed. Programs are
// keyed by Spec.Name.
func (l *Library) Get(spec Spec) (*Shader, error) {
	if pinned, ok := l.pinned[spec.Name]; ok {
		return pinned, nil
	}

	cached, ok := l.cache.Get(spec.Name)
	if ok {
		return cached, nil
	}

	shader, err := New(l.api, l.dialect, spec)
	if err != nil {
		return nil, fmt.Errorf("build shader %q: %w", spec.Name, err)
	}

	l.cache.Add(spec.Name, shader)

	return shader, nil
}

// Pin builds the program for spec and keeps it until Purge. Get returns the
// pinned program from then on.
func (l *Library) Pin(spec Spec) (*Shader, error) {
	if pinned, ok := l.pinned[spec.Name]; ok {
		return pinned, nil
	}

	// A cached copy would still be subject to eviction
	l.cache.Remove(spec.Name)

	shader, err := New(l.api, l.dialect, spec)
	if err != nil {
		return nil, fmt.Errorf("build shader %q: %w", spec.Name, err)
	}

	l.pinned[spec.Name] = shader
	return shader, nil
}

// Purge releases all programs, pinned ones included.
func (l *Library) Purge() {
	l.cache.Purge()
	for name, shader := range l.pinned {
		shader.Release()
		delete(l.pinned, name)
	}
}

func releaseShaderOnEviction(_ string, shader *Shader) {
	shader.Release()
}
