/*
 * cache.go, part of pmx
 *
 * Copyright 2025 Raul Mera A. (rmeraaatacademicosdotutadotcl)
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package mutdb

import (
	"sync"

	"github.com/etiur/pmx"
)

// Source is anything that returns templates, normally a *DB.
type Source interface {
	Lookup(name, version string) (*pmx.Template, error)
}

// Cache remembers the templates, and the misses, of one invocation, so each
// residue is looked up only once, whatever the number of topologies processed.
// It is safe for concurrent use.
type Cache struct {
	mu     sync.Mutex
	src    Source
	found  map[[2]string]*pmx.Template
	missed map[[2]string]error
	hits   int
}

// NewCache returns an empty cache for src.
func NewCache(src Source) *Cache {
	return &Cache{src: src, found: make(map[[2]string]*pmx.Template), missed: make(map[[2]string]error)}
}

// Lookup returns the template from the cache, or from the source if it is
// not cached yet.
func (C *Cache) Lookup(name, version string) (*pmx.Template, error) {
	C.mu.Lock()
	defer C.mu.Unlock()
	k := [2]string{name, version}
	if t, ok := C.found[k]; ok {
		C.hits++
		return t, nil
	}
	if err, ok := C.missed[k]; ok {
		C.hits++
		return nil, err
	}
	t, err := C.src.Lookup(name, version)
	if err != nil {
		C.missed[k] = err
		return nil, err
	}
	C.found[k] = t
	return t, nil
}

// Hits returns the number of lookups answered from the cache.
func (C *Cache) Hits() int {
	C.mu.Lock()
	defer C.mu.Unlock()
	return C.hits
}
