package main

import (
	"maps"
	"slices"
)

// PackageSet is the set of package names currently considered installed.
type PackageSet map[string]struct{}

func (s PackageSet) Add(name string) {
	s[name] = struct{}{}
}

// Remove deletes name and reports whether it was present.
func (s PackageSet) Remove(name string) bool {
	if _, ok := s[name]; !ok {
		return false
	}
	delete(s, name)
	return true
}

func (s PackageSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

func (s PackageSet) Len() int {
	return len(s)
}

// Sorted returns the members in name order.
func (s PackageSet) Sorted() []string {
	return slices.Sorted(maps.Keys(s))
}
