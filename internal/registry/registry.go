// Package registry holds assertion suppression state: one flag per call site
// and one flag for the whole process.
//
// Flags only ever go from false to true. Nothing in this package clears them.
package registry

import (
	"runtime"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
)

// Site is one assertion call site.
type Site struct {
	Key      string // file:line
	File     string
	Function string
	Line     int

	disabled atomic.Bool
}

// Disabled reports whether this site has been silenced.
func (s *Site) Disabled() bool {
	return s.disabled.Load()
}

// SiteInfo is a point-in-time copy of a Site.
type SiteInfo struct {
	Key      string `json:"key" yaml:"key"`
	Function string `json:"function,omitempty" yaml:"function,omitempty"`
	Disabled bool   `json:"disabled" yaml:"disabled"`
}

// Registry owns the suppression flags of one assertion runtime.
// Safe for concurrent use.
//
// There is one Site per file:line. Program counters are only a lookup cache:
// a function inlined into several callers yields several PCs for the same
// source line, and all of them share that line's flag.
type Registry struct {
	all  atomic.Bool
	byPC sync.Map // uintptr -> *Site

	mu    sync.Mutex
	byKey map[string]*Site
	keys  []string // suppression keys, matched against new and existing sites
}

// New creates an empty registry with nothing suppressed.
func New() *Registry {
	return &Registry{byKey: make(map[string]*Site)}
}

// Site returns the call site for a caller program counter, registering it on
// first use.
func (r *Registry) Site(pc uintptr) *Site {
	if s, ok := r.byPC.Load(pc); ok {
		return s.(*Site)
	}

	frame, _ := runtime.CallersFrames([]uintptr{pc}).Next()
	site := r.siteAt(frame.File, frame.Function, frame.Line)
	r.byPC.Store(pc, site)
	return site
}

// siteAt returns the site for a source location, creating it on first use.
func (r *Registry) siteAt(file, function string, line int) *Site {
	key := file + ":" + strconv.Itoa(line)

	r.mu.Lock()
	defer r.mu.Unlock()

	if site, ok := r.byKey[key]; ok {
		return site
	}
	site := &Site{Key: key, File: file, Function: function, Line: line}
	for _, k := range r.keys {
		if matchKey(key, k) {
			site.disabled.Store(true)
			break
		}
	}
	r.byKey[key] = site
	return site
}

// Suppressed reports whether a failure at site must be ignored.
func (r *Registry) Suppressed(site *Site) bool {
	return r.all.Load() || site.disabled.Load()
}

// Disable silences one site for the rest of the process lifetime.
func (r *Registry) Disable(site *Site) {
	site.disabled.Store(true)
}

// DisableAll silences every site for the rest of the process lifetime.
func (r *Registry) DisableAll() {
	r.all.Store(true)
}

// AllDisabled reports whether every site is silenced.
func (r *Registry) AllDisabled() bool {
	return r.all.Load()
}

// DisableKey silences every site, present or future, whose file:line key
// matches. The file part may be a path suffix ("pkg/handler.go:42").
// Returns the number of already registered sites it disabled.
func (r *Registry) DisableKey(key string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, k := range r.keys {
		if k == key {
			return 0
		}
	}
	r.keys = append(r.keys, key)

	n := 0
	for k, site := range r.byKey {
		if matchKey(k, key) && !site.disabled.Swap(true) {
			n++
		}
	}
	return n
}

// KeyDisabled reports whether key was added with DisableKey or names a
// registered site that has been disabled.
func (r *Registry) KeyDisabled(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, k := range r.keys {
		if k == key {
			return true
		}
	}
	for k, site := range r.byKey {
		if matchKey(k, key) && site.disabled.Load() {
			return true
		}
	}
	return false
}

// Sites returns a snapshot of all registered sites sorted by key.
func (r *Registry) Sites() []SiteInfo {
	r.mu.Lock()
	out := make([]SiteInfo, 0, len(r.byKey))
	for _, site := range r.byKey {
		out = append(out, SiteInfo{
			Key:      site.Key,
			Function: site.Function,
			Disabled: site.disabled.Load(),
		})
	}
	r.mu.Unlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// matchKey reports whether a site key is selected by a suppression key.
func matchKey(siteKey, key string) bool {
	if siteKey == key {
		return true
	}
	return strings.HasSuffix(siteKey, "/"+key)
}
