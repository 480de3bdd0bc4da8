package logger

import (
	"sort"
	"sync"
)

// named holds per-component loggers. A logger registered before Init keeps
// the old sink until RegisterDefaults rebinds it.
var named = struct {
	sync.RWMutex
	loggers map[string]*Logger
}{loggers: make(map[string]*Logger)}

// Register stores l as the logger for component.
func Register(component string, l *Logger) {
	named.Lock()
	defer named.Unlock()
	named.loggers[component] = l
}

// Get returns the logger registered for component, or the global logger
// tagged with component when none is registered.
func Get(component string) *Logger {
	named.RLock()
	l, ok := named.loggers[component]
	named.RUnlock()
	if ok {
		return l
	}
	return GetGlobalLogger().WithComponent(component)
}

// RegisterDefaults binds each component to the current global logger,
// replacing any earlier registration. Call it after Init.
func RegisterDefaults(components ...string) {
	global := GetGlobalLogger()
	named.Lock()
	defer named.Unlock()
	for _, c := range components {
		named.loggers[c] = global.WithComponent(c)
	}
}

// Registered returns the registered component names in sorted order.
func Registered() []string {
	named.RLock()
	defer named.RUnlock()
	out := make([]string, 0, len(named.loggers))
	for c := range named.loggers {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}
