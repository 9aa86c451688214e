package scripting

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/percentile/internal/game/dice"
	"github.com/cory-johannsen/percentile/internal/game/modifier"
	"github.com/cory-johannsen/percentile/internal/game/roll"
)

// ModifiersTable is the Lua global scripts add their modifier functions to.
const ModifiersTable = "modifiers"

// SourcePrefix prefixes the modifier key of every scripted source.
const SourcePrefix = "script:"

// Manager owns one sandboxed LState holding every loaded modifier script and
// evaluates them for each roll.
//
// A script registers a modifier by adding a function to the modifiers table:
//
//	function modifiers.sure_strike(ctx)
//	  if ctx.kind == "weapon" then return 10 end
//	  return 0
//	end
//
// ctx carries kind, name and base_target. A non-zero numeric return becomes an
// active source keyed "script:<function name>".
//
// Manager is safe for concurrent use; calls into the LState are serialized.
type Manager struct {
	mu        sync.Mutex
	state     *lua.LState
	instLimit int
	roller    *dice.Roller
	logger    *zap.Logger
}

// NewManager creates a Manager with no scripts loaded.
//
// Precondition: roller and logger must be non-nil.
func NewManager(roller *dice.Roller, logger *zap.Logger) *Manager {
	return &Manager{roller: roller, logger: logger}
}

// LoadDir creates a fresh sandboxed VM, registers the engine.* modules,
// then executes every *.lua file in scriptDir in lexicographic order. A
// previously loaded VM is replaced only when every file loads.
//
// Precondition: scriptDir must be a readable directory.
// Postcondition: Returns an error on directory or Lua load failure.
func (m *Manager) LoadDir(scriptDir string, instLimit int) error {
	L := NewSandbox(instLimit)
	m.RegisterModules(L)
	L.SetGlobal(ModifiersTable, L.NewTable())

	entries, err := os.ReadDir(scriptDir)
	if err != nil {
		L.Close()
		return fmt.Errorf("scripting: reading script dir %q: %w", scriptDir, err)
	}

	var luaFiles []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".lua" {
			luaFiles = append(luaFiles, filepath.Join(scriptDir, e.Name()))
		}
	}
	sort.Strings(luaFiles)

	for _, path := range luaFiles {
		cancel := Renew(L, instLimit)
		err := L.DoFile(path)
		cancel()
		if err != nil {
			L.Close()
			return fmt.Errorf("scripting: loading %q: %w", path, err)
		}
	}

	m.mu.Lock()
	old := m.state
	m.state = L
	m.instLimit = instLimit
	m.mu.Unlock()
	if old != nil {
		old.Close()
	}
	m.logger.Info("scripting: loaded modifier scripts",
		zap.String("dir", scriptDir),
		zap.Int("files", len(luaFiles)),
		zap.Strings("modifiers", m.Names()),
	)
	return nil
}

// Names returns the registered modifier function names in sorted order.
func (m *Manager) Names() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.namesLocked()
}

func (m *Manager) namesLocked() []string {
	if m.state == nil {
		return nil
	}
	tbl, ok := m.state.GetGlobal(ModifiersTable).(*lua.LTable)
	if !ok {
		return nil
	}
	var names []string
	tbl.ForEach(func(k, v lua.LValue) {
		if _, isFn := v.(*lua.LFunction); isFn {
			if s, isStr := k.(lua.LString); isStr {
				names = append(names, string(s))
			}
		}
	})
	sort.Strings(names)
	return names
}

// Modifiers calls every registered modifier function for s. Lua runtime
// errors and non-numeric returns are logged at Warn level and skipped, never
// propagated.
//
// Postcondition: Returns active sources in name order; nil when no scripts are loaded.
func (m *Manager) Modifiers(s roll.Subject) []modifier.Source {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == nil {
		return nil
	}
	L := m.state
	tbl, ok := L.GetGlobal(ModifiersTable).(*lua.LTable)
	if !ok {
		return nil
	}

	var out []modifier.Source
	for _, name := range m.namesLocked() {
		ctx := L.NewTable()
		L.SetField(ctx, "kind", lua.LString(s.Kind))
		L.SetField(ctx, "name", lua.LString(s.Name))
		L.SetField(ctx, "base_target", lua.LNumber(s.BaseTarget))

		ret, err := m.call(L, L.GetField(tbl, name), ctx)
		if err != nil {
			m.logger.Warn("scripting: Lua runtime error",
				zap.String("modifier", name),
				zap.Error(err),
			)
			continue
		}
		switch v := ret.(type) {
		case lua.LNumber:
			if n := int(v); n != 0 {
				out = append(out, modifier.Source{Key: SourcePrefix + name, Value: n, Active: true})
			}
		case *lua.LNilType:
		default:
			m.logger.Warn("scripting: modifier returned a non-number",
				zap.String("modifier", name),
				zap.String("type", ret.Type().String()),
			)
		}
	}
	return out
}

func (m *Manager) call(L *lua.LState, fn lua.LValue, args ...lua.LValue) (lua.LValue, error) {
	cancel := Renew(L, m.instLimit)
	defer cancel()
	if err := L.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, args...); err != nil {
		return lua.LNil, err
	}
	ret := L.Get(-1)
	L.Pop(1)
	return ret, nil
}

// Close releases the loaded VM.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != nil {
		m.state.Close()
		m.state = nil
	}
}
