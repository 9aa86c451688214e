// Package scripting runs sandboxed GopherLua scripts that contribute extra
// modifier sources, such as talents and traits, to a roll.
package scripting

import (
	"context"
	"sync/atomic"

	lua "github.com/yuin/gopher-lua"
)

// DefaultInstructionLimit is the opcode budget per script call when no
// override is configured.
const DefaultInstructionLimit = 100_000

// removedGlobals are base-library functions a modifier script must not reach.
// print is removed so scripts cannot write into CLI output; use engine.log.
var removedGlobals = []string{"dofile", "loadfile", "load", "loadstring", "collectgarbage", "require", "print"}

// opcodeBudget is a context that cancels itself once Done has been polled
// more times than its budget. GopherLua polls Done once per opcode.
type opcodeBudget struct {
	context.Context
	cancel context.CancelFunc
	left   atomic.Int64
}

func (b *opcodeBudget) Done() <-chan struct{} {
	if b.left.Add(-1) < 0 {
		b.cancel()
	}
	return b.Context.Done()
}

// NewSandbox creates a Lua state with only the base, table, string and math
// libraries, without the globals in removedGlobals, and with an opcode budget
// of instLimit.
//
// Precondition: instLimit >= 0; 0 uses DefaultInstructionLimit.
// Postcondition: The caller owns the returned state and must Close it.
func NewSandbox(instLimit int) *lua.LState {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	for _, open := range []lua.LGFunction{lua.OpenBase, lua.OpenTable, lua.OpenString, lua.OpenMath} {
		open(L)
	}
	for _, name := range removedGlobals {
		L.SetGlobal(name, lua.LNil)
	}
	Renew(L, instLimit)
	return L
}

// Renew gives L a fresh budget of instLimit opcodes, replacing whatever was
// left of the previous one. The returned cancel releases the budget.
//
// Precondition: L must be non-nil; instLimit >= 0, 0 uses DefaultInstructionLimit.
func Renew(L *lua.LState, instLimit int) context.CancelFunc {
	if instLimit <= 0 {
		instLimit = DefaultInstructionLimit
	}
	base, cancel := context.WithCancel(context.Background())
	b := &opcodeBudget{Context: base, cancel: cancel}
	b.left.Store(int64(instLimit))
	L.SetContext(b)
	return cancel
}
