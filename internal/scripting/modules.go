package scripting

import (
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// RegisterModules registers the engine.* Lua tables into L:
//
//	engine.log.debug/info/warn(msg)   write to the manager's logger
//	engine.dice.roll(expr)            roll a dice expression and return the total
//
// Precondition: L must be from NewSandbox.
// Postcondition: engine global is defined in L.
func (m *Manager) RegisterModules(L *lua.LState) {
	engine := L.NewTable()

	logMod := L.NewTable()
	L.SetField(logMod, "debug", L.NewFunction(m.luaLog(zapcore.DebugLevel)))
	L.SetField(logMod, "info", L.NewFunction(m.luaLog(zapcore.InfoLevel)))
	L.SetField(logMod, "warn", L.NewFunction(m.luaLog(zapcore.WarnLevel)))
	L.SetField(engine, "log", logMod)

	diceMod := L.NewTable()
	L.SetField(diceMod, "roll", L.NewFunction(m.luaRoll))
	L.SetField(engine, "dice", diceMod)

	L.SetGlobal("engine", engine)
}

func (m *Manager) luaLog(level zapcore.Level) lua.LGFunction {
	return func(L *lua.LState) int {
		msg := L.CheckString(1)
		if ce := m.logger.Check(level, msg); ce != nil {
			ce.Write(zap.String("source", "lua"))
		}
		return 0
	}
}

// luaRoll rolls its expression argument. A malformed expression raises a Lua error.
func (m *Manager) luaRoll(L *lua.LState) int {
	expr := L.CheckString(1)
	res, err := m.roller.RollExpr(expr)
	if err != nil {
		L.RaiseError("engine.dice.roll: %s", err.Error())
		return 0
	}
	L.Push(lua.LNumber(res.Total()))
	return 1
}
