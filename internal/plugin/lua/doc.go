// Package lua runs language modes written in Lua.
//
// A State is a sandboxed gopher-lua runtime: only the base, table,
// string and math libraries are opened, file loading globals are
// removed, and every call runs under a deadline.
//
//	state, err := lua.NewState(lua.WithExecutionTimeout(time.Second))
//	if err != nil {
//	    return err
//	}
//	defer state.Close()
//
// # Script modes
//
// ScriptMode implements mode.Mode on top of a script. The script may
// define any of these globals:
//
//	function transform_insertion(state, line, column, text)
//	    -- return nil to decline, a string, or a string and a
//	    -- selection table {start, end} or {row1, col1, row2, col2}
//	end
//	function next_line_indent(state, line, tab) return "" end
//	function check_outdent(state, line, text) return false end
//
// Missing functions defer to a fallback mode. A script error declines
// the transform.
package lua
