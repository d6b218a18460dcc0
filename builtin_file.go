// builtin_file.go — read_file/write_file/append_file/file_exists. File
// handles are opened and closed entirely within the built-in; no handle
// value is ever exposed to user code.
//
// write_file/append_file take an advisory exclusive lock for the duration
// of the write via writeFileLocked, whose lockFile/unlockFile pair is
// platform-split (builtin_file_unix.go / builtin_file_other.go).
package raven

import (
	"os"

	"go.uber.org/multierr"
)

func (ev *Evaluator) callFileBuiltin(name string, args []Value, span Span) (Value, *Error) {
	switch name {
	case "read_file":
		data, err := os.ReadFile(args[0].S)
		if err != nil {
			return Value{}, newError(IOError, span, "read_file(%q): %v", args[0].S, err)
		}
		return StringVal(string(data)), nil
	case "write_file":
		if err := writeFileLocked(args[0].S, []byte(args[1].S), os.O_WRONLY|os.O_CREATE|os.O_TRUNC); err != nil {
			return Value{}, newError(IOError, span, "write_file(%q): %v", args[0].S, err)
		}
		return VoidVal(), nil
	case "append_file":
		if err := writeFileLocked(args[0].S, []byte(args[1].S), os.O_WRONLY|os.O_CREATE|os.O_APPEND); err != nil {
			return Value{}, newError(IOError, span, "append_file(%q): %v", args[0].S, err)
		}
		return VoidVal(), nil
	case "file_exists":
		_, err := os.Stat(args[0].S)
		return BoolVal(err == nil), nil
	default:
		return Value{}, newError(Internal, span, "evaluator: unregistered file builtin %q", name)
	}
}

// writeFileLocked opens path with the given flags, takes an advisory lock
// for the duration of the write, and always closes the file. The lock only
// serializes callers that take it too (other write_file/append_file calls);
// read_file takes no lock, and O_TRUNC empties the file at open, before the
// lock is held, so a concurrent reader can see partial content. The write error
// and the two deferred cleanup errors (unlock, close) are independent
// failures that can all legitimately happen on the same call, so they are
// combined with multierr rather than the last one silently shadowing the
// others.
func writeFileLocked(path string, data []byte, flags int) (err error) {
	f, openErr := os.OpenFile(path, flags, 0o644)
	if openErr != nil {
		return openErr
	}
	defer func() { err = multierr.Append(err, f.Close()) }()
	if lockErr := lockFile(f); lockErr != nil {
		return lockErr
	}
	defer func() { err = multierr.Append(err, unlockFile(f)) }()
	_, err = f.Write(data)
	return err
}
