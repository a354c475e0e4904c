package logtree

import (
	"path/filepath"
	"runtime"
	"strings"
)

// maxCallerDepth bounds the frames inspected when locating a caller.
const maxCallerDepth = 32

// packageDir is the directory holding this package's sources.
var packageDir = func() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Dir(file)
}()

type callerInfo struct {
	file     string
	function string
	line     int
}

// locateCaller returns the first frame outside this package.
// Test files of the package count as outside.
func locateCaller() (callerInfo, bool) {
	pcs := make([]uintptr, maxCallerDepth)
	n := runtime.Callers(2, pcs)
	frames := runtime.CallersFrames(pcs[:n])
	for {
		frame, more := frames.Next()
		if frame.File != "" && !isInternalFrame(frame.File) {
			return callerInfo{
				file:     frame.File,
				function: shortFunction(frame.Function),
				line:     frame.Line,
			}, true
		}
		if !more {
			return callerInfo{}, false
		}
	}
}

func isInternalFrame(file string) bool {
	return filepath.Dir(file) == packageDir && !strings.HasSuffix(file, "_test.go")
}

// shortFunction drops the import path, keeping "pkg.Func" or "pkg.(*T).Method".
func shortFunction(fn string) string {
	if i := strings.LastIndexByte(fn, '/'); i >= 0 {
		return fn[i+1:]
	}
	return fn
}
