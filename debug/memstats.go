//go:build windows

package debug

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

// psapi PROCESS_MEMORY_COUNTERS; only the working set is read.
type memCounters struct {
	cb                uint32
	pageFaults        uint32
	peakWorkingSet    uintptr
	workingSet        uintptr
	pools             [4]uintptr
	pagefileUsage     uintptr
	peakPagefileUsage uintptr
}

var procGetProcessMemoryInfo = windows.NewLazySystemDLL("psapi.dll").NewProc("GetProcessMemoryInfo")

// processRSS returns the working set of this process. Tk photos for previews
// live outside the Go heap, so this is where leaked previews show up.
func processRSS() (uint64, error) {
	mc := memCounters{cb: uint32(unsafe.Sizeof(memCounters{}))}
	ok, _, err := procGetProcessMemoryInfo.Call(uintptr(windows.CurrentProcess()), uintptr(unsafe.Pointer(&mc)), uintptr(mc.cb))
	if ok == 0 {
		return 0, fmt.Errorf("GetProcessMemoryInfo: %w", err)
	}
	return uint64(mc.workingSet), nil
}
