package paint

import (
	"fmt"

	"github.com/shirou/gopsutil/mem"
)

// availableMemory reports the memory the system can hand out without
// swapping, as seen by gopsutil.
func availableMemory() (uint64, error) {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return 0, fmt.Errorf("paint: read system memory: %w", err)
	}
	return vm.Available, nil
}
