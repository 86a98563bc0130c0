package region

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"v.io/x/lib/vlog"

	"github.com/future-re/memscan/memtype"
	"github.com/future-re/memscan/scanerr"
)

// Level is the coarse region-visibility knob a scan is run under.
type Level int

const (
	// All readable mappings.
	All Level = iota
	// AllRW is readable and writable mappings.
	AllRW
	// HeapStackExecutable is Heap, Stack, Exe, and mappings whose path
	// equals the target's own /proc/<pid>/exe link.
	HeapStackExecutable
	// HeapStackExecutableBss additionally includes anonymous (empty-path)
	// mappings, to cover .bss and similar.
	HeapStackExecutableBss
)

// maxAdjacentExeRegions is the literal cap on how many adjacent, same-file
// mappings following the first executable mapping of a binary roll into its
// load-image tracking. The fifth adjacent mapping resets the counter. This
// is a documented heuristic; the cap is not tunable.
const maxAdjacentExeRegions = 4

// ResolveExePath resolves /proc/<pid>/exe to the target's absolute binary
// path, used by Discover to recognize the Exe mapping by filename.
func ResolveExePath(pid int) (string, error) {
	path := fmt.Sprintf("/proc/%d/exe", pid)
	resolved, err := os.Readlink(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.Wrapf(scanerr.ErrTargetUnavailable, "readlink %s", path)
		}
		return "", errors.Wrapf(err, "readlink %s", path)
	}
	return resolved, nil
}

// Discover parses /proc/<pid>/maps and returns every readable region in
// parse order, each tagged with its id and Type. exePath is the target's
// resolved /proc/<pid>/exe link, used to recognize the Exe mapping.
func Discover(pid int, exePath string) ([]*Region, error) {
	path := fmt.Sprintf("/proc/%d/maps", pid)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(scanerr.ErrTargetUnavailable, "open %s", path)
		}
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close() // nolint: errcheck

	return discoverFrom(f, exePath)
}

func discoverFrom(r io.Reader, exePath string) ([]*Region, error) {
	var regions []*Region
	exeRollCount := 0
	var exeLoadAddr memtype.RemotePtr
	var exePrevEnd memtype.RemotePtr
	haveExe := false

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		rg, perms, ok := parseMapsLine(line)
		if !ok {
			vlog.VI(1).Infof("region: skipping malformed maps line %d: %q", lineNo, line)
			continue
		}
		if !strings.ContainsRune(perms, 'r') {
			continue
		}
		rg.Readable = true
		rg.Writable = strings.ContainsRune(perms, 'w')
		rg.Executable = strings.ContainsRune(perms, 'x')
		rg.Shared = strings.ContainsRune(perms, 's')

		switch {
		case rg.Filename == "[heap]":
			rg.Type = Heap
		case rg.Filename == "[stack]":
			rg.Type = Stack
		case rg.Executable && rg.Filename == exePath:
			rg.Type = Exe
			rg.LoadAddr = rg.Start
			exeLoadAddr = rg.Start
			exePrevEnd = rg.End
			exeRollCount = 0
			haveExe = true
		case haveExe && !rg.Executable && rg.Filename == exePath &&
			rg.Start == exePrevEnd && exeRollCount < maxAdjacentExeRegions:
			rg.Type = Exe
			rg.LoadAddr = exeLoadAddr
			exePrevEnd = rg.End
			exeRollCount++
		case rg.Executable:
			rg.Type = Code
			rg.LoadAddr = rg.Start
		default:
			rg.Type = Misc
		}

		rg.ID = len(regions)
		regions = append(regions, rg)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "region: reading maps")
	}
	return regions, nil
}

// parseMapsLine parses one "start-end perms offset dev inode path" line.
// ok is false for a malformed line, which the caller skips and continues.
func parseMapsLine(line string) (rg *Region, perms string, ok bool) {
	fields := strings.Fields(line)
	if len(fields) < 5 {
		return nil, "", false
	}
	addrs := strings.SplitN(fields[0], "-", 2)
	if len(addrs) != 2 {
		return nil, "", false
	}
	start, err := strconv.ParseUint(addrs[0], 16, 64)
	if err != nil {
		return nil, "", false
	}
	end, err := strconv.ParseUint(addrs[1], 16, 64)
	if err != nil {
		return nil, "", false
	}
	offset, err := strconv.ParseUint(fields[2], 16, 64)
	if err != nil {
		return nil, "", false
	}
	filename := ""
	if len(fields) >= 6 {
		filename = strings.Join(fields[5:], " ")
	}
	return &Region{
		Start:    start,
		End:      end,
		Offset:   offset,
		Filename: filename,
	}, fields[1], true
}

// FilterByLevel drops regions disallowed by lvl, per the spec's four-tier
// visibility knob.
func FilterByLevel(regions []*Region, lvl Level) []*Region {
	// An Exe region's Filename is the target's own /proc/<pid>/exe path.
	exeName := ""
	for _, r := range regions {
		if r.Type == Exe {
			exeName = r.Filename
			break
		}
	}
	out := regions[:0:0]
	for _, r := range regions {
		if regionAllowedAtLevel(r, lvl, exeName) {
			out = append(out, r)
		}
	}
	return out
}

func regionAllowedAtLevel(r *Region, lvl Level, exeName string) bool {
	isExe := r.Type == Exe || (exeName != "" && r.Filename == exeName)
	switch lvl {
	case All:
		return true
	case AllRW:
		return r.Writable
	case HeapStackExecutable:
		return r.Type == Heap || r.Type == Stack || isExe
	case HeapStackExecutableBss:
		return r.Type == Heap || r.Type == Stack || isExe || r.Filename == ""
	default:
		return true
	}
}
