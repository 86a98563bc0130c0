// Command memscan is a thin entry point exercising the session façade
// end-to-end. Flag parsing and an interactive REPL are explicitly out of
// scope for this package; this binary performs one full scan for an
// integer value against a target pid and prints the resulting matches.
package main

import (
	"flag"
	"fmt"
	"os"

	"v.io/x/lib/vlog"

	"github.com/future-re/memscan/memtype"
	"github.com/future-re/memscan/session"
)

func main() {
	pid := flag.Int("pid", 0, "target process id")
	value := flag.Int64("value", 0, "int32 value to search for")
	flag.Parse()

	if *pid <= 0 {
		fmt.Fprintln(os.Stderr, "memscan: -pid is required")
		os.Exit(2)
	}

	cfg, err := session.NewConfig()
	if err != nil {
		vlog.Errorf("memscan: config: %v", err)
		os.Exit(1)
	}

	sess, err := session.NewSession(*pid, cfg)
	if err != nil {
		vlog.Errorf("memscan: session: %v", err)
		os.Exit(1)
	}

	uv := memtype.NewIntUserValue(*value, *value)
	stats, err := sess.FullScan(memtype.I32, memtype.EqualTo, false, uv)
	if err != nil {
		vlog.Errorf("memscan: full scan: %v", err)
		os.Exit(1)
	}
	fmt.Printf("scanned %d bytes across %d regions, %d matches\n", stats.BytesScanned, stats.RegionsVisited, stats.Matches)

	entries, total := sess.List(20, nil, nil)
	fmt.Printf("showing %d of %d matches:\n", len(entries), total)
	for _, e := range entries {
		fmt.Printf("  [%d] %#x = % x\n", e.Index, e.Address, e.Value)
	}
}
