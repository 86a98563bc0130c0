package region

import "github.com/future-re/memscan/memtype"

// Mode selects when a Filter's allow-set is applied.
type Mode int

const (
	// Disabled: the filter is inert, equivalent to an empty allow-set.
	Disabled Mode = iota
	// ScanTime drops disallowed regions before the engine visits them.
	ScanTime
	// ExportTime keeps every match in the store but drops disallowed
	// matches when the collector materializes results.
	ExportTime
)

// Filter holds a set of allowed Types. An empty set means "allow all".
type Filter struct {
	Mode    Mode
	Allowed map[Type]bool
}

// NewFilter builds a Filter over the given allowed types.
func NewFilter(mode Mode, allowed ...Type) *Filter {
	f := &Filter{Mode: mode, Allowed: make(map[Type]bool, len(allowed))}
	for _, t := range allowed {
		f.Allowed[t] = true
	}
	return f
}

// IsRegionAllowed reports whether r passes the filter. A nil filter, a
// Disabled filter, or an empty allow-set all allow everything.
func (f *Filter) IsRegionAllowed(r *Region) bool {
	if f == nil || f.Mode == Disabled || len(f.Allowed) == 0 {
		return true
	}
	return f.Allowed[r.Type]
}

// IsAddressAllowed finds addr's owning region in regions and reports
// whether it passes the filter.
func (f *Filter) IsAddressAllowed(addr memtype.RemotePtr, regions []*Region) bool {
	if f == nil || f.Mode == Disabled || len(f.Allowed) == 0 {
		return true
	}
	r := RegionFor(addr, regions)
	if r == nil {
		return true
	}
	return f.Allowed[r.Type]
}

// RegionFor finds the region containing addr via linear scan. Region lists
// are small enough per scan (hundreds, not millions) that this is not a
// hot path; the classifier's llrb-backed index is used instead wherever
// per-byte lookups matter.
func RegionFor(addr memtype.RemotePtr, regions []*Region) *Region {
	for _, r := range regions {
		if r.Contains(addr) {
			return r
		}
	}
	return nil
}

// FilterRegions returns the subset of regions the filter allows.
func (f *Filter) FilterRegions(regions []*Region) []*Region {
	if f == nil || f.Mode != ScanTime || len(f.Allowed) == 0 {
		return regions
	}
	out := regions[:0:0]
	for _, r := range regions {
		if f.Allowed[r.Type] {
			out = append(out, r)
		}
	}
	return out
}
