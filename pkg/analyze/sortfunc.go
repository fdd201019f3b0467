package analyze

import (
	"cmp"
	"slices"
)

type SortFunc func(l, r string) int

// Descending order; equal keys compare as 0 so a stable sort keeps
// first-seen order.
var sortFuncs = map[SortByFlag]func(s map[string]KeyStats) SortFunc{
	SortByRequests: func(s map[string]KeyStats) SortFunc {
		return func(l, r string) int {
			return cmp.Compare(s[r].Requests, s[l].Requests)
		}
	},
	SortBySize: func(s map[string]KeyStats) SortFunc {
		return func(l, r string) int {
			return cmp.Compare(s[r].Size, s[l].Size)
		}
	},
}

func GetSortFunc(name SortByFlag, s map[string]KeyStats) SortFunc {
	fn, ok := sortFuncs[name]
	if !ok {
		return nil
	}
	return fn(s)
}

func ListSortFuncs() []SortByFlag {
	ret := make([]SortByFlag, 0, len(sortFuncs))
	for key := range sortFuncs {
		ret = append(ret, key)
	}
	slices.Sort(ret)
	return ret
}
