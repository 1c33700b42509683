// Package threat builds the process-wide pattern catalog the evaluator
// scores axis windows against: a small set of named threats (Five,
// StraightFour, Four, OpenThree, Broken, Two) each carrying a score, built
// once and read concurrently ever after.
//
// The table construction mirrors the teacher's (janpfeifer-hiveGo) pattern
// of a package-level, init-guarded, immutable-after-build table, adapted
// from a literal array to a lazily-built map since the catalog here is
// parametrized rather than fixed piece data.
package threat

import (
	"sync"

	"k8s.io/klog/v2"
)

// Type names a recognized axis pattern, declared from weakest to
// strongest. The numeric values only convey the contract's ordering
// relation (spec.md §8: "Five > Straight four > Four > Open three >
// Broken three > Two > empty"); the actual scores live in the Table.
type Type int

const (
	None Type = iota
	Two
	Broken
	OpenThree
	Four
	StraightFour
	Five
)

// String implements fmt.Stringer for debug logging.
func (t Type) String() string {
	switch t {
	case Five:
		return "Five"
	case StraightFour:
		return "StraightFour"
	case Four:
		return "Four"
	case OpenThree:
		return "OpenThree"
	case Broken:
		return "Broken"
	case Two:
		return "Two"
	default:
		return "None"
	}
}

// Win is the evaluator's win score, shared with the search (spec.md §4.1
// and §4.3 both reference this constant).
const Win = 1_000_000

// Table is the immutable score catalog. Zero value is unusable; obtain one
// via Get.
type Table struct {
	scores map[Type]int
}

// Score returns the table's score for a named threat.
func (tbl *Table) Score(t Type) int {
	return tbl.scores[t]
}

var (
	built *Table
	once  sync.Once
)

// Get returns the process-wide threat table, building it on first use.
// Safe for concurrent use from multiple request handlers — construction
// happens exactly once, guarded by sync.Once.
func Get() *Table {
	once.Do(func() {
		built = build()
		klog.V(2).Infof("threat table built: %d entries", len(built.scores))
	})
	return built
}

// build constructs the canonical catalog. Exact numbers are tuning
// parameters (spec.md §4.1); only the ordering relation is contractual,
// and is asserted by internal/threat/table_test.go.
func build() *Table {
	return &Table{
		scores: map[Type]int{
			Five:         Win,
			StraightFour: 50_000,
			Four:         1_200,
			OpenThree:    1_000,
			Broken:       300,
			Two:          100,
			None:         0,
		},
	}
}
