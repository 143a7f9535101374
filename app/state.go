package app

import "fmt"

// Demo selects which virtualizer the program shows.
type Demo int

const (
	DemoList Demo = iota // markdown rows with measured heights
	DemoGrid             // fixed-width columns, variable-height rows
)

func (d Demo) String() string {
	switch d {
	case DemoList:
		return "list"
	case DemoGrid:
		return "grid"
	default:
		return "unknown"
	}
}

// ParseDemo maps a -demo flag value to a Demo.
func ParseDemo(s string) (Demo, error) {
	switch s {
	case "list", "":
		return DemoList, nil
	case "grid":
		return DemoGrid, nil
	default:
		return DemoList, fmt.Errorf("app: unknown demo %q (want list or grid)", s)
	}
}

// next returns the other demo.
func (d Demo) next() Demo {
	if d == DemoList {
		return DemoGrid
	}
	return DemoList
}
