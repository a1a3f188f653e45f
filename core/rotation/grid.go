package rotation

import "time"

// Grid is a sparse month-by-vessel assignment matrix over a fixed horizon.
// Each cell holds a single slot or NoSlot.
type Grid struct {
	Vessels []string
	Months  []time.Time // first day of each month, in order

	cells [][]SlotID // [vessel][month]
}

// NewGrid allocates an empty grid for the given vessels and horizon.
func NewGrid(vessels []string, start time.Time, months int) *Grid {
	g := &Grid{
		Vessels: append([]string(nil), vessels...),
		Months:  make([]time.Time, months),
		cells:   make([][]SlotID, len(vessels)),
	}
	for m := range g.Months {
		g.Months[m] = start.AddDate(0, m, 0)
	}
	for v := range g.cells {
		g.cells[v] = make([]SlotID, months)
	}
	return g
}

// At returns the slot assigned to vessel index v in month index m.
func (g *Grid) At(v, m int) SlotID { return g.cells[v][m] }

func (g *Grid) set(v, m int, s SlotID) { g.cells[v][m] = s }

// FirstRotation returns the month of a vessel's first assignment. The second
// return value is false when the vessel never received one.
func (g *Grid) FirstRotation(v int) (time.Time, bool) {
	for m, s := range g.cells[v] {
		if s != NoSlot {
			return g.Months[m], true
		}
	}
	return time.Time{}, false
}

// Table is a column-oriented record list, the wire shape consumed by the
// request layer and the export helpers.
type Table struct {
	Columns []string            `json:"columns"`
	Data    []map[string]string `json:"data"`
}

const (
	colShip          = "Ship"
	colFirstRotation = "First Rotation Date"
)

// Table reshapes the grid to one row per vessel with one column per month
// label plus the first-rotation date. A cell where the occupant differs from
// the previous month is suffixed to mark the relief handover.
func (g *Grid) Table() Table {
	t := Table{Columns: make([]string, 0, len(g.Months)+2)}
	t.Columns = append(t.Columns, colShip)
	for _, m := range g.Months {
		t.Columns = append(t.Columns, monthLabel(m))
	}
	t.Columns = append(t.Columns, colFirstRotation)

	for v, vessel := range g.Vessels {
		row := make(map[string]string, len(t.Columns))
		row[colShip] = vessel
		for m, month := range g.Months {
			cell := g.cells[v][m]
			val := cell.String()
			if cell != NoSlot && m > 0 && g.cells[v][m-1] != NoSlot && g.cells[v][m-1] != cell {
				val += " (relief)"
			}
			row[monthLabel(month)] = val
		}
		row[colFirstRotation] = ""
		if first, ok := g.FirstRotation(v); ok {
			row[colFirstRotation] = first.Format("02-01-2006")
		}
		t.Data = append(t.Data, row)
	}
	return t
}

func monthLabel(t time.Time) string {
	return t.Format("January 2006")
}
