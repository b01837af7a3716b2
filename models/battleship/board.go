package battleship

const BoardSize int = 12

// Ship sizes for both players, placed in this order
var ShipSizes = [...]int{5, 4, 3, 3, 2}

// Total number of ship cells on a fully placed board
func ShipCellsToLose() int {
	total := 0
	for _, size := range ShipSizes {
		total += size
	}
	return total
}

type Coordinates struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func NewCoordinates(row, col int) Coordinates {
	return Coordinates{Row: row, Col: col}
}

type Cell struct {
	Row     int  `json:"row"`
	Col     int  `json:"col"`
	HasShip bool `json:"has_ship"`
	Hit     bool `json:"hit"`

	// Only set while the cell belongs to the ship
	// that is being placed right now
	Placed bool `json:"placed"`
}

type Board struct {
	player int
	cells  []Cell
}

// Creates a new board for the player.
// All cells are empty and not hit.
func NewBoard(player int) *Board {
	cells := make([]Cell, 0, BoardSize*BoardSize)

	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			cells = append(cells, Cell{Row: row, Col: col})
		}
	}
	return &Board{player: player, cells: cells}
}

func (b *Board) Player() int {
	return b.player
}

func (b *Board) InBounds(row, col int) bool {
	return row >= 0 && row < BoardSize && col >= 0 && col < BoardSize
}

// Returns a pointer to the cell so callers in this
// package can mutate it. Panics if out of bounds.
func (b *Board) cell(row, col int) *Cell {
	return &b.cells[row*BoardSize+col]
}

func (b *Board) Cell(row, col int) Cell {
	return *b.cell(row, col)
}

func (b *Board) MarkShip(row, col int) {
	b.cell(row, col).HasShip = true
}

func (b *Board) MarkHit(row, col int) {
	b.cell(row, col).Hit = true
}

func (b *Board) AllShipsSunk() bool {
	for _, c := range b.cells {
		if c.HasShip && !c.Hit {
			return false
		}
	}
	return true
}

func (b *Board) ShipCells() []Coordinates {
	coords := make([]Coordinates, 0, ShipCellsToLose())
	for _, c := range b.cells {
		if c.HasShip {
			coords = append(coords, NewCoordinates(c.Row, c.Col))
		}
	}
	return coords
}

// Returns a copy of all the cells in row-major order
func (b *Board) Cells() []Cell {
	cells := make([]Cell, len(b.cells))
	copy(cells, b.cells)
	return cells
}
