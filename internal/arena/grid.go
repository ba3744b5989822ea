package arena

import "sort"

// Cell is an integer grid coordinate: X is the lateral lane, Y the row.
type Cell struct {
	X, Y int
}

// Add returns c offset by d.
func (c Cell) Add(d Cell) Cell { return Cell{X: c.X + d.X, Y: c.Y + d.Y} }

// Block is a claimable tile. Value and Cell never change after creation.
type Block struct {
	Cell  Cell
	Value uint8
	Owner PlayerID
}

// Owned reports whether the block has been claimed.
func (b *Block) Owned() bool { return b.Owner != NoPlayer }

// Grid maps cells to blocks. It is the single source of truth for what
// occupies a cell and holds at most one block per cell.
type Grid struct {
	blocks map[Cell]*Block
}

// NewGrid returns an empty grid.
func NewGrid() *Grid {
	return &Grid{blocks: make(map[Cell]*Block)}
}

// Get returns the block at c, if any.
func (g *Grid) Get(c Cell) (*Block, bool) {
	b, ok := g.blocks[c]
	return b, ok
}

// Insert places b at its cell. It refuses to overwrite an occupied cell and
// reports whether the block was stored.
func (g *Grid) Insert(b *Block) bool {
	if b == nil {
		return false
	}
	if _, taken := g.blocks[b.Cell]; taken {
		return false
	}
	g.blocks[b.Cell] = b
	return true
}

// Remove deletes and returns the block at c.
func (g *Grid) Remove(c Cell) (*Block, bool) {
	b, ok := g.blocks[c]
	if ok {
		delete(g.blocks, c)
	}
	return b, ok
}

// Len returns the number of blocks.
func (g *Grid) Len() int { return len(g.blocks) }

// TopRow returns the highest row containing a block.
func (g *Grid) TopRow() (int, bool) {
	top, found := 0, false
	for c := range g.blocks {
		if !found || c.Y > top {
			top, found = c.Y, true
		}
	}
	return top, found
}

// Row returns the occupied cells of row y ordered by lane.
func (g *Grid) Row(y int) []Cell {
	var cells []Cell
	for c := range g.blocks {
		if c.Y == y {
			cells = append(cells, c)
		}
	}
	sort.Slice(cells, func(i, j int) bool { return cells[i].X < cells[j].X })
	return cells
}

// Each visits every block in row-then-lane order.
func (g *Grid) Each(fn func(*Block)) {
	for _, b := range g.Blocks() {
		fn(b)
	}
}

// Blocks returns all blocks in row-then-lane order.
func (g *Grid) Blocks() []*Block {
	out := make([]*Block, 0, len(g.blocks))
	for _, b := range g.blocks {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Cell.Y != out[j].Cell.Y {
			return out[i].Cell.Y < out[j].Cell.Y
		}
		return out[i].Cell.X < out[j].Cell.X
	})
	return out
}
