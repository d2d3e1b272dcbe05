package paging

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// ChunkID identifies a chunk by its center and edge length, both in cell units
type ChunkID struct {
	Center mgl32.Vec2
	Size   float32
}

// WorldToCell converts a world position to cell space
func WorldToCell(world mgl32.Vec3, cellSize float32) mgl32.Vec2 {
	return mgl32.Vec2{world.X() / cellSize, world.Y() / cellSize}
}

// ChunkCenter returns the center of the size-aligned chunk containing cell.
// Negative coordinates round toward negative infinity.
func ChunkCenter(cell mgl32.Vec2, size float32) mgl32.Vec2 {
	return mgl32.Vec2{
		math32.Floor(cell.X()/size)*size + size/2,
		math32.Floor(cell.Y()/size)*size + size/2,
	}
}

// Contains reports whether cell lies in the half-open chunk square
func (id ChunkID) Contains(cell mgl32.Vec2) bool {
	half := id.Size / 2
	return cell.X() >= id.Center.X()-half && cell.X() < id.Center.X()+half &&
		cell.Y() >= id.Center.Y()-half && cell.Y() < id.Center.Y()+half
}
