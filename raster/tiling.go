package raster

import "image"

// XToTileX returns the index of the tile containing pixel coordinate x:
// floor((x - gridOffset) / tileSize). It works for either axis.
func XToTileX(x, gridOffset, tileSize int) int {
	x -= gridOffset
	if x < 0 {
		x += 1 - tileSize // round toward negative infinity
	}
	return x / tileSize
}

// TileXToX returns the first pixel coordinate of tile tx.
func TileXToX(tx, gridOffset, tileSize int) int {
	return tx*tileSize + gridOffset
}

// TileRange returns the half-open range of tile indices intersecting bounds.
func TileRange(bounds image.Rectangle, layout TileLayout) image.Rectangle {
	if bounds.Empty() {
		return image.Rectangle{}
	}
	return image.Rect(
		XToTileX(bounds.Min.X, layout.GridXOffset, layout.TileWidth),
		XToTileX(bounds.Min.Y, layout.GridYOffset, layout.TileHeight),
		XToTileX(bounds.Max.X-1, layout.GridXOffset, layout.TileWidth)+1,
		XToTileX(bounds.Max.Y-1, layout.GridYOffset, layout.TileHeight)+1,
	)
}

// TileBounds returns the pixel rectangle of tile (tx, ty), unclipped.
func TileBounds(tx, ty int, layout TileLayout) image.Rectangle {
	x := TileXToX(tx, layout.GridXOffset, layout.TileWidth)
	y := TileXToX(ty, layout.GridYOffset, layout.TileHeight)
	return image.Rect(x, y, x+layout.TileWidth, y+layout.TileHeight)
}

// ClipToBounds intersects rect with bounds. It reports false, with a zero
// rectangle, when nothing is left.
func ClipToBounds(rect, bounds image.Rectangle) (image.Rectangle, bool) {
	clipped := rect.Intersect(bounds)
	if clipped.Empty() {
		return image.Rectangle{}, false
	}
	return clipped, true
}
