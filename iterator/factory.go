package iterator

import (
	"fmt"
	"image"

	"github.com/eak1mov/go-libraster/raster"
)

// clip intersects rect with the image bounds. An empty result gives a cursor
// that is finished from the start.
func clip(img raster.Image, rect image.Rectangle) image.Rectangle {
	clipped, _ := raster.ClipToBounds(rect, img.Bounds())
	return clipped
}

func logFallback(kind string, sm raster.SampleModel) {
	logger().Debug("libraster: no direct access for layout, using sample model accessors",
		"iterator", kind,
		"layout", fmt.Sprintf("%T", sm),
		"dataType", sm.DataType(),
	)
}

func componentRandomOf[T raster.Sample](src tileSource, img raster.Image, sm *raster.ComponentSampleModel, writable bool) RandomIter {
	it := newComponentRandom[T](src, img, sm)
	if writable {
		return &writableComponentRandom[T]{it}
	}
	return it
}

func newRandom(src tileSource, img raster.Image, writable bool) RandomIter {
	if sm, ok := img.SampleModel().(*raster.ComponentSampleModel); ok {
		switch sm.DataType() {
		case raster.TypeByte:
			return componentRandomOf[uint8](src, img, sm, writable)
		case raster.TypeUShort:
			return componentRandomOf[uint16](src, img, sm, writable)
		case raster.TypeShort:
			return componentRandomOf[int16](src, img, sm, writable)
		case raster.TypeInt:
			return componentRandomOf[int32](src, img, sm, writable)
		case raster.TypeFloat:
			return componentRandomOf[float32](src, img, sm, writable)
		case raster.TypeDouble:
			return componentRandomOf[float64](src, img, sm, writable)
		}
	}

	logFallback("random", img.SampleModel())
	it := newFallbackRandom(src, img)
	if writable {
		return &writableFallbackRandom{it}
	}
	return it
}

func componentRookOf[T raster.Sample](src tileSource, img raster.Image, sm *raster.ComponentSampleModel, bounds image.Rectangle, writable bool) RookIter {
	it := newComponentRook[T](src, img, sm, bounds)
	if writable {
		return &writableComponentRook[T]{it}
	}
	return it
}

// newRook builds a sequential cursor over bounds, which must already be
// clipped to the image.
func newRook(src tileSource, img raster.Image, bounds image.Rectangle, writable bool) RookIter {
	if sm, ok := img.SampleModel().(*raster.ComponentSampleModel); ok {
		switch sm.DataType() {
		case raster.TypeByte:
			return componentRookOf[uint8](src, img, sm, bounds, writable)
		case raster.TypeUShort:
			return componentRookOf[uint16](src, img, sm, bounds, writable)
		case raster.TypeShort:
			return componentRookOf[int16](src, img, sm, bounds, writable)
		case raster.TypeInt:
			return componentRookOf[int32](src, img, sm, bounds, writable)
		case raster.TypeFloat:
			return componentRookOf[float32](src, img, sm, bounds, writable)
		case raster.TypeDouble:
			return componentRookOf[float64](src, img, sm, bounds, writable)
		}
	}

	logFallback("rook", img.SampleModel())
	it := newFallbackRook(src, img, bounds)
	if writable {
		return &writableFallbackRook{it}
	}
	return it
}

// NewRandom returns a read-only random access cursor. rect only states which
// coordinates the caller will pass: they must lie in rect clipped to the
// image, and are not checked.
func NewRandom(img raster.Image, rect image.Rectangle) RandomIter {
	return newRandom(readSource{img}, img, false)
}

// NewWritableRandom returns a random access cursor that checks tiles out of
// img for writing. rect is a precondition on coordinates as for NewRandom.
// Done must be called to release the last tile.
func NewWritableRandom(img raster.WritableImage, rect image.Rectangle) WritableRandomIter {
	return newRandom(&leaseSource{img: img}, img, true).(WritableRandomIter)
}

// NewRect returns a cursor positioned on the first band of the first pixel
// of rect clipped to the image. Pass All for the whole image; an empty
// rectangle gives a cursor that is already finished.
func NewRect(img raster.Image, rect image.Rectangle) RectIter {
	return newRook(readSource{img}, img, clip(img, rect), false)
}

func NewWritableRect(img raster.WritableImage, rect image.Rectangle) WritableRectIter {
	return newRook(&leaseSource{img: img}, img, clip(img, rect), true).(WritableRectIter)
}

func NewRook(img raster.Image, rect image.Rectangle) RookIter {
	return newRook(readSource{img}, img, clip(img, rect), false)
}

func NewWritableRook(img raster.WritableImage, rect image.Rectangle) WritableRookIter {
	return newRook(&leaseSource{img: img}, img, clip(img, rect), true).(WritableRookIter)
}

func NewRandomFromRaster(r *raster.Raster, rect image.Rectangle) RandomIter {
	return NewRandom(raster.NewRasterImage(r), rect)
}

func NewWritableRandomFromRaster(r *raster.Raster, rect image.Rectangle) WritableRandomIter {
	return NewWritableRandom(raster.NewRasterImage(r), rect)
}

func NewRectFromRaster(r *raster.Raster, rect image.Rectangle) RectIter {
	return NewRect(raster.NewRasterImage(r), rect)
}

func NewWritableRectFromRaster(r *raster.Raster, rect image.Rectangle) WritableRectIter {
	return NewWritableRect(raster.NewRasterImage(r), rect)
}

func NewRookFromRaster(r *raster.Raster, rect image.Rectangle) RookIter {
	return NewRook(raster.NewRasterImage(r), rect)
}

func NewWritableRookFromRaster(r *raster.Raster, rect image.Rectangle) WritableRookIter {
	return NewWritableRook(raster.NewRasterImage(r), rect)
}
