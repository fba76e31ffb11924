package dragdrop

import "dndbridge/internal/config"

// Shape maps controller transitions onto the event kinds an application
// sees. A None entry suppresses the event for that transition.
type Shape struct {
	Name   string
	Enter  Kind
	Over   Kind
	Drop   Kind
	Leave  Kind
	Failed Kind
}

var (
	// DragDropShape emits Enter, Over, Drop and Leave. drag-failed is only
	// logged.
	DragDropShape = Shape{
		Name:  config.ShapeDragDrop,
		Enter: Enter,
		Over:  Over,
		Drop:  Drop,
		Leave: Leave,
	}

	// FileDropShape emits Hovered, Dropped and Cancelled, and offers a
	// failed drag to the sink as a cancellation.
	FileDropShape = Shape{
		Name:   config.ShapeFileDrop,
		Enter:  Hovered,
		Drop:   Dropped,
		Leave:  Cancelled,
		Failed: Cancelled,
	}
)

// ShapeByName returns the shape registered under name.
func ShapeByName(name string) (Shape, bool) {
	switch name {
	case DragDropShape.Name:
		return DragDropShape, true
	case FileDropShape.Name:
		return FileDropShape, true
	}
	return Shape{}, false
}
