package apitype

type Size struct {
	width  int
	height int
}

func (s Size) Width() int {
	return s.width
}

func (s Size) Height() int {
	return s.height
}

func SizeOf(width int, height int) Size {
	return Size{width, height}
}

// SquareOf returns the size of the grid the preprocessor resizes images to.
func SquareOf(side int) Size {
	return Size{side, side}
}
