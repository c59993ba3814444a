package model

// Path represents a file system path.
type Path string

// Image is one loaded source file. Every position of the image lies in
// [Base, Base+Size()]; Base depends on the load order of the workspace.
type Image struct {
	Name   string // slash separated, relative to the project root
	Path   Path
	Base   int
	Source []byte
	Hash   string
}

// Size returns the length of the image source in bytes.
func (img *Image) Size() int {
	return len(img.Source)
}

// Contains reports whether loc falls inside the image.
func (img *Image) Contains(loc Location) bool {
	p := int(loc)

	return p >= img.Base && p <= img.Base+img.Size()
}
