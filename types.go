package hubsite

// UploadedImage is metadata for an admin-uploaded asset stored under
// public/uploads/.
type UploadedImage struct {
	Filename     string
	OriginalName string
	Width        int
	Height       int
	Size         int
	UploadedAt   string
}
