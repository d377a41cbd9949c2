package crawler

import "os"

// openReaderAt opens path for the sampler's io.ReaderAt use.
func openReaderAt(path string) (*os.File, error) {
	return os.Open(path)
}
