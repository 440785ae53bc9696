//go:build !linux

package memfd

func create(string, int) (int, error) {
	return -1, ErrUnsupported
}

func fdSize(int) (int, error) {
	return 0, ErrUnsupported
}
