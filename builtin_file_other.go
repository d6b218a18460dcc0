//go:build !unix

package raven

import "os"

// lockFile/unlockFile are no-ops on platforms without flock(2) (notably
// Windows); write_file/append_file still write atomically in the sense that
// the whole payload goes out in one Write call, just without the advisory
// exclusion unix builds get.
func lockFile(f *os.File) error   { return nil }
func unlockFile(f *os.File) error { return nil }
