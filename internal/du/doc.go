// Package du measures the disk usage of files and directory trees in 512-byte blocks.
//
// A directory can be walked by a single goroutine (the sequential engine), by a
// fixed pool of workers sharing one LIFO stack of pending directories (the
// parallel engine), or by fastwalk. The parallel workers detect on their own,
// through one mutex and one condition variable, the moment at which the stack is
// empty and every worker is idle, and then all terminate.
package du
