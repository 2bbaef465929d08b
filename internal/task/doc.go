// Package task tracks a batch of files through the test and commit passes of
// a rename.
//
// A Task owns one Chain per input path. A chain records the original path,
// the candidate computed by the last test pass, and whether the candidate was
// committed to disk. The task status moves through
//
//	Ready -> Pending -> Tested -> Finished
//
// Append always leaves the task Pending, Clear returns it to Ready, TestAll
// recomputes every candidate from the original path, and CommitAll tests and
// then renames chain by chain. A failed rename drops that chain's candidate so
// its record shows the file untouched; the other chains are unaffected.
//
// A Task is not safe for concurrent use.
package task
