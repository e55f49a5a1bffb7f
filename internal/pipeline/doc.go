// Package pipeline turns resolved targets into compiled artifacts.
//
// Every eligible source file goes through the same strict sequence: read,
// back up, compile, delete. A file's source is only removed once its backup
// has been written and the compiler has produced an artifact, so a failure at
// any step leaves the original in place. Failures are recorded per file and
// the batch continues unless FailFast is set.
package pipeline
