package pipeline

// Observer receives progress notifications while a run is in flight.
type Observer interface {
	BackupCreated(source, backup string)
	Compiled(source, artifact string)
	Dropped(source string)
	Failed(err *FileError)
}

type nopObserver struct{}

func (nopObserver) BackupCreated(string, string) {}
func (nopObserver) Compiled(string, string)      {}
func (nopObserver) Dropped(string)               {}
func (nopObserver) Failed(*FileError)            {}
