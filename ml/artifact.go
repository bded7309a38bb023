package ml

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrNotLoaded is returned by Artifact.Err for slots that were never filled.
var ErrNotLoaded = errors.New("artifact not loaded")

// Artifact is an optional, read-only fitted model loaded once from Path.
// A failed load leaves the slot empty and records why.
type Artifact[T any] struct {
	path  string
	model T
	err   error
	ok    bool
}

// LoadArtifact loads path and checks the model provides capability T.
// It never fails: inspect Loaded and Err instead.
func LoadArtifact[T any](path string) Artifact[T] {
	model, err := LoadModel(path)
	if err != nil {
		return MissingArtifact[T](path, err)
	}
	typed, ok := any(model).(T)
	if !ok {
		kind := "unknown"
		if d, isDescribed := model.(Described); isDescribed {
			kind = d.Kind()
		}
		want := reflect.TypeOf((*T)(nil)).Elem()
		return MissingArtifact[T](path, fmt.Errorf("%s: model kind %q does not implement %v", path, kind, want))
	}
	return NewArtifact(path, typed)
}

func NewArtifact[T any](path string, model T) Artifact[T] {
	return Artifact[T]{path: path, model: model, ok: true}
}

func MissingArtifact[T any](path string, err error) Artifact[T] {
	if err == nil {
		err = ErrNotLoaded
	}
	return Artifact[T]{path: path, err: err}
}

func (a Artifact[T]) Get() (T, bool) {
	return a.model, a.ok
}

func (a Artifact[T]) Loaded() bool {
	return a.ok
}

func (a Artifact[T]) Err() error {
	if a.ok {
		return nil
	}
	if a.err == nil {
		return ErrNotLoaded
	}
	return a.err
}

func (a Artifact[T]) Path() string {
	return a.path
}
