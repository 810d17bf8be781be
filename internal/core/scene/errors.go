package scene

import "errors"

var (
	ErrUnknownObjectKind  = errors.New("unknown object kind")
	ErrSceneNotFound      = errors.New("scene not found")
	ErrEmptyScene         = errors.New("scene has no objects")
	ErrInvalidDescription = errors.New("invalid scene description")
)
