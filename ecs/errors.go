package ecs

import "errors"

var (
	ErrInvalidEntity           = errors.New("entity does not exist")
	ErrComponentLimitExceeded  = errors.New("too many component types registered")
	ErrComponentNotOnEntity    = errors.New("component not on entity")
	ErrComponentNotRegistered  = errors.New("component type not registered")
	ErrInvalidComponentType    = errors.New("components cannot be pointers, maps, channels, or functions")
	ErrSystemAlreadyRegistered = errors.New("system type already registered")
)
