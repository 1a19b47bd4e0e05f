package addon

import "errors"

var (
	ErrGrantNotFound    = errors.New("addon grant not found")
	ErrInvalidAddonType = errors.New("invalid addon type")
	ErrInvalidResource  = errors.New("invalid resource type")
)
