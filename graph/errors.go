package graph

import "errors"

var (
	ErrDuplicateNode   = errors.New("graph: duplicate node id")
	ErrUnknownNode     = errors.New("graph: unknown node")
	ErrNegativeWeight  = errors.New("graph: negative edge weight")
	ErrNegativeCost    = errors.New("graph: negative edge cost")
	ErrUnknownEdgeType = errors.New("graph: unknown edge type")
	ErrAlreadyBuilt    = errors.New("graph: builder already built")
)
