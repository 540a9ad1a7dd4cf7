package app

import (
	"github.com/scienceos/irkit/dialects/science"
	"github.com/scienceos/irkit/internal/dialect"
)

// coreDialects is the definitive list of dialects compiled into the irkit
// binary.
var coreDialects = []dialect.Module{
	&science.Dialect{},
}
