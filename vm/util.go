package vm

import (
	"fmt"

	"github.com/tcc-lang/tcc/object"
)

func checkCallArgs(fn *object.Function, argc int) error {
	paramsCount := len(fn.Parameters())
	if argc == paramsCount {
		return nil
	}
	msg := "args error: function"
	if name := fn.Name(); name != "" {
		msg = fmt.Sprintf("%s %q", msg, name)
	}
	switch paramsCount {
	case 0:
		msg = fmt.Sprintf("%s takes 0 arguments (%d given)", msg, argc)
	case 1:
		msg = fmt.Sprintf("%s takes 1 argument (%d given)", msg, argc)
	default:
		msg = fmt.Sprintf("%s takes %d arguments (%d given)", msg, paramsCount, argc)
	}
	return object.NewArgsError("%s", msg)
}
